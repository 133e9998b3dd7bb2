package store

// Palette holds the tag color tokens, assigned by tag position
var Palette = []string{"green", "blue", "red", "yellow"}

// TagColors maps each tag to palette[i mod len(palette)]
func TagColors(tags []string) []string {
	colors := make([]string, len(tags))
	for i := range tags {
		colors[i] = Palette[i%len(Palette)]
	}
	return colors
}
