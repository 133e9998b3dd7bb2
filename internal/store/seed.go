package store

import "github.com/existflow/taskdeck/internal/model"

type seedTask struct {
	input   AddInput
	starred bool
}

var seedTasks = []seedTask{
	{
		input: AddInput{
			Title:       "Integration API",
			Description: "Connect an existing API to a third-party database using secure methods and handle data exchange efficiently.",
			Tags:        []string{"Web", "Python", "API"},
			Priority:    model.PriorityHigh,
		},
		starred: true,
	},
	{
		input: AddInput{
			Title:       "API Data",
			Description: "Implement a Python solution to synchronize data between an API and a third-party database securely, optimizing data exchange.",
			Tags:        []string{"Python", "API", "Data Synchronization"},
			Priority:    model.PriorityMedium,
		},
	},
	{
		input: AddInput{
			Title:       "Efficient Web",
			Description: "Develop a Python-based solution for connecting an API to a third-party database securely, focusing on efficient data handling and exchange.",
			Tags:        []string{"Web", "Python", "API"},
			Priority:    model.PriorityHigh,
		},
	},
	{
		input: AddInput{
			Title:       "Data Handling",
			Description: "Integrate a web API with a third-party database using secure methods, focusing on seamless data exchange and data integrity.",
			Tags:        []string{"Web", "Python", "Security"},
			Priority:    model.PriorityMedium,
		},
	},
	{
		input: AddInput{
			Title:       "Data Synchronization",
			Description: "Integrate a web API with a third-party database using secure methods, focusing on seamless data exchange and data integrity.",
			Tags:        []string{"Web", "Python", "Security"},
			Priority:    model.PriorityLow,
		},
	},
}

// Seed appends the demo tasks shown on first launch
func (c *Collection) Seed() {
	for _, s := range seedTasks {
		t := c.Add(s.input)
		if s.starred {
			c.ToggleStar(t.ID)
		}
	}
}
