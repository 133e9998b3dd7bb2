package server

import (
	"time"

	"github.com/existflow/taskdeck/internal/logger"
	"github.com/labstack/echo/v4"
)

// requestLogger logs every request once it has been handled
func requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		req := c.Request()

		err := next(c)
		if err != nil {
			c.Error(err)
		}

		res := c.Response()
		fields := []logger.Field{
			logger.F("method", req.Method),
			logger.F("uri", req.RequestURI),
			logger.F("status", res.Status),
			logger.F("size", res.Size),
			logger.F("duration", time.Since(start)),
			logger.F("request_id", res.Header().Get(echo.HeaderXRequestID)),
		}

		switch {
		case res.Status >= 500:
			logger.Error("HTTP Request", fields...)
		case res.Status >= 400:
			logger.Warn("HTTP Request", fields...)
		default:
			logger.Info("HTTP Request", fields...)
		}

		// the error was already rendered above
		return nil
	}
}
