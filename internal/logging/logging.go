package logging

import (
	"errors"
	"io"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const localsKey = "log"

// New builds the process logger. Unknown levels fall back to info.
func New(level string) *logrus.Logger {
	log := logrus.New()
	log.Level = logrus.InfoLevel
	if lvl, err := logrus.ParseLevel(level); err == nil {
		log.Level = lvl
	}
	log.Formatter = &logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "severity",
			logrus.FieldKeyMsg:   "message",
		},
		TimestampFormat: time.RFC3339Nano,
	}
	log.Out = os.Stdout
	return log
}

// Middleware attaches a request scoped logger to the fiber context and logs
// every completed request.
func Middleware(log logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqLog := log.WithFields(logrus.Fields{
			"http.req.id":     uuid.NewString(),
			"http.req.method": c.Method(),
			"http.req.path":   c.Path(),
		})
		c.Locals(localsKey, reqLog)
		reqLog.Debug("request started")

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			var e *fiber.Error
			if errors.As(err, &e) {
				status = e.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		reqLog.WithFields(logrus.Fields{
			"http.resp.status":  status,
			"http.resp.took_ms": time.Since(start).Milliseconds(),
		}).Info("request complete")
		return err
	}
}

var discard = func() *logrus.Logger {
	l := logrus.New()
	l.Out = io.Discard
	return l
}()

// FromCtx returns the request logger installed by Middleware. Handlers
// mounted without the middleware (tests) get a logger that drops output.
func FromCtx(c *fiber.Ctx) logrus.FieldLogger {
	if l, ok := c.Locals(localsKey).(logrus.FieldLogger); ok {
		return l
	}
	return discard
}
