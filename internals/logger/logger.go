// Package logger holds the process-wide logrus logger.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const ServiceName = "quizku"

// LocalsRequestID is the fiber Locals key the request-id middleware writes.
const LocalsRequestID = "reqid"

var (
	once sync.Once
	base *logrus.Logger
	std  *logrus.Entry
)

// New builds a JSON logger tagged with the service name.
func New(level string, out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})
	if out == nil {
		out = os.Stdout
	}
	log.SetOutput(out)
	log.SetLevel(parseLevel(level))
	return log
}

func parseLevel(level string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

func initDefault() {
	once.Do(func() {
		base = New(os.Getenv("LOG_LEVEL"), nil)
		std = base.WithField("service", ServiceName)
	})
}

// Init replaces the process logger. Call it once from main after config load.
func Init(level string) {
	initDefault()
	base.SetLevel(parseLevel(level))
}

// L returns the process logger entry.
func L() *logrus.Entry {
	initDefault()
	return std
}

// Base exposes the underlying logger for adapters that need an io.Writer.
func Base() *logrus.Logger {
	initDefault()
	return base
}

// FromCtx returns the process logger with the request id attached.
func FromCtx(c *fiber.Ctx) *logrus.Entry {
	e := L()
	if c == nil {
		return e
	}
	if id, ok := c.Locals(LocalsRequestID).(string); ok && id != "" {
		e = e.WithField("request_id", id)
	}
	if uid, ok := c.Locals("user_id").(string); ok && uid != "" {
		e = e.WithField("user_id", uid)
	}
	return e
}
