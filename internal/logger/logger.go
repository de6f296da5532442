package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// New builds the application logger. Production and staging log JSON,
// every other environment logs human-readable text.
func New(level string, environment string) *logrus.Logger {
	return NewWithOutput(os.Stdout, level, environment)
}

func NewWithOutput(output io.Writer, level string, environment string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(output)

	parsed, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		log.SetLevel(logrus.InfoLevel)
		log.Warnf("invalid log level %q, defaulting to info", level)
	} else {
		log.SetLevel(parsed)
	}

	switch strings.ToLower(strings.TrimSpace(environment)) {
	case "production", "staging":
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	default:
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}
	return log
}
