package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New builds the application logger. Level and format come straight from
// configuration; unknown levels fall back to info.
func New(level, format string) *logrus.Logger {
	l := logrus.New()

	switch level {
	case "trace":
		l.SetLevel(logrus.TraceLevel)
	case "debug":
		l.SetLevel(logrus.DebugLevel)
	case "warning", "warn":
		l.SetLevel(logrus.WarnLevel)
	case "error":
		l.SetLevel(logrus.ErrorLevel)
	case "fatal":
		l.SetLevel(logrus.FatalLevel)
	default:
		l.SetLevel(logrus.InfoLevel)
	}

	if format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	}

	l.SetOutput(os.Stdout)
	return l
}
