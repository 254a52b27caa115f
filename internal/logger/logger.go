package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger wraps logrus with the service's JSON field conventions.
type Logger struct {
	*logrus.Logger
}

// NewLogger creates a JSON logger. The level comes from LOG_LEVEL and
// defaults to info.
func NewLogger(serviceName string) *Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})
	log.SetOutput(os.Stdout)

	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		log.SetLevel(logrus.DebugLevel)
	case "warn":
		log.SetLevel(logrus.WarnLevel)
	case "error":
		log.SetLevel(logrus.ErrorLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}

	log = log.WithField("service", serviceName).Logger
	return &Logger{Logger: log}
}

// WithRiddleID tags entries with the riddle being acted on.
func (l *Logger) WithRiddleID(riddleID uint) *logrus.Entry {
	return l.WithField("riddle_id", riddleID)
}

// WithUserID tags entries with the acting user.
func (l *Logger) WithUserID(userID uint) *logrus.Entry {
	return l.WithField("user_id", userID)
}
