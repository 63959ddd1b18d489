package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New returns the process logger. LOG_LEVEL overrides the debug default.
func New() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.DebugLevel)
	if lvl, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		log.SetLevel(lvl)
	}
	return log
}
