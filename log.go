package tiledraw

import (
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	loggerMu sync.RWMutex
	logger   logrus.FieldLogger = logrus.StandardLogger()
)

// SetLogger sets the logger used by tiledraw and its backend packages.
// Passing nil restores the logrus standard logger.
func SetLogger(l logrus.FieldLogger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()

	if l == nil {
		l = logrus.StandardLogger()
	}
	logger = l
}

// Logger returns the current logger.
func Logger() logrus.FieldLogger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}
