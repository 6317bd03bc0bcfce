package logger

import (
	"os"
	"sync"
)

var (
	globalMu     sync.RWMutex
	globalLogger *Logger
)

// GetLogger returns the global logger instance, creating a default one
// from LOG_LEVEL / DEBUG on first use.
func GetLogger() *Logger {
	globalMu.RLock()
	l := globalLogger
	globalMu.RUnlock()
	if l != nil {
		return l
	}

	globalMu.Lock()
	defer globalMu.Unlock()
	if globalLogger == nil {
		level := "info"
		if os.Getenv("DEBUG") == "true" {
			level = "debug"
		} else if env := os.Getenv("LOG_LEVEL"); env != "" {
			level = env
		}

		globalLogger = New(Config{
			Level:  level,
			Format: "json",
			Output: "stderr",
		})
	}
	return globalLogger
}

// SetLogger sets the global logger instance
func SetLogger(logger *Logger) {
	globalMu.Lock()
	globalLogger = logger
	globalMu.Unlock()
}
