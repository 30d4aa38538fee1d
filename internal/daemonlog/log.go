// Package daemonlog constructs the process-wide structured logger. Every
// controller and the bus façade receive a *logrus.Logger (or a
// *logrus.Entry scoped to their component) rather than reaching for a
// package-level global, so tests can inject a discard logger.
package daemonlog

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New builds a logger that writes structured text to stderr, the only
// sink this daemon owns.
func New(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)

	return logger
}

// Component returns a logger entry scoped to a named component, e.g.
// "wireless", "bluetooth", "audio", "daemon".
func Component(logger *logrus.Logger, name string) *logrus.Entry {
	return logger.WithField("component", name)
}
