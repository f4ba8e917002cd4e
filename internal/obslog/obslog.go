// Package obslog holds the package-level structured logger used by the
// macaroon core for low-volume diagnostic output: crypto self-test results,
// format sniffing decisions, unused discharges left after verification.
// Nothing in the hot HMAC path logs.
package obslog

import (
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	mu     sync.RWMutex
	logger logrus.FieldLogger = defaultLogger()
)

func defaultLogger() logrus.FieldLogger {
	l := logrus.New()
	// Silent by default: a library has no business writing to a host
	// application's stdout/stderr unless asked to.
	l.SetLevel(logrus.PanicLevel)
	return l
}

// Logger returns the current package-level logger.
func Logger() logrus.FieldLogger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// SetLogger replaces the package-level logger. Callers embedding this
// library in a service typically call this once at startup with their own
// logrus instance.
func SetLogger(l logrus.FieldLogger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}
