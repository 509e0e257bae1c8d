package brightness

import "log"

// Logf is the package-level diagnostic logger for the non-fatal "log and
// continue" paths (skipped outliers, out-of-domain values, insufficient
// history). It defaults to log.Printf and may be replaced with SetLogger.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil installs a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}
