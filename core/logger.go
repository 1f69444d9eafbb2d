package core

// Logger is the logging contract consumed across the core. Implementations
// live under services/logger; the core never logs through the std library
// directly so that hosts can swap reporting backends.
//
// Severity convention: malformed-but-recoverable input (unparseable URLs,
// bad parameters) logs at Debug/Info; security-signature matches and forced
// logouts log at Warn/Error.
type Logger interface {
	Enable(enabled bool)
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
