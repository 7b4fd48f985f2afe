package core

// Logger is any service that can report application events.
// Implementations may inspect args for well-known types (eg. a logged in user)
// to attach extra context to a report.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
