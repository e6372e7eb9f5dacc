package core

// Person identifies the authenticated educator attached to a log entry.
type Person struct {
	ID    string
	Name  string
	Email string
}

// Logger is any service that can report application events.
// expected args: error, map[string]interface{}, Person
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
