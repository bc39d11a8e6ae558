package publishers

// Logger is the subset of the application logger publishers write to.
type Logger interface {
	DebugObj(msg, key string, obj any)
	ErrorObj(msg, key string, obj any)
}

type discardLogger struct{}

func (discardLogger) DebugObj(string, string, any) {}
func (discardLogger) ErrorObj(string, string, any) {}

func ensureLogger(log Logger) Logger {
	if log == nil {
		return discardLogger{}
	}
	return log
}
