package simenv

// LogLevel orders log severities; messages below a logger's minimum level
// are suppressed.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// Logger is the logging collaborator consumed by backends. Implementations
// must be safe for concurrent use. The prefix identifies the call site
// (package or component name) and may be empty.
type Logger interface {
	SetLevel(lvl LogLevel)
	Level() LogLevel
	Log(lvl LogLevel, msg, prefix string)
	Debug(msg, prefix string)
	Info(msg, prefix string)
	Warn(msg, prefix string)
	Error(msg, prefix string)
}
