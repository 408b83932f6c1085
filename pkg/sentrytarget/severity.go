package sentrytarget

import "github.com/dmitrymomot/logtarget/pkg/logbuffer"

// Severity is the normalized event level understood by the error tracker.
type Severity string

const (
	SeverityDebug   Severity = "debug"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// SeverityOf maps a host log level to an event severity.
// Trace and profiling levels are debug; unknown levels fall back to info.
func SeverityOf(level logbuffer.Level) Severity {
	switch level {
	case logbuffer.LevelTrace,
		logbuffer.LevelProfile,
		logbuffer.LevelProfileBegin,
		logbuffer.LevelProfileEnd:
		return SeverityDebug
	case logbuffer.LevelWarning:
		return SeverityWarning
	case logbuffer.LevelError:
		return SeverityError
	default:
		return SeverityInfo
	}
}
