package logbuffer

import (
	"fmt"
	"strconv"
	"strings"
)

// Level is the ordinal severity a record was logged with.
// Values are bit flags so that level sets can be expressed as masks.
type Level int

const (
	LevelError        Level = 0x01
	LevelWarning      Level = 0x02
	LevelInfo         Level = 0x04
	LevelTrace        Level = 0x08
	LevelProfile      Level = 0x40
	LevelProfileBegin Level = 0x50
	LevelProfileEnd   Level = 0x60
)

var levelNames = map[Level]string{
	LevelError:        "error",
	LevelWarning:      "warning",
	LevelInfo:         "info",
	LevelTrace:        "trace",
	LevelProfile:      "profile",
	LevelProfileBegin: "profile begin",
	LevelProfileEnd:   "profile end",
}

// String returns the lower-case level name, or "level(N)" for unknown values.
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "level(" + strconv.Itoa(int(l)) + ")"
}

// ParseLevel converts a level name or a numeric ordinal into a Level.
// Names are matched case-insensitively; "warn" and "debug" are accepted as aliases.
// Unknown numeric ordinals are returned as-is.
func ParseLevel(s string) (Level, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "warn":
		return LevelWarning, nil
	case "debug":
		return LevelTrace, nil
	case "profile-begin", "profile_begin":
		return LevelProfileBegin, nil
	case "profile-end", "profile_end":
		return LevelProfileEnd, nil
	}
	for l, n := range levelNames {
		if n == name {
			return l, nil
		}
	}
	if n, err := strconv.Atoi(name); err == nil {
		return Level(n), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
}
