// Package slackhook forwards log events to a Slack incoming webhook.
// It consumes a framework-neutral Event record, formats it into a Slack
// message with optional attachment metadata, and delivers it over HTTP on
// a best-effort, fire-and-forget basis. A log/slog Handler adapter is
// provided for use with the standard library's logging framework.
package slackhook

import (
	"errors"
	"strings"
	"time"
)

// Level defines the severity level of a log event.
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
	LevelFatal Level = "FATAL"
)

type levelValue int

const (
	levelValueDebug levelValue = iota + 1
	levelValueInfo
	levelValueWarn
	levelValueError
	levelValueFatal
)

var levelMap = map[Level]levelValue{
	LevelDebug: levelValueDebug,
	LevelInfo:  levelValueInfo,
	LevelWarn:  levelValueWarn,
	LevelError: levelValueError,
	LevelFatal: levelValueFatal,
}

// ParseLevel parses a string into a Level.
// It is case-insensitive. It returns an error if the input string is not a valid level.
func ParseLevel(levelStr string) (Level, error) {
	level := Level(strings.ToUpper(levelStr))
	if _, ok := levelMap[level]; ok {
		return level, nil
	}

	return "", errors.New("invalid level: " + levelStr)
}

// Event is an immutable snapshot of a single log event, taken at the time
// the host framework appended it. It carries everything the sink needs to
// format a notification; the host's layout and filter pipeline are assumed
// to have already run.
type Event struct {
	// Level is the severity of the event.
	Level Level

	// Logger is the dotted name of the logger that produced the event,
	// e.g. "App.Worker". May be empty.
	Logger string

	// Message is the fully rendered message text. It is forwarded verbatim.
	Message string

	// Exception is the string representation of an associated error or
	// exception, or empty when there is none.
	Exception string

	// Time is when the event was appended.
	Time time.Time
}
