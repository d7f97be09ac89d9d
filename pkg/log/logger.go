// Package log configures the leveled loggers shared by the renderer, the
// scene loader and the command line tools. Output goes to stderr by default
// so a rendered image can be streamed on stdout.
package log

import (
	"io"
	"os"
	"strings"

	"github.com/op/go-logging"
	"golang.org/x/xerrors"
)

type Level int

const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

var levels = []struct {
	name    string
	backend logging.Level
}{
	Debug:   {"debug", logging.DEBUG},
	Info:    {"info", logging.INFO},
	Notice:  {"notice", logging.NOTICE},
	Warning: {"warning", logging.WARNING},
	Error:   {"error", logging.ERROR},
}

func (l Level) String() string {
	if l < Debug || l > Error {
		return "unknown"
	}
	return levels[l].name
}

var format = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
)

var (
	backend logging.LeveledBackend
	current = Notice
)

// Logger is a named go-logging logger. It satisfies core.Logger.
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})
	Info(v ...interface{})
	Infof(format string, v ...interface{})
	Notice(v ...interface{})
	Noticef(format string, v ...interface{})
	Warning(v ...interface{})
	Warningf(format string, v ...interface{})
	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

func New(module string) Logger {
	return logging.MustGetLogger(module)
}

// SetSink redirects every logger to sink, keeping the current level.
func SetSink(sink io.Writer) {
	formatted := logging.NewBackendFormatter(logging.NewLogBackend(sink, "", 0), format)
	backend = logging.AddModuleLevel(formatted)
	backend.SetLevel(levels[current].backend, "")
	logging.SetBackend(backend)
}

// SetLevel changes the verbosity of every logger. Out of range levels are
// ignored.
func SetLevel(level Level) {
	if level < Debug || level > Error {
		return
	}
	current = level
	backend.SetLevel(levels[level].backend, "")
}

// ParseLevel accepts a level name in any case; "warn" is short for warning.
func ParseLevel(name string) (Level, error) {
	name = strings.ToLower(name)
	if name == "warn" {
		return Warning, nil
	}
	for level, l := range levels {
		if l.name == name {
			return Level(level), nil
		}
	}
	return Notice, xerrors.Errorf("unknown log level %q", name)
}

// VerbosityLevel maps a -v count to a level: 0 is Notice, 1 Info, 2 or more Debug.
func VerbosityLevel(verbosity int) Level {
	switch {
	case verbosity >= 2:
		return Debug
	case verbosity == 1:
		return Info
	default:
		return Notice
	}
}

func init() {
	SetSink(os.Stderr)
}
