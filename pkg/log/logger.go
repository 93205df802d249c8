// Package log provides named, leveled loggers shared by the renderer and CLI.
package log

import (
	"fmt"
	"io"
	"os"

	"github.com/op/go-logging"
)

type Level logging.Level

// The levels that can be passed to SetLevel.
const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

var format = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
)

var leveledBackend logging.LeveledBackend

// Logger is the leveled logging interface used across the module.
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

// New returns a logger tagged with the given module name.
func New(name string) Logger {
	return logging.MustGetLogger(name)
}

// SetSink redirects all log output to sink.
func SetSink(sink io.Writer) {
	backend := logging.NewLogBackend(sink, "", 0)
	formatted := logging.NewBackendFormatter(backend, format)
	leveledBackend = logging.AddModuleLevel(formatted)
	leveledBackend.SetLevel(logging.NOTICE, "")
	logging.SetBackend(leveledBackend)
}

// SetLevel sets the verbosity for every module.
func SetLevel(level Level) {
	leveledBackend.SetLevel(toLogging(level), "")
}

// Enabled reports whether messages at level are emitted.
func Enabled(level Level) bool {
	return leveledBackend.IsEnabledFor(toLogging(level), "")
}

func toLogging(level Level) logging.Level {
	switch level {
	case Debug:
		return logging.DEBUG
	case Info:
		return logging.INFO
	case Warning:
		return logging.WARNING
	case Error:
		return logging.ERROR
	default:
		return logging.NOTICE
	}
}

// Printer adapts a Logger to a Printf-style logger that writes at Info level.
type Printer struct {
	Logger Logger
}

// Printf implements core.Logger.
func (p Printer) Printf(format string, args ...interface{}) {
	p.Logger.Info(fmt.Sprintf(format, args...))
}

func init() {
	SetSink(os.Stdout)
	SetLevel(Notice)
}
