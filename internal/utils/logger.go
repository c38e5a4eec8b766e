package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/muesli/termenv"
)

type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	DebugMode      bool
	SilentMode     bool
	CurrentLevel   LogLevel = LevelWarn
	ShowRaylibInfo bool
	ShowDebugUI    bool
)

var output = termenv.NewOutput(os.Stderr)

func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// ParseLevel maps a config/flag level name to a LogLevel.
func ParseLevel(name string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelWarn, fmt.Errorf("unknown log level %q", name)
}

// SetOutput redirects log output and re-detects the colour profile for w.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
	output = termenv.NewOutput(w)
}

func levelColor(level LogLevel) string {
	switch level {
	case LevelDebug:
		return "6"
	case LevelInfo:
		return "4"
	case LevelWarn:
		return "3"
	case LevelError:
		return "1"
	}
	return "7"
}

func logMessage(level LogLevel, format string, v ...interface{}) {
	if level < CurrentLevel {
		return
	}

	tag := "[" + level.String() + "]"
	if output.EnvColorProfile() != termenv.Ascii {
		tag = output.String(tag).Foreground(output.Color(levelColor(level))).String()
	}
	log.Printf(tag+" "+format, v...)
}

func Info(format string, v ...interface{})  { logMessage(LevelInfo, format, v...) }
func Debug(format string, v ...interface{}) { logMessage(LevelDebug, format, v...) }
func Warn(format string, v ...interface{})  { logMessage(LevelWarn, format, v...) }
func Error(format string, v ...interface{}) { logMessage(LevelError, format, v...) }

func RaylibLogCallback(level int, text string) {
	formattedText := "[RAYLIB] " + text
	if output.EnvColorProfile() != termenv.Ascii {
		formattedText = output.String("[RAYLIB]").Foreground(output.Color("5")).String() + " " + text
	}
	switch level {
	case 1, 2: // LOG_TRACE, LOG_DEBUG
		if CurrentLevel <= LevelDebug {
			Debug("%s", formattedText)
		}
	case 3: // LOG_INFO
		if ShowRaylibInfo || CurrentLevel <= LevelInfo {
			Info("%s", formattedText)
		}
	case 4: // LOG_WARNING
		Warn("%s", formattedText)
	case 5, 6: // LOG_ERROR, LOG_FATAL
		Error("%s", formattedText)
	}
}
