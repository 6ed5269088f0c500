package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Level represents the severity level of log messages
type Level int

const (
	TraceLevel Level = iota
	DebugLevel
	InfoLevel
	WarnLevel
	ErrorLevel
)

// String returns the string representation of the level
func (l Level) String() string {
	switch l {
	case TraceLevel:
		return "TRACE"
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a flag value to a Level. Unknown names fall back to info
// and report false.
func ParseLevel(s string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return TraceLevel, true
	case "debug":
		return DebugLevel, true
	case "info", "":
		return InfoLevel, true
	case "warn", "warning":
		return WarnLevel, true
	case "error":
		return ErrorLevel, true
	default:
		return InfoLevel, false
	}
}

// Config holds the logger configuration
type Config struct {
	Level     Level
	UseColor  bool
	JSON      bool
	Component string
}

// Logger writes leveled entries to a single writer.
type Logger struct {
	config Config
	logger *log.Logger
	levels map[Level]lipgloss.Style
	now    func() time.Time
}

// New builds a logger writing to w. UseColor forces basic ANSI colors on
// the level tag whether or not w is a terminal.
func New(w io.Writer, config Config) *Logger {
	r := lipgloss.NewRenderer(w)
	if config.UseColor {
		r.SetColorProfile(termenv.ANSI)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	levels := map[Level]lipgloss.Style{
		TraceLevel: r.NewStyle().Foreground(lipgloss.Color("7")),
		DebugLevel: r.NewStyle().Foreground(lipgloss.Color("6")),
		InfoLevel:  r.NewStyle().Foreground(lipgloss.Color("2")),
		WarnLevel:  r.NewStyle().Foreground(lipgloss.Color("3")),
		ErrorLevel: r.NewStyle().Foreground(lipgloss.Color("1")),
	}
	return &Logger{config: config, logger: log.New(w, "", 0), levels: levels, now: time.Now}
}

// Default logger instance
var defaultLogger *Logger

// Initialize sets up the default logger on stderr
func Initialize(config Config) error {
	if config.Component == "" {
		config.Component = "pagesmith"
	}
	defaultLogger = New(os.Stderr, config)
	return nil
}

// Enabled reports whether entries at level would be written.
func (l *Logger) Enabled(level Level) bool {
	return l != nil && level >= l.config.Level
}

// Log writes a log message
func (l *Logger) Log(level Level, message string, fields ...Field) {
	l.log(2, level, message, fields)
}

func (l *Logger) log(skip int, level Level, message string, fields []Field) {
	if !l.Enabled(level) {
		return
	}

	entry := Entry{
		Time:      l.now(),
		Level:     level.String(),
		Message:   message,
		Component: l.config.Component,
	}

	if level <= DebugLevel {
		if _, file, line, ok := runtime.Caller(skip); ok {
			entry.File = file
			entry.Line = line
		}
	}

	if len(fields) > 0 {
		entry.Fields = make(map[string]interface{}, len(fields))
		for _, field := range fields {
			entry.Fields[field.Key] = field.Value
		}
	}

	var output string
	if l.config.JSON {
		jsonBytes, err := json.Marshal(entry)
		if err != nil {
			output = fmt.Sprintf(`{"level":"ERROR","message":"log encode failed: %s"}`, err)
		} else {
			output = string(jsonBytes)
		}
	} else {
		output = l.formatPretty(level, entry)
	}

	l.logger.Print(output)
}

// formatPretty renders "time [LEVEL] component: message {fields} (file:line)".
func (l *Logger) formatPretty(level Level, entry Entry) string {
	var builder strings.Builder

	builder.WriteString(entry.Time.Format("2006-01-02 15:04:05"))
	builder.WriteString(" [" + l.levels[level].Render(entry.Level) + "]")

	if entry.Component != "" {
		builder.WriteString(fmt.Sprintf(" %s:", entry.Component))
	}

	builder.WriteString(" ")
	builder.WriteString(entry.Message)

	// Fields sorted so output is stable
	if len(entry.Fields) > 0 {
		keys := make([]string, 0, len(entry.Fields))
		for k := range entry.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		builder.WriteString(" {")
		for i, k := range keys {
			if i > 0 {
				builder.WriteString(", ")
			}
			builder.WriteString(fmt.Sprintf("%s=%v", k, entry.Fields[k]))
		}
		builder.WriteString("}")
	}

	if entry.File != "" {
		builder.WriteString(fmt.Sprintf(" (%s:%d)", entry.File, entry.Line))
	}

	return builder.String()
}

// Field represents a structured field in a log entry
type Field struct {
	Key   string
	Value interface{}
}

// String creates a string field
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

// Int creates an int field
func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

// Float creates a float field
func Float(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

// Bool creates a bool field
func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

// Err creates an error field
func Err(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: "<nil>"}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Entry is one log record as written in JSON mode.
type Entry struct {
	Time      time.Time              `json:"time"`
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Component string                 `json:"component,omitempty"`
	File      string                 `json:"file,omitempty"`
	Line      int                    `json:"line,omitempty"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
}

// Default returns the process logger, or nil before Initialize.
func Default() *Logger {
	return defaultLogger
}

// IsEnabled reports whether the default logger writes entries at level.
func IsEnabled(level Level) bool {
	return defaultLogger.Enabled(level)
}

func Trace(message string, fields ...Field) {
	if defaultLogger != nil {
		defaultLogger.log(2, TraceLevel, message, fields)
	}
}

func Debug(message string, fields ...Field) {
	if defaultLogger != nil {
		defaultLogger.log(2, DebugLevel, message, fields)
	}
}

func Info(message string, fields ...Field) {
	if defaultLogger != nil {
		defaultLogger.log(2, InfoLevel, message, fields)
	}
}

func Warn(message string, fields ...Field) {
	if defaultLogger != nil {
		defaultLogger.log(2, WarnLevel, message, fields)
	}
}

func Error(message string, fields ...Field) {
	if defaultLogger != nil {
		defaultLogger.log(2, ErrorLevel, message, fields)
	} else {
		fmt.Fprintf(os.Stderr, "[ERROR] pagesmith: %s\n", message)
	}
}

// SetOutput sets the output writer for the logger
func SetOutput(w io.Writer) {
	if defaultLogger != nil {
		defaultLogger.logger.SetOutput(w)
	}
}
