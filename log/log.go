// Package log defines the logger engine.
// The unique feature is that it can create a child logger derived from the parent logger.
// Each logger defines a unique color style for the message outputs.
//
// Create a child logger for the packages that the bootstrap is calling.
package log

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/gamut"
)

const (
	WithTimestamp    = true
	WithoutTimestamp = false
)

// Logger is the wrapper over the logger and keeps the style.
// The style is generated randomly.
type Logger struct {
	logger *log.Logger
	style  LoggerStyle
}

// LoggerStyle defines the various colors for each log parts.
type LoggerStyle struct {
	prefix    lipgloss.Style
	separator lipgloss.Style
}

func randomStyle() (LoggerStyle, error) {
	rawPalette, err := gamut.Generate(2, gamut.PastelGenerator{})
	if err != nil {
		return LoggerStyle{}, fmt.Errorf("gamut.Generate: %w", err)
	}
	palette := make([]lipgloss.Color, len(rawPalette))
	for i, rawColor := range rawPalette {
		lighter := gamut.Lighter(rawColor, 0.05)
		palette[i] = lipgloss.Color(gamut.ToHex(lighter))
	}

	style := LoggerStyle{}

	style.prefix = lipgloss.NewStyle().
		Bold(true).
		Faint(true).
		Foreground(palette[0])

	style.separator = lipgloss.NewStyle().
		Faint(true).
		Foreground(palette[1])

	return style, nil
}

// apply sets the colors on the underlying logger.
func (style LoggerStyle) apply(logger *log.Logger) {
	styles := log.DefaultStyles()
	styles.Prefix = style.prefix
	styles.Separator = style.separator
	logger.SetStyles(styles)
}

// New logger with the prefix and timestamp, writing to the standard error.
// It generates the random color style.
func New(prefix string, timestamp bool) (*Logger, error) {
	return NewWithOutput(os.Stderr, prefix, timestamp)
}

// NewWithOutput is identical to New but writes into the given writer.
func NewWithOutput(w io.Writer, prefix string, timestamp bool) (*Logger, error) {
	randomStyle, err := randomStyle()
	if err != nil {
		return nil, fmt.Errorf("random_style: %w", err)
	}

	logger := log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: timestamp,
	})
	randomStyle.apply(logger)

	return &Logger{
		logger: logger,
		style:  randomStyle,
	}, nil
}

// SetLevel changes the minimum level printed by the logger.
// The level is one of "debug", "info", "warn" or "error".
func (logger *Logger) SetLevel(level string) error {
	parsed, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("log.ParseLevel('%s'): %w", level, err)
	}
	logger.logger.SetLevel(parsed)
	return nil
}

// Debug prints the message only if the logger level allows it
func (logger *Logger) Debug(title string, kv ...interface{}) {
	logger.logger.Debug(title, kv...)
}

// Info prints the information
func (logger *Logger) Info(title string, kv ...interface{}) {
	logger.logger.Info(title, kv...)
}

// Warn prints the warning message
func (logger *Logger) Warn(title string, kv ...interface{}) {
	logger.logger.Warn(title, kv...)
}

// Child logger from the parent with its own color style.
//
// When to use it?
//
// For example:
//
//	parent, _ := log.New("envboot", false)
//	envLog := parent.Child("env")
//	proxyLog := parent.Child("proxy")
//
//	parent.Info("starting", "variant", "default")
//	envLog.Info("loaded environment file", "file", ".env")
//	proxyLog.Warn("proxy configuration detected", "name", "HTTP_PROXY")
//
//	// prints the following
//	// INFO envboot: starting variant=default
//	// INFO envboot/env: loaded environment file file=.env
//	// WARN envboot/proxy: proxy configuration detected name=HTTP_PROXY
func (logger *Logger) Child(prefix string, kv ...interface{}) *Logger {
	child := logger.logger.With(kv...)
	child.SetPrefix(logger.logger.GetPrefix() + "/" + prefix)

	style, err := randomStyle()
	if err != nil {
		style = logger.style
	}
	style.apply(child)

	return &Logger{
		logger: child,
		style:  style,
	}
}
