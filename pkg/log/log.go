package log

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var (
	// Logger is the global logger instance
	Logger zerolog.Logger
)

// Level represents log level
type Level string

const (
	DebugLevel Level = "debug"
	InfoLevel  Level = "info"
	WarnLevel  Level = "warn"
	ErrorLevel Level = "error"
)

// Config holds logging configuration
type Config struct {
	Level      Level
	JSONOutput bool
	Output     io.Writer
}

// Init initializes the global logger
func Init(cfg Config) {
	// Set log level
	var level zerolog.Level
	switch cfg.Level {
	case DebugLevel:
		level = zerolog.DebugLevel
	case InfoLevel:
		level = zerolog.InfoLevel
	case WarnLevel:
		level = zerolog.WarnLevel
	case ErrorLevel:
		level = zerolog.ErrorLevel
	default:
		level = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output
	output := cfg.Output
	if output == nil {
		output = os.Stdout
	}

	// Use JSON or console output
	if cfg.JSONOutput {
		Logger = zerolog.New(output).With().Timestamp().Logger()
	} else {
		Logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Logger()
	}
}

// L returns the global logger. It is the standard entry point for
// call sites that don't need a field-scoped child logger.
func L() *zerolog.Logger {
	return &Logger
}

// Component names one of the cascade engine's five subsystems, used
// to scope a child logger consistently across call sites instead of
// letting each package spell its own component string.
type Component string

const (
	ComponentStore       Component = "store"
	ComponentEvaluator   Component = "evaluator"
	ComponentCascade     Component = "cascade"
	ComponentIngress     Component = "ingress"
	ComponentRemediation Component = "remediation"
)

// WithComponent creates a child logger tagged with one of the five
// components above.
func WithComponent(component Component) zerolog.Logger {
	return Logger.With().Str("component", string(component)).Logger()
}

// WithResource creates a child logger scoped to a resource name
// (model or package).
func WithResource(resource string) zerolog.Logger {
	return Logger.With().Str("resource", resource).Logger()
}

// WithTransitionID creates a child logger scoped to a transition id.
func WithTransitionID(transitionID string) zerolog.Logger {
	return Logger.With().Str("transition_id", transitionID).Logger()
}

// Helper functions for common logging patterns
func Info(msg string) {
	Logger.Info().Msg(msg)
}

func Debug(msg string) {
	Logger.Debug().Msg(msg)
}

func Warn(msg string) {
	Logger.Warn().Msg(msg)
}

func Error(msg string) {
	Logger.Error().Msg(msg)
}

func Errorf(format string, err error) {
	Logger.Error().Err(err).Msg(format)
}

func Fatal(msg string) {
	Logger.Fatal().Msg(msg)
}
