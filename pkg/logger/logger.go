package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	TimeFormat string `mapstructure:"time_format"`
}

type Logger struct {
	logger zerolog.Logger
}

// New builds a logger writing to the configured output. Output may be
// "stdout", "stderr" or a file path; unknown files fall back to stderr.
func New(config Config) *Logger {
	return NewWithWriter(config, openOutput(config.Output))
}

// NewWithWriter builds a logger on an explicit writer, mostly for tests.
func NewWithWriter(config Config, output io.Writer) *Logger {
	zerolog.SetGlobalLevel(parseLevel(config.Level))

	var logger zerolog.Logger
	if config.Format == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: getTimeFormat(config.TimeFormat),
		}).With().Timestamp().Logger()
	} else {
		logger = zerolog.New(output).With().Timestamp().Logger()
	}

	return &Logger{logger: logger}
}

func openOutput(output string) io.Writer {
	switch output {
	case "", "stderr":
		return os.Stderr
	case "stdout":
		return os.Stdout
	}
	file, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return os.Stderr
	}
	return file
}

func (l *Logger) Debug(msg string) {
	l.logger.Debug().Msg(msg)
}

func (l *Logger) Info(msg string) {
	l.logger.Info().Msg(msg)
}

func (l *Logger) Warn(msg string) {
	l.logger.Warn().Msg(msg)
}

func (l *Logger) Error(msg string) {
	l.logger.Error().Msg(msg)
}

func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{logger: l.logger.With().Interface(key, value).Logger()}
}

func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	logger := l.logger.With()
	for k, v := range fields {
		logger = logger.Interface(k, v)
	}
	return &Logger{logger: logger.Logger()}
}

func (l *Logger) WithError(err error) *Logger {
	return &Logger{logger: l.logger.With().Err(err).Logger()}
}

// WithURL attaches a URL with its API key masked.
func (l *Logger) WithURL(key, rawURL string) *Logger {
	return &Logger{logger: l.logger.With().Str(key, MaskURL(rawURL)).Logger()}
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "disabled":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

func getTimeFormat(format string) string {
	if format != "" {
		return format
	}
	return time.RFC3339
}

// SetGlobalLogger also routes the zerolog package-level logger.
func SetGlobalLogger(logger *Logger) {
	SetLogger(logger)
	log.Logger = logger.logger
}
