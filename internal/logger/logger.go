package logger

import (
	"io"
	"log/slog"
	"os"
)

var Logger = slog.Default()

// Init installs a text handler on stdout as the default slog logger.
func Init(debug bool) {
	InitWriter(os.Stdout, debug)
}

// InitWriter is Init with an explicit destination.
func InitWriter(w io.Writer, debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	Logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})).
		With("service", "briefing")
	slog.SetDefault(Logger)
}

func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}

func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}
