package main

import (
	"io"
	"log"
	"os"
	"strings"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps a config string to a Level; anything unrecognised means
// info.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger is a small leveled wrapper over the standard log package.
type Logger struct {
	level Level
	out   *log.Logger
}

func NewLogger(level string) *Logger {
	return NewLoggerTo(os.Stderr, level)
}

func NewLoggerTo(w io.Writer, level string) *Logger {
	return &Logger{level: ParseLevel(level), out: log.New(w, "", log.LstdFlags)}
}

func (l *Logger) Debugf(f string, a ...any) { l.printf(LevelDebug, "[debug] "+f, a...) }
func (l *Logger) Infof(f string, a ...any)  { l.printf(LevelInfo, "[info ] "+f, a...) }
func (l *Logger) Warnf(f string, a ...any)  { l.printf(LevelWarn, "[warn ] "+f, a...) }
func (l *Logger) Errorf(f string, a ...any) { l.printf(LevelError, "[error] "+f, a...) }
func (l *Logger) Fatalf(f string, a ...any) { l.out.Fatalf("[fatal] "+f, a...) }

func (l *Logger) printf(lv Level, f string, a ...any) {
	if l.level <= lv {
		l.out.Printf(f, a...)
	}
}
