package main

import (
	"log"
	"strings"
)

// LogLevel is the minimum severity the logger emits.
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
)

func parseLogLevel(s string) LogLevel {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return DEBUG
	case "WARN":
		return WARN
	case "ERROR":
		return ERROR
	default:
		return INFO
	}
}

// Logger is a level-gated wrapper around the stdlib logger.
type Logger struct {
	level LogLevel
}

var logger = &Logger{level: INFO}

// initLogger sets the global log level from its configured name.
func initLogger(levelStr string) {
	logger = &Logger{level: parseLogLevel(levelStr)}
}

func (l *Logger) Debug(format string, v ...interface{}) {
	if l.level <= DEBUG {
		log.Printf("[DEBUG] "+format, v...)
	}
}

func (l *Logger) Info(format string, v ...interface{}) {
	if l.level <= INFO {
		log.Printf("[INFO] "+format, v...)
	}
}

func (l *Logger) Warn(format string, v ...interface{}) {
	if l.level <= WARN {
		log.Printf("[WARN] "+format, v...)
	}
}

func (l *Logger) Error(format string, v ...interface{}) {
	if l.level <= ERROR {
		log.Printf("[ERROR] "+format, v...)
	}
}

// Fatal logs and exits; reserved for startup failures.
func (l *Logger) Fatal(format string, v ...interface{}) {
	log.Fatalf("[FATAL] "+format, v...)
}
