package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
	NONE
)

var (
	level     = INFO
	stdLogger = log.New(os.Stderr, "[diachronic] ", log.LstdFlags)
)

var (
	mu      sync.Mutex
	logFile *os.File
	warned  sync.Map // key -> struct{}
)

func ParseLevel(s string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DEBUG, nil
	case "info", "":
		return INFO, nil
	case "warn", "warning":
		return WARN, nil
	case "error":
		return ERROR, nil
	case "none", "off":
		return NONE, nil
	}
	return INFO, fmt.Errorf("unknown log level %q", s)
}

// Init sets the level and, when logfilePath is not empty, appends every
// line to that file as well as stderr.
func Init(logfilePath string, levelStr string) error {
	lvl, err := ParseLevel(levelStr)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()

	level = lvl
	closeFile()

	if logfilePath == "" {
		stdLogger.SetOutput(os.Stderr)
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(logfilePath), 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(logfilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	logFile = f
	stdLogger.SetOutput(io.MultiWriter(os.Stderr, f))
	return nil
}

// Close releases the log file opened by Init, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	err := closeFile()
	stdLogger.SetOutput(os.Stderr)
	return err
}

func closeFile() error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// SetOutput redirects the logger, mainly for tests.
func SetOutput(w io.Writer) {
	stdLogger.SetOutput(w)
}

func SetLevel(l LogLevel) {
	mu.Lock()
	level = l
	mu.Unlock()
}

func enabled(l LogLevel) bool {
	mu.Lock()
	defer mu.Unlock()
	return level <= l
}

func Debug(msg string, args ...any) {
	if enabled(DEBUG) {
		stdLogger.Printf("[DEBUG] "+msg, args...)
	}
}
func Info(msg string, args ...any) {
	if enabled(INFO) {
		stdLogger.Printf("[INFO] "+msg, args...)
	}
}
func Warn(msg string, args ...any) {
	if enabled(WARN) {
		stdLogger.Printf("[WARN] "+msg, args...)
	}
}
func Error(msg string, args ...any) {
	if enabled(ERROR) {
		stdLogger.Printf("[ERROR] "+msg, args...)
	}
}

// WarnOnce logs msg at warn level the first time key is seen.
func WarnOnce(key string, msg string, args ...any) {
	if _, seen := warned.LoadOrStore(key, struct{}{}); seen {
		return
	}
	Warn(msg, args...)
}
