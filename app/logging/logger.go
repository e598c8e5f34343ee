package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"
)

// Logger is the logging contract injected through each component's entry
// point. Nothing in the core depends on a process-wide logging singleton.
type Logger interface {
	Debug(message string, details ...string)
	Info(message string, details ...string)
	Warning(message string, details ...string)
	Error(message string, err error, details ...string)
}

// Nop discards everything. Handy default for tests.
type Nop struct{}

func (Nop) Debug(string, ...string)        {}
func (Nop) Info(string, ...string)         {}
func (Nop) Warning(string, ...string)      {}
func (Nop) Error(string, error, ...string) {}

// FileLogger writes to a per-day log file and stdout.
type FileLogger struct {
	logDir     string
	logFile    *os.File
	logger     *log.Logger
	currentDay string
	debug      bool
}

// NewFileLogger creates a logger writing daily files under dir. When dir
// cannot be prepared the logger degrades to stdout only.
func NewFileLogger(dir string, debug bool) *FileLogger {
	l := &FileLogger{logDir: dir, debug: debug}
	if err := os.MkdirAll(l.logDir, 0755); err != nil {
		log.Printf("Warning: could not create logs directory: %v", err)
		l.logger = log.New(os.Stdout, "", log.LstdFlags|log.Lshortfile)
		return l
	}
	if err := l.rotateLogFile(); err != nil {
		log.Printf("Warning: could not create log file: %v. Logging to stdout only.", err)
		l.logger = log.New(os.Stdout, "", log.LstdFlags|log.Lshortfile)
		return l
	}
	l.logger = log.New(io.MultiWriter(os.Stdout, l.logFile), "", log.LstdFlags|log.Lshortfile)
	return l
}

// rotateLogFile opens the log file for the current day.
func (l *FileLogger) rotateLogFile() error {
	today := time.Now().Format("2006-01-02")
	if l.currentDay == today && l.logFile != nil {
		return nil
	}
	if l.logFile != nil {
		l.logFile.Close()
	}

	path := filepath.Join(l.logDir, fmt.Sprintf("%s.log", today))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	l.logFile = file
	l.currentDay = today
	return nil
}

func (l *FileLogger) checkAndRotate() {
	today := time.Now().Format("2006-01-02")
	if l.currentDay != today {
		if err := l.rotateLogFile(); err == nil && l.logFile != nil {
			l.logger.SetOutput(io.MultiWriter(os.Stdout, l.logFile))
		}
	}
}

func (l *FileLogger) Debug(message string, details ...string) {
	if !l.debug {
		return
	}
	l.checkAndRotate()
	l.logger.Printf("[DEBUG] %s%s", message, joinDetails(details))
}

func (l *FileLogger) Info(message string, details ...string) {
	l.checkAndRotate()
	l.logger.Printf("[INFO] %s%s", message, joinDetails(details))
}

func (l *FileLogger) Warning(message string, details ...string) {
	l.checkAndRotate()
	l.logger.Printf("[WARNING] %s%s", message, joinDetails(details))
}

func (l *FileLogger) Error(message string, err error, details ...string) {
	l.checkAndRotate()
	errorStr := ""
	if err != nil {
		errorStr = fmt.Sprintf(" | Error: %v", err)
	}
	l.logger.Printf("[ERROR] %s%s%s", message, errorStr, joinDetails(details))
}

// RecoverPanic logs a recovered panic with its stack trace. Use with defer
// in goroutines.
func (l *FileLogger) RecoverPanic() {
	if r := recover(); r != nil {
		l.checkAndRotate()
		l.logger.Printf("[PANIC] Recovered from panic: %v", r)
		l.logger.Printf("[PANIC] Stack trace:\n%s", string(debug.Stack()))
	}
}

// CleanOldLogs removes daily log files older than daysToKeep.
func (l *FileLogger) CleanOldLogs(daysToKeep int) error {
	files, err := os.ReadDir(l.logDir)
	if err != nil {
		return err
	}
	cutoff := time.Now().AddDate(0, 0, -daysToKeep)
	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != ".log" {
			continue
		}
		info, err := file.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			os.Remove(filepath.Join(l.logDir, file.Name()))
		}
	}
	return nil
}

// Close closes the underlying log file.
func (l *FileLogger) Close() {
	if l.logFile != nil {
		l.logFile.Close()
	}
}

func joinDetails(details []string) string {
	if len(details) == 0 {
		return ""
	}
	return " | " + strings.Join(details, " | ")
}
