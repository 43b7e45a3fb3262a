package logx

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
)

const (
	defaultLogFilename = "./logs/coins.log"
	defaultMaxSizeMB   = 100
	defaultMaxAgeDays  = 7
)

// Options controls where log lines go. Zero fields fall back to defaults.
type Options struct {
	Filename   string
	MaxSizeMB  int
	MaxAgeDays int
	Debug      bool
}

var (
	mu               sync.RWMutex
	debugEnabled     = os.Getenv("LOG_DEBUG") != ""
	lumberjackLogger = &lumberjack.Logger{
		Filename: getLogFilename(),
		MaxSize:  getMaxSize(), // megabytes
		MaxAge:   getMaxAge(),  // days
	}

	logger = log.New(lumberjackLogger, "", log.Ldate|log.Ltime|log.Lmicroseconds)
)

func getLogFilename() string {
	if logFile := os.Getenv("LOGFILE"); logFile != "" {
		return "./logs/" + logFile
	}
	return defaultLogFilename
}

func getMaxSize() int {
	return envInt("LOGFILE_MAX_SIZE_MB", defaultMaxSizeMB)
}

func getMaxAge() int {
	return envInt("LOGFILE_MAX_AGE_DAYS", defaultMaxAgeDays)
}

func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		log.Printf("invalid value for %s: %q, using %d", name, raw, fallback)
		return fallback
	}
	return v
}

// Configure replaces the rotating file logger. Call it once at startup, before logging.
func Configure(opts Options) {
	if opts.Filename == "" {
		opts.Filename = getLogFilename()
	}
	if opts.MaxSizeMB <= 0 {
		opts.MaxSizeMB = getMaxSize()
	}
	if opts.MaxAgeDays <= 0 {
		opts.MaxAgeDays = getMaxAge()
	}

	mu.Lock()
	defer mu.Unlock()
	_ = lumberjackLogger.Close()
	lumberjackLogger = &lumberjack.Logger{
		Filename: opts.Filename,
		MaxSize:  opts.MaxSizeMB,
		MaxAge:   opts.MaxAgeDays,
	}
	logger = log.New(lumberjackLogger, "", log.Ldate|log.Ltime|log.Lmicroseconds)
	debugEnabled = debugEnabled || opts.Debug
}

func output(color, level, category string, content ...interface{}) {
	message := fmt.Sprint(content...)
	coloredCategory := fmt.Sprintf("%s[%s][%s]%s", color, level, category, ColorReset)
	mu.RLock()
	defer mu.RUnlock()
	logger.Printf("%s: %s", coloredCategory, message)
}

func Info(category string, content ...interface{}) {
	output(ColorGreen, "INFO", category, content...)
}

func Error(category string, content ...interface{}) {
	output(ColorRed, "ERROR", category, content...)
}

func Warn(category string, content ...interface{}) {
	output(ColorYellow, "WARN", category, content...)
}

// Debug is dropped unless LOG_DEBUG is set or Configure enabled it.
func Debug(category string, content ...interface{}) {
	mu.RLock()
	enabled := debugEnabled
	mu.RUnlock()
	if !enabled {
		return
	}
	output(ColorBlue, "DEBUG", category, content...)
}

// Errorf logs an error message and returns a formatted error
func Errorf(format string, args ...interface{}) error {
	err := fmt.Errorf(format, args...)
	Error("ERROR", err.Error())
	return err
}
