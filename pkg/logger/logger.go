package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"
)

type Logger struct {
	logger *log.Logger
	level  Level

	mu    sync.RWMutex
	hooks []Hook
}

type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

// String возвращает имя уровня в верхнем регистре
func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Entry is a single emitted log line passed to hooks.
type Entry struct {
	Timestamp time.Time
	Level     Level
	Message   string
	Fields    map[string]interface{}
}

// Hook receives every entry that passed the level filter.
type Hook func(Entry)

func New(level string) *Logger {
	return NewWithWriter(level, os.Stdout)
}

// NewWithWriter создает logger, пишущий в указанный writer
func NewWithWriter(level string, w io.Writer) *Logger {
	return &Logger{
		logger: log.New(w, "", 0),
		level:  parseLevel(level),
	}
}

func parseLevel(level string) Level {
	switch level {
	case "debug":
		return DEBUG
	case "info":
		return INFO
	case "warn":
		return WARN
	case "error":
		return ERROR
	default:
		return INFO
	}
}

// AddHook регистрирует hook (например, пересылку в CloudWatch Logs)
func (l *Logger) AddHook(hook Hook) {
	if hook == nil {
		return
	}
	l.mu.Lock()
	l.hooks = append(l.hooks, hook)
	l.mu.Unlock()
}

func (l *Logger) Debug(msg string, args ...interface{}) {
	if l.level <= DEBUG {
		l.log(DEBUG, msg, args...)
	}
}

func (l *Logger) Info(msg string, args ...interface{}) {
	if l.level <= INFO {
		l.log(INFO, msg, args...)
	}
}

func (l *Logger) Warn(msg string, args ...interface{}) {
	if l.level <= WARN {
		l.log(WARN, msg, args...)
	}
}

func (l *Logger) Error(msg string, err error, args ...interface{}) {
	if l.level <= ERROR {
		if err != nil {
			args = append(args, "error", err.Error())
		}
		l.log(ERROR, msg, args...)
	}
}

func (l *Logger) log(level Level, msg string, args ...interface{}) {
	now := time.Now()
	message := fmt.Sprintf("[%s] [%s] %s", now.Format("2006-01-02 15:04:05"), level, msg)

	var fields map[string]interface{}
	if len(args) > 0 {
		fields = make(map[string]interface{}, len(args)/2)
		message += " |"
		for i := 0; i+1 < len(args); i += 2 {
			message += fmt.Sprintf(" %v=%v", args[i], args[i+1])
			fields[fmt.Sprint(args[i])] = args[i+1]
		}
	}

	l.logger.Println(message)

	l.mu.RLock()
	hooks := l.hooks
	l.mu.RUnlock()
	if len(hooks) == 0 {
		return
	}

	entry := Entry{Timestamp: now, Level: level, Message: msg, Fields: fields}
	for _, hook := range hooks {
		hook(entry)
	}
}
