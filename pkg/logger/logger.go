package logger

import (
	"fmt"
	"log"
	"os"
	"sync"
)

// Sink receives every formatted log line, e.g. to persist it in a
// central log store. A failing sink must not take the service down, so
// writes go through a breaker: after Threshold consecutive failures the
// sink is skipped until the logger is reset. A successful write resets
// the failure counter.
type Sink interface {
	Write(level, message string) error
}

type sinkBreaker struct {
	mu        sync.Mutex
	sink      Sink
	failures  int
	threshold int
	open      bool
}

func (b *sinkBreaker) write(level, message string) {
	if b == nil || b.sink == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.open {
		return
	}

	if err := b.sink.Write(level, message); err != nil {
		b.failures++
		if b.failures >= b.threshold {
			b.open = true
			fmt.Fprintf(os.Stderr, "logger: sink disabled after %d consecutive failures: %v\n", b.failures, err)
		}
		return
	}
	b.failures = 0
}

func (b *sinkBreaker) reset() {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures = 0
	b.open = false
}

type Logger struct {
	info    *log.Logger
	error   *log.Logger
	warn    *log.Logger
	breaker *sinkBreaker
}

func New() *Logger {
	return &Logger{
		info:  log.New(os.Stdout, "[INFO] ", log.LstdFlags),
		error: log.New(os.Stderr, "[ERROR] ", log.LstdFlags),
		warn:  log.New(os.Stdout, "[WARN] ", log.LstdFlags),
	}
}

// NewWithSink builds a logger that mirrors every line to sink, guarded
// by a breaker with the given consecutive-failure threshold.
func NewWithSink(sink Sink, threshold int) *Logger {
	l := New()
	if threshold <= 0 {
		threshold = 5
	}
	l.breaker = &sinkBreaker{sink: sink, threshold: threshold}
	return l
}

// ResetSink re-enables a sink that the breaker disabled.
func (l *Logger) ResetSink() {
	l.breaker.reset()
}

func (l *Logger) Info(format string, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)
	l.info.Print(msg)
	l.breaker.write("info", msg)
}

func (l *Logger) Error(format string, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)
	l.error.Print(msg)
	l.breaker.write("error", msg)
}

func (l *Logger) Warn(format string, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)
	l.warn.Print(msg)
	l.breaker.write("warn", msg)
}
