package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	logger := New()
	assert.NotNil(t, logger)
	assert.NotNil(t, logger.info)
	assert.NotNil(t, logger.error)
	assert.NotNil(t, logger.warn)
}

func TestLogger_NoSinkDoesNotPanic(t *testing.T) {
	logger := New()

	logger.Info("Test message: %s", "info")
	logger.Error("Test error: %s", "error")
	logger.Warn("Warning: %s count is %d", "items", 5)
}

type recordingSink struct {
	lines  []string
	failed int
	err    error
}

func (s *recordingSink) Write(level, message string) error {
	if s.err != nil {
		s.failed++
		return s.err
	}
	s.lines = append(s.lines, level+": "+message)
	return nil
}

func TestLogger_SinkReceivesLines(t *testing.T) {
	sink := &recordingSink{}
	logger := NewWithSink(sink, 3)

	logger.Info("hello %s", "world")
	logger.Warn("careful")

	assert.Equal(t, []string{"info: hello world", "warn: careful"}, sink.lines)
}

func TestLogger_BreakerOpensAfterThreshold(t *testing.T) {
	sink := &recordingSink{err: errors.New("sink down")}
	logger := NewWithSink(sink, 3)

	for i := 0; i < 10; i++ {
		logger.Info("line %d", i)
	}

	// Only the first three writes reach the failing sink.
	assert.Equal(t, 3, sink.failed)
}

func TestLogger_SuccessResetsFailureCount(t *testing.T) {
	sink := &recordingSink{err: errors.New("sink down")}
	logger := NewWithSink(sink, 3)

	logger.Info("one")
	logger.Info("two")

	// Sink recovers before the threshold is reached.
	sink.err = nil
	logger.Info("three")
	assert.Equal(t, []string{"info: three"}, sink.lines)

	// Failure counter was reset, so two more failures stay under threshold.
	sink.err = errors.New("sink down again")
	logger.Info("four")
	logger.Info("five")
	sink.err = nil
	logger.Info("six")
	assert.Contains(t, sink.lines, "info: six")
}

func TestLogger_ResetSinkReopens(t *testing.T) {
	sink := &recordingSink{err: errors.New("sink down")}
	logger := NewWithSink(sink, 1)

	logger.Info("dropped")
	assert.Empty(t, sink.lines)

	sink.err = nil
	logger.Info("still dropped, breaker open")
	assert.Empty(t, sink.lines)

	logger.ResetSink()
	logger.Info("delivered")
	assert.Equal(t, []string{"info: delivered"}, sink.lines)
}
