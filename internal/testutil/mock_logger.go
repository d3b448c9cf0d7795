// Package testutil provides common test utilities for ScaffoldSieve.
package testutil

import (
	"sync"

	"github.com/turtacn/ScaffoldSieve/internal/infrastructure/monitoring/logging"
)

// MockLogger implements logging.Logger for testing purposes.
// It records log messages and can be used to verify logging behavior.
// Children returned by With and Named share the parent's buffer and carry
// their fields into every captured entry.
type MockLogger struct {
	mu       *sync.Mutex
	store    *[]LogMessage
	name     string
	fields   []logging.Field
	Messages []LogMessage
}

// LogMessage represents a single log entry captured by MockLogger.
type LogMessage struct {
	Level   string
	Name    string
	Message string
	Fields  []logging.Field
}

// NewMockLogger creates a new MockLogger instance.
func NewMockLogger() *MockLogger {
	m := &MockLogger{mu: &sync.Mutex{}}
	m.store = &m.Messages
	return m
}

func (m *MockLogger) log(level, msg string, fields []logging.Field) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := make([]logging.Field, 0, len(m.fields)+len(fields))
	all = append(all, m.fields...)
	all = append(all, fields...)
	*m.store = append(*m.store, LogMessage{
		Level:   level,
		Name:    m.name,
		Message: msg,
		Fields:  all,
	})
}

func (m *MockLogger) Debug(msg string, fields ...logging.Field) {
	m.log("debug", msg, fields)
}

func (m *MockLogger) Info(msg string, fields ...logging.Field) {
	m.log("info", msg, fields)
}

func (m *MockLogger) Warn(msg string, fields ...logging.Field) {
	m.log("warn", msg, fields)
}

func (m *MockLogger) Error(msg string, fields ...logging.Field) {
	m.log("error", msg, fields)
}

func (m *MockLogger) Fatal(msg string, fields ...logging.Field) {
	m.log("fatal", msg, fields)
}

func (m *MockLogger) With(fields ...logging.Field) logging.Logger {
	child := *m
	child.fields = append(append([]logging.Field{}, m.fields...), fields...)
	child.Messages = nil
	return &child
}

func (m *MockLogger) Named(name string) logging.Logger {
	child := *m
	if m.name != "" {
		name = m.name + "." + name
	}
	child.name = name
	child.Messages = nil
	return &child
}

// GetMessages returns a copy of all logged messages.
func (m *MockLogger) GetMessages() []LogMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]LogMessage, len(*m.store))
	copy(result, *m.store)
	return result
}

// Clear removes all logged messages.
func (m *MockLogger) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	*m.store = (*m.store)[:0]
}

// HasMessage checks if a message with the given level and content was logged.
func (m *MockLogger) HasMessage(level, msg string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, logged := range *m.store {
		if logged.Level == level && logged.Message == msg {
			return true
		}
	}
	return false
}

// Find returns the first captured entry with msg, and whether one exists.
func (m *MockLogger) Find(msg string) (LogMessage, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, logged := range *m.store {
		if logged.Message == msg {
			return logged, true
		}
	}
	return LogMessage{}, false
}

// Count returns how many entries were captured at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, logged := range *m.store {
		if logged.Level == level {
			n++
		}
	}
	return n
}

// FieldValue returns the value of key in entry, and whether it is present.
func FieldValue(entry LogMessage, key string) (interface{}, bool) {
	for _, f := range entry.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// NopLogger is a logger that discards all output, useful for tests that don't need logging verification.
type NopLogger struct{}

func NewNopLogger() *NopLogger                                   { return &NopLogger{} }
func (n *NopLogger) Debug(msg string, fields ...logging.Field)   {}
func (n *NopLogger) Info(msg string, fields ...logging.Field)    {}
func (n *NopLogger) Warn(msg string, fields ...logging.Field)    {}
func (n *NopLogger) Error(msg string, fields ...logging.Field)   {}
func (n *NopLogger) Fatal(msg string, fields ...logging.Field)   {}
func (n *NopLogger) With(fields ...logging.Field) logging.Logger { return n }
func (n *NopLogger) Named(name string) logging.Logger            { return n }

//Personal.AI order the ending
