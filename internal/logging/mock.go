package logging

// MockLogger records messages for assertions in tests. It is not safe for
// concurrent use; the pipeline under test is single-threaded.
type MockLogger struct {
	Messages []MockMessage
}

// MockMessage is one recorded log call.
type MockMessage struct {
	Level   string
	Message string
	Fields  []Field
}

// NewMockLogger returns an empty recording logger.
func NewMockLogger() *MockLogger {
	return &MockLogger{}
}

func (m *MockLogger) record(level, msg string, fields []Field) {
	m.Messages = append(m.Messages, MockMessage{Level: level, Message: msg, Fields: fields})
}

func (m *MockLogger) Debug(msg string, fields ...Field) { m.record("debug", msg, fields) }
func (m *MockLogger) Info(msg string, fields ...Field)  { m.record("info", msg, fields) }
func (m *MockLogger) Warn(msg string, fields ...Field)  { m.record("warn", msg, fields) }
func (m *MockLogger) Error(msg string, fields ...Field) { m.record("error", msg, fields) }
func (m *MockLogger) Fatal(msg string, fields ...Field) { m.record("fatal", msg, fields) }

func (m *MockLogger) WithError(err error) Logger {
	return m.WithField("error", err)
}

func (m *MockLogger) WithField(key string, value interface{}) Logger {
	return m
}

func (m *MockLogger) WithFields(fields ...Field) Logger {
	return m
}

// HasMessage reports whether a message at the given level was recorded.
func (m *MockLogger) HasMessage(level, msg string) bool {
	for _, rec := range m.Messages {
		if rec.Level == level && rec.Message == msg {
			return true
		}
	}
	return false
}
