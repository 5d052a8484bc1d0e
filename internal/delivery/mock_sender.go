package delivery

import (
	"context"
	"fmt"
	"sync"
)

// MockSender implements Sender for testing. It records sent messages and
// can be told to fail.
type MockSender struct {
	mu   sync.Mutex
	sent []SentMessage
	err  error
}

// SentMessage is one recorded send.
type SentMessage struct {
	To   string
	Body string
}

// NewMockSender creates a MockSender.
func NewMockSender() *MockSender {
	return &MockSender{}
}

// Send records the message, or returns the configured error.
func (m *MockSender) Send(ctx context.Context, to, body string) (Receipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return Receipt{}, m.err
	}
	m.sent = append(m.sent, SentMessage{To: to, Body: body})
	return Receipt{ProviderID: fmt.Sprintf("mock-%d", len(m.sent))}, nil
}

// --- Test helpers ---

// Fail makes subsequent sends return err (nil restores success).
func (m *MockSender) Fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// SentCount returns the number of recorded sends.
func (m *MockSender) SentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

// LastSent returns the most recent send. Returns a zero value and false
// when nothing has been sent.
func (m *MockSender) LastSent() (SentMessage, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return SentMessage{}, false
	}
	return m.sent[len(m.sent)-1], true
}

// AllSent returns a copy of all recorded sends.
func (m *MockSender) AllSent() []SentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SentMessage, len(m.sent))
	copy(out, m.sent)
	return out
}
