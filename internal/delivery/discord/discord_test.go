package discord

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/bwmarrin/discordgo"
)

// --- Mock session ---

type mockSession struct {
	mu      sync.Mutex
	sent    []sentMessage
	sendErr error
}

type sentMessage struct {
	channelID string
	content   string
}

func (m *mockSession) ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return nil, m.sendErr
	}
	m.sent = append(m.sent, sentMessage{channelID: channelID, content: content})
	return &discordgo.Message{ID: fmt.Sprintf("msg-%d", len(m.sent))}, nil
}

// ---
// Send
// ---

func TestSendPostsToChannel(t *testing.T) {
	mock := &mockSession{}
	s, err := New(Opts{Session: mock})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	receipt, err := s.Send(context.Background(), "123456789", "evening verse")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if receipt.ProviderID != "msg-1" {
		t.Errorf("expected discord message id, got %q", receipt.ProviderID)
	}
	if len(mock.sent) != 1 {
		t.Fatalf("expected 1 sent message, got %d", len(mock.sent))
	}
	if mock.sent[0].channelID != "123456789" || mock.sent[0].content != "evening verse" {
		t.Errorf("unexpected sent message: %+v", mock.sent[0])
	}
}

func TestSendRequiresChannel(t *testing.T) {
	s, _ := New(Opts{Session: &mockSession{}})
	if _, err := s.Send(context.Background(), "", "hello"); err == nil {
		t.Fatal("expected error for empty channel")
	}
}

func TestSendSurfacesSessionError(t *testing.T) {
	mock := &mockSession{sendErr: fmt.Errorf("missing access")}
	s, _ := New(Opts{Session: mock})
	if _, err := s.Send(context.Background(), "123", "hello"); err == nil {
		t.Fatal("expected error when session send fails")
	}
}

func TestNewRequiresToken(t *testing.T) {
	if _, err := New(Opts{}); err == nil {
		t.Fatal("expected error when no token or session provided")
	}
}
