package devotion

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// newChatServer returns an httptest server answering every chat request
// with the given content, recording the last request payload.
func newChatServer(t *testing.T, content string, lastReq *chatRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if lastReq != nil {
			if err := json.NewDecoder(r.Body).Decode(lastReq); err != nil {
				t.Errorf("decode request: %v", err)
			}
		}
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": content}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

// ---------------------------------------------------------------------------
// Client
// ---------------------------------------------------------------------------

func TestClient_Chat_Success(t *testing.T) {
	srv := newChatServer(t, "  answer text  ", nil)
	defer srv.Close()

	c := NewClientWithBaseURL("test-key", srv.URL)
	got, err := c.Chat(context.Background(), []ChatMessage{{Role: "user", Content: "hi"}}, 100)
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if got != "answer text" {
		t.Errorf("content = %q, want trimmed %q", got, "answer text")
	}
}

func TestClient_Chat_SendsAuthAndModel(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]any{"content": "ok"}}},
		})
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("sk-test", srv.URL)
	c.SetModel("gpt-4o")
	if _, err := c.Chat(context.Background(), []ChatMessage{{Role: "user", Content: "q"}}, 50); err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotReq.Model != "gpt-4o" {
		t.Errorf("model = %q, want gpt-4o", gotReq.Model)
	}
	if gotReq.MaxTokens != 50 {
		t.Errorf("max_tokens = %d, want 50", gotReq.MaxTokens)
	}
}

func TestClient_Chat_NoKey(t *testing.T) {
	c := NewClient("")
	if _, err := c.Chat(context.Background(), nil, 10); err == nil {
		t.Fatal("expected error without api key")
	}
}

func TestClient_Chat_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("test-key", srv.URL)
	if _, err := c.Chat(context.Background(), []ChatMessage{{Role: "user", Content: "q"}}, 10); err == nil {
		t.Fatal("expected error on 429")
	}
}

// ---------------------------------------------------------------------------
// FormatVerse
// ---------------------------------------------------------------------------

func TestFormatVerse_NoReflection_Deterministic(t *testing.T) {
	// Client is never called on this path; a nil-key client is fine.
	svc := NewService(NewClient(""), "")
	res := svc.FormatVerse(context.Background(), "For God so loved the world...", "John 3:16", false)

	if res.Fallback {
		t.Error("no-reflection path must not be a fallback")
	}
	if !strings.Contains(res.Text, "John 3:16") || !strings.Contains(res.Text, "For God so loved") {
		t.Errorf("Text = %q", res.Text)
	}
}

func TestFormatVerse_WithReflection_Success(t *testing.T) {
	var gotReq chatRequest
	srv := newChatServer(t, "📖 John 3:16 — a reflection.", &gotReq)
	defer srv.Close()

	svc := NewService(NewClientWithBaseURL("test-key", srv.URL), "")
	res := svc.FormatVerse(context.Background(), "For God so loved...", "John 3:16", true)

	if res.Fallback {
		t.Error("expected model output, got fallback")
	}
	if res.Text != "📖 John 3:16 — a reflection." {
		t.Errorf("Text = %q", res.Text)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" {
		t.Errorf("messages = %+v", gotReq.Messages)
	}
	if !strings.Contains(gotReq.Messages[1].Content, "John 3:16") {
		t.Errorf("prompt missing reference: %q", gotReq.Messages[1].Content)
	}
}

func TestFormatVerse_ClientError_Fallback(t *testing.T) {
	svc := NewService(NewClient(""), "")
	res := svc.FormatVerse(context.Background(), "verse text", "John 3:16", true)

	if !res.Fallback {
		t.Error("expected fallback on client error")
	}
	if !strings.Contains(res.Text, "John 3:16") || !strings.Contains(res.Text, "verse text") {
		t.Errorf("fallback text = %q, want reference + raw text", res.Text)
	}
}

// ---------------------------------------------------------------------------
// AnswerQuestion
// ---------------------------------------------------------------------------

func TestAnswerQuestion_IncludesDoctrineAndHistory(t *testing.T) {
	var gotReq chatRequest
	srv := newChatServer(t, "Grace is God's unmerited favor.", &gotReq)
	defer srv.Close()

	svc := NewService(NewClientWithBaseURL("test-key", srv.URL), "Reformed Baptist perspective")
	history := []ChatMessage{
		{Role: "user", Content: "hello"},
		{Role: "assistant", Content: "peace be with you"},
	}
	res := svc.AnswerQuestion(context.Background(), "what is grace?", history)

	if res.Fallback {
		t.Fatal("expected model output")
	}
	if res.Text != "Grace is God's unmerited favor." {
		t.Errorf("Text = %q", res.Text)
	}
	// system + 2 history + question
	if len(gotReq.Messages) != 4 {
		t.Fatalf("messages len = %d, want 4", len(gotReq.Messages))
	}
	if !strings.Contains(gotReq.Messages[0].Content, "Reformed Baptist perspective") {
		t.Errorf("system prompt = %q", gotReq.Messages[0].Content)
	}
	if gotReq.Messages[3].Content != "what is grace?" {
		t.Errorf("last message = %q", gotReq.Messages[3].Content)
	}
}

func TestAnswerQuestion_TrimsHistoryToWindow(t *testing.T) {
	var gotReq chatRequest
	srv := newChatServer(t, "ok", &gotReq)
	defer srv.Close()

	svc := NewService(NewClientWithBaseURL("test-key", srv.URL), "")
	history := make([]ChatMessage, 10)
	for i := range history {
		history[i] = ChatMessage{Role: "user", Content: "old"}
	}
	svc.AnswerQuestion(context.Background(), "q", history)

	// system + 6 window + question
	if len(gotReq.Messages) != 8 {
		t.Errorf("messages len = %d, want 8", len(gotReq.Messages))
	}
}

func TestAnswerQuestion_EmptyHistory(t *testing.T) {
	var gotReq chatRequest
	srv := newChatServer(t, "ok", &gotReq)
	defer srv.Close()

	svc := NewService(NewClientWithBaseURL("test-key", srv.URL), "")
	res := svc.AnswerQuestion(context.Background(), "q", nil)
	if res.Fallback {
		t.Error("empty history must be a valid input")
	}
	if len(gotReq.Messages) != 2 {
		t.Errorf("messages len = %d, want 2", len(gotReq.Messages))
	}
}

func TestAnswerQuestion_ClientError_Fallback(t *testing.T) {
	svc := NewService(NewClient(""), "")
	res := svc.AnswerQuestion(context.Background(), "q", nil)
	if !res.Fallback {
		t.Fatal("expected fallback")
	}
	if !strings.Contains(res.Text, "trouble responding") {
		t.Errorf("fallback = %q", res.Text)
	}
}
