package devotion

import (
	"context"
	"fmt"
	"log"
)

// DefaultDoctrine anchors answers when no doctrinal statement is
// configured.
const DefaultDoctrine = "Protestant Christian perspective with emphasis on grace, faith, and scripture"

// windowLimit bounds the prior turns included in a question-answering
// call (roughly three exchanges).
const windowLimit = 6

// Result carries AI output. Fallback is true when the text is the
// deterministic degraded string rather than model output, so callers and
// tests can tell the two apart.
type Result struct {
	Text     string
	Fallback bool
}

// Service produces formatted devotionals and answers scripture
// questions. It never returns an error: any internal failure yields a
// Result with Fallback set.
type Service struct {
	client   *Client
	doctrine string
}

// NewService creates a Service. Doctrine falls back to DefaultDoctrine
// when empty.
func NewService(client *Client, doctrine string) *Service {
	if doctrine == "" {
		doctrine = DefaultDoctrine
	}
	return &Service{client: client, doctrine: doctrine}
}

// FormatVerse formats a verse for SMS, optionally with a short
// reflection. Without a reflection the output is deterministic; with one
// it asks the model and falls back to a plain rendering on any failure.
func (s *Service) FormatVerse(ctx context.Context, verseText, reference string, includeReflection bool) Result {
	if !includeReflection {
		return Result{Text: fmt.Sprintf("📖 %s\n\n%s", reference, verseText)}
	}

	prompt := fmt.Sprintf(`Format this Bible verse for an SMS devotional message and add a brief, meaningful reflection (2-3 sentences).

Verse Reference: %s
Verse Text: %s

Please provide:
1. The verse formatted nicely for SMS
2. A brief, encouraging reflection that applies the verse to daily life

Keep the total message under 300 characters if possible for SMS compatibility.`, reference, verseText)

	messages := []ChatMessage{
		{Role: "system", Content: "You are a helpful assistant that creates brief, meaningful Bible devotionals for SMS messages."},
		{Role: "user", Content: prompt},
	}

	text, err := s.client.Chat(ctx, messages, 250)
	if err != nil {
		log.Printf("devotion: format verse: %v", err)
		return Result{
			Text:     fmt.Sprintf("📖 %s\n\n%s\n\nMay God's word guide you today! 🙏", reference, verseText),
			Fallback: true,
		}
	}
	return Result{Text: text}
}

// AnswerQuestion answers a scripture question in the configured
// doctrinal voice, using up to the last six prior turns for context. An
// empty history is valid and means no prior context.
func (s *Service) AnswerQuestion(ctx context.Context, question string, history []ChatMessage) Result {
	system := fmt.Sprintf(`You are a knowledgeable Bible assistant answering questions from this doctrinal perspective: %s

Guidelines:
- Provide brief, clear answers suitable for SMS (keep under 400 characters when possible)
- Reference specific Bible verses when relevant
- Be warm, encouraging, and pastoral in tone
- If unsure, acknowledge limitations humbly
- Stay true to the doctrinal perspective provided`, s.doctrine)

	messages := make([]ChatMessage, 0, len(history)+2)
	messages = append(messages, ChatMessage{Role: "system", Content: system})
	if len(history) > windowLimit {
		history = history[len(history)-windowLimit:]
	}
	messages = append(messages, history...)
	messages = append(messages, ChatMessage{Role: "user", Content: question})

	text, err := s.client.Chat(ctx, messages, 300)
	if err != nil {
		log.Printf("devotion: answer question: %v", err)
		return Result{
			Text:     "I'm sorry, I'm having trouble responding right now. Please try again later or contact your church directly for guidance. 🙏",
			Fallback: true,
		}
	}
	return Result{Text: text}
}
