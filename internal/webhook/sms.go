package webhook

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rjcarver/manna/internal/delivery/twilio"
	"github.com/rjcarver/manna/internal/devotion"
	"github.com/rjcarver/manna/internal/models"
	"github.com/rjcarver/manna/internal/store"
)

// smsErrorReply is sent when an inbound message cannot be processed.
// Twilio retries webhooks that fail, so the handler always answers 200
// with TwiML and degrades inside the reply instead.
const smsErrorReply = "Sorry, I couldn't process your message right now. Please try again. 🙏"

// handleIncomingSMS receives a Twilio message webhook, answers the
// question and replies inline via TwiML.
func (s *Server) handleIncomingSMS(c *gin.Context) {
	msg, err := twilio.ParseIncoming(c.Request)
	if err != nil || msg.From == "" || msg.Body == "" {
		log.Printf("webhook: malformed sms webhook: %v", err)
		s.twiml(c, smsErrorReply)
		return
	}

	// The window is read before logging the inbound message so the
	// question itself is not duplicated in the prior context.
	turns, err := s.store.ConversationWindow(msg.From, store.DefaultWindowSize)
	if err != nil {
		log.Printf("webhook: conversation window for %s: %v", msg.From, err)
		turns = nil
	}

	if err := s.store.RecordMessage(msg.From, models.Incoming, msg.Body, msg.MessageSID); err != nil {
		log.Printf("webhook: record incoming from %s: %v", msg.From, err)
	}

	history := make([]devotion.ChatMessage, 0, len(turns))
	for _, t := range turns {
		history = append(history, devotion.ChatMessage{Role: t.Role, Content: t.Content})
	}

	result := s.devotion.AnswerQuestion(c.Request.Context(), msg.Body, history)
	if result.Fallback {
		log.Printf("webhook: fallback answer for %s", msg.From)
	}

	if err := s.store.RecordMessage(msg.From, models.Outgoing, result.Text, ""); err != nil {
		log.Printf("webhook: record outgoing to %s: %v", msg.From, err)
	}

	s.twiml(c, result.Text)
}

// twiml writes a TwiML reply. Always 200: Twilio treats anything else as
// a delivery failure and retries.
func (s *Server) twiml(c *gin.Context, body string) {
	c.Data(http.StatusOK, "application/xml", []byte(twilio.Reply(body)))
}
