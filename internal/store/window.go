package store

import "github.com/rjcarver/manna/internal/models"

// Turn is one conversation entry tagged with a chat role, ready to pass
// to a stateless question-answering call.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ConversationWindow projects the last limit messages for a phone number
// into role-tagged turns in chronological order. Outgoing messages map
// to the "assistant" role, everything else to "user". The projection is
// lossy: system/tool turns are not distinguished. An empty history
// yields an empty slice, which is a valid "no prior context" input.
func (s *Store) ConversationWindow(phone string, limit int) ([]Turn, error) {
	msgs, err := s.History(phone, limit)
	if err != nil {
		return nil, err
	}

	turns := make([]Turn, 0, len(msgs))
	for _, m := range msgs {
		role := "user"
		if models.Direction(m.Direction) == models.Outgoing {
			role = "assistant"
		}
		turns = append(turns, Turn{Role: role, Content: m.Body})
	}
	return turns, nil
}
