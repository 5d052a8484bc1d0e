// Package delivery routes outbound devotional messages to provider
// senders (Twilio SMS/WhatsApp, Slack, Discord).
package delivery

import (
	"context"
	"fmt"
	"strings"
)

// Receipt reports a successful send. ProviderID is the provider's
// correlation id for the message (e.g. a Twilio SID), or a locally
// generated id for providers that don't return one.
type Receipt struct {
	ProviderID string
}

// Sender delivers one message to a destination address.
type Sender interface {
	Send(ctx context.Context, to, body string) (Receipt, error)
}

// Router dispatches by address scheme: "slack:<channel>" and
// "discord:<channel>" go to the matching channel sender, everything else
// (phone numbers, whatsapp:+... addresses) to the default SMS sender.
type Router struct {
	sms      Sender
	channels map[string]Sender
}

// NewRouter creates a Router with the given default SMS sender.
func NewRouter(sms Sender) *Router {
	return &Router{
		sms:      sms,
		channels: make(map[string]Sender),
	}
}

// Register adds a channel sender under a scheme prefix (e.g. "slack").
func (r *Router) Register(scheme string, s Sender) {
	r.channels[scheme] = s
}

// Send routes the message to the sender for the address scheme.
func (r *Router) Send(ctx context.Context, to, body string) (Receipt, error) {
	if scheme, rest, ok := strings.Cut(to, ":"); ok {
		if s, found := r.channels[scheme]; found {
			return s.Send(ctx, rest, body)
		}
	}
	if r.sms == nil {
		return Receipt{}, fmt.Errorf("delivery: no sender for address %q", to)
	}
	return r.sms.Send(ctx, to, body)
}
