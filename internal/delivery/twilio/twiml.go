package twilio

import (
	"encoding/xml"
	"net/http"
)

// IncomingMessage is the form payload Twilio posts to an SMS webhook.
type IncomingMessage struct {
	From       string
	To         string
	Body       string
	MessageSID string
}

// ParseIncoming extracts the message fields from a Twilio webhook request.
func ParseIncoming(r *http.Request) (IncomingMessage, error) {
	if err := r.ParseForm(); err != nil {
		return IncomingMessage{}, err
	}
	return IncomingMessage{
		From:       r.PostFormValue("From"),
		To:         r.PostFormValue("To"),
		Body:       r.PostFormValue("Body"),
		MessageSID: r.PostFormValue("MessageSid"),
	}, nil
}

type twimlResponse struct {
	XMLName xml.Name `xml:"Response"`
	Message string   `xml:"Message,omitempty"`
}

// Reply renders a TwiML document replying to an incoming message with body.
// An empty body produces an empty Response, which acknowledges the webhook
// without sending anything back.
func Reply(body string) string {
	out, err := xml.Marshal(twimlResponse{Message: body})
	if err != nil {
		return `<?xml version="1.0" encoding="UTF-8"?><Response></Response>`
	}
	return `<?xml version="1.0" encoding="UTF-8"?>` + string(out)
}
