// Package twilio implements the delivery Sender for Twilio SMS and
// WhatsApp via the Messages REST API.
package twilio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rjcarver/manna/internal/delivery"
)

const (
	defaultBaseURL = "https://api.twilio.com"
	defaultTimeout = 15 * time.Second
)

// Sender sends messages through a Twilio account.
type Sender struct {
	accountSID string
	authToken  string
	from       string
	baseURL    string
	httpClient *http.Client
}

// Opts holds parameters for creating a Sender.
type Opts struct {
	AccountSID string
	AuthToken  string
	From       string // sending number, e.g. "+15550006666" or "whatsapp:+1..."
	BaseURL    string // override for testing
}

// New creates a Twilio Sender.
func New(opts Opts) (*Sender, error) {
	if opts.AccountSID == "" || opts.AuthToken == "" {
		return nil, fmt.Errorf("twilio: account SID and auth token are required")
	}
	if opts.From == "" {
		return nil, fmt.Errorf("twilio: from number is required")
	}
	base := opts.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	return &Sender{
		accountSID: opts.AccountSID,
		authToken:  opts.AuthToken,
		from:       opts.From,
		baseURL:    strings.TrimRight(base, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}, nil
}

// messageResponse is the subset of Twilio's message resource we use.
type messageResponse struct {
	SID     string `json:"sid"`
	Status  string `json:"status"`
	Message string `json:"message"` // error detail on failure payloads
}

// Send posts the message to the Twilio Messages endpoint and returns the
// message SID as the receipt.
func (s *Sender) Send(ctx context.Context, to, body string) (delivery.Receipt, error) {
	if to == "" {
		return delivery.Receipt{}, fmt.Errorf("twilio: no recipient provided")
	}

	form := url.Values{
		"To":   {to},
		"From": {s.from},
		"Body": {body},
	}
	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", s.baseURL, s.accountSID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return delivery.Receipt{}, fmt.Errorf("twilio: build request: %w", err)
	}
	req.SetBasicAuth(s.accountSID, s.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return delivery.Receipt{}, fmt.Errorf("twilio: send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		var payload messageResponse
		if json.Unmarshal(respBody, &payload) == nil && payload.Message != "" {
			return delivery.Receipt{}, fmt.Errorf("twilio: send failed (%d): %s", resp.StatusCode, payload.Message)
		}
		return delivery.Receipt{}, fmt.Errorf("twilio: unexpected status %d", resp.StatusCode)
	}

	var payload messageResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return delivery.Receipt{}, fmt.Errorf("twilio: decode response: %w", err)
	}
	return delivery.Receipt{ProviderID: payload.SID}, nil
}
