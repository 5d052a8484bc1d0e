package delivery

import (
	"context"
	"errors"
	"testing"
)

func TestRouter_DefaultSMS(t *testing.T) {
	sms := NewMockSender()
	r := NewRouter(sms)

	receipt, err := r.Send(context.Background(), "+15551234567", "hello")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if receipt.ProviderID == "" {
		t.Error("expected a provider id")
	}
	last, _ := sms.LastSent()
	if last.To != "+15551234567" {
		t.Errorf("To = %q", last.To)
	}
}

func TestRouter_SchemeRouting(t *testing.T) {
	sms := NewMockSender()
	slack := NewMockSender()
	r := NewRouter(sms)
	r.Register("slack", slack)

	if _, err := r.Send(context.Background(), "slack:C0123", "hello"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if slack.SentCount() != 1 {
		t.Fatalf("slack SentCount = %d, want 1", slack.SentCount())
	}
	last, _ := slack.LastSent()
	if last.To != "C0123" {
		t.Errorf("To = %q, want scheme stripped", last.To)
	}
	if sms.SentCount() != 0 {
		t.Errorf("sms SentCount = %d, want 0", sms.SentCount())
	}
}

func TestRouter_UnknownSchemeFallsThrough(t *testing.T) {
	sms := NewMockSender()
	r := NewRouter(sms)

	// Twilio WhatsApp addresses keep their prefix.
	if _, err := r.Send(context.Background(), "whatsapp:+15551234567", "hello"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	last, _ := sms.LastSent()
	if last.To != "whatsapp:+15551234567" {
		t.Errorf("To = %q, want full address preserved", last.To)
	}
}

func TestRouter_NoSender(t *testing.T) {
	r := NewRouter(nil)
	if _, err := r.Send(context.Background(), "+15551234567", "hello"); err == nil {
		t.Fatal("expected error with no sender configured")
	}
}

func TestMockSender_Fail(t *testing.T) {
	m := NewMockSender()
	m.Fail(errors.New("boom"))
	if _, err := m.Send(context.Background(), "+1555", "x"); err == nil {
		t.Fatal("expected configured error")
	}
	if m.SentCount() != 0 {
		t.Errorf("SentCount = %d, want 0", m.SentCount())
	}

	m.Fail(nil)
	if _, err := m.Send(context.Background(), "+1555", "x"); err != nil {
		t.Fatalf("Send after reset: %v", err)
	}
}
