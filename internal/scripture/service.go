// Package scripture fetches Bible passage text, falling back to a
// placeholder when no remote text source is configured.
package scripture

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.scripture.api.bible/v1"
	// kjvBibleID is the API.Bible identifier for the King James Version.
	kjvBibleID     = "de4e12af7f28f599-02"
	defaultTimeout = 10 * time.Second
)

// Service looks up Bible passage text from API.Bible.
type Service struct {
	apiKey     string
	baseURL    string
	bibleID    string
	httpClient *http.Client
}

// NewService creates a Service. An empty apiKey disables the remote
// lookup; Lookup then always returns the placeholder text.
func NewService(apiKey string) *Service {
	return &Service{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		bibleID: kjvBibleID,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// NewServiceWithBaseURL creates a Service pointing at a custom base URL
// (for testing).
func NewServiceWithBaseURL(apiKey, baseURL string) *Service {
	s := NewService(apiKey)
	s.baseURL = strings.TrimRight(baseURL, "/")
	return s
}

// Lookup returns the text of a passage. When no API key is configured,
// the book is unknown, or the remote call fails, it returns the
// placeholder text instead, never an error.
func (s *Service) Lookup(ctx context.Context, book string, chapter, startVerse, endVerse int) string {
	if endVerse == 0 {
		endVerse = startVerse
	}
	if s.apiKey == "" {
		return Placeholder(book, chapter, startVerse, endVerse)
	}

	text, err := s.fetch(ctx, book, chapter, startVerse, endVerse)
	if err != nil {
		log.Printf("scripture: lookup %s %d:%d failed: %v", book, chapter, startVerse, err)
		return Placeholder(book, chapter, startVerse, endVerse)
	}
	return text
}

// Placeholder is the text used when no remote source is available. It is
// an expected value, not an error signal.
func Placeholder(book string, chapter, startVerse, endVerse int) string {
	ref := Reference(book, chapter, startVerse, endVerse)
	return fmt.Sprintf("[%s] Configure a Bible API key to fetch the passage text.", ref)
}

// passageResponse is the subset of the API.Bible passage payload we use.
type passageResponse struct {
	Data struct {
		Content string `json:"content"`
	} `json:"data"`
}

func (s *Service) fetch(ctx context.Context, book string, chapter, startVerse, endVerse int) (string, error) {
	bookID, ok := BookID(book)
	if !ok {
		return "", fmt.Errorf("scripture: unknown book %q", book)
	}

	passageID := fmt.Sprintf("%s.%d.%d", bookID, chapter, startVerse)
	if endVerse != startVerse {
		passageID = fmt.Sprintf("%s.%d.%d-%s.%d.%d", bookID, chapter, startVerse, bookID, chapter, endVerse)
	}

	u := fmt.Sprintf("%s/bibles/%s/passages/%s", s.baseURL, s.bibleID, passageID)
	params := url.Values{
		"content-type":            {"text"},
		"include-notes":           {"false"},
		"include-titles":          {"false"},
		"include-chapter-numbers": {"false"},
		"include-verse-numbers":   {"true"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("scripture: build request: %w", err)
	}
	req.Header.Set("api-key", s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("scripture: fetch passage: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("scripture: unexpected status %d", resp.StatusCode)
	}

	var payload passageResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("scripture: decode passage: %w", err)
	}
	if payload.Data.Content == "" {
		return "", fmt.Errorf("scripture: empty passage content")
	}
	return payload.Data.Content, nil
}
