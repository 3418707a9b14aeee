// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/danielhkuo/secretary/cliparse"
	"github.com/danielhkuo/secretary/state"
)

// AdminNumber and PeerNumber are the fixture senders used across tests.
const (
	AdminNumber = "3125550100"
	PeerNumber  = "7735550199"
)

// SentMessage is one outbound send recorded by the fake transport.
type SentMessage struct {
	To   string
	Text string
}

// FakeSender records sends in memory and fails on demand, standing in
// for the Twilio client.
type FakeSender struct {
	mu      sync.Mutex
	failing map[string]error
	sent    []SentMessage
}

func NewFakeSender() *FakeSender {
	return &FakeSender{failing: make(map[string]error)}
}

// FailFor makes every send to number return err.
func (f *FakeSender) FailFor(number string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failing[number] = err
}

func (f *FakeSender) Send(to, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err, ok := f.failing[to]; ok {
		return err
	}
	f.sent = append(f.sent, SentMessage{To: to, Text: text})
	return nil
}

// Sent returns a copy of everything delivered so far.
func (f *FakeSender) Sent() []SentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]SentMessage(nil), f.sent...)
}

// SentTo returns the texts delivered to one number, in order.
func (f *FakeSender) SentTo(number string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	var texts []string
	for _, m := range f.sent {
		if m.To == number {
			texts = append(texts, m.Text)
		}
	}
	return texts
}

// LastTo returns the most recent text delivered to one number, or "".
func (f *FakeSender) LastTo(number string) string {
	texts := f.SentTo(number)
	if len(texts) == 0 {
		return ""
	}
	return texts[len(texts)-1]
}

// Reset forgets all recorded sends but keeps failure scripting.
func (f *FakeSender) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = nil
}

// GetTestConfig returns a standard test configuration.
func GetTestConfig(t *testing.T) cliparse.Config {
	t.Helper()
	return cliparse.Config{
		Port:        3318,
		TwilioSID:   "ACtest0000000000000000000000000000",
		TwilioToken: "test-token",
		TwilioFrom:  "+13125550999",
		Admins:      []string{AdminNumber},
		AdminLabel:  "Donna and Eric",
		StatePath:   t.TempDir() + "/state.json",
	}
}

// SeedStore builds a store with a named admin, one subscriber, and an
// update on record, then flushes it clean.
func SeedStore(t *testing.T) *state.Store {
	t.Helper()

	s := state.New()
	s.SetName(AdminNumber, "donna")
	s.Subscribe(PeerNumber)
	s.RecordUpdate("Office opens at nine")
	s.FlushSnapshot()
	return s
}

// MakeSMSRequest builds the form POST Twilio sends for an inbound text.
func MakeSMSRequest(sid, from, body string) *http.Request {
	form := url.Values{}
	form.Set("AccountSid", sid)
	form.Set("From", from)
	form.Set("Body", body)
	form.Set("MessageSid", "SMtest0000000000000000000000000000")

	req := httptest.NewRequest("POST", "/inbound-sms", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// AssertStatus checks that the response has the expected status code.
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}
