// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/danielhkuo/secretary/auth"
	"github.com/danielhkuo/secretary/cliparse"
	"github.com/danielhkuo/secretary/dedup"
	"github.com/danielhkuo/secretary/dispatch"
	"github.com/danielhkuo/secretary/persist"
	"github.com/danielhkuo/secretary/state"
	"github.com/danielhkuo/secretary/testutil"
)

type webhookFixture struct {
	handler *WebhookHandler
	store   *state.Store
	sender  *testutil.FakeSender
	cfg     cliparse.Config
}

func newWebhookFixture(t *testing.T, seen *dedup.Store) *webhookFixture {
	t.Helper()

	cfg := testutil.GetTestConfig(t)
	store := testutil.SeedStore(t)
	sender := testutil.NewFakeSender()
	dispatcher := dispatch.New(store, sender, cfg.Admins, cfg.AdminLabel)
	files := persist.NewFileStore(cfg.StatePath)

	return &webhookFixture{
		handler: NewWebhookHandler(store, dispatcher, cfg, seen, files),
		store:   store,
		sender:  sender,
		cfg:     cfg,
	}
}

func TestInboundSMS(t *testing.T) {
	t.Run("dispatches and persists", func(t *testing.T) {
		f := newWebhookFixture(t, nil)

		req := testutil.MakeSMSRequest(f.cfg.TwilioSID, "2125550142", "subscribe")
		w := httptest.NewRecorder()
		f.handler.InboundSMS(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		if w.Body.String() != "OK" {
			t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
		}

		reply := f.sender.LastTo("2125550142")
		if !strings.HasPrefix(reply, "Subscribed.") {
			t.Errorf("Expected subscription reply, got '%s'", reply)
		}

		// The state file is written before the webhook is answered.
		if _, err := os.Stat(f.cfg.StatePath); err != nil {
			t.Errorf("Expected state file after mutation: %v", err)
		}
		loaded, found, err := persist.NewFileStore(f.cfg.StatePath).Load()
		if err != nil || !found {
			t.Fatalf("Expected readable state file, found=%v err=%v", found, err)
		}
		subscribed := false
		for _, num := range loaded.Subscribers {
			if num == "2125550142" {
				subscribed = true
			}
		}
		if !subscribed {
			t.Error("Expected new subscriber in persisted snapshot")
		}
	})

	t.Run("read-only command writes no state file", func(t *testing.T) {
		f := newWebhookFixture(t, nil)

		req := testutil.MakeSMSRequest(f.cfg.TwilioSID, testutil.PeerNumber, "info")
		w := httptest.NewRecorder()
		f.handler.InboundSMS(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		if _, err := os.Stat(f.cfg.StatePath); !os.IsNotExist(err) {
			t.Errorf("Expected no state file for read-only command, got %v", err)
		}
	})

	t.Run("wrong account sid is rejected", func(t *testing.T) {
		f := newWebhookFixture(t, nil)

		req := testutil.MakeSMSRequest("ACother000000000000000000000000000", "2125550142", "subscribe")
		w := httptest.NewRecorder()
		f.handler.InboundSMS(w, req)

		testutil.AssertStatus(t, w, http.StatusForbidden)
		if len(f.sender.Sent()) != 0 {
			t.Error("Rejected webhook must not dispatch anything")
		}
		if f.store.SubscriberCount() != 1 {
			t.Errorf("Rejected webhook must not mutate state, count=%d", f.store.SubscriberCount())
		}
	})

	t.Run("missing From is a bad request", func(t *testing.T) {
		f := newWebhookFixture(t, nil)

		form := url.Values{}
		form.Set("AccountSid", f.cfg.TwilioSID)
		form.Set("Body", "subscribe")
		req := httptest.NewRequest("POST", "/inbound-sms", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		f.handler.InboundSMS(w, req)

		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("valid signature is accepted", func(t *testing.T) {
		f := newWebhookFixture(t, nil)

		form := url.Values{}
		form.Set("AccountSid", f.cfg.TwilioSID)
		form.Set("From", testutil.PeerNumber)
		form.Set("Body", "info")
		form.Set("MessageSid", "SMsigned00000000000000000000000000")

		req := httptest.NewRequest("POST", "/inbound-sms", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		sig := auth.ComputeSignature(f.cfg.TwilioToken, "http://"+req.Host+"/inbound-sms", form)
		req.Header.Set("X-Twilio-Signature", sig)

		w := httptest.NewRecorder()
		f.handler.InboundSMS(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
	})

	t.Run("bad signature is rejected", func(t *testing.T) {
		f := newWebhookFixture(t, nil)

		req := testutil.MakeSMSRequest(f.cfg.TwilioSID, testutil.PeerNumber, "info")
		req.Header.Set("X-Twilio-Signature", "bm90IGEgcmVhbCBzaWduYXR1cmU=")
		w := httptest.NewRecorder()
		f.handler.InboundSMS(w, req)

		testutil.AssertStatus(t, w, http.StatusForbidden)
		if len(f.sender.Sent()) != 0 {
			t.Error("Rejected webhook must not dispatch anything")
		}
	})
}

func TestInboundSMS_Dedup(t *testing.T) {
	mr := miniredis.RunT(t)
	seen := dedup.NewWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	f := newWebhookFixture(t, seen)

	deliver := func() *httptest.ResponseRecorder {
		// MakeSMSRequest uses a fixed MessageSid, so every delivery
		// looks like the same message.
		req := testutil.MakeSMSRequest(f.cfg.TwilioSID, "2125550142", "subscribe")
		w := httptest.NewRecorder()
		f.handler.InboundSMS(w, req)
		return w
	}

	first := deliver()
	testutil.AssertStatus(t, first, http.StatusOK)
	if len(f.sender.Sent()) != 1 {
		t.Fatalf("Expected one reply after first delivery, got %d", len(f.sender.Sent()))
	}

	second := deliver()
	testutil.AssertStatus(t, second, http.StatusOK)
	if len(f.sender.Sent()) != 1 {
		t.Errorf("Re-delivery must not dispatch again, got %d sends", len(f.sender.Sent()))
	}
}

func TestInboundCall(t *testing.T) {
	t.Run("speaks the latest update", func(t *testing.T) {
		f := newWebhookFixture(t, nil)

		form := url.Values{}
		form.Set("AccountSid", f.cfg.TwilioSID)
		form.Set("From", "+12125550142")
		req := httptest.NewRequest("POST", "/inbound-call", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		w := httptest.NewRecorder()
		f.handler.InboundCall(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		if ct := w.Header().Get("Content-Type"); ct != "application/xml" {
			t.Errorf("Expected Content-Type 'application/xml', got '%s'", ct)
		}
		body := w.Body.String()
		if !strings.Contains(body, "Office opens at nine") {
			t.Errorf("Expected latest update in TwiML, got '%s'", body)
		}
		if !strings.Contains(body, "To find out more, text this number.") {
			t.Errorf("Expected closing phrase in TwiML, got '%s'", body)
		}
	})

	t.Run("wrong account sid is rejected", func(t *testing.T) {
		f := newWebhookFixture(t, nil)

		form := url.Values{}
		form.Set("AccountSid", "ACother000000000000000000000000000")
		req := httptest.NewRequest("POST", "/inbound-call", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		w := httptest.NewRecorder()
		f.handler.InboundCall(w, req)

		testutil.AssertStatus(t, w, http.StatusForbidden)
	})
}
