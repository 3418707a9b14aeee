// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/secretary/auth"
	"github.com/danielhkuo/secretary/cliparse"
	"github.com/danielhkuo/secretary/dedup"
	"github.com/danielhkuo/secretary/dispatch"
	"github.com/danielhkuo/secretary/middleware"
	"github.com/danielhkuo/secretary/persist"
	"github.com/danielhkuo/secretary/state"
)

type WebhookHandler struct {
	store      *state.Store
	dispatcher *dispatch.Dispatcher
	cfg        cliparse.Config
	seen       *dedup.Store // nil when dedup is not configured
	files      *persist.FileStore
}

func NewWebhookHandler(store *state.Store, dispatcher *dispatch.Dispatcher, cfg cliparse.Config, seen *dedup.Store, files *persist.FileStore) *WebhookHandler {
	return &WebhookHandler{
		store:      store,
		dispatcher: dispatcher,
		cfg:        cfg,
		seen:       seen,
		files:      files,
	}
}

// InboundSMS handles POST /inbound-sms
//
// Twilio re-delivers a webhook when it doesn't get a 2xx in time, so
// the handler answers 200 even when dispatch or persistence fails;
// those failures are logged, not surfaced to Twilio.
func (h *WebhookHandler) InboundSMS(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	if !h.verifyWebhook(w, r) {
		return
	}

	from := r.PostFormValue("From")
	if from == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "From is required")
		return
	}

	// Drop re-delivered messages so a vote or subscribe never runs
	// twice. Dedup failing open is fine: dispatch is mostly idempotent.
	if sid := r.PostFormValue("MessageSid"); h.seen != nil && sid != "" {
		seen, err := h.seen.Seen(r.Context(), sid)
		if err != nil {
			slog.Warn("dedup check failed", "message_sid", sid, "error", err)
		} else if seen {
			slog.Info("duplicate delivery ignored", "message_sid", sid)
			middleware.TextResponse(w, http.StatusOK, "OK")
			return
		}
	}

	if err := h.dispatcher.HandleMessage(from, r.PostFormValue("Body")); err != nil {
		slog.Error("dispatch failed", "error", err)
	}

	if _, err := persist.WriteIfDirty(h.store, h.files); err != nil {
		slog.Error("failed to persist state", "error", err)
	}

	middleware.TextResponse(w, http.StatusOK, "OK")
}

// InboundCall handles POST /inbound-call
//
// Callers hear the latest update read out loud.
func (h *WebhookHandler) InboundCall(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	if !h.verifyWebhook(w, r) {
		return
	}

	middleware.TwiMLSay(w, h.store.LatestUpdate()+". To find out more, text this number.")
}

// verifyWebhook rejects requests that don't carry our account SID, and
// checks the request signature when Twilio sends one. Returns false
// after writing the rejection.
func (h *WebhookHandler) verifyWebhook(w http.ResponseWriter, r *http.Request) bool {
	if err := auth.VerifyAccountSID(r.PostFormValue("AccountSid"), h.cfg.TwilioSID); err != nil {
		slog.Warn("webhook rejected", "path", r.URL.Path, "remote", r.RemoteAddr)
		middleware.ErrorResponse(w, http.StatusForbidden, "unknown account")
		return false
	}

	if sig := r.Header.Get("X-Twilio-Signature"); sig != "" {
		if !auth.ValidateSignature(h.cfg.TwilioToken, webhookURL(r), r.PostForm, sig) {
			slog.Warn("webhook signature mismatch", "path", r.URL.Path, "remote", r.RemoteAddr)
			middleware.ErrorResponse(w, http.StatusForbidden, "bad signature")
			return false
		}
	}
	return true
}

// webhookURL rebuilds the public URL Twilio signed, honoring the proxy
// headers a TLS-terminating frontend sets.
func webhookURL(r *http.Request) string {
	scheme := r.Header.Get("X-Forwarded-Proto")
	if scheme == "" {
		if r.TLS != nil {
			scheme = "https"
		} else {
			scheme = "http"
		}
	}
	return scheme + "://" + r.Host + r.URL.RequestURI()
}
