// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/secretary/cliparse"
	"github.com/danielhkuo/secretary/dedup"
	"github.com/danielhkuo/secretary/dispatch"
	"github.com/danielhkuo/secretary/handlers"
	"github.com/danielhkuo/secretary/middleware"
	"github.com/danielhkuo/secretary/persist"
	"github.com/danielhkuo/secretary/state"
)

func NewRouter(store *state.Store, dispatcher *dispatch.Dispatcher, cfg cliparse.Config, seen *dedup.Store, files *persist.FileStore) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	webhookHandler := handlers.NewWebhookHandler(store, dispatcher, cfg, seen, files)
	statusHandler := handlers.NewStatusHandler(store)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Twilio webhooks
	mux.HandleFunc("POST /inbound-sms", middleware.WithLogging(webhookHandler.InboundSMS))
	mux.HandleFunc("POST /inbound-call", middleware.WithLogging(webhookHandler.InboundCall))

	// Read-only status
	mux.HandleFunc("GET /status", middleware.WithLogging(statusHandler.Status))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("secretary is running. Text the number to talk to it."))
	})

	return mux
}
