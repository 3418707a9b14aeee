// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the secretary webhook server.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(store, dispatcher, cfg, seen, files)

# Endpoints

Health:

	GET /health

Twilio webhooks (rejected without the configured AccountSid):

	POST /inbound-sms  - Inbound text, dispatched as a command
	POST /inbound-call - Inbound call, answered with TwiML

Status (public, read-only):

	GET /status - Subscriber count and recent updates
	GET /       - Greeting

# Handler Initialization

The router creates handler instances with dependency injection:

	webhookHandler := handlers.NewWebhookHandler(store, dispatcher, cfg, seen, files)
	statusHandler := handlers.NewStatusHandler(store)

The dedup store may be nil when no Redis URL is configured.
*/
package router
