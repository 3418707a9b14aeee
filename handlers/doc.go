// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the HTTP request handlers for the secretary
webhook server.

# Handler Types

Each handler is a struct carrying its dependencies:

  - WebhookHandler: Twilio SMS and voice webhooks
  - StatusHandler: read-only status reporting

Handlers are created via constructor functions:

	webhook := handlers.NewWebhookHandler(store, dispatcher, cfg, seen, files)
	status := handlers.NewStatusHandler(store)

# Webhook Flow

Twilio posts every inbound text to /inbound-sms as a form:

	POST /inbound-sms  → InboundSMS  (dispatch, then persist if dirty)
	POST /inbound-call → InboundCall (TwiML <Say> with the latest update)

Both webhooks are rejected with 403 unless the posted AccountSid matches
the configured account, and when an X-Twilio-Signature header is present
it is validated too. Dispatch and persistence failures are logged but
still answered with 200, because Twilio re-delivers on any other status
and the dedup store already guards against double handling.

# Status

	GET /status → subscriber count and the most recent updates as JSON
*/
package handlers
