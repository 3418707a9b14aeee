// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the JSON types served by the HTTP layer.

Inbound webhooks are form-encoded (Twilio's shape), so there are no
request types here; the webhook field names live in the handlers that
read them.
*/
package models
