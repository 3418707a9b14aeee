// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the secretary webhook server.

Secretary is an SMS command bot: people text a Twilio number, the server
interprets each message as a command, and replies or broadcasts over
SMS. It keeps subscribers, a number-to-name directory, an update log,
and simple polls, all persisted as a JSON snapshot.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	TWILIO_SID=AC... TWILIO_TOKEN=... TWILIO_FROM=+1... ADMIN_NUMBERS=3125550100 go run main.go

Or with flags:

	go run main.go -p 3318 -sid AC... -token ... -from +1... -admins 3125550100

# Configuration

Required settings:

  - TWILIO_SID (-sid): Twilio account SID, also used to verify webhooks
  - TWILIO_TOKEN (-token): Twilio auth token
  - TWILIO_FROM (-from): Number outbound texts are sent from
  - ADMIN_NUMBERS (-admins): Comma-separated admin phone numbers

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - STATE_PATH (-state): JSON snapshot location (default: secretary-state.json)
  - REDIS_URL (-redis): Enables webhook dedup when set
  - ADMIN_LABEL (-admin-label): How the admins are named in help text

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: Twilio webhook and status handlers
  - router: Route definitions using Go 1.22+ routing
  - middleware: Logging, JSON and TwiML helpers
  - dispatch: The SMS command table
  - state: In-memory store for subscribers, directory, updates, polls
  - persist: Atomic JSON snapshot writes
  - dedup: Redis-backed duplicate-delivery tracking
  - twilio: Outbound SMS client
  - auth: Webhook verification
  - phone: Phone number canonicalization
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
