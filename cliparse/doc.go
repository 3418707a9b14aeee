// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - TwilioSID: Twilio account SID (required)
  - TwilioToken: Twilio auth token (required)
  - TwilioFrom: Twilio sending number (required)
  - Admins: admin phone numbers (at least one required)
  - AdminLabel: how admins are introduced in help text
  - StatePath: state snapshot file (default: secretary-state.json)
  - RedisURL: optional, enables webhook dedup

# CLI Flags

	-p            Server port
	-state        State snapshot path
	-redis        Redis URL
	-admins       Comma-separated admin numbers
	-admin-label  Admin display label
	-sid          Twilio account SID
	-token        Twilio auth token
	-from         Twilio sending number

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	STATE_PATH    → -state
	REDIS_URL     → -redis
	ADMIN_NUMBERS → -admins
	ADMIN_LABEL   → -admin-label
	TWILIO_SID    → -sid
	TWILIO_TOKEN  → -token
	TWILIO_FROM   → -from

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing:

  - TWILIO_SID, TWILIO_TOKEN, and TWILIO_FROM must be provided
  - at least one admin number must be configured
*/
package cliparse
