// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (duration_ms).

# Response Helpers

Write JSON, plain-text, and TwiML responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusForbidden, "message")
	middleware.TextResponse(w, http.StatusOK, "OK")
	middleware.TwiMLSay(w, "Office opens at nine")

TwiMLSay answers Twilio voice webhooks with a <Say> verb; the spoken
phrase is XML-escaped before it is embedded in the document.
*/
package middleware
