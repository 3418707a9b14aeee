// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth authenticates inbound Twilio webhooks.

Two checks are supported: the AccountSid posted with every webhook must
match the configured SID, and when Twilio includes an X-Twilio-Signature
header it must match the HMAC-SHA1 the auth token produces over the
request URL and sorted POST parameters. Both comparisons run in constant
time.
*/
package auth
