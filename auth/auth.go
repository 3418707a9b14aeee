// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"errors"
	"net/url"
	"sort"
)

var ErrBadAccountSID = errors.New("account sid mismatch")

// VerifyAccountSID checks the AccountSid field Twilio posts with every
// webhook against the configured SID, in constant time.
func VerifyAccountSID(got, want string) error {
	if !hmac.Equal([]byte(got), []byte(want)) {
		return ErrBadAccountSID
	}
	return nil
}

// ComputeSignature builds the X-Twilio-Signature value for a webhook:
// HMAC-SHA1 over the full request URL followed by every POST parameter
// name and value in sorted key order, base64-encoded.
func ComputeSignature(authToken, requestURL string, form url.Values) string {
	keys := make([]string, 0, len(form))
	for k := range form {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	mac := hmac.New(sha1.New, []byte(authToken))
	mac.Write([]byte(requestURL))
	for _, k := range keys {
		for _, v := range form[k] {
			mac.Write([]byte(k))
			mac.Write([]byte(v))
		}
	}
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// ValidateSignature checks a webhook signature in constant time.
func ValidateSignature(authToken, requestURL string, form url.Values, signature string) bool {
	expected := ComputeSignature(authToken, requestURL, form)
	return hmac.Equal([]byte(signature), []byte(expected))
}
