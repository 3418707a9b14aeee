// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package phone normalizes US phone numbers for storage and dialing.
package phone

import "strings"

// Canonical normalizes a phone number to its storage form: digits only,
// with a leading US country code stripped from 11-digit numbers. Shorter
// numbers pass through unchanged so short codes and test fixtures keep
// working. Equality between numbers is defined on this form.
func Canonical(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteByte(byte(r))
		}
	}
	digits := b.String()
	if len(digits) == 11 && digits[0] == '1' {
		return digits[1:]
	}
	return digits
}

// E164 formats a canonical number for the Twilio API. Ten-digit national
// numbers get the US country code back; everything else is sent as-is
// behind a plus.
func E164(canonical string) string {
	num := Canonical(canonical)
	if len(num) == 10 {
		num = "1" + num
	}
	return "+" + num
}
