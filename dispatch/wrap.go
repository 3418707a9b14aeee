// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package dispatch

import "strings"

// segmentLimit is the single-segment GSM-7 length; listings are packed
// into messages no longer than this so each goes out as one SMS.
const segmentLimit = 160

// wrapItems packs items joined by ", " into strings of at most limit
// characters. An item longer than the limit still gets its own message
// rather than being truncated.
func wrapItems(items []string, limit int) []string {
	var messages []string
	var current strings.Builder

	for _, item := range items {
		switch {
		case current.Len() == 0:
			current.WriteString(item)
		case current.Len()+2+len(item) <= limit:
			current.WriteString(", ")
			current.WriteString(item)
		default:
			messages = append(messages, current.String())
			current.Reset()
			current.WriteString(item)
		}
	}
	if current.Len() > 0 {
		messages = append(messages, current.String())
	}
	return messages
}
