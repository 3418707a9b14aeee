// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package state

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
)

// NoUpdates is the reply when the log is empty.
const NoUpdates = "There is no info saved right now."

// updateMagnitudes mirrors humanize's default buckets except the
// smallest: a just-recorded update reads "0 seconds ago", never a bare
// "now", so every formatted update keeps the "<elapsed> ago: <text>"
// shape.
var updateMagnitudes = []humanize.RelTimeMagnitude{
	{D: time.Second, Format: "0 seconds %s", DivBy: time.Second},
	{D: 2 * time.Second, Format: "1 second %s", DivBy: 1},
	{D: time.Minute, Format: "%d seconds %s", DivBy: time.Second},
	{D: 2 * time.Minute, Format: "1 minute %s", DivBy: 1},
	{D: time.Hour, Format: "%d minutes %s", DivBy: time.Minute},
	{D: 2 * time.Hour, Format: "1 hour %s", DivBy: 1},
	{D: humanize.Day, Format: "%d hours %s", DivBy: time.Hour},
	{D: 2 * humanize.Day, Format: "1 day %s", DivBy: 1},
	{D: humanize.Week, Format: "%d days %s", DivBy: humanize.Day},
	{D: 2 * humanize.Week, Format: "1 week %s", DivBy: 1},
	{D: humanize.Month, Format: "%d weeks %s", DivBy: humanize.Week},
	{D: 2 * humanize.Month, Format: "1 month %s", DivBy: 1},
	{D: humanize.Year, Format: "%d months %s", DivBy: humanize.Month},
	{D: 18 * humanize.Month, Format: "1 year %s", DivBy: 1},
	{D: 2 * humanize.Year, Format: "2 years %s", DivBy: 1},
	{D: humanize.LongTime, Format: "%d years %s", DivBy: humanize.Year},
	{D: math.MaxInt64, Format: "a long while %s", DivBy: 1},
}

// RecordUpdate appends a broadcast text to the update log. The log is
// never truncated or edited in place.
func (s *Store) RecordUpdate(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.updates = append(s.updates, Update{At: time.Now(), Text: text})
	s.dirty = true
}

// LatestUpdate formats the most recent update as "<elapsed> ago: <text>",
// or NoUpdates when nothing has been recorded.
func (s *Store) LatestUpdate() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.updates) == 0 {
		return NoUpdates
	}
	return formatUpdate(s.updates[len(s.updates)-1], time.Now())
}

// RecentUpdates returns up to n formatted updates, most recent first.
// Non-positive n yields an empty slice.
func (s *Store) RecentUpdates(n int) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n < 0 {
		n = 0
	}
	now := time.Now()
	out := make([]string, 0, n)
	for i := len(s.updates) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, formatUpdate(s.updates[i], now))
	}
	return out
}

func formatUpdate(u Update, now time.Time) string {
	return fmt.Sprintf("%s: %s", humanize.CustomRelTime(u.At, now, "ago", "", updateMagnitudes), u.Text)
}
