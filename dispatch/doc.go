// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package dispatch turns inbound text messages into commands against the
shared store and composes the outbound replies and broadcasts.

The command token is the first whitespace-separated word, lowercased with
punctuation stripped, so "Update!" works. A bare number is a poll vote.
Admin-only commands (update, tell, rename, name, subscribers, poll,
responses) check the sender against a configured roster and refuse
everyone else with a fixed message. Anything unrecognized gets the help
text.

Usage mistakes, missing permissions, and unknown names are normal replies
to the sender, never errors. The only error HandleMessage returns is a
failure to deliver the reply itself; broadcast fan-out tolerates partial
failure and reports counts instead.
*/
package dispatch
