// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package dispatch

import (
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/danielhkuo/secretary/phone"
	"github.com/danielhkuo/secretary/state"
)

// Sender is the SMS transport capability the dispatcher needs. A failed
// send is reported per recipient; the dispatcher never retries.
type Sender interface {
	Send(to, text string) error
}

// Dispatcher interprets one inbound (from, body) pair at a time against
// the shared store. It holds no state of its own, so it is safe to call
// from concurrent webhook deliveries.
type Dispatcher struct {
	store      *state.Store
	sender     Sender
	admins     map[string]struct{}
	adminLabel string
}

func New(store *state.Store, sender Sender, adminNumbers []string, adminLabel string) *Dispatcher {
	admins := make(map[string]struct{}, len(adminNumbers))
	for _, num := range adminNumbers {
		admins[phone.Canonical(num)] = struct{}{}
	}
	return &Dispatcher{
		store:      store,
		sender:     sender,
		admins:     admins,
		adminLabel: adminLabel,
	}
}

// IsAdmin reports whether a number is on the configured admin roster.
func (d *Dispatcher) IsAdmin(number string) bool {
	_, ok := d.admins[phone.Canonical(number)]
	return ok
}

// AdminNumbers returns the roster, sorted.
func (d *Dispatcher) AdminNumbers() []string {
	nums := make([]string, 0, len(d.admins))
	for num := range d.admins {
		nums = append(nums, num)
	}
	sort.Strings(nums)
	return nums
}

// HandleMessage runs one inbound text through the command table. The
// returned error covers only the reply to the sender; broadcast failures
// are counted and reported in the reply instead.
func (d *Dispatcher) HandleMessage(from, body string) error {
	from = phone.Canonical(from)
	isAdmin := d.IsAdmin(from)

	slog.Info("inbound message", "from", from, "admin", isAdmin, "length", len(body))

	token, argument := splitFirst(strings.TrimSpace(body))
	command := normalizeCommand(token)

	if command == "" || command == "help" {
		return d.reply(from, d.helpText(isAdmin))
	}

	if vote, ok := parseVote(command); ok {
		return d.handleVote(from, vote)
	}

	switch command {
	case "update", "tell", "rename", "name", "subscribers", "poll", "responses":
		if !isAdmin {
			return d.reply(from, "You can't use that feature, sorry.")
		}
		return d.handleAdmin(from, command, argument)
	case "msg":
		return d.handleRelay(from, argument)
	case "info":
		return d.reply(from, d.store.LatestUpdate())
	case "subscribe":
		return d.handleSubscribe(from)
	case "stop":
		return d.handleStop(from)
	}

	return d.reply(from, d.helpText(isAdmin))
}

// splitFirst breaks text into its first whitespace-separated token and
// the trimmed remainder.
func splitFirst(text string) (string, string) {
	fields := strings.SplitN(text, " ", 2)
	if len(fields) < 2 {
		return fields[0], ""
	}
	return fields[0], strings.TrimSpace(fields[1])
}

// normalizeCommand lowercases a command token and drops anything that is
// not a letter or digit, so "Update!" and "update" match.
func normalizeCommand(token string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(token) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func parseVote(command string) (int, bool) {
	vote, err := strconv.Atoi(command)
	if err != nil {
		return 0, false
	}
	return vote, true
}

func (d *Dispatcher) reply(to, text string) error {
	if err := d.sender.Send(to, text); err != nil {
		slog.Error("reply send failed", "to", to, "error", err)
		return err
	}
	return nil
}

// broadcast fans text out to each recipient independently. One failed
// recipient never stops the rest; failures are counted for the caller.
func (d *Dispatcher) broadcast(recipients []string, text string) (sent, failed int) {
	for _, num := range recipients {
		if err := d.sender.Send(num, text); err != nil {
			slog.Warn("broadcast send failed", "to", num, "error", err)
			failed++
			continue
		}
		sent++
	}
	return sent, failed
}

func (d *Dispatcher) helpText(isAdmin bool) string {
	help := "Text options:\n" +
		"SUBSCRIBE (Get text updates)\n" +
		"MSG [Followed by text message to " + d.adminLabel + "]\n" +
		"INFO (Latest update)\n" +
		"STOP (Stop text updates)"
	if isAdmin {
		help += "\nUPDATE [Followed by broadcast message]\n" +
			"TELL [name] [message]\n" +
			"RENAME [oldname] [newname]\n" +
			"NAME [number] [name]\n" +
			"SUBSCRIBERS\n" +
			"POLL [question]?[answer]/[answer]\n" +
			"RESPONSES [detail]"
	}
	return help
}
