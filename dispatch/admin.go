// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package dispatch

import (
	"fmt"
	"strings"

	"github.com/danielhkuo/secretary/phone"
)

func (d *Dispatcher) handleAdmin(from, command, argument string) error {
	switch command {
	case "update":
		return d.handleUpdate(from, argument)
	case "subscribers":
		return d.handleSubscribers(from)
	case "poll":
		return d.handlePoll(from, argument)
	case "responses":
		return d.handleResponses(from, argument)
	case "tell":
		return d.handleTell(from, argument)
	case "rename":
		return d.handleRename(from, argument)
	case "name":
		return d.handleName(from, argument)
	}
	return d.reply(from, d.helpText(true))
}

func (d *Dispatcher) handleUpdate(from, text string) error {
	if text == "" {
		return d.reply(from, "Hey, give some text after Update to send an update.")
	}

	d.store.RecordUpdate(text)
	sent, failed := d.broadcast(d.store.Subscribers(), "Broadcast: "+text)
	return d.reply(from, deliveryReport(sent, failed))
}

// deliveryReport summarizes a broadcast fan-out for the admin who
// started it.
func deliveryReport(sent, failed int) string {
	report := fmt.Sprintf("Sent to %d subscribers.", sent)
	if failed > 0 {
		report += fmt.Sprintf(" Failed to send to %d.", failed)
	}
	return report
}

func (d *Dispatcher) handleSubscribers(from string) error {
	subs := d.store.Subscribers()
	if len(subs) == 0 {
		return d.reply(from, "There are no subscribers yet.")
	}

	descriptors := make([]string, len(subs))
	for i, num := range subs {
		descriptors[i] = d.store.Descriptor(num)
	}

	var err error
	for _, message := range wrapItems(descriptors, segmentLimit) {
		if sendErr := d.reply(from, message); sendErr != nil {
			err = sendErr
		}
	}
	return err
}

// handlePoll parses "<question>?<answer>/<answer>/..." splitting on the
// last '?' so the question itself may contain one.
func (d *Dispatcher) handlePoll(from, argument string) error {
	usage := "Send a question ending with ? then answers separated by /."

	cut := strings.LastIndex(argument, "?")
	if cut < 0 {
		return d.reply(from, usage)
	}
	question := strings.TrimSpace(argument[:cut+1])

	var answers []string
	for _, answer := range strings.Split(argument[cut+1:], "/") {
		if answer = strings.TrimSpace(answer); answer != "" {
			answers = append(answers, answer)
		}
	}
	if question == "?" || len(answers) == 0 {
		return d.reply(from, usage)
	}

	announcement := d.store.CreatePoll(question, answers)
	sent, failed := d.broadcast(d.store.Subscribers(), announcement)
	return d.reply(from, deliveryReport(sent, failed))
}

func (d *Dispatcher) handleResponses(from, argument string) error {
	detailed := strings.EqualFold(strings.TrimSpace(argument), "detail")
	summary, ok := d.store.PollSummary(detailed)
	if !ok {
		return d.reply(from, "There's no poll running right now.")
	}
	return d.reply(from, summary)
}

func (d *Dispatcher) handleTell(from, argument string) error {
	if argument == "" {
		return d.reply(from, "Send a name and a message.")
	}
	name, message := splitFirst(argument)
	if message == "" {
		return d.reply(from, "You have to send a name and a message.")
	}

	number, ok := d.store.ResolveNumber(name)
	if !ok {
		return d.reply(from, fmt.Sprintf("Sorry, I don't know who %s is.", name))
	}
	return d.reply(number, message)
}

func (d *Dispatcher) handleRename(from, argument string) error {
	if argument == "" {
		return d.reply(from, "Send an oldname and a newname.")
	}
	oldName, rest := splitFirst(argument)
	if rest == "" {
		return d.reply(from, "You have to send an oldname and a newname.")
	}
	// In case we were silly and sent a name with a space in it.
	newName, _ := splitFirst(rest)

	if !d.store.Rename(oldName, newName) {
		return d.reply(from, fmt.Sprintf("I don't know who %s is.", oldName))
	}
	return d.reply(from, fmt.Sprintf("Renamed %s to %s.", oldName, newName))
}

func (d *Dispatcher) handleName(from, argument string) error {
	if argument == "" {
		return d.reply(from, "Send a number and a name.")
	}
	rawNumber, rest := splitFirst(argument)
	if rest == "" {
		return d.reply(from, "You have to send a number and a name.")
	}
	name, _ := splitFirst(rest)

	number := phone.Canonical(rawNumber)
	d.store.SetName(number, name)
	return d.reply(from, fmt.Sprintf("Saved %s as %s.", number, name))
}
