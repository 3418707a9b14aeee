// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package dispatch

import (
	"fmt"
	"log/slog"

	"github.com/danielhkuo/secretary/state"
)

func (d *Dispatcher) handleRelay(from, text string) error {
	if text == "" {
		return d.reply(from, "Hey, give some text after Msg to send a message.")
	}

	name, _ := d.store.ResolveName(from, true)
	forwarded := fmt.Sprintf("From %s (%s): %s", name, from, text)
	if _, failed := d.broadcast(d.AdminNumbers(), forwarded); failed > 0 {
		slog.Warn("relay reached only some admins", "from", from, "failed", failed)
	}
	return d.reply(from, "Passed that along for you!")
}

func (d *Dispatcher) handleSubscribe(from string) error {
	if d.store.Subscribe(from) == state.AlreadySubscribed {
		return d.reply(from, "You are already subscribed!")
	}
	return d.reply(from, "Subscribed. Current info: "+d.store.LatestUpdate())
}

func (d *Dispatcher) handleStop(from string) error {
	if d.store.Unsubscribe(from) == state.NotSubscribed {
		return d.reply(from, "You are already unsubscribed!")
	}
	return d.reply(from, "You are now unsubscribed!")
}

func (d *Dispatcher) handleVote(from string, vote int) error {
	switch d.store.Vote(from, vote) {
	case state.VoteAccepted:
		return d.reply(from, "OK!")
	case state.VoteChanged:
		return d.reply(from, "Changed your vote.")
	case state.VoteUnchanged:
		return d.reply(from, "You already voted for that.")
	case state.VoteOutOfRange:
		return d.reply(from, fmt.Sprintf("Pick a number between 1 and %d.", d.store.ActivePollSize()))
	}
	return d.reply(from, "There's no poll running right now.")
}
