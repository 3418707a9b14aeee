// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package state

import (
	"sort"

	"github.com/danielhkuo/secretary/phone"
)

// SubscribeResult reports what a subscribe/unsubscribe call actually did.
// Re-adding a member or removing an absent one is a no-op, not an error.
type SubscribeResult int

const (
	Subscribed SubscribeResult = iota
	AlreadySubscribed
	Unsubscribed
	NotSubscribed
)

// Subscribe opts a number in to broadcasts.
func (s *Store) Subscribe(number string) SubscribeResult {
	num := phone.Canonical(number)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.subscribers[num]; ok {
		return AlreadySubscribed
	}
	s.subscribers[num] = struct{}{}
	s.dirty = true
	return Subscribed
}

// Unsubscribe opts a number out of broadcasts.
func (s *Store) Unsubscribe(number string) SubscribeResult {
	num := phone.Canonical(number)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.subscribers[num]; !ok {
		return NotSubscribed
	}
	delete(s.subscribers, num)
	s.dirty = true
	return Unsubscribed
}

// SubscriberCount returns the number of current subscribers.
func (s *Store) SubscriberCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subscribers)
}

// Subscribers returns the current subscriber numbers, sorted. The slice
// is a copy; callers can fan out sends without holding the store lock.
func (s *Store) Subscribers() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	subs := make([]string, 0, len(s.subscribers))
	for num := range s.subscribers {
		subs = append(subs, num)
	}
	sort.Strings(subs)
	return subs
}
