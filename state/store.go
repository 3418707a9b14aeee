// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package state

import (
	"sort"
	"sync"
	"time"
)

// Update is one broadcast entry in the append-only update log.
type Update struct {
	At   time.Time `json:"at"`
	Text string    `json:"text"`
}

// Entry maps a canonical phone number to a display name.
type Entry struct {
	Number string `json:"number"`
	Name   string `json:"name"`
}

// Poll holds a question, its ordered answer choices, and one choice per
// respondent (canonical number -> zero-based answer index). Only the last
// poll created is open for voting; older polls stay in history.
type Poll struct {
	Question  string         `json:"question"`
	Answers   []string       `json:"answers"`
	Responses map[string]int `json:"responses"`
}

// Snapshot is the serializable union of everything the store owns. It is
// the unit of persistence.
type Snapshot struct {
	Subscribers []string `json:"subscribers"`
	Updates     []Update `json:"updates"`
	Directory   []Entry  `json:"directory"`
	Polls       []Poll   `json:"polls"`
}

// Store is the shared mutable state behind the bot: the subscriber set,
// the number<->name directory, the update log, and the poll history.
// Every operation takes the one store mutex, so concurrent webhook
// deliveries never interleave writes. The mutex is never held across an
// outbound send.
type Store struct {
	mu          sync.Mutex
	subscribers map[string]struct{}
	updates     []Update
	directory   []Entry
	polls       []Poll
	dirty       bool
}

func New() *Store {
	return &Store{subscribers: make(map[string]struct{})}
}

// IsDirty reports whether in-memory state has diverged from the last
// persisted snapshot.
func (s *Store) IsDirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// MarkDirty re-flags the store after a failed persist so the next
// write-if-dirty pass retries.
func (s *Store) MarkDirty() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirty = true
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// FlushSnapshot atomically takes a snapshot and clears the dirty flag,
// both under the same lock, so a mutation landing between the two cannot
// be lost. Returns false when there is nothing to persist. If the caller
// fails to durably write the snapshot it must call MarkDirty.
func (s *Store) FlushSnapshot() (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return Snapshot{}, false
	}
	snap := s.snapshotLocked()
	s.dirty = false
	return snap, true
}

// Restore replaces all state with the given snapshot. The restored state
// is considered clean.
func (s *Store) Restore(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.subscribers = make(map[string]struct{}, len(snap.Subscribers))
	for _, num := range snap.Subscribers {
		s.subscribers[num] = struct{}{}
	}
	s.updates = append([]Update(nil), snap.Updates...)
	s.directory = append([]Entry(nil), snap.Directory...)
	s.polls = make([]Poll, len(snap.Polls))
	for i, p := range snap.Polls {
		s.polls[i] = copyPoll(p)
	}
	s.dirty = false
}

func (s *Store) snapshotLocked() Snapshot {
	subs := make([]string, 0, len(s.subscribers))
	for num := range s.subscribers {
		subs = append(subs, num)
	}
	sort.Strings(subs)

	polls := make([]Poll, len(s.polls))
	for i, p := range s.polls {
		polls[i] = copyPoll(p)
	}

	return Snapshot{
		Subscribers: subs,
		Updates:     append([]Update(nil), s.updates...),
		Directory:   append([]Entry(nil), s.directory...),
		Polls:       polls,
	}
}

func copyPoll(p Poll) Poll {
	responses := make(map[string]int, len(p.Responses))
	for num, choice := range p.Responses {
		responses[num] = choice
	}
	return Poll{
		Question:  p.Question,
		Answers:   append([]string(nil), p.Answers...),
		Responses: responses,
	}
}
