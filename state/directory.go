// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package state

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"

	"github.com/danielhkuo/secretary/phone"
)

// nameStems seed the auto-generated names handed to first-time senders.
var nameStems = []string{"red", "pup", "rocket", "turtle", "blue"}

// ResolveName looks up the display name for a number. When the number is
// unknown and generate is set, a fresh name is minted, stored, and
// returned; repeat lookups for the same number always return that same
// name. The second return reports whether a name was found or created.
func (s *Store) ResolveName(number string, generate bool) (string, bool) {
	num := phone.Canonical(number)

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.directory {
		if e.Number == num {
			return e.Name, true
		}
	}
	if !generate {
		return "", false
	}

	name := s.mintNameLocked()
	s.directory = append(s.directory, Entry{Number: num, Name: name})
	s.dirty = true
	return name, true
}

// mintNameLocked picks a name no current entry holds, case-insensitively:
// the stem pool is shuffled, then each integer suffix starting at 1 is
// tried against every stem. The pool running dry is practically
// unreachable; a random identifier covers it anyway.
func (s *Store) mintNameLocked() string {
	seen := make(map[string]struct{}, len(s.directory))
	for _, e := range s.directory {
		seen[strings.ToLower(e.Name)] = struct{}{}
	}

	stems := append([]string(nil), nameStems...)
	rand.Shuffle(len(stems), func(i, j int) {
		stems[i], stems[j] = stems[j], stems[i]
	})

	for i := 1; i <= 1000; i++ {
		for _, stem := range stems {
			candidate := fmt.Sprintf("%s%d", stem, i)
			if _, taken := seen[candidate]; !taken {
				return candidate
			}
		}
	}

	return uuid.NewString()[:8]
}

// Rename changes the name of the first directory entry matching oldName,
// case-insensitively. Returns false, leaving state untouched, when no
// entry matches.
func (s *Store) Rename(oldName, newName string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.directory {
		if strings.EqualFold(e.Name, oldName) {
			s.directory[i].Name = newName
			s.dirty = true
			return true
		}
	}
	return false
}

// SetName upserts the directory entry for a number.
func (s *Store) SetName(number, name string) {
	num := phone.Canonical(number)

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.directory {
		if e.Number == num {
			s.directory[i].Name = name
			s.dirty = true
			return
		}
	}
	s.directory = append(s.directory, Entry{Number: num, Name: name})
	s.dirty = true
}

// ResolveNumber finds the number for a name, case-insensitively, first
// match in insertion order.
func (s *Store) ResolveNumber(name string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.directory {
		if strings.EqualFold(e.Name, name) {
			return e.Number, true
		}
	}
	return "", false
}

// Descriptor renders a number for humans: "name (number)" when the
// directory knows the number, the bare number otherwise. Never mints a
// name.
func (s *Store) Descriptor(number string) string {
	num := phone.Canonical(number)

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.descriptorLocked(num)
}

func (s *Store) descriptorLocked(num string) string {
	for _, e := range s.directory {
		if e.Number == num {
			return fmt.Sprintf("%s (%s)", e.Name, e.Number)
		}
	}
	return num
}
