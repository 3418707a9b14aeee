// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package state

import (
	"fmt"
	"sort"
	"strings"

	"github.com/danielhkuo/secretary/phone"
)

// VoteStatus reports the outcome of recording a poll vote.
type VoteStatus int

const (
	VoteAccepted VoteStatus = iota
	VoteChanged
	VoteUnchanged
	VoteNoPoll
	VoteOutOfRange
)

// CreatePoll stores a new poll with no responses and makes it the active
// one. Returns the announcement text enumerating the answers 1-based.
func (s *Store) CreatePoll(question string, answers []string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.polls = append(s.polls, Poll{
		Question:  question,
		Answers:   append([]string(nil), answers...),
		Responses: make(map[string]int),
	})
	s.dirty = true

	var b strings.Builder
	fmt.Fprintf(&b, "New poll: %s\n", question)
	for i, answer := range answers {
		fmt.Fprintf(&b, "%d. %s\n", i+1, answer)
	}
	b.WriteString("Text back a number to vote.")
	return b.String()
}

// Vote records a respondent's choice on the active poll. The answer is
// 1-based as texted; the stored choice is the zero-based index. A later
// vote overwrites the earlier one.
func (s *Store) Vote(number string, answer int) VoteStatus {
	num := phone.Canonical(number)

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.polls) == 0 {
		return VoteNoPoll
	}
	poll := &s.polls[len(s.polls)-1]
	if answer < 1 || answer > len(poll.Answers) {
		return VoteOutOfRange
	}

	choice := answer - 1
	prev, voted := poll.Responses[num]
	if voted && prev == choice {
		return VoteUnchanged
	}
	poll.Responses[num] = choice
	s.dirty = true
	if voted {
		return VoteChanged
	}
	return VoteAccepted
}

// ActivePollSize returns the answer count of the active poll, or 0 when
// no poll exists. Used to phrase out-of-range replies.
func (s *Store) ActivePollSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.polls) == 0 {
		return 0
	}
	return len(s.polls[len(s.polls)-1].Answers)
}

// PollSummary renders the active poll's responses grouped by answer.
// Detailed mode lists each respondent's descriptor per answer; otherwise
// only counts are shown. Returns false when no poll has been created.
func (s *Store) PollSummary(detailed bool) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.polls) == 0 {
		return "", false
	}
	poll := s.polls[len(s.polls)-1]

	byAnswer := make([][]string, len(poll.Answers))
	for num, choice := range poll.Responses {
		byAnswer[choice] = append(byAnswer[choice], s.descriptorLocked(num))
	}
	for _, voters := range byAnswer {
		sort.Strings(voters)
	}

	var b strings.Builder
	b.WriteString(poll.Question)
	for i, answer := range poll.Answers {
		voters := byAnswer[i]
		if detailed {
			who := "nobody"
			if len(voters) > 0 {
				who = strings.Join(voters, ", ")
			}
			fmt.Fprintf(&b, "\n%s: %s", answer, who)
		} else {
			fmt.Fprintf(&b, "\n%s: %d", answer, len(voters))
		}
	}
	return b.String(), true
}
