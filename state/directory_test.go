// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package state

import (
	"fmt"
	"strings"
	"sync"
	"testing"
)

func TestResolveNameGeneratesOnce(t *testing.T) {
	s := New()

	first, ok := s.ResolveName("3125550100", true)
	if !ok || first == "" {
		t.Fatalf("ResolveName failed to mint a name: %q, %v", first, ok)
	}

	again, ok := s.ResolveName("3125550100", true)
	if !ok || again != first {
		t.Errorf("second lookup = %q, want %q", again, first)
	}

	noGen, ok := s.ResolveName("3125550100", false)
	if !ok || noGen != first {
		t.Errorf("lookup without generate = %q, want %q", noGen, first)
	}
}

func TestResolveNameAbsentWithoutGenerate(t *testing.T) {
	s := New()

	if name, ok := s.ResolveName("3125550100", false); ok {
		t.Errorf("expected absent, got %q", name)
	}
	if count := len(s.Snapshot().Directory); count != 0 {
		t.Errorf("lookup without generate created %d entries", count)
	}
}

func TestMintedNamesNeverCollide(t *testing.T) {
	s := New()

	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		name, _ := s.ResolveName(fmt.Sprintf("31255501%02d", i), true)
		lower := strings.ToLower(name)
		if _, dup := seen[lower]; dup {
			t.Fatalf("minted duplicate name %q", name)
		}
		seen[lower] = struct{}{}
	}
}

func TestMintedNamesAvoidExplicitNames(t *testing.T) {
	s := New()

	// Squat on every stem with suffix 1, mixing case.
	for i, taken := range []string{"Red1", "PUP1", "rocket1", "Turtle1", "blue1"} {
		s.SetName(fmt.Sprintf("900555010%d", i), taken)
	}

	name, _ := s.ResolveName("3125550100", true)
	if strings.HasSuffix(name, "1") && len(name) < 8 {
		lower := strings.ToLower(name)
		for _, stem := range []string{"red1", "pup1", "rocket1", "turtle1", "blue1"} {
			if lower == stem {
				t.Fatalf("minted name %q collides case-insensitively", name)
			}
		}
	}
}

func TestConcurrentResolveNameCreatesOneEntry(t *testing.T) {
	s := New()

	var wg sync.WaitGroup
	names := make([]string, 8)
	for i := range names {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			names[i], _ = s.ResolveName("3125550100", true)
		}(i)
	}
	wg.Wait()

	for _, name := range names[1:] {
		if name != names[0] {
			t.Fatalf("concurrent lookups minted different names: %v", names)
		}
	}
	if count := len(s.Snapshot().Directory); count != 1 {
		t.Errorf("directory has %d entries, want 1", count)
	}
}

func TestRename(t *testing.T) {
	s := New()
	s.SetName("3125550100", "turtle1")

	if !s.Rename("TURTLE1", "donna") {
		t.Fatal("Rename with case-insensitive match failed")
	}
	if num, ok := s.ResolveNumber("donna"); !ok || num != "3125550100" {
		t.Errorf("ResolveNumber after rename = %q, %v", num, ok)
	}
	if s.Rename("turtle1", "anything") {
		t.Error("Rename of a gone name succeeded")
	}
}

func TestSetNameUpserts(t *testing.T) {
	s := New()

	s.SetName("+1 (312) 555-0100", "eric")
	if num, _ := s.ResolveNumber("eric"); num != "3125550100" {
		t.Errorf("SetName did not canonicalize: %q", num)
	}

	s.SetName("3125550100", "donna")
	if _, ok := s.ResolveNumber("eric"); ok {
		t.Error("old name survived an upsert")
	}
	if count := len(s.Snapshot().Directory); count != 1 {
		t.Errorf("upsert created %d entries, want 1", count)
	}
}

func TestDescriptor(t *testing.T) {
	s := New()
	s.SetName("3125550100", "donna")

	if got := s.Descriptor("13125550100"); got != "donna (3125550100)" {
		t.Errorf("Descriptor = %q", got)
	}
	if got := s.Descriptor("7735550199"); got != "7735550199" {
		t.Errorf("Descriptor for unnamed number = %q", got)
	}
}

func TestResolveNumberFirstMatchWins(t *testing.T) {
	s := New()
	s.SetName("3125550100", "sam")
	s.SetName("7735550199", "Sam")

	if num, _ := s.ResolveNumber("sam"); num != "3125550100" {
		t.Errorf("ResolveNumber = %q, want first entry in insertion order", num)
	}
}
