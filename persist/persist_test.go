// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package persist

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/danielhkuo/secretary/state"
)

func testStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	dir := t.TempDir()
	return NewFileStore(filepath.Join(dir, "state.json")), dir
}

func populatedSnapshot() state.Snapshot {
	s := state.New()
	s.Subscribe("3125550100")
	s.SetName("3125550100", "donna")
	s.RecordUpdate("hello")
	s.CreatePoll("Pizza?", []string{"Cheese", "Pepperoni"})
	s.Vote("3125550100", 2)
	return s.Snapshot()
}

func TestLoadMissingFile(t *testing.T) {
	fs, _ := testStore(t)

	_, found, err := fs.Load()
	if err != nil {
		t.Fatalf("Load of missing file errored: %v", err)
	}
	if found {
		t.Error("Load reported a snapshot that does not exist")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	fs, _ := testStore(t)
	snap := populatedSnapshot()

	if err := fs.Save(snap); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, found, err := fs.Load()
	if err != nil || !found {
		t.Fatalf("Load failed: %v, found=%v", err, found)
	}

	// Compare through JSON-normalized time by restoring both sides.
	a, b := state.New(), state.New()
	a.Restore(snap)
	b.Restore(loaded)
	if !reflect.DeepEqual(a.Snapshot().Subscribers, b.Snapshot().Subscribers) ||
		!reflect.DeepEqual(a.Snapshot().Directory, b.Snapshot().Directory) ||
		!reflect.DeepEqual(a.Snapshot().Polls, b.Snapshot().Polls) ||
		len(a.Snapshot().Updates) != len(b.Snapshot().Updates) {
		t.Errorf("round trip diverged:\n got %+v\nwant %+v", loaded, snap)
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	fs, dir := testStore(t)

	if err := fs.Save(populatedSnapshot()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
	if len(entries) != 1 {
		t.Errorf("expected only the canonical file, found %d entries", len(entries))
	}
}

func TestSaveReplacesExistingFile(t *testing.T) {
	fs, _ := testStore(t)

	if err := fs.Save(state.Snapshot{Subscribers: []string{"3125550100"}}); err != nil {
		t.Fatal(err)
	}
	if err := fs.Save(state.Snapshot{Subscribers: []string{"7735550199"}}); err != nil {
		t.Fatal(err)
	}

	loaded, _, err := fs.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded.Subscribers) != 1 || loaded.Subscribers[0] != "7735550199" {
		t.Errorf("second save not visible: %v", loaded.Subscribers)
	}
}

func TestWriteIfDirty(t *testing.T) {
	fs, _ := testStore(t)
	s := state.New()

	// Clean store: nothing to do.
	wrote, err := WriteIfDirty(s, fs)
	if err != nil || wrote {
		t.Fatalf("WriteIfDirty on clean store: wrote=%v err=%v", wrote, err)
	}

	s.Subscribe("3125550100")
	wrote, err = WriteIfDirty(s, fs)
	if err != nil || !wrote {
		t.Fatalf("WriteIfDirty on dirty store: wrote=%v err=%v", wrote, err)
	}
	if s.IsDirty() {
		t.Error("store still dirty after successful write")
	}

	// No mutation since: a second pass is a no-op.
	wrote, err = WriteIfDirty(s, fs)
	if err != nil || wrote {
		t.Errorf("WriteIfDirty with no mutation: wrote=%v err=%v", wrote, err)
	}
}

func TestWriteIfDirtyKeepsDirtyOnFailure(t *testing.T) {
	// A directory path makes the rename fail.
	dir := t.TempDir()
	fs := NewFileStore(dir)

	s := state.New()
	s.Subscribe("3125550100")

	wrote, err := WriteIfDirty(s, fs)
	if err == nil || wrote {
		t.Fatalf("expected a failed write, got wrote=%v err=%v", wrote, err)
	}
	if !s.IsDirty() {
		t.Error("dirty flag cleared even though nothing was persisted")
	}
}
