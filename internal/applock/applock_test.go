package applock

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/ember/internal/constants"
)

type fakeProcess struct{ pid int }

func (p fakeProcess) Pid() int           { return p.pid }
func (p fakeProcess) PPid() int          { return 0 }
func (p fakeProcess) Executable() string { return "ember" }

func TestAcquireAndRelease(t *testing.T) {
	dir := t.TempDir()

	lock, err := Acquire(dir)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, constants.LockfileName))
	if err != nil {
		t.Fatalf("lockfile not written: %v", err)
	}
	if pid, _ := strconv.Atoi(string(data)); pid != os.Getpid() {
		t.Errorf("lockfile pid = %s, want %d", data, os.Getpid())
	}

	if err := lock.Release(); err != nil {
		t.Fatalf("Release failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, constants.LockfileName)); !os.IsNotExist(err) {
		t.Error("expected lockfile removed after release")
	}
}

func TestAcquire_LiveProcessBlocks(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, constants.LockfileName), []byte("4242"), 0600); err != nil {
		t.Fatal(err)
	}

	orig := findProcessFunc
	findProcessFunc = func(pid int) (ps.Process, error) {
		return fakeProcess{pid: pid}, nil
	}
	defer func() { findProcessFunc = orig }()

	if _, err := Acquire(dir); err == nil {
		t.Error("expected acquire to fail while the owning process is alive")
	}
}

func TestAcquire_StaleLockReclaimed(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, constants.LockfileName), []byte("4242"), 0600); err != nil {
		t.Fatal(err)
	}

	orig := findProcessFunc
	findProcessFunc = func(pid int) (ps.Process, error) {
		return nil, nil // process gone
	}
	defer func() { findProcessFunc = orig }()

	lock, err := Acquire(dir)
	if err != nil {
		t.Fatalf("expected stale lock reclaimed, got %v", err)
	}
	defer lock.Release()
}

func TestIsStale(t *testing.T) {
	dir := t.TempDir()

	stale, err := IsStale(dir)
	if err != nil || stale {
		t.Errorf("expected no lockfile to mean not stale, got %v %v", stale, err)
	}

	if err := os.WriteFile(filepath.Join(dir, constants.LockfileName), []byte("garbage"), 0600); err != nil {
		t.Fatal(err)
	}
	stale, err = IsStale(dir)
	if err != nil || !stale {
		t.Errorf("expected unparseable lockfile to be stale, got %v %v", stale, err)
	}
}
