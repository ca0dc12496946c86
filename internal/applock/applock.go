package applock

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/ember/internal/constants"
)

// The rollover pass must commit before any completion is processed, and two
// ember processes must not interleave. A pid lockfile in the config
// directory enforces single-instance access; stale locks from dead
// processes are reclaimed.

var findProcessFunc = ps.FindProcess

// Lock is a held filesystem lock
type Lock struct {
	path string
}

// Acquire takes the app lock for the given config directory. It fails when
// another live ember process holds the lock; a lockfile left behind by a
// dead process is replaced.
func Acquire(configDir string) (*Lock, error) {
	path := filepath.Join(configDir, constants.LockfileName)

	if data, err := os.ReadFile(path); err == nil {
		pid, perr := strconv.Atoi(strings.TrimSpace(string(data)))
		if perr == nil && pid > 0 && pid != os.Getpid() {
			proc, ferr := findProcessFunc(pid)
			if ferr == nil && proc != nil {
				return nil, fmt.Errorf("another ember process (pid %d) is running", pid)
			}
		}
		// Stale or unreadable lock: fall through and replace it
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read lockfile: %w", err)
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0600); err != nil {
		return nil, fmt.Errorf("failed to write lockfile: %w", err)
	}
	return &Lock{path: path}, nil
}

// Release removes the lockfile. Safe to call on a nil lock.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lockfile: %w", err)
	}
	return nil
}

// IsStale reports whether a lockfile exists in configDir whose owning
// process is no longer alive. Used by the doctor command.
func IsStale(configDir string) (bool, error) {
	path := filepath.Join(configDir, constants.LockfileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return true, nil
	}
	proc, err := findProcessFunc(pid)
	if err != nil || proc == nil {
		return true, nil
	}
	return false, nil
}
