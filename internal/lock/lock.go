// Package lock provides collection-level locking for coordinated mutation.
// Solo mode uses NoOpLocker (zero overhead); shared checkouts use
// FileLocker so two gantry processes cannot interleave a read-modify-write
// cycle and silently drop each other's update.
package lock

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultTTL is how long a lock is honored without being released. Gantry
// mutations are one-shot read-modify-write cycles, so anything older is a
// crashed process.
const DefaultTTL = 30 * time.Second

// Lock is the on-disk lock record.
type Lock struct {
	Owner    string    `yaml:"owner"`    // user@machine identifier
	Acquired time.Time `yaml:"acquired"` // when the lock was acquired
	TTL      string    `yaml:"ttl"`      // time-to-live as duration string
	PID      int       `yaml:"pid"`      // process ID of lock holder
}

// TTLDuration parses the TTL string, falling back to DefaultTTL.
func (l *Lock) TTLDuration() time.Duration {
	d, err := time.ParseDuration(l.TTL)
	if err != nil {
		return DefaultTTL
	}
	return d
}

// IsStale returns true if the lock is older than its TTL.
func (l *Lock) IsStale() bool {
	return time.Since(l.Acquired) > l.TTLDuration()
}

// Info describes a lock holder.
type Info struct {
	Owner    string
	Acquired time.Time
	PID      int
}

// Locker defines the interface for collection locking.
type Locker interface {
	// Acquire attempts to acquire the named lock.
	// Returns nil on success, a LockError if the lock is held.
	Acquire(name string) error

	// Release releases the named lock.
	Release(name string) error

	// IsLocked checks whether the named lock is held.
	IsLocked(name string) (bool, *Info, error)
}

// LockError is returned when a lock cannot be acquired.
type LockError struct {
	Name  string
	Owner string
}

func (e *LockError) Error() string {
	return fmt.Sprintf("%s is locked by %s", e.Name, e.Owner)
}

// NewLocker creates a Locker appropriate for the coordination mode.
func NewLocker(mode, dir, owner string) Locker {
	if mode == "shared" {
		return NewFileLocker(dir, owner)
	}
	return NewNoOpLocker()
}

// DefaultOwner builds the user@host owner identifier.
func DefaultOwner() string {
	user := os.Getenv("USER")
	if user == "" {
		user = "unknown"
	}
	host, err := os.Hostname()
	if err != nil {
		host = "localhost"
	}
	return user + "@" + host
}

// NoOpLocker is a no-op locker for solo mode.
type NoOpLocker struct{}

// NewNoOpLocker creates a new NoOpLocker.
func NewNoOpLocker() *NoOpLocker {
	return &NoOpLocker{}
}

// Acquire always succeeds for NoOpLocker.
func (l *NoOpLocker) Acquire(name string) error { return nil }

// Release always succeeds for NoOpLocker.
func (l *NoOpLocker) Release(name string) error { return nil }

// IsLocked always returns false for NoOpLocker.
func (l *NoOpLocker) IsLocked(name string) (bool, *Info, error) {
	return false, nil, nil
}

// FileLocker implements file-based locking. Lock files live next to the
// collection documents as <name>.lock.yaml.
type FileLocker struct {
	dir   string
	owner string
	ttl   time.Duration
	mu    sync.Mutex
}

// NewFileLocker creates a FileLocker writing lock files under dir.
func NewFileLocker(dir, owner string) *FileLocker {
	return &FileLocker{dir: dir, owner: owner, ttl: DefaultTTL}
}

func (l *FileLocker) lockPath(name string) string {
	return filepath.Join(l.dir, name+".lock.yaml")
}

func (l *FileLocker) readLock(name string) (*Lock, error) {
	data, err := os.ReadFile(l.lockPath(name))
	if err != nil {
		return nil, err
	}
	var lk Lock
	if err := yaml.Unmarshal(data, &lk); err != nil {
		return nil, fmt.Errorf("parse lock file: %w", err)
	}
	return &lk, nil
}

func (l *FileLocker) writeLock(name string, lk *Lock) error {
	data, err := yaml.Marshal(lk)
	if err != nil {
		return fmt.Errorf("marshal lock: %w", err)
	}
	if err := os.MkdirAll(l.dir, 0755); err != nil {
		return fmt.Errorf("create lock directory: %w", err)
	}
	path := l.lockPath(name)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write lock file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename lock file: %w", err)
	}
	return nil
}

// Acquire attempts to acquire the named lock. A stale lock (crashed holder)
// is taken over.
func (l *FileLocker) Acquire(name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	existing, err := l.readLock(name)
	if err == nil && !existing.IsStale() && existing.Owner != l.owner {
		return &LockError{Name: name, Owner: existing.Owner}
	}

	return l.writeLock(name, &Lock{
		Owner:    l.owner,
		Acquired: time.Now(),
		TTL:      l.ttl.String(),
		PID:      os.Getpid(),
	})
}

// Release removes the named lock if held by this owner.
func (l *FileLocker) Release(name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	existing, err := l.readLock(name)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if existing.Owner != l.owner {
		return &LockError{Name: name, Owner: existing.Owner}
	}
	return os.Remove(l.lockPath(name))
}

// IsLocked checks whether the named lock is held and not stale.
func (l *FileLocker) IsLocked(name string) (bool, *Info, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	existing, err := l.readLock(name)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil, nil
		}
		return false, nil, err
	}
	if existing.IsStale() {
		return false, nil, nil
	}
	return true, &Info{
		Owner:    existing.Owner,
		Acquired: existing.Acquired,
		PID:      existing.PID,
	}, nil
}
