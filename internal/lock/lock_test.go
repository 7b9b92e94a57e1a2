package lock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileLockerAcquireRelease(t *testing.T) {
	l := NewFileLocker(t.TempDir(), "alice@host")

	require.NoError(t, l.Acquire("tasks"))

	held, info, err := l.IsLocked("tasks")
	require.NoError(t, err)
	assert.True(t, held)
	require.NotNil(t, info)
	assert.Equal(t, "alice@host", info.Owner)
	assert.NotZero(t, info.PID)

	require.NoError(t, l.Release("tasks"))

	held, _, err = l.IsLocked("tasks")
	require.NoError(t, err)
	assert.False(t, held)
}

func TestFileLockerContention(t *testing.T) {
	dir := t.TempDir()
	alice := NewFileLocker(dir, "alice@host")
	bob := NewFileLocker(dir, "bob@host")

	require.NoError(t, alice.Acquire("tasks"))

	err := bob.Acquire("tasks")
	require.Error(t, err)
	var lockErr *LockError
	require.ErrorAs(t, err, &lockErr)
	assert.Equal(t, "alice@host", lockErr.Owner)
	assert.Equal(t, "tasks", lockErr.Name)

	// Bob cannot release Alice's lock either.
	require.Error(t, bob.Release("tasks"))

	require.NoError(t, alice.Release("tasks"))
	assert.NoError(t, bob.Acquire("tasks"))
}

func TestFileLockerReentrant(t *testing.T) {
	l := NewFileLocker(t.TempDir(), "alice@host")

	require.NoError(t, l.Acquire("tasks"))
	assert.NoError(t, l.Acquire("tasks"), "same owner re-acquires its own lock")
}

func TestFileLockerStaleTakeover(t *testing.T) {
	dir := t.TempDir()
	alice := NewFileLocker(dir, "alice@host")
	alice.ttl = 10 * time.Millisecond
	bob := NewFileLocker(dir, "bob@host")

	require.NoError(t, alice.Acquire("tasks"))
	time.Sleep(20 * time.Millisecond)

	// Alice's lock has expired; Bob takes it over.
	require.NoError(t, bob.Acquire("tasks"))

	held, info, err := bob.IsLocked("tasks")
	require.NoError(t, err)
	assert.True(t, held)
	assert.Equal(t, "bob@host", info.Owner)
}

func TestFileLockerReleaseWithoutAcquire(t *testing.T) {
	l := NewFileLocker(t.TempDir(), "alice@host")
	assert.NoError(t, l.Release("tasks"))
}

func TestIsStale(t *testing.T) {
	fresh := &Lock{Acquired: time.Now(), TTL: "30s"}
	assert.False(t, fresh.IsStale())

	old := &Lock{Acquired: time.Now().Add(-time.Minute), TTL: "30s"}
	assert.True(t, old.IsStale())

	// Unparseable TTL falls back to the default.
	garbled := &Lock{Acquired: time.Now(), TTL: "soon"}
	assert.Equal(t, DefaultTTL, garbled.TTLDuration())
	assert.False(t, garbled.IsStale())
}

func TestNoOpLocker(t *testing.T) {
	l := NewNoOpLocker()

	assert.NoError(t, l.Acquire("tasks"))
	held, info, err := l.IsLocked("tasks")
	assert.NoError(t, err)
	assert.False(t, held)
	assert.Nil(t, info)
	assert.NoError(t, l.Release("tasks"))
}

func TestNewLocker(t *testing.T) {
	dir := t.TempDir()

	_, ok := NewLocker("shared", dir, "alice@host").(*FileLocker)
	assert.True(t, ok, "shared mode uses the file locker")

	_, ok = NewLocker("solo", dir, "alice@host").(*NoOpLocker)
	assert.True(t, ok, "solo mode uses the no-op locker")

	_, ok = NewLocker("", dir, "alice@host").(*NoOpLocker)
	assert.True(t, ok, "unknown mode falls back to no-op")
}

func TestDefaultOwner(t *testing.T) {
	owner := DefaultOwner()
	assert.Contains(t, owner, "@")
}
