package db

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	lockFileName   = "db.lock"
	defaultTimeout = 500 * time.Millisecond
	initialBackoff = 5 * time.Millisecond
	maxBackoff     = 50 * time.Millisecond
)

// writeLocker serializes writes to workspace state across wsmark processes
// with an OS file lock. The OS drops the lock when the holder exits.
type writeLocker struct {
	lockPath string
	lockFile *os.File
}

func newWriteLocker(baseDir string) *writeLocker {
	return &writeLocker{
		lockPath: filepath.Join(baseDir, DirName, lockFileName),
	}
}

// acquire polls for the exclusive lock with exponential backoff until timeout.
func (l *writeLocker) acquire(timeout time.Duration) error {
	f, err := os.OpenFile(l.lockPath, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}
	l.lockFile = f

	deadline := time.Now().Add(timeout)
	backoff := initialBackoff
	for {
		if err := l.tryLock(); err == nil {
			l.writeHolder()
			return nil
		}

		if time.Now().After(deadline) {
			holder := l.readHolder()
			l.lockFile.Close()
			l.lockFile = nil
			return fmt.Errorf("workspace state lock timeout after %v\n  holder: %s\n  another wsmark process is writing; try again", timeout, holder)
		}

		time.Sleep(backoff)
		backoff = min(backoff*2, maxBackoff)
	}
}

// release drops the lock. Safe to call more than once.
func (l *writeLocker) release() error {
	if l.lockFile == nil {
		return nil
	}
	l.lockFile.Truncate(0)
	l.unlock()
	err := l.lockFile.Close()
	l.lockFile = nil
	return err
}

// writeHolder records who holds the lock, for timeout diagnostics
func (l *writeLocker) writeHolder() {
	if l.lockFile == nil {
		return
	}
	cmd := "wsmark"
	if len(os.Args) > 1 {
		cmd += " " + os.Args[1]
	}
	l.lockFile.Truncate(0)
	l.lockFile.Seek(0, 0)
	fmt.Fprintf(l.lockFile, "pid:%d\ntime:%s\ncmd:%s\n", os.Getpid(), time.Now().Format(time.RFC3339), cmd)
	l.lockFile.Sync()
}

// readHolder describes the current holder, flagging holders whose process is gone
func (l *writeLocker) readHolder() string {
	data, err := os.ReadFile(l.lockPath)
	if err != nil {
		return "unknown"
	}

	fields := map[string]string{}
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if k, v, ok := strings.Cut(line, ":"); ok {
			fields[k] = v
		}
	}

	pid := fields["pid"]
	if pid == "" {
		return "unknown"
	}

	desc := fmt.Sprintf("pid:%s since %s", pid, fields["time"])
	if cmd := fields["cmd"]; cmd != "" {
		desc += " (" + cmd + ")"
	}
	if pidInt, err := strconv.Atoi(pid); err == nil && !isProcessAlive(pidInt) {
		desc += " STALE - process dead"
	}
	return desc
}

// tryLock, unlock and isProcessAlive live in lock_unix.go and lock_windows.go
