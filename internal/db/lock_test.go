//go:build unix

package db

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestWriteLocker_AcquireRelease(t *testing.T) {
	dir := newLockDir(t)

	locker := newWriteLocker(dir)
	if err := locker.acquire(500 * time.Millisecond); err != nil {
		t.Fatalf("acquire failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, DirName, lockFileName))
	if err != nil {
		t.Fatalf("read lock file: %v", err)
	}
	if !strings.Contains(string(data), "pid:") {
		t.Errorf("lock file should contain holder pid, got %q", data)
	}

	if err := locker.release(); err != nil {
		t.Fatalf("release failed: %v", err)
	}
	// Second release is a no-op
	if err := locker.release(); err != nil {
		t.Fatalf("second release failed: %v", err)
	}
}

func TestWriteLocker_SerializesWriters(t *testing.T) {
	dir := newLockDir(t)

	const writers = 4
	const rounds = 5

	var counter int64
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < rounds; j++ {
				locker := newWriteLocker(dir)
				if err := locker.acquire(5 * time.Second); err != nil {
					t.Errorf("acquire failed: %v", err)
					return
				}
				val := atomic.LoadInt64(&counter)
				time.Sleep(time.Millisecond)
				atomic.StoreInt64(&counter, val+1)
				locker.release()
			}
		}()
	}
	wg.Wait()

	if counter != int64(writers*rounds) {
		t.Errorf("counter = %d, want %d", counter, writers*rounds)
	}
}

func TestWriteLocker_TimeoutNamesHolder(t *testing.T) {
	dir := newLockDir(t)

	holder := newWriteLocker(dir)
	if err := holder.acquire(500 * time.Millisecond); err != nil {
		t.Fatalf("holder acquire failed: %v", err)
	}
	defer holder.release()

	waiter := newWriteLocker(dir)
	err := waiter.acquire(50 * time.Millisecond)
	if err == nil {
		waiter.release()
		t.Fatal("expected timeout error, got nil")
	}
	if !strings.Contains(err.Error(), "timeout") {
		t.Errorf("error should mention timeout: %v", err)
	}
	if !strings.Contains(err.Error(), "pid:") {
		t.Errorf("error should name holder pid: %v", err)
	}
}
