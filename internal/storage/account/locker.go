package account

import (
	"sort"
	"sync"
)

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Locker hands out per-account mutual exclusion keyed by account number.
// Entries exist only while someone holds or waits on them.
type Locker struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

// NewLocker creates an empty Locker.
func NewLocker() *Locker {
	return &Locker{entries: make(map[string]*lockEntry)}
}

// Lock acquires the locks for every given account number in ascending order,
// ignoring duplicates and empty numbers, and returns a func that releases
// them. Acquiring in a fixed order keeps two transfers running in opposite
// directions from deadlocking.
func (l *Locker) Lock(accountNumbers ...string) (unlock func()) {
	keys := sortedKeys(accountNumbers)

	held := make([]*lockEntry, 0, len(keys))
	for _, key := range keys {
		entry := l.acquire(key)
		entry.mu.Lock()
		held = append(held, entry)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			for i := len(held) - 1; i >= 0; i-- {
				held[i].mu.Unlock()
				l.release(keys[i])
			}
		})
	}
}

func (l *Locker) acquire(key string) *lockEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[key]
	if !ok {
		entry = &lockEntry{}
		l.entries[key] = entry
	}
	entry.refs++
	return entry
}

func (l *Locker) release(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := l.entries[key]
	entry.refs--
	if entry.refs == 0 {
		delete(l.entries, key)
	}
}

func (l *Locker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func sortedKeys(accountNumbers []string) []string {
	seen := make(map[string]struct{}, len(accountNumbers))
	keys := make([]string, 0, len(accountNumbers))
	for _, n := range accountNumbers {
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		keys = append(keys, n)
	}
	sort.Strings(keys)
	return keys
}
