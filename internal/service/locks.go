package service

import "sync"

// keyedMutex serializes work per string key. The ledger locks "user|symbol"
// so two concurrent dispositions cannot double-spend one lot's open quantity;
// the aggregator locks "user|year" so two rebuilds cannot interleave writes.
// Entries are never removed: the key space (users × symbols) is small and
// bounded in practice.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*sync.Mutex)}
}

// Lock locks the mutex for the given key and returns its unlock function.
func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
