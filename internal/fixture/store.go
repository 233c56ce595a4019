package fixture

import "sync"

type Store struct {
	entries []Entry
	lock    sync.RWMutex
}

func (s *Store) Put(entries []Entry) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.entries = entries
}

func (s *Store) Get() []Entry {
	s.lock.RLock()
	defer s.lock.RUnlock()

	result := make([]Entry, len(s.entries))
	copy(result, s.entries)
	return result
}

func NewStore() *Store {
	return NewStoreFrom([]Entry{})
}

func NewStoreFrom(entries []Entry) *Store {
	return &Store{
		entries: entries,
		lock:    sync.RWMutex{},
	}
}
