package table

import (
	"errors"
	"fmt"
	"github.com/mat-sik/domainatrix-go/internal/domain"
	"sync"
)

var (
	ErrIndexOutOfRange = errors.New("row index out of range")
	ErrUnknownColumn   = errors.New("unknown column")
)

const PlaceholderAddress = "Loading remote entry list"

// Listener receives structural change notifications. Ranges are half-open [first, last).
type Listener interface {
	RowsRemoved(first, last int)
	RowsInserted(first, last int)
	DataChanged(rows, cols int)
}

// Store owns the displayed snapshot. The snapshot is only ever replaced as a whole.
type Store struct {
	records   []domain.Record
	listeners []Listener
	lock      sync.RWMutex
}

func (s *Store) Subscribe(listener Listener) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.listeners = append(s.listeners, listener)
}

// ReplaceAll swaps the stored sequence in one step and then announces it
// as remove-all followed by insert-all.
func (s *Store) ReplaceAll(records []domain.Record) {
	replacement := make([]domain.Record, len(records))
	copy(replacement, records)

	s.lock.Lock()
	removed := len(s.records)
	s.records = replacement
	listeners := s.listeners
	s.lock.Unlock()

	for _, l := range listeners {
		l.RowsRemoved(0, removed)
		l.RowsInserted(0, len(replacement))
	}
}

func (s *Store) NotifyDataChanged() {
	s.lock.RLock()
	rows := len(s.records)
	listeners := s.listeners
	s.lock.RUnlock()

	for _, l := range listeners {
		l.DataChanged(rows, len(columns))
	}
}

func (s *Store) Len() int {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return len(s.records)
}

func (s *Store) RowAt(i int) (domain.Record, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.rowAt(i)
}

func (s *Store) rowAt(i int) (domain.Record, error) {
	if i < 0 || i >= len(s.records) {
		return domain.Record{}, fmt.Errorf("%w: row %d, len %d", ErrIndexOutOfRange, i, len(s.records))
	}
	return s.records[i], nil
}

// Cell returns a bool for the probe columns and a string for ColumnAddress.
func (s *Store) Cell(row int, col Column) (any, error) {
	if !col.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownColumn, int(col))
	}

	s.lock.RLock()
	defer s.lock.RUnlock()

	record, err := s.rowAt(row)
	if err != nil {
		return nil, err
	}

	switch col {
	case ColumnDNS:
		return record.DNSHealthy, nil
	case ColumnPing:
		return record.PingHealthy, nil
	case ColumnHTTP:
		return record.HTTPHealthy, nil
	default:
		return record.Address, nil
	}
}

// Records returns a copy of the current snapshot.
func (s *Store) Records() []domain.Record {
	s.lock.RLock()
	defer s.lock.RUnlock()

	result := make([]domain.Record, len(s.records))
	copy(result, s.records)
	return result
}

func NewStore() *Store {
	return NewStoreFrom([]domain.Record{{Address: PlaceholderAddress}})
}

func NewStoreFrom(records []domain.Record) *Store {
	return &Store{
		records: records,
		lock:    sync.RWMutex{},
	}
}
