package store

import (
	"context"
	"sync"

	"tickethub/models"
)

// MemoryStore is an in-process Store used by tests and by deployments that
// accept losing state on restart. It serializes through the same codec as
// the Redis store so both honor the same round-trip contract.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte

	// FailSaves makes every Save return an error; tests use it to exercise
	// the best-effort persistence policy.
	FailSaves error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string][]byte{}}
}

func (s *MemoryStore) Save(ctx context.Context, snap *models.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailSaves != nil {
		return s.FailSaves
	}

	enc, err := encodeSnapshot(snap)
	if err != nil {
		return err
	}

	s.data[KeyUsers] = enc.users
	s.data[KeyTickets] = enc.tickets
	s.data[KeyOrders] = enc.orders
	if enc.session != nil {
		s.data[KeySession] = enc.session
	} else {
		delete(s.data, KeySession)
	}
	return nil
}

func (s *MemoryStore) Load(ctx context.Context) (*models.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return decodeSnapshot(s.data[KeyUsers], s.data[KeyTickets], s.data[KeyOrders], s.data[KeySession]), nil
}

// Corrupt overwrites a stored key with an unreadable payload.
func (s *MemoryStore) Corrupt(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = []byte("{not json")
}
