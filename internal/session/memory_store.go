package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory.
// It suits a single instance and tests; sessions are lost on restart.
type MemoryStore struct {
	ttl       time.Duration
	mu        sync.RWMutex
	entries   map[string]memoryEntry
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
	now       func() time.Time
}

// NewMemoryStore creates a store whose sessions expire ttl after their last save.
// A background goroutine drops expired entries until Close is called.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	s := &MemoryStore{
		ttl:      ttl,
		entries:  make(map[string]memoryEntry),
		stopChan: make(chan struct{}),
		now:      time.Now,
	}

	s.wg.Add(1)
	go s.cleanupLoop()

	return s
}

// Get loads session data
func (s *MemoryStore) Get(ctx context.Context, id string) (*Data, error) {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()

	if !ok || !s.now().Before(e.expiresAt) {
		return nil, ErrNotFound
	}

	// Entries are stored serialized so callers never share the cart slice
	var data Data
	if err := json.Unmarshal(e.payload, &data); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &data, nil
}

// Save writes session data and resets its expiry
func (s *MemoryStore) Save(ctx context.Context, id string, data *Data) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = memoryEntry{payload: payload, expiresAt: s.now().Add(s.ttl)}
	return nil
}

// Delete removes a session
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}

// Close stops the cleanup goroutine. Safe to call multiple times.
func (s *MemoryStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
	})
	return nil
}

// Size returns the number of stored entries, expired or not
func (s *MemoryStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *MemoryStore) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

func (s *MemoryStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, id)
		}
	}
}

var _ Store = (*MemoryStore)(nil)
