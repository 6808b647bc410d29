package ratelimitstore

import (
	"sync"

	"github.com/triswaplabs/triswap-backend/internal/model"
)

type MemoryStore struct {
	mux     sync.Mutex
	records map[string]model.RateLimitRecord
}

func NewMemoryStore() IStore {
	return &MemoryStore{
		records: make(map[string]model.RateLimitRecord),
	}
}

func (s *MemoryStore) Get(userAddress string) (model.RateLimitRecord, bool) {
	s.mux.Lock()
	defer s.mux.Unlock()

	record, ok := s.records[userAddress]
	return record, ok
}

func (s *MemoryStore) Mutate(userAddress string, fn func(*model.RateLimitRecord)) model.RateLimitRecord {
	s.mux.Lock()
	defer s.mux.Unlock()

	record := s.records[userAddress]
	fn(&record)
	s.records[userAddress] = record
	return record
}
