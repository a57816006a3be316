// Package memory provides an in-process record store used by tests and the
// local development mode. It honors the same contract as the postgres store,
// including partial field updates and lazy sequence counters.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/neo0222/ftf-backoffice/internal/domain"
)

type partitionKey struct {
	shopName string
	foodType domain.FoodType
}

type Store struct {
	mu         sync.RWMutex
	partitions map[partitionKey]map[int][]byte
	sequences  map[partitionKey]int
}

func NewStore() *Store {
	return &Store{
		partitions: make(map[partitionKey]map[int][]byte),
		sequences:  make(map[partitionKey]int),
	}
}

func (s *Store) Get(_ context.Context, shopName string, foodType domain.FoodType, id int) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.partitions[partitionKey{shopName, foodType}][id]
	if !ok {
		return nil, fmt.Errorf("%s %s %d: %w", shopName, foodType, id, domain.ErrNotFound)
	}
	out := make([]byte, len(record))
	copy(out, record)
	return out, nil
}

func (s *Store) Put(_ context.Context, shopName string, foodType domain.FoodType, id int, record []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := partitionKey{shopName, foodType}
	if s.partitions[key] == nil {
		s.partitions[key] = make(map[int][]byte)
	}
	stored := make([]byte, len(record))
	copy(stored, record)
	s.partitions[key][id] = stored
	return nil
}

func (s *Store) UpdateField(_ context.Context, shopName string, foodType domain.FoodType, id int, field string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.partitions[partitionKey{shopName, foodType}][id]
	if !ok {
		return fmt.Errorf("%s %s %d: %w", shopName, foodType, id, domain.ErrNotFound)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(record, &doc); err != nil {
		return fmt.Errorf("decode %s %d: %w", foodType, id, err)
	}
	doc[field] = json.RawMessage(value)

	updated, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s %d: %w", foodType, id, err)
	}
	s.partitions[partitionKey{shopName, foodType}][id] = updated
	return nil
}

func (s *Store) QueryByPartition(_ context.Context, shopName string, foodType domain.FoodType) ([][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := s.partitions[partitionKey{shopName, foodType}]
	ids := make([]int, 0, len(records))
	for id := range records {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([][]byte, 0, len(ids))
	for _, id := range ids {
		record := records[id]
		copied := make([]byte, len(record))
		copy(copied, record)
		out = append(out, copied)
	}
	return out, nil
}

func (s *Store) NextSequence(_ context.Context, shopName string, foodType domain.FoodType) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := partitionKey{shopName, foodType}
	if _, ok := s.sequences[key]; !ok {
		s.sequences[key] = 1
	}
	return s.sequences[key], nil
}

func (s *Store) AdvanceSequence(_ context.Context, shopName string, foodType domain.FoodType) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := partitionKey{shopName, foodType}
	if _, ok := s.sequences[key]; !ok {
		s.sequences[key] = 1
	}
	s.sequences[key]++
	return nil
}

func (s *Store) Ping(_ context.Context) error {
	return nil
}
