package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/shopfront/shopfront/internal/core/catalog"
)

type CategoryStore struct {
	mu    sync.RWMutex
	m     map[uuid.UUID]*catalog.Category
	order []uuid.UUID
}

func NewCategoryStore() *CategoryStore {
	return &CategoryStore{m: make(map[uuid.UUID]*catalog.Category)}
}

func (s *CategoryStore) Insert(ctx context.Context, cat *catalog.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.m[cat.ID]; !exists {
		s.order = append(s.order, cat.ID)
	}
	s.m[cat.ID] = cloneCategory(cat)
	return nil
}

func (s *CategoryStore) GetByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cat, ok := s.m[id]
	if !ok {
		return nil, nil
	}
	return cloneCategory(cat), nil
}

func (s *CategoryStore) GetByCode(ctx context.Context, code string) (*catalog.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.order {
		if s.m[id].Code == code {
			return cloneCategory(s.m[id]), nil
		}
	}
	return nil, nil
}

func (s *CategoryStore) List(ctx context.Context) ([]*catalog.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*catalog.Category, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, cloneCategory(s.m[id]))
	}
	return out, nil
}

func (s *CategoryStore) Update(ctx context.Context, cat *catalog.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[cat.ID]; !ok {
		return nil
	}
	s.m[cat.ID] = cloneCategory(cat)
	return nil
}

func (s *CategoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[id]; !ok {
		return nil
	}
	delete(s.m, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func cloneCategory(cat *catalog.Category) *catalog.Category {
	cp := *cat
	if cat.AttributeSchema != nil {
		cp.AttributeSchema = make(map[string]any, len(cat.AttributeSchema))
		for k, v := range cat.AttributeSchema {
			cp.AttributeSchema[k] = v
		}
	}
	return &cp
}
