package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/shopfront/shopfront/internal/core/account"
)

type AccountStore struct {
	mu      sync.RWMutex
	m       map[uuid.UUID]*account.Account
	byEmail map[string]uuid.UUID
	order   []uuid.UUID
}

func NewAccountStore() *AccountStore {
	return &AccountStore{
		m:       make(map[uuid.UUID]*account.Account),
		byEmail: make(map[string]uuid.UUID),
	}
}

func (s *AccountStore) Insert(ctx context.Context, a *account.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.m[a.ID]; !exists {
		s.order = append(s.order, a.ID)
	}
	cp := *a
	s.m[a.ID] = &cp
	s.byEmail[a.Email] = a.ID
	return nil
}

func (s *AccountStore) GetByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.m[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (s *AccountStore) GetByEmail(ctx context.Context, email string) (*account.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[email]
	if !ok {
		return nil, nil
	}
	cp := *s.m[id]
	return &cp, nil
}

func (s *AccountStore) List(ctx context.Context) ([]*account.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*account.Account, 0, len(s.order))
	for _, id := range s.order {
		cp := *s.m[id]
		out = append(out, &cp)
	}
	return out, nil
}
