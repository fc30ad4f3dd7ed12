// Package memory provides in-memory repository adapters. Stores hold deep
// copies and hand out fresh snapshots on every read, so a collection
// reference a caller already holds never changes underneath it.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/shopfront/shopfront/internal/core/product"
)

type ProductStore struct {
	mu    sync.RWMutex
	m     map[uuid.UUID]*product.Product
	bySKU map[string]uuid.UUID
	order []uuid.UUID
}

func NewProductStore() *ProductStore {
	return &ProductStore{
		m:     make(map[uuid.UUID]*product.Product),
		bySKU: make(map[string]uuid.UUID),
	}
}

func (s *ProductStore) Insert(ctx context.Context, p *product.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.m[p.ID]; !exists {
		s.order = append(s.order, p.ID)
	}
	s.m[p.ID] = cloneProduct(p)
	s.bySKU[p.SKU] = p.ID
	return nil
}

func (s *ProductStore) GetByID(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.m[id]
	if !ok {
		return nil, nil
	}
	return cloneProduct(p), nil
}

func (s *ProductStore) GetBySKU(ctx context.Context, sku string) (*product.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.bySKU[sku]
	if !ok {
		return nil, nil
	}
	return cloneProduct(s.m[id]), nil
}

// List returns a snapshot of all products in insertion order.
func (s *ProductStore) List(ctx context.Context) ([]*product.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*product.Product, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, cloneProduct(s.m[id]))
	}
	return out, nil
}

func (s *ProductStore) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]*product.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*product.Product, 0)
	for _, id := range s.order {
		if p := s.m[id]; p.VendorID == vendorID {
			out = append(out, cloneProduct(p))
		}
	}
	return out, nil
}

func (s *ProductStore) Update(ctx context.Context, p *product.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.m[p.ID]
	if !ok {
		return nil
	}
	if prev.SKU != p.SKU {
		delete(s.bySKU, prev.SKU)
		s.bySKU[p.SKU] = p.ID
	}
	s.m[p.ID] = cloneProduct(p)
	return nil
}

func (s *ProductStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.m[id]
	if !ok {
		return nil
	}
	delete(s.m, id)
	delete(s.bySKU, p.SKU)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func cloneProduct(p *product.Product) *product.Product {
	cp := *p
	if p.Attributes != nil {
		cp.Attributes = make(map[string]any, len(p.Attributes))
		for k, v := range p.Attributes {
			cp.Attributes[k] = v
		}
	}
	return &cp
}
