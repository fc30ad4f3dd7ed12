package product

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the backing store for products. The listing pipeline never
// sees the store directly: List hands back a snapshot collection in
// insertion order and the pipeline derives pages from that. Lookups return
// (nil, nil) when no product matches.
type Repository interface {
	Insert(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)
	GetBySKU(ctx context.Context, sku string) (*Product, error)
	List(ctx context.Context) ([]*Product, error)
	ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]*Product, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}
