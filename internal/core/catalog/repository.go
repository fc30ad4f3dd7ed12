package catalog

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the backing store for categories. Lookups return (nil, nil)
// when no category matches; the service turns that into ErrNotFound.
type Repository interface {
	Insert(ctx context.Context, cat *Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*Category, error)
	GetByCode(ctx context.Context, code string) (*Category, error)
	List(ctx context.Context) ([]*Category, error)
	Update(ctx context.Context, cat *Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}
