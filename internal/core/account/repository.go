package account

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the backing store for accounts. Lookups return (nil, nil)
// when no account matches.
type Repository interface {
	Insert(ctx context.Context, a *Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
	List(ctx context.Context) ([]*Account, error)
}
