package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/shopfront/shopfront/internal/core/account"
)

type AccountRepository struct {
	db *Client
}

func NewAccountRepository(db *Client) *AccountRepository {
	return &AccountRepository{db: db}
}

const accountColumns = `id, email, password_hash, name, role, status, created_at`

func (r *AccountRepository) Insert(ctx context.Context, a *account.Account) error {
	query := `
		INSERT INTO accounts (id, email, password_hash, name, role, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.DB.ExecContext(ctx, query,
		a.ID, a.Email, a.PasswordHash, a.Name, a.Role, a.Status, a.CreatedAt,
	)
	return err
}

func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	return r.scanAccount(r.db.DB.QueryRowContext(ctx, query, id))
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*account.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1`
	return r.scanAccount(r.db.DB.QueryRowContext(ctx, query, email))
}

func (r *AccountRepository) List(ctx context.Context) ([]*account.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY created_at ASC, id ASC`
	rows, err := r.db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*account.Account
	for rows.Next() {
		a := &account.Account{}
		if err := rows.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Name, &a.Role, &a.Status, &a.CreatedAt); err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (r *AccountRepository) scanAccount(row *sql.Row) (*account.Account, error) {
	a := &account.Account{}
	err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Name, &a.Role, &a.Status, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}
