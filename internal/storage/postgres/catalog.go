package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/shopfront/shopfront/internal/core/catalog"
)

type CategoryRepository struct {
	db *Client
}

func NewCategoryRepository(db *Client) *CategoryRepository {
	return &CategoryRepository{db: db}
}

const categoryColumns = `id, name, code, kind, attribute_schema, created_at, updated_at`

func (r *CategoryRepository) Insert(ctx context.Context, cat *catalog.Category) error {
	schema, err := json.Marshal(cat.AttributeSchema)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO categories (id, name, code, kind, attribute_schema, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = r.db.DB.ExecContext(ctx, query,
		cat.ID, cat.Name, cat.Code, cat.Kind, schema, cat.CreatedAt, cat.UpdatedAt,
	)
	return err
}

func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`
	return r.scanCategory(r.db.DB.QueryRowContext(ctx, query, id))
}

func (r *CategoryRepository) GetByCode(ctx context.Context, code string) (*catalog.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE code = $1`
	return r.scanCategory(r.db.DB.QueryRowContext(ctx, query, code))
}

func (r *CategoryRepository) List(ctx context.Context) ([]*catalog.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories ORDER BY created_at ASC, id ASC`
	rows, err := r.db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*catalog.Category
	for rows.Next() {
		cat := &catalog.Category{}
		var schema []byte
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Code, &cat.Kind, &schema, &cat.CreatedAt, &cat.UpdatedAt); err != nil {
			return nil, err
		}
		json.Unmarshal(schema, &cat.AttributeSchema)
		categories = append(categories, cat)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) Update(ctx context.Context, cat *catalog.Category) error {
	schema, err := json.Marshal(cat.AttributeSchema)
	if err != nil {
		return err
	}

	query := `
		UPDATE categories
		SET name = $2, kind = $3, attribute_schema = $4, updated_at = $5
		WHERE id = $1`

	_, err = r.db.DB.ExecContext(ctx, query, cat.ID, cat.Name, cat.Kind, schema, cat.UpdatedAt)
	return err
}

func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.DB.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	return err
}

func (r *CategoryRepository) scanCategory(row *sql.Row) (*catalog.Category, error) {
	cat := &catalog.Category{}
	var schema []byte

	err := row.Scan(&cat.ID, &cat.Name, &cat.Code, &cat.Kind, &schema, &cat.CreatedAt, &cat.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	json.Unmarshal(schema, &cat.AttributeSchema)
	return cat, nil
}
