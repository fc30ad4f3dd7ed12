package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/shopfront/shopfront/internal/core/product"
)

type ProductRepository struct {
	db *Client
}

func NewProductRepository(db *Client) *ProductRepository {
	return &ProductRepository{db: db}
}

const productColumns = `id, vendor_id, sku, name, category, kind, price, stock, status, attributes, created_at, updated_at`

func (r *ProductRepository) Insert(ctx context.Context, p *product.Product) error {
	attrs, err := json.Marshal(p.Attributes)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO products (id, vendor_id, sku, name, category, kind, price, stock, status, attributes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err = r.db.DB.ExecContext(ctx, query,
		p.ID, p.VendorID, p.SKU, p.Name, p.Category, p.Kind,
		p.Price, p.Stock, p.Status, attrs, p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.scanProduct(r.db.DB.QueryRowContext(ctx, query, id))
}

func (r *ProductRepository) GetBySKU(ctx context.Context, sku string) (*product.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE sku = $1`
	return r.scanProduct(r.db.DB.QueryRowContext(ctx, query, sku))
}

// List returns every product in insertion order. The listing pipeline does
// search, filter, sort and pagination in memory over this snapshot.
func (r *ProductRepository) List(ctx context.Context) ([]*product.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at ASC, id ASC`
	rows, err := r.db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanProducts(rows)
}

func (r *ProductRepository) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]*product.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE vendor_id = $1 ORDER BY created_at ASC, id ASC`
	rows, err := r.db.DB.QueryContext(ctx, query, vendorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanProducts(rows)
}

func (r *ProductRepository) Update(ctx context.Context, p *product.Product) error {
	attrs, err := json.Marshal(p.Attributes)
	if err != nil {
		return err
	}

	query := `
		UPDATE products
		SET name = $2, price = $3, stock = $4, status = $5, attributes = $6, updated_at = $7
		WHERE id = $1`

	_, err = r.db.DB.ExecContext(ctx, query,
		p.ID, p.Name, p.Price, p.Stock, p.Status, attrs, p.UpdatedAt,
	)
	return err
}

func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.DB.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	return err
}

func (r *ProductRepository) scanProduct(row *sql.Row) (*product.Product, error) {
	p := &product.Product{}
	var attrs []byte

	err := row.Scan(
		&p.ID, &p.VendorID, &p.SKU, &p.Name, &p.Category, &p.Kind,
		&p.Price, &p.Stock, &p.Status, &attrs, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	json.Unmarshal(attrs, &p.Attributes)
	return p, nil
}

func (r *ProductRepository) scanProducts(rows *sql.Rows) ([]*product.Product, error) {
	var products []*product.Product
	for rows.Next() {
		p := &product.Product{}
		var attrs []byte

		if err := rows.Scan(
			&p.ID, &p.VendorID, &p.SKU, &p.Name, &p.Category, &p.Kind,
			&p.Price, &p.Stock, &p.Status, &attrs, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}

		json.Unmarshal(attrs, &p.Attributes)
		products = append(products, p)
	}
	return products, rows.Err()
}
