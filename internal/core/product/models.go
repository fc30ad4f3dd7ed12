package product

import (
	"time"

	"github.com/google/uuid"

	"github.com/shopfront/shopfront/internal/core/listing"
)

// Product is a catalog record. The ID and SKU are assigned at creation and
// never change afterwards.
type Product struct {
	ID         uuid.UUID      `json:"id"`
	VendorID   uuid.UUID      `json:"vendor_id"`
	SKU        string         `json:"sku"`
	Name       string         `json:"name"`
	Category   string         `json:"category"` // category code
	Kind       string         `json:"kind"`
	Price      float64        `json:"price"`
	Stock      int            `json:"stock"`
	Status     string         `json:"status"`
	Attributes map[string]any `json:"attributes,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// Product statuses.
const (
	StatusActive   = "active"
	StatusDraft    = "draft"
	StatusArchived = "archived"
)

type CreateProductRequest struct {
	Name       string         `json:"name"`
	Category   string         `json:"category" binding:"required"`
	Kind       string         `json:"kind"`
	Price      float64        `json:"price"`
	Stock      int            `json:"stock"`
	Status     string         `json:"status"`
	Attributes map[string]any `json:"attributes"`
}

// UpdateProductRequest uses pointers so an absent field means "keep".
type UpdateProductRequest struct {
	Name       *string        `json:"name"`
	Price      *float64       `json:"price"`
	Stock      *int           `json:"stock"`
	Status     *string        `json:"status"`
	Attributes map[string]any `json:"attributes"`
}

// ListRequest carries the listing controls from the portal UI.
type ListRequest struct {
	Query    string
	Category string
	Status   string
	SortKey  string
	SortDir  string
	Page     int
	PageSize int
	VendorID uuid.UUID // zero value lists across vendors
}

type ListResponse struct {
	Products      []*Product `json:"products"`
	TotalFiltered int        `json:"total_filtered"`
	TotalPages    int        `json:"total_pages"`
	Page          int        `json:"page"`
	PageSize      int        `json:"page_size"`
}

// Columns is the product listing column set: which fields the text search
// touches, which headers sort, and how values render.
var Columns = []listing.Column{
	{Key: "name", Searchable: true, Sortable: true, Kind: listing.KindString, Format: listing.FormatTruncate},
	{Key: "sku", Searchable: true, Sortable: true, Kind: listing.KindString},
	{Key: "category", Sortable: true, Kind: listing.KindString},
	{Key: "price", Sortable: true, Kind: listing.KindNumber, Format: listing.FormatCurrency},
	{Key: "stock", Sortable: true, Kind: listing.KindNumber},
	{Key: "status", Sortable: true, Kind: listing.KindString, Format: listing.FormatBadge},
	{Key: "created_at", Sortable: true, Kind: listing.KindString, Format: listing.FormatDate},
}
