package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Category groups products and optionally carries a JSON Schema that their
// attributes must satisfy.
type Category struct {
	ID              uuid.UUID      `json:"id"`
	Name            string         `json:"name"`
	Code            string         `json:"code"` // short uppercase code, stable once assigned
	Kind            string         `json:"kind"` // ready-made, custom or fabric
	AttributeSchema map[string]any `json:"attribute_schema,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

type CreateCategoryRequest struct {
	Name            string         `json:"name" binding:"required"`
	Code            string         `json:"code" binding:"required"`
	Kind            string         `json:"kind"`
	AttributeSchema map[string]any `json:"attribute_schema"`
}

type UpdateCategoryRequest struct {
	Name            string         `json:"name"`
	Kind            string         `json:"kind"`
	AttributeSchema map[string]any `json:"attribute_schema"`
}

type ListCategoriesResponse struct {
	Categories []*Category `json:"categories"`
	Total      int         `json:"total"`
}
