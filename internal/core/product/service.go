package product

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shopfront/shopfront/internal/core/catalog"
	"github.com/shopfront/shopfront/internal/core/form"
	"github.com/shopfront/shopfront/internal/core/listing"
	"github.com/shopfront/shopfront/internal/core/validation"
)

var (
	ErrNotFound         = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrForbidden        = errors.New("product belongs to another vendor")
)

// ValidationError carries per-field messages from the form layer back to
// the handler as data.
type ValidationError struct {
	Fields form.Result `json:"fields"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %d field(s)", len(e.Fields))
}

// AsValidationError extracts field messages from err, or nil.
func AsValidationError(err error) *ValidationError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}

// rules is the product field rule set, applied to every create and update
// draft before the attribute schema check.
var rules = form.MustCompile([]form.RuleSpec{
	{Field: "name", Required: true, MinLength: form.Int(3), MaxLength: form.Int(120)},
	{Field: "kind", Required: true, Pattern: `^(ready-made|custom|fabric)$`, Message: "Invalid product kind"},
	{Field: "status", Required: true, Pattern: `^(active|draft|archived)$`, Message: "Invalid status"},
	{Field: "price", Required: true, Min: form.Float(0.01), Max: form.Float(10_000_000)},
	{Field: "stock", Min: form.Float(0), Max: form.Float(1_000_000)},
})

type Service struct {
	repo       Repository
	catalogSvc *catalog.Service
	schemas    *validation.Validator
}

func NewService(repo Repository, catalogSvc *catalog.Service, schemas *validation.Validator) *Service {
	return &Service{repo: repo, catalogSvc: catalogSvc, schemas: schemas}
}

func (s *Service) Create(ctx context.Context, vendorID uuid.UUID, req *CreateProductRequest) (*Product, error) {
	status := req.Status
	if status == "" {
		status = StatusDraft
	}

	cat, err := s.catalogSvc.GetByCode(ctx, req.Category)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	kind := req.Kind
	if kind == "" {
		kind = cat.Kind
	}

	draft := form.NewDraft(map[string]any{
		"name":   req.Name,
		"kind":   kind,
		"status": status,
		"price":  req.Price,
		"stock":  req.Stock,
	})
	if res := draft.Submit(rules); !res.Valid() {
		return nil, &ValidationError{Fields: res}
	}

	if err := s.schemas.Validate(req.Attributes, cat.AttributeSchema); err != nil {
		return nil, err
	}

	sku := form.UniqueSKU(req.Name, cat.Name, kind, func(candidate string) bool {
		existing, lookupErr := s.repo.GetBySKU(ctx, candidate)
		return lookupErr == nil && existing != nil
	})

	now := time.Now().UTC()
	p := &Product{
		ID:         uuid.New(),
		VendorID:   vendorID,
		SKU:        sku,
		Name:       req.Name,
		Category:   cat.Code,
		Kind:       kind,
		Price:      req.Price,
		Stock:      req.Stock,
		Status:     status,
		Attributes: req.Attributes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Insert(ctx, p); err != nil {
		return nil, err
	}
	draft.MarkSubmitted()
	return p, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *Service) GetBySKU(ctx context.Context, sku string) (*Product, error) {
	p, err := s.repo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

// List derives the requested page from the full collection snapshot. Page
// defaults to 1 and the page size snaps onto the allowed set, so the
// pipeline's preconditions always hold.
func (s *Service) List(ctx context.Context, req *ListRequest) (*ListResponse, error) {
	var (
		products []*Product
		err      error
	)
	if req.VendorID != uuid.Nil {
		products, err = s.repo.ListByVendor(ctx, req.VendorID)
	} else {
		products, err = s.repo.List(ctx)
	}
	if err != nil {
		return nil, err
	}

	page := req.Page
	if page <= 0 {
		page = 1
	}
	dir := listing.Ascending
	if req.SortDir == string(listing.Descending) {
		dir = listing.Descending
	}
	cfg := listing.Config{
		Search: req.Query,
		Filters: map[string]string{
			"category": req.Category,
			"status":   req.Status,
		},
		SortKey:  req.SortKey,
		SortDir:  dir,
		Page:     page,
		PageSize: listing.NormalizePageSize(req.PageSize),
	}

	records := make([]listing.Record, len(products))
	byID := make(map[string]*Product, len(products))
	for i, p := range products {
		records[i] = asRecord(p)
		byID[p.ID.String()] = p
	}

	derived, err := listing.DerivePage(records, Columns, cfg)
	if err != nil {
		return nil, err
	}

	rows := make([]*Product, 0, len(derived.Rows))
	for _, rec := range derived.Rows {
		if id, ok := rec["id"].(string); ok {
			if p, found := byID[id]; found {
				rows = append(rows, p)
			}
		}
	}

	return &ListResponse{
		Products:      rows,
		TotalFiltered: derived.TotalFiltered,
		TotalPages:    derived.TotalPages,
		Page:          cfg.Page,
		PageSize:      cfg.PageSize,
	}, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, vendorID uuid.UUID, req *UpdateProductRequest) (*Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	if vendorID != uuid.Nil && p.VendorID != vendorID {
		return nil, ErrForbidden
	}

	draft := form.NewDraft(map[string]any{
		"name":   p.Name,
		"kind":   p.Kind,
		"status": p.Status,
		"price":  p.Price,
		"stock":  p.Stock,
	})
	if req.Name != nil {
		draft.Set("name", *req.Name)
	}
	if req.Price != nil {
		draft.Set("price", *req.Price)
	}
	if req.Stock != nil {
		draft.Set("stock", *req.Stock)
	}
	if req.Status != nil {
		draft.Set("status", *req.Status)
	}
	if res := draft.Submit(rules); !res.Valid() {
		return nil, &ValidationError{Fields: res}
	}

	if req.Attributes != nil {
		cat, catErr := s.catalogSvc.GetByCode(ctx, p.Category)
		if catErr != nil {
			if errors.Is(catErr, catalog.ErrNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, catErr
		}
		if p.Attributes == nil {
			p.Attributes = map[string]any{}
		}
		for k, v := range req.Attributes {
			p.Attributes[k] = v
		}
		if err := s.schemas.Validate(p.Attributes, cat.AttributeSchema); err != nil {
			return nil, err
		}
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}
	if req.Status != nil {
		p.Status = *req.Status
	}
	p.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	draft.MarkSubmitted()
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID, vendorID uuid.UUID) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrNotFound
	}
	if vendorID != uuid.Nil && p.VendorID != vendorID {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}

// asRecord flattens a product into the listing pipeline's record shape.
func asRecord(p *Product) listing.Record {
	return listing.Record{
		"id":         p.ID.String(),
		"vendor_id":  p.VendorID.String(),
		"name":       p.Name,
		"sku":        p.SKU,
		"category":   p.Category,
		"kind":       p.Kind,
		"price":      p.Price,
		"stock":      p.Stock,
		"status":     p.Status,
		"created_at": p.CreatedAt.Format(time.RFC3339),
	}
}
