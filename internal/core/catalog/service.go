package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("category not found")
	ErrAlreadyExists = errors.New("category already exists")
)

const defaultKind = "ready-made"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req *CreateCategoryRequest) (*Category, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))

	existing, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyExists
	}

	kind := req.Kind
	if kind == "" {
		kind = defaultKind
	}

	now := time.Now().UTC()
	cat := &Category{
		ID:              uuid.New(),
		Name:            req.Name,
		Code:            code,
		Kind:            kind,
		AttributeSchema: req.AttributeSchema,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Insert(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Category, error) {
	cat, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, ErrNotFound
	}
	return cat, nil
}

func (s *Service) GetByCode(ctx context.Context, code string) (*Category, error) {
	cat, err := s.repo.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, ErrNotFound
	}
	return cat, nil
}

func (s *Service) List(ctx context.Context) (*ListCategoriesResponse, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []*Category{}
	}
	return &ListCategoriesResponse{Categories: categories, Total: len(categories)}, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *UpdateCategoryRequest) (*Category, error) {
	cat, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, ErrNotFound
	}

	if req.Name != "" {
		cat.Name = req.Name
	}
	if req.Kind != "" {
		cat.Kind = req.Kind
	}
	if req.AttributeSchema != nil {
		cat.AttributeSchema = req.AttributeSchema
	}
	cat.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	cat, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if cat == nil {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

// Schema returns the attribute schema for a category code.
func (s *Service) Schema(ctx context.Context, code string) (map[string]any, error) {
	cat, err := s.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return cat.AttributeSchema, nil
}
