package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

// MockRepository implements Repository over a slice.
type MockRepository struct {
	categories []*Category
}

func NewMockRepository() *MockRepository {
	return &MockRepository{}
}

func (m *MockRepository) Insert(ctx context.Context, cat *Category) error {
	cp := *cat
	m.categories = append(m.categories, &cp)
	return nil
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	for _, cat := range m.categories {
		if cat.ID == id {
			cp := *cat
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *MockRepository) GetByCode(ctx context.Context, code string) (*Category, error) {
	for _, cat := range m.categories {
		if cat.Code == code {
			cp := *cat
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *MockRepository) List(ctx context.Context) ([]*Category, error) {
	out := make([]*Category, len(m.categories))
	copy(out, m.categories)
	return out, nil
}

func (m *MockRepository) Update(ctx context.Context, cat *Category) error {
	for i, existing := range m.categories {
		if existing.ID == cat.ID {
			cp := *cat
			m.categories[i] = &cp
			return nil
		}
	}
	return nil
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	for i, cat := range m.categories {
		if cat.ID == id {
			m.categories = append(m.categories[:i], m.categories[i+1:]...)
			return nil
		}
	}
	return nil
}

func TestCreate_NormalizesCodeAndDefaultsKind(t *testing.T) {
	svc := NewService(NewMockRepository())

	cat, err := svc.Create(context.Background(), &CreateCategoryRequest{
		Name: "Sarees",
		Code: " sar ",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if cat.Code != "SAR" {
		t.Fatalf("code = %q, want SAR", cat.Code)
	}
	if cat.Kind != "ready-made" {
		t.Fatalf("kind = %q, want ready-made default", cat.Kind)
	}
	if cat.ID == uuid.Nil || cat.CreatedAt.IsZero() {
		t.Fatal("identity and timestamps should be set")
	}
}

func TestCreate_DuplicateCode(t *testing.T) {
	svc := NewService(NewMockRepository())

	if _, err := svc.Create(context.Background(), &CreateCategoryRequest{Name: "Sarees", Code: "SAR"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err := svc.Create(context.Background(), &CreateCategoryRequest{Name: "Other Sarees", Code: "sar"})
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("want ErrAlreadyExists, got %v", err)
	}
}

func TestUpdate_AppliesChanges(t *testing.T) {
	svc := NewService(NewMockRepository())

	cat, err := svc.Create(context.Background(), &CreateCategoryRequest{Name: "Sarees", Code: "SAR"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	schema := map[string]any{"type": "object"}
	updated, err := svc.Update(context.Background(), cat.ID, &UpdateCategoryRequest{
		Name:            "Silk Sarees",
		AttributeSchema: schema,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "Silk Sarees" {
		t.Fatalf("name = %q", updated.Name)
	}
	if updated.AttributeSchema == nil {
		t.Fatal("schema should be stored")
	}
	if !updated.UpdatedAt.After(updated.CreatedAt) && !updated.UpdatedAt.Equal(updated.CreatedAt) {
		t.Fatal("UpdatedAt should move forward")
	}
}

func TestUpdate_NotFound(t *testing.T) {
	svc := NewService(NewMockRepository())

	_, err := svc.Update(context.Background(), uuid.New(), &UpdateCategoryRequest{Name: "Ghost"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestDelete_ThenGetFails(t *testing.T) {
	svc := NewService(NewMockRepository())

	cat, err := svc.Create(context.Background(), &CreateCategoryRequest{Name: "Fabrics", Code: "FAB"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(context.Background(), cat.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(context.Background(), cat.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestSchema_ReturnsNilWithoutSchema(t *testing.T) {
	svc := NewService(NewMockRepository())

	if _, err := svc.Create(context.Background(), &CreateCategoryRequest{Name: "Kurtas", Code: "KUR"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	schema, err := svc.Schema(context.Background(), "KUR")
	if err != nil {
		t.Fatalf("Schema: %v", err)
	}
	if schema != nil {
		t.Fatalf("want nil schema, got %v", schema)
	}
}
