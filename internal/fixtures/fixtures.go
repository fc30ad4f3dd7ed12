// Package fixtures loads the mock catalog datasets used to seed a store.
package fixtures

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/shopfront/shopfront/internal/core/account"
	"github.com/shopfront/shopfront/internal/core/catalog"
	"github.com/shopfront/shopfront/internal/core/product"
)

// File is the parsed fixture document.
type File struct {
	Vendors    []VendorFixture   `yaml:"vendors"`
	Categories []CategoryFixture `yaml:"categories"`
	Products   []ProductFixture  `yaml:"products"`
}

type VendorFixture struct {
	Email    string `yaml:"email"`
	Name     string `yaml:"name"`
	Password string `yaml:"password"`
}

type CategoryFixture struct {
	Name            string         `yaml:"name"`
	Code            string         `yaml:"code"`
	Kind            string         `yaml:"kind"`
	AttributeSchema map[string]any `yaml:"attribute_schema"`
}

type ProductFixture struct {
	Name       string         `yaml:"name"`
	Category   string         `yaml:"category"`
	Kind       string         `yaml:"kind"`
	Vendor     string         `yaml:"vendor"` // vendor email
	Price      float64        `yaml:"price"`
	Stock      int            `yaml:"stock"`
	Status     string         `yaml:"status"`
	Attributes map[string]any `yaml:"attributes"`
}

// Load parses a fixture file.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fixtures: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("fixtures: parse %s: %w", path, err)
	}
	return &f, nil
}

// Seed pushes the fixture data through the services so every record takes
// the same validation and SKU-generation path as one created through the
// API. Returns the number of products seeded.
func Seed(ctx context.Context, f *File, accounts *account.Service, categories *catalog.Service, products *product.Service) (int, error) {
	vendors := make(map[string]*account.Account, len(f.Vendors))
	for _, vf := range f.Vendors {
		resp, err := accounts.Create(ctx, &account.CreateAccountRequest{
			Email:    vf.Email,
			Password: vf.Password,
			Name:     vf.Name,
			Role:     account.RoleVendor,
		})
		if err != nil {
			return 0, fmt.Errorf("fixtures: vendor %s: %w", vf.Email, err)
		}
		vendors[vf.Email] = resp.Account
	}

	for _, cf := range f.Categories {
		if _, err := categories.Create(ctx, &catalog.CreateCategoryRequest{
			Name:            cf.Name,
			Code:            cf.Code,
			Kind:            cf.Kind,
			AttributeSchema: cf.AttributeSchema,
		}); err != nil {
			return 0, fmt.Errorf("fixtures: category %s: %w", cf.Code, err)
		}
	}

	seeded := 0
	for _, pf := range f.Products {
		vendor, ok := vendors[pf.Vendor]
		if !ok {
			return seeded, fmt.Errorf("fixtures: product %q references unknown vendor %q", pf.Name, pf.Vendor)
		}
		if _, err := products.Create(ctx, vendor.ID, &product.CreateProductRequest{
			Name:       pf.Name,
			Category:   pf.Category,
			Kind:       pf.Kind,
			Price:      pf.Price,
			Stock:      pf.Stock,
			Status:     pf.Status,
			Attributes: pf.Attributes,
		}); err != nil {
			return seeded, fmt.Errorf("fixtures: product %q: %w", pf.Name, err)
		}
		seeded++
	}
	return seeded, nil
}
