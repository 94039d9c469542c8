package api

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/erp/console/domain/catalog"
	"github.com/erp/console/domain/shared"
	"github.com/erp/console/saga"
	"github.com/erp/console/transport"
)

// CatalogService wraps the product, category, brand and unit endpoints
type CatalogService struct {
	t   *transport.Client
	log *zap.Logger
}

// ListProducts returns products with their stock snapshot for the branch
func (s *CatalogService) ListProducts(ctx context.Context, opts shared.ListOptions) ([]catalog.Product, *shared.Meta, error) {
	var out []catalog.Product
	meta, err := s.t.Get(ctx, "/products", &out, transport.WithQuery(opts.Query()))
	if err != nil {
		return nil, nil, err
	}
	return out, meta, nil
}

// GetProduct returns one product with variants
func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var out catalog.Product
	if _, err := s.t.Get(ctx, "/products/"+id.String(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ProductRequest is the create/update product payload
type ProductRequest struct {
	SKU         string          `json:"sku" validate:"required"`
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	CategoryID  *uuid.UUID      `json:"category_id,omitempty"`
	BrandID     *uuid.UUID      `json:"brand_id,omitempty"`
	UnitID      *uuid.UUID      `json:"unit_id,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Cost        decimal.Decimal `json:"cost"`
	Barcode     string          `json:"barcode"`
}

// VariantRequest is the create-variant payload
type VariantRequest struct {
	SKU     string          `json:"sku" validate:"required"`
	Name    string          `json:"name" validate:"required"`
	Price   decimal.Decimal `json:"price"`
	Barcode string          `json:"barcode"`
}

// CreateProduct creates a product
func (s *CatalogService) CreateProduct(ctx context.Context, req ProductRequest) (*catalog.Product, error) {
	if err := checkPayload(req); err != nil {
		return nil, err
	}
	var out catalog.Product
	if _, err := s.t.Post(ctx, "/products", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProduct updates a product
func (s *CatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, req ProductRequest) (*catalog.Product, error) {
	if err := checkPayload(req); err != nil {
		return nil, err
	}
	var out catalog.Product
	if _, err := s.t.Put(ctx, "/products/"+id.String(), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteProduct removes a product
func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return s.t.Delete(ctx, "/products/"+id.String())
}

// CreateVariant creates one variant under a product
func (s *CatalogService) CreateVariant(ctx context.Context, productID uuid.UUID, req VariantRequest) (*catalog.ProductVariant, error) {
	if err := checkPayload(req); err != nil {
		return nil, err
	}
	var out catalog.ProductVariant
	if _, err := s.t.Post(ctx, "/products/"+productID.String()+"/variants", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateProductWithVariants creates the parent product and then each
// variant as separate requests, since the backend has no atomic
// multi-entity endpoint. The returned report carries per-step status so
// a partial failure can be shown as such instead of a generic error;
// variants that failed are simply missing from the created product.
func (s *CatalogService) CreateProductWithVariants(ctx context.Context, req ProductRequest, variants []VariantRequest) (*catalog.Product, *saga.Report, error) {
	var created *catalog.Product

	steps := []saga.Step{
		{
			Name:     "create product",
			Critical: true,
			Do: func(ctx context.Context) error {
				p, err := s.CreateProduct(ctx, req)
				if err != nil {
					return err
				}
				created = p
				return nil
			},
		},
	}
	for i := range variants {
		v := variants[i]
		steps = append(steps, saga.Step{
			Name: fmt.Sprintf("create variant %s", v.SKU),
			Do: func(ctx context.Context) error {
				variant, err := s.CreateVariant(ctx, created.ID, v)
				if err != nil {
					return err
				}
				created.Variants = append(created.Variants, *variant)
				return nil
			},
		})
	}

	report := saga.Run(ctx, s.log, steps)
	if created == nil {
		return nil, report, report.Error()
	}
	if report.Failed > 0 {
		created.HasVariants = len(created.Variants) > 0
		return created, report, report.Error()
	}
	created.HasVariants = len(created.Variants) > 0
	return created, report, nil
}

// ListCategories returns the company's categories
func (s *CatalogService) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	var out []catalog.Category
	if _, err := s.t.Get(ctx, "/categories", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// NamedRequest is the minimal create/update payload shared by categories,
// brands and units
type NamedRequest struct {
	Name string `json:"name" validate:"required"`
}

// CreateCategory creates a category
func (s *CatalogService) CreateCategory(ctx context.Context, req NamedRequest) (*catalog.Category, error) {
	if err := checkPayload(req); err != nil {
		return nil, err
	}
	var out catalog.Category
	if _, err := s.t.Post(ctx, "/categories", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCategory removes a category
func (s *CatalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return s.t.Delete(ctx, "/categories/"+id.String())
}

// ListBrands returns the company's brands
func (s *CatalogService) ListBrands(ctx context.Context) ([]catalog.Brand, error) {
	var out []catalog.Brand
	if _, err := s.t.Get(ctx, "/brands", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateBrand creates a brand
func (s *CatalogService) CreateBrand(ctx context.Context, req NamedRequest) (*catalog.Brand, error) {
	if err := checkPayload(req); err != nil {
		return nil, err
	}
	var out catalog.Brand
	if _, err := s.t.Post(ctx, "/brands", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListUnits returns the company's units of measure
func (s *CatalogService) ListUnits(ctx context.Context) ([]catalog.UnitOfMeasure, error) {
	var out []catalog.UnitOfMeasure
	if _, err := s.t.Get(ctx, "/units", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UnitRequest is the create-unit payload
type UnitRequest struct {
	Name         string `json:"name" validate:"required"`
	Abbreviation string `json:"abbreviation" validate:"required"`
}

// CreateUnit creates a unit of measure
func (s *CatalogService) CreateUnit(ctx context.Context, req UnitRequest) (*catalog.UnitOfMeasure, error) {
	if err := checkPayload(req); err != nil {
		return nil, err
	}
	var out catalog.UnitOfMeasure
	if _, err := s.t.Post(ctx, "/units", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
