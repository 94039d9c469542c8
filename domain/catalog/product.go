// Package catalog holds the client-side view of the product catalog.
package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog entity, optionally carrying variants
type Product struct {
	ID          uuid.UUID        `json:"id"`
	CompanyID   uuid.UUID        `json:"company_id"`
	SKU         string           `json:"sku"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	CategoryID  *uuid.UUID       `json:"category_id,omitempty"`
	BrandID     *uuid.UUID       `json:"brand_id,omitempty"`
	UnitID      *uuid.UUID       `json:"unit_id,omitempty"`
	Price       decimal.Decimal  `json:"price"`
	Cost        decimal.Decimal  `json:"cost"`
	Barcode     string           `json:"barcode"`
	ImageURL    string           `json:"image_url"`
	IsActive    bool             `json:"is_active"`
	HasVariants bool             `json:"has_variants"`
	Variants    []ProductVariant `json:"variants,omitempty"`
	Stock       decimal.Decimal  `json:"stock"` // snapshot for the requesting branch
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// ProductVariant is a sellable variation of a parent product
type ProductVariant struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"` // e.g. "Red / XL"
	Price     decimal.Decimal `json:"price"`
	Barcode   string          `json:"barcode"`
	IsActive  bool            `json:"is_active"`
}

// Category groups products for navigation and reporting
type Category struct {
	ID        uuid.UUID  `json:"id"`
	CompanyID uuid.UUID  `json:"company_id"`
	Name      string     `json:"name"`
	ParentID  *uuid.UUID `json:"parent_id,omitempty"`
}

// Brand is a product manufacturer/label
type Brand struct {
	ID        uuid.UUID `json:"id"`
	CompanyID uuid.UUID `json:"company_id"`
	Name      string    `json:"name"`
}

// UnitOfMeasure is the unit products are counted and sold in
type UnitOfMeasure struct {
	ID           uuid.UUID `json:"id"`
	CompanyID    uuid.UUID `json:"company_id"`
	Name         string    `json:"name"`
	Abbreviation string    `json:"abbreviation"`
}

// InStock reports whether the last known stock snapshot covers the quantity
func (p *Product) InStock(qty decimal.Decimal) bool {
	return p.Stock.GreaterThanOrEqual(qty)
}
