package models

import (
	"fmt"
	"time"
)

// ProductCategory groups catalog entries for the storefront tabs.
type ProductCategory string

const (
	CategoryFreeFire     ProductCategory = "free-fire"
	CategoryPubg         ProductCategory = "pubg"
	CategorySubscription ProductCategory = "subscription"
	CategoryOther        ProductCategory = "other"
)

// DefaultProductImage is used when an admin does not upload one.
const DefaultProductImage = "/placeholder.svg?height=150&width=200"

// Package is a purchasable denomination embedded in its product document.
// It has no identity outside the product; deleting the product removes it.
type Package struct {
	ID             string `bson:"id" json:"id"`
	Name           string `bson:"name" json:"name"`
	Price          int    `bson:"price" json:"price"`
	FormattedPrice string `bson:"formatted_price" json:"formatted_price"`
}

// Format recomputes the display string from the price. It is called on every
// write so the stored string can never drift from the price.
func (p *Package) Format(currencyPrefix string) {
	p.FormattedPrice = fmt.Sprintf("%s %d", currencyPrefix, p.Price)
}

// Product is a catalog document stored in MongoDB, keyed by a URL-safe
// string id that is immutable after creation.
type Product struct {
	ID          string          `bson:"_id" json:"id"`
	Title       string          `bson:"title" json:"title"`
	Category    ProductCategory `bson:"category" json:"category"`
	Description string          `bson:"description" json:"description"`
	Image       string          `bson:"image" json:"image"`
	Packages    []Package       `bson:"packages" json:"packages"`
	CreatedAt   time.Time       `bson:"created_at" json:"created_at"`
}

// FindPackage returns the embedded package with the given id.
func (p *Product) FindPackage(packageID string) (*Package, bool) {
	for i := range p.Packages {
		if p.Packages[i].ID == packageID {
			return &p.Packages[i], true
		}
	}
	return nil, false
}

// CreateProductRequest is the payload for POST /products (admin).
type CreateProductRequest struct {
	ID          string           `json:"id" binding:"required,max=64"`
	Title       string           `json:"title" binding:"required,max=100"`
	Category    ProductCategory  `json:"category" binding:"required,oneof=free-fire pubg subscription other"`
	Description string           `json:"description" binding:"required"`
	Image       string           `json:"image"`
	Packages    []PackageRequest `json:"packages" binding:"omitempty,dive"`
}

// UpdateProductRequest is the payload for PUT /products/:id (admin). The
// product id itself is immutable and absent here on purpose.
type UpdateProductRequest struct {
	Title       *string          `json:"title" binding:"omitempty,max=100"`
	Category    *ProductCategory `json:"category" binding:"omitempty,oneof=free-fire pubg subscription other"`
	Description *string          `json:"description"`
	Image       *string          `json:"image"`
}

// PackageRequest is the payload for package create/update. The formatted
// price is never accepted from callers.
type PackageRequest struct {
	Name  string `json:"name" binding:"required,max=100"`
	Price int    `json:"price" binding:"required"`
}
