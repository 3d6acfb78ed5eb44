package entity

import (
	"encoding/json"
	"time"

	"github.com/marea-picante/pos-terminal/internal/domain/enum"
)

// Category groups products for browsing. Cached locally from the backend.
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	UpdatedAt time.Time `json:"-"`
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categories"
}

// DiningTable is a physical table in the restaurant. Number 0 is never a
// real table; the take-away sentinel only exists inside a draft selection.
type DiningTable struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Number    int       `gorm:"not null;uniqueIndex" json:"number"`
	Status    string    `gorm:"size:20" json:"status"`
	UpdatedAt time.Time `json:"-"`
}

// TableName returns the table name for the DiningTable model
func (DiningTable) TableName() string {
	return "dining_tables"
}

// Product is a catalog item. A product prices the personal variant, the
// fuente variant, or both; prices are stored in cents and a zero price means
// the variant is not offered.
type Product struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	Name               string    `gorm:"size:150;not null;index" json:"name"`
	CategoryID         uint      `gorm:"not null;index" json:"category_id"`
	PricePersonalCents int64     `gorm:"default:0" json:"-"`
	PriceFuenteCents   int64     `gorm:"default:0" json:"-"`
	UpdatedAt          time.Time `json:"-"`

	Category Category `gorm:"foreignKey:CategoryID" json:"-"`
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p Product) MarshalJSON() ([]byte, error) {
	type Alias Product
	return json.Marshal(&struct {
		Alias
		PricePersonal float64 `json:"price_personal"`
		PriceFuente   float64 `json:"price_fuente"`
	}{
		Alias:         Alias(p),
		PricePersonal: float64(p.PricePersonalCents) / 100,
		PriceFuente:   float64(p.PriceFuenteCents) / 100,
	})
}

// HasPersonal reports whether the personal variant is priced.
func (p *Product) HasPersonal() bool {
	return p.PricePersonalCents > 0
}

// HasFuente reports whether the fuente variant is priced.
func (p *Product) HasFuente() bool {
	return p.PriceFuenteCents > 0
}

// HasBothVariants reports whether the product prices both variants, which
// controls the " (Personal)"/" (Fuente)" name suffix on line items.
func (p *Product) HasBothVariants() bool {
	return p.HasPersonal() && p.HasFuente()
}

// Orderable reports whether at least one variant is priced.
func (p *Product) Orderable() bool {
	return p.HasPersonal() || p.HasFuente()
}

// PriceCents returns the unit price for a variant and whether the product
// offers that variant at all.
func (p *Product) PriceCents(variant enum.PriceVariant) (int64, bool) {
	switch variant {
	case enum.VariantPersonal:
		return p.PricePersonalCents, p.HasPersonal()
	case enum.VariantFuente:
		return p.PriceFuenteCents, p.HasFuente()
	}
	return 0, false
}

// DisplayName returns the name used on line items: the variant suffix is
// appended only when the product prices both variants.
func (p *Product) DisplayName(variant enum.PriceVariant) string {
	if p.HasBothVariants() {
		return p.Name + variant.Suffix()
	}
	return p.Name
}
