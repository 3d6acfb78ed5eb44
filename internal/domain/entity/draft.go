package entity

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/marea-picante/pos-terminal/internal/domain/enum"
	"gorm.io/gorm"
)

// Draft is an order under composition on this terminal. Exactly one session
// owns a draft at a time; it survives terminal restarts until submitted or
// reset. A draft with TargetOrderID set appends products to an existing
// backend order instead of creating a new one, and table selection is
// ignored in that mode.
type Draft struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TargetOrderID       *uint     `gorm:"index" json:"target_order_id,omitempty"`
	DeliveryEnabled     bool      `gorm:"default:false" json:"delivery_enabled"`
	CustomerName        string    `gorm:"size:150" json:"customer_name"`
	DeliveryChargeCents int64     `gorm:"default:0" json:"-"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`

	Tables []DraftTable `gorm:"foreignKey:DraftID;constraint:OnDelete:CASCADE" json:"tables"`
	Items  []DraftItem  `gorm:"foreignKey:DraftID;constraint:OnDelete:CASCADE" json:"items"`
}

// BeforeCreate generates a UUID before creating a new draft
func (d *Draft) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Draft model
func (Draft) TableName() string {
	return "drafts"
}

// DraftTable is one selected table on a draft. Number 0 is the take-away
// sentinel and is mutually exclusive with every other selection.
type DraftTable struct {
	ID      uint      `gorm:"primaryKey" json:"-"`
	DraftID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Number  int       `gorm:"not null" json:"number"`
}

// TableName returns the table name for the DraftTable model
func (DraftTable) TableName() string {
	return "draft_tables"
}

// DraftItem holds the per-variant quantities and comments for one selected
// product. An item whose quantities are both zero is deleted, never stored.
type DraftItem struct {
	ID              uint      `gorm:"primaryKey" json:"-"`
	DraftID         uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	ProductID       uint      `gorm:"not null;index" json:"product_id"`
	PersonalQty     int       `gorm:"default:0" json:"personal_qty"`
	FuenteQty       int       `gorm:"default:0" json:"fuente_qty"`
	PersonalComment string    `gorm:"size:255" json:"personal_comment,omitempty"`
	FuenteComment   string    `gorm:"size:255" json:"fuente_comment,omitempty"`
}

// TableName returns the table name for the DraftItem model
func (DraftItem) TableName() string {
	return "draft_items"
}

// Quantity returns the quantity stored for a variant.
func (i *DraftItem) Quantity(variant enum.PriceVariant) int {
	if variant == enum.VariantFuente {
		return i.FuenteQty
	}
	return i.PersonalQty
}

// SetQuantity stores the quantity for a variant.
func (i *DraftItem) SetQuantity(variant enum.PriceVariant, qty int) {
	if variant == enum.VariantFuente {
		i.FuenteQty = qty
		return
	}
	i.PersonalQty = qty
}

// Comment returns the free-text comment stored for a variant.
func (i *DraftItem) Comment(variant enum.PriceVariant) string {
	if variant == enum.VariantFuente {
		return i.FuenteComment
	}
	return i.PersonalComment
}

// SetComment stores the free-text comment for a variant.
func (i *DraftItem) SetComment(variant enum.PriceVariant, comment string) {
	if variant == enum.VariantFuente {
		i.FuenteComment = comment
		return
	}
	i.PersonalComment = comment
}

// Empty reports whether both variant quantities are zero.
func (i *DraftItem) Empty() bool {
	return i.PersonalQty <= 0 && i.FuenteQty <= 0
}

// TableNumbers returns the selected table numbers in ascending order.
func (d *Draft) TableNumbers() []int {
	numbers := make([]int, 0, len(d.Tables))
	for _, t := range d.Tables {
		numbers = append(numbers, t.Number)
	}
	sort.Ints(numbers)
	return numbers
}

// HasTable reports whether a table number is currently selected.
func (d *Draft) HasTable(number int) bool {
	for _, t := range d.Tables {
		if t.Number == number {
			return true
		}
	}
	return false
}

// Item returns the draft item for a product, or nil when the product is not
// selected.
func (d *Draft) Item(productID uint) *DraftItem {
	for i := range d.Items {
		if d.Items[i].ProductID == productID {
			return &d.Items[i]
		}
	}
	return nil
}

// HasItems reports whether any product quantity is set.
func (d *Draft) HasItems() bool {
	for i := range d.Items {
		if !d.Items[i].Empty() {
			return true
		}
	}
	return false
}

// IsAddition reports whether the draft appends to an existing backend order.
func (d *Draft) IsAddition() bool {
	return d.TargetOrderID != nil
}
