package request

// CreateDraftRequest starts a new composition. TargetOrderID switches the
// draft into addition mode, appending to an existing backend order.
type CreateDraftRequest struct {
	TargetOrderID *uint `json:"target_order_id" binding:"omitempty,min=1"`
}

// ToggleTableRequest flips one table selection. Number 0 is the take-away
// sentinel.
type ToggleTableRequest struct {
	Number *int `json:"number" binding:"required,min=0"`
}

// AdjustQuantityRequest applies a signed delta to one product variant.
type AdjustQuantityRequest struct {
	ProductID uint   `json:"product_id" binding:"required,min=1"`
	Variant   string `json:"variant" binding:"required,oneof=personal fuente"`
	Delta     int    `json:"delta" binding:"required"`
}

// SetCommentRequest attaches a kitchen note to one selected variant.
type SetCommentRequest struct {
	ProductID uint   `json:"product_id" binding:"required,min=1"`
	Variant   string `json:"variant" binding:"required,oneof=personal fuente"`
	Comment   string `json:"comment" binding:"max=255"`
}

// SetDeliveryRequest flips the delivery switch. The charge is the
// operator-entered fee in decimal soles.
type SetDeliveryRequest struct {
	Enabled      *bool   `json:"enabled" binding:"required"`
	CustomerName string  `json:"customer_name" binding:"max=150"`
	Charge       float64 `json:"charge" binding:"min=0"`
}
