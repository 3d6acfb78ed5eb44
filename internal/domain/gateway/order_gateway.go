package gateway

import (
	"context"

	"github.com/marea-picante/pos-terminal/internal/domain/entity"
)

// OrderGateway is the terminal's client for the central restaurant backend.
// Order persistence is the backend's job; the terminal only composes, sends
// and reads back.
//
// CreateOrder must surface a register-closed rejection as
// apperror.ErrRegisterClosed (passing the backend message through verbatim)
// and every other backend failure as a submission error, so the operator can
// tell the two apart.
type OrderGateway interface {
	CreateOrder(ctx context.Context, order *entity.Order) (*entity.Order, error)
	AddLineItems(ctx context.Context, orderID uint, items []entity.OrderLineItem) error
	GetOrder(ctx context.Context, orderID uint) (*entity.Order, error)
	ListOrders(ctx context.Context) ([]entity.Order, error)

	// Catalog refresh sources.
	ListCategories(ctx context.Context) ([]entity.Category, error)
	ListProducts(ctx context.Context) ([]entity.Product, error)
	ListTables(ctx context.Context) ([]entity.DiningTable, error)

	// RegisterStatus reports whether the cash register is currently open.
	RegisterStatus(ctx context.Context) (*RegisterStatus, error)
}

// RegisterStatus is the backend's cash register state.
type RegisterStatus struct {
	Open     bool   `json:"open"`
	OpenedAt string `json:"opened_at,omitempty"`
}
