package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/marea-picante/pos-terminal/internal/domain/entity"
	"github.com/marea-picante/pos-terminal/internal/domain/gateway"
	"github.com/marea-picante/pos-terminal/internal/domain/repository"
	"github.com/marea-picante/pos-terminal/pkg/apperror"
	"github.com/marea-picante/pos-terminal/pkg/logger"
	"github.com/marea-picante/pos-terminal/pkg/pagination"
	"github.com/marea-picante/pos-terminal/pkg/printer"
)

// OrderService owns the submission flow: build the order from its draft,
// send it to the backend, clear the draft, then print the tickets. Printing
// is strictly best effort; a created order is never rolled back because
// paper ran out.
type OrderService struct {
	composer  *ComposerService
	draftRepo repository.DraftRepository
	gateway   gateway.OrderGateway
	printers  *printer.Manager
	tickets   *TicketFormatter
}

// NewOrderService creates a new order service
func NewOrderService(
	composer *ComposerService,
	draftRepo repository.DraftRepository,
	gw gateway.OrderGateway,
	printers *printer.Manager,
	tickets *TicketFormatter,
) *OrderService {
	return &OrderService{
		composer:  composer,
		draftRepo: draftRepo,
		gateway:   gw,
		printers:  printers,
		tickets:   tickets,
	}
}

// SubmitResult reports a completed submission. PrintWarning is set when the
// order reached the backend but one or more tickets did not print.
type SubmitResult struct {
	Order        *entity.Order `json:"order"`
	Printed      bool          `json:"printed"`
	PrintWarning string        `json:"print_warning,omitempty"`
}

// Preview builds the order a draft would submit, without touching the
// backend or the draft.
func (s *OrderService) Preview(ctx context.Context, draftID uuid.UUID) (*entity.Order, error) {
	draft, err := s.composer.GetDraft(ctx, draftID)
	if err != nil {
		return nil, err
	}
	return s.composer.BuildOrder(ctx, draft)
}

// Submit finalizes a draft. An empty selection fails before any network
// call. On success the draft is deleted and tickets are printed: customer
// plus kitchen for a new order, an added-items kitchen copy for an addition.
func (s *OrderService) Submit(ctx context.Context, draftID uuid.UUID) (*SubmitResult, error) {
	draft, err := s.composer.GetDraft(ctx, draftID)
	if err != nil {
		return nil, err
	}

	order, err := s.composer.BuildOrder(ctx, draft)
	if err != nil {
		return nil, err
	}

	var result *SubmitResult
	if draft.IsAddition() {
		result, err = s.submitAddition(ctx, draft, order)
	} else {
		result, err = s.submitNew(ctx, order)
	}
	if err != nil {
		return nil, err
	}

	// The order is live on the backend; a stale draft must not outlive it.
	if err := s.draftRepo.Delete(ctx, draft.ID); err != nil {
		logger.Warn("failed to delete submitted draft", map[string]interface{}{
			"draft_id": draft.ID.String(),
			"error":    err.Error(),
		})
	}

	return result, nil
}

func (s *OrderService) submitNew(ctx context.Context, order *entity.Order) (*SubmitResult, error) {
	created, err := s.gateway.CreateOrder(ctx, order)
	if err != nil {
		return nil, err
	}

	result := &SubmitResult{Order: created, Printed: true}
	if err := s.printTickets(created,
		s.tickets.FormatCustomerTicket(created),
		s.tickets.FormatKitchenTicket(created),
	); err != nil {
		result.Printed = false
		result.PrintWarning = apperror.ErrPrintFailed.Message
	}
	return result, nil
}

func (s *OrderService) submitAddition(ctx context.Context, draft *entity.Draft, order *entity.Order) (*SubmitResult, error) {
	targetID := *draft.TargetOrderID

	if err := s.gateway.AddLineItems(ctx, targetID, order.Items); err != nil {
		return nil, err
	}

	full, err := s.gateway.GetOrder(ctx, targetID)
	if err != nil {
		// The items were accepted; report the order as submitted even if the
		// read-back failed.
		logger.Warn("failed to re-fetch order after addition", map[string]interface{}{
			"order_id": targetID,
			"error":    err.Error(),
		})
		full = order
		full.ID = targetID
	}

	result := &SubmitResult{Order: full, Printed: true}
	if err := s.printTickets(full,
		s.tickets.FormatKitchenTicketForAddedItems(full, order.Items),
	); err != nil {
		result.Printed = false
		result.PrintWarning = apperror.ErrPrintFailed.Message
	}
	return result, nil
}

func (s *OrderService) printTickets(order *entity.Order, docs ...[]byte) error {
	for _, doc := range docs {
		if err := s.printers.Print(doc); err != nil {
			logger.Error(err, "ticket print failed")
			return err
		}
	}
	return nil
}

// Get proxies a single order read to the backend.
func (s *OrderService) Get(ctx context.Context, orderID uint) (*entity.Order, error) {
	return s.gateway.GetOrder(ctx, orderID)
}

// List proxies the backend order listing, paginated locally since the
// backend returns the full set.
func (s *OrderService) List(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Order], error) {
	orders, err := s.gateway.ListOrders(ctx)
	if err != nil {
		return nil, err
	}

	params.Validate()
	total := int64(len(orders))

	start := params.Offset()
	if start > len(orders) {
		start = len(orders)
	}
	end := start + params.PerPage
	if end > len(orders) {
		end = len(orders)
	}

	page := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(orders[start:end], page), nil
}

// RegisterStatus reports whether the backend cash register is open, so the
// UI can warn before the operator builds an order that will be rejected.
func (s *OrderService) RegisterStatus(ctx context.Context) (*gateway.RegisterStatus, error) {
	return s.gateway.RegisterStatus(ctx)
}

// Reprint re-renders and prints a ticket for an existing order. The kitchen
// copy can be re-fired too, for when the kitchen printer jammed mid-service.
func (s *OrderService) Reprint(ctx context.Context, orderID uint, ticket string) error {
	order, err := s.gateway.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}

	var doc []byte
	switch ticket {
	case "kitchen":
		doc = s.tickets.FormatKitchenTicket(order)
	case "", "customer":
		doc = s.tickets.FormatCustomerTicket(order)
	default:
		return apperror.NewBadRequestError("Unknown ticket type: " + ticket)
	}

	if err := s.printers.Print(doc); err != nil {
		logger.Error(err, "ticket reprint failed")
		return apperror.ErrPrintFailed
	}
	return nil
}
