package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/marea-picante/pos-terminal/internal/config"
	"github.com/marea-picante/pos-terminal/internal/domain/entity"
	"github.com/marea-picante/pos-terminal/internal/domain/enum"
	"github.com/marea-picante/pos-terminal/internal/domain/gateway"
	domainRepo "github.com/marea-picante/pos-terminal/internal/domain/repository"
	"github.com/marea-picante/pos-terminal/internal/infrastructure/repository"
	"github.com/marea-picante/pos-terminal/pkg/apperror"
	"github.com/marea-picante/pos-terminal/pkg/pagination"
	"github.com/marea-picante/pos-terminal/pkg/printer"
)

// fakeGateway records what the service sends and plays back canned responses.
type fakeGateway struct {
	createErr    error
	created      *entity.Order
	createdInput *entity.Order

	addedOrderID uint
	addedItems   []entity.OrderLineItem

	orders map[uint]*entity.Order
}

func (f *fakeGateway) CreateOrder(ctx context.Context, order *entity.Order) (*entity.Order, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.createdInput = order
	if f.created != nil {
		return f.created, nil
	}
	out := *order
	out.ID = 100
	return &out, nil
}

func (f *fakeGateway) AddLineItems(ctx context.Context, orderID uint, items []entity.OrderLineItem) error {
	f.addedOrderID = orderID
	f.addedItems = append(f.addedItems, items...)
	return nil
}

func (f *fakeGateway) GetOrder(ctx context.Context, orderID uint) (*entity.Order, error) {
	if order, ok := f.orders[orderID]; ok {
		return order, nil
	}
	return nil, apperror.NewSubmissionError("order missing")
}

func (f *fakeGateway) ListOrders(ctx context.Context) ([]entity.Order, error) {
	orders := make([]entity.Order, 0, len(f.orders))
	for _, order := range f.orders {
		orders = append(orders, *order)
	}
	return orders, nil
}

func (f *fakeGateway) ListCategories(ctx context.Context) ([]entity.Category, error) {
	return nil, nil
}

func (f *fakeGateway) ListProducts(ctx context.Context) ([]entity.Product, error) {
	return nil, nil
}

func (f *fakeGateway) ListTables(ctx context.Context) ([]entity.DiningTable, error) {
	return nil, nil
}

func (f *fakeGateway) RegisterStatus(ctx context.Context) (*gateway.RegisterStatus, error) {
	return &gateway.RegisterStatus{Open: true}, nil
}

func setupOrderTest(t *testing.T, gw gateway.OrderGateway, withPrinter bool) (*OrderService, *ComposerService, domainRepo.DraftRepository) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entity.Category{}, &entity.DiningTable{}, &entity.Product{},
		&entity.Draft{}, &entity.DraftTable{}, &entity.DraftItem{},
	))

	catalogRepo := repository.NewCatalogRepository(db)
	draftRepo := repository.NewDraftRepository(db)

	require.NoError(t, catalogRepo.Replace(context.Background(),
		[]entity.Category{{ID: 1, Name: "Ceviches"}},
		[]entity.Product{{ID: 1, Name: "Ceviche Mixto", CategoryID: 1, PricePersonalCents: 2500, PriceFuenteCents: 4500}},
		[]entity.DiningTable{{ID: 1, Number: 1}},
	))

	composer := NewComposerService(draftRepo, catalogRepo, config.SurchargeConfig{
		TaperProductName:    "Taper",
		DeliveryProductName: "Delivery",
		DeliveryLineName:    "Cargo por delivery",
	})

	manager := printer.NewManager(3)
	if withPrinter {
		_, err := manager.Register("caja", printer.Profile{Type: "none"})
		require.NoError(t, err)
	}

	tickets := NewTicketFormatter(config.TicketConfig{Width: 32, BusinessName: "Marea Picante"})
	svc := NewOrderService(composer, draftRepo, gw, manager, tickets)
	return svc, composer, draftRepo
}

func readyDraft(t *testing.T, composer *ComposerService) *entity.Draft {
	ctx := context.Background()
	draft, err := composer.CreateDraft(ctx, nil)
	require.NoError(t, err)
	_, err = composer.ToggleTable(ctx, draft.ID, 1)
	require.NoError(t, err)
	draft, err = composer.AdjustQuantity(ctx, draft.ID, 1, enum.VariantPersonal, 2)
	require.NoError(t, err)
	return draft
}

func TestSubmitNewOrder(t *testing.T) {
	gw := &fakeGateway{}
	svc, composer, draftRepo := setupOrderTest(t, gw, true)
	ctx := context.Background()

	draft := readyDraft(t, composer)

	result, err := svc.Submit(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(100), result.Order.ID)
	assert.True(t, result.Printed)
	assert.Empty(t, result.PrintWarning)
	assert.Equal(t, int64(5000), gw.createdInput.TotalCents)

	// The draft is gone once the order is live
	gone, err := draftRepo.GetByID(ctx, draft.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestSubmitPrintFailureKeepsOrder(t *testing.T) {
	gw := &fakeGateway{}
	svc, composer, draftRepo := setupOrderTest(t, gw, false)
	ctx := context.Background()

	draft := readyDraft(t, composer)

	result, err := svc.Submit(ctx, draft.ID)
	require.NoError(t, err, "a print failure must not fail the submission")
	assert.False(t, result.Printed)
	assert.Equal(t, apperror.ErrPrintFailed.Message, result.PrintWarning)
	assert.Equal(t, uint(100), result.Order.ID)

	gone, err := draftRepo.GetByID(ctx, draft.ID)
	require.NoError(t, err)
	assert.Nil(t, gone, "draft is consumed even when printing fails")
}

func TestSubmitBackendFailureKeepsDraft(t *testing.T) {
	gw := &fakeGateway{createErr: apperror.NewRegisterClosedError("La caja no está abierta")}
	svc, composer, draftRepo := setupOrderTest(t, gw, true)
	ctx := context.Background()

	draft := readyDraft(t, composer)

	_, err := svc.Submit(ctx, draft.ID)
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)

	// The draft survives so the operator can retry
	kept, err := draftRepo.GetByID(ctx, draft.ID)
	require.NoError(t, err)
	require.NotNil(t, kept)
	assert.True(t, kept.HasItems())
}

func TestSubmitEmptySelection(t *testing.T) {
	gw := &fakeGateway{}
	svc, composer, _ := setupOrderTest(t, gw, true)
	ctx := context.Background()

	draft, err := composer.CreateDraft(ctx, nil)
	require.NoError(t, err)

	_, err = svc.Submit(ctx, draft.ID)
	assert.ErrorIs(t, err, apperror.ErrEmptySelection)
	assert.Nil(t, gw.createdInput, "nothing reaches the backend")
}

func TestSubmitAddition(t *testing.T) {
	target := uint(55)
	gw := &fakeGateway{orders: map[uint]*entity.Order{
		55: {ID: 55, Tables: []int{1}, Items: []entity.OrderLineItem{
			{ProductID: 9, Name: "Arroz Blanco", Quantity: 1, PriceVariant: enum.VariantPersonal},
		}},
	}}
	svc, composer, _ := setupOrderTest(t, gw, true)
	ctx := context.Background()

	draft, err := composer.CreateDraft(ctx, &target)
	require.NoError(t, err)
	_, err = composer.AdjustQuantity(ctx, draft.ID, 1, enum.VariantFuente, 1)
	require.NoError(t, err)

	result, err := svc.Submit(ctx, draft.ID)
	require.NoError(t, err)

	assert.Equal(t, uint(55), gw.addedOrderID)
	require.Len(t, gw.addedItems, 1)
	assert.Equal(t, "Ceviche Mixto (Fuente)", gw.addedItems[0].Name)
	assert.Equal(t, uint(55), result.Order.ID)
	assert.True(t, result.Printed)
}

func TestListPaginatesLocally(t *testing.T) {
	gw := &fakeGateway{orders: map[uint]*entity.Order{
		1: {ID: 1}, 2: {ID: 2}, 3: {ID: 3},
	}}
	svc, _, _ := setupOrderTest(t, gw, true)

	params := &pagination.PaginationParams{Page: 1, PerPage: 2}
	result, err := svc.List(context.Background(), params)
	require.NoError(t, err)
	assert.Len(t, result.Items, 2)
	assert.Equal(t, int64(3), result.Pagination.Total)

	params = &pagination.PaginationParams{Page: 2, PerPage: 2}
	result, err = svc.List(context.Background(), params)
	require.NoError(t, err)
	assert.Len(t, result.Items, 1)
}

func TestReprintWithoutPrinter(t *testing.T) {
	gw := &fakeGateway{orders: map[uint]*entity.Order{7: {ID: 7, Tables: []int{1}}}}
	svc, _, _ := setupOrderTest(t, gw, false)

	err := svc.Reprint(context.Background(), 7, "customer")
	assert.ErrorIs(t, err, apperror.ErrPrintFailed)
}

func TestReprintUnknownTicketType(t *testing.T) {
	gw := &fakeGateway{orders: map[uint]*entity.Order{7: {ID: 7, Tables: []int{1}}}}
	svc, _, _ := setupOrderTest(t, gw, true)

	err := svc.Reprint(context.Background(), 7, "fiscal")
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestReprintKitchenCopy(t *testing.T) {
	gw := &fakeGateway{orders: map[uint]*entity.Order{7: {ID: 7, Tables: []int{1}}}}
	svc, _, _ := setupOrderTest(t, gw, true)

	assert.NoError(t, svc.Reprint(context.Background(), 7, "kitchen"))
}
