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
	"github.com/marea-picante/pos-terminal/internal/infrastructure/repository"
	"github.com/marea-picante/pos-terminal/pkg/apperror"
)

func setupComposerTest(t *testing.T) (*ComposerService, *entity.Draft) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&entity.Category{}, &entity.DiningTable{}, &entity.Product{},
		&entity.Draft{}, &entity.DraftTable{}, &entity.DraftItem{},
	))

	catalogRepo := repository.NewCatalogRepository(db)
	draftRepo := repository.NewDraftRepository(db)

	categories := []entity.Category{
		{ID: 1, Name: "Ceviches"},
		{ID: 10, Name: "Guarniciones"},
		{ID: 11, Name: "Bebidas"},
	}
	products := []entity.Product{
		{ID: 1, Name: "Ceviche Mixto", CategoryID: 1, PricePersonalCents: 2500, PriceFuenteCents: 4500},
		{ID: 2, Name: "Chicha Morada", CategoryID: 11, PricePersonalCents: 500},
		{ID: 3, Name: "Arroz Blanco", CategoryID: 10, PricePersonalCents: 300},
		{ID: 4, Name: "Taper", CategoryID: 10, PricePersonalCents: 100, PriceFuenteCents: 200},
		{ID: 5, Name: "Delivery", CategoryID: 10},
	}
	tables := []entity.DiningTable{
		{ID: 1, Number: 1}, {ID: 2, Number: 2}, {ID: 3, Number: 3},
	}
	require.NoError(t, catalogRepo.Replace(context.Background(), categories, products, tables))

	svc := NewComposerService(draftRepo, catalogRepo, config.SurchargeConfig{
		ExemptCategoryIDs:   []uint{10, 11},
		TaperProductName:    "Taper",
		DeliveryProductName: "Delivery",
		DeliveryLineName:    "Cargo por delivery",
	})

	draft, err := svc.CreateDraft(context.Background(), nil)
	require.NoError(t, err)

	return svc, draft
}

func TestToggleTable(t *testing.T) {
	svc, draft := setupComposerTest(t)
	ctx := context.Background()

	draft, err := svc.ToggleTable(ctx, draft.ID, 1)
	require.NoError(t, err)
	draft, err = svc.ToggleTable(ctx, draft.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, draft.TableNumbers())

	// Selecting take-away displaces every real table
	draft, err = svc.ToggleTable(ctx, draft.ID, TakeAwayTable)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, draft.TableNumbers())

	// Selecting a real table displaces take-away
	draft, err = svc.ToggleTable(ctx, draft.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, draft.TableNumbers())

	// Toggling a selected table deselects it
	draft, err = svc.ToggleTable(ctx, draft.ID, 3)
	require.NoError(t, err)
	assert.Empty(t, draft.TableNumbers())
}

func TestToggleTableValidation(t *testing.T) {
	svc, draft := setupComposerTest(t)
	ctx := context.Background()

	_, err := svc.ToggleTable(ctx, draft.ID, -1)
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)

	_, err = svc.ToggleTable(ctx, draft.ID, 99)
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestAdjustQuantity(t *testing.T) {
	svc, draft := setupComposerTest(t)
	ctx := context.Background()

	draft, err := svc.AdjustQuantity(ctx, draft.ID, 1, enum.VariantPersonal, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, draft.Item(1).PersonalQty)

	// A negative delta clamps at zero rather than going below
	draft, err = svc.AdjustQuantity(ctx, draft.ID, 1, enum.VariantPersonal, -5)
	require.NoError(t, err)
	assert.Nil(t, draft.Item(1), "item with both quantities at zero is removed")
}

func TestAdjustQuantityRemovesItemAtZero(t *testing.T) {
	svc, draft := setupComposerTest(t)
	ctx := context.Background()

	draft, err := svc.AdjustQuantity(ctx, draft.ID, 1, enum.VariantPersonal, 1)
	require.NoError(t, err)
	draft, err = svc.AdjustQuantity(ctx, draft.ID, 1, enum.VariantFuente, 1)
	require.NoError(t, err)

	_, err = svc.SetComment(ctx, draft.ID, 1, enum.VariantPersonal, "sin cebolla")
	require.NoError(t, err)

	// Zeroing only one variant keeps the item
	draft, err = svc.AdjustQuantity(ctx, draft.ID, 1, enum.VariantPersonal, -1)
	require.NoError(t, err)
	require.NotNil(t, draft.Item(1))
	assert.Equal(t, 1, draft.Item(1).FuenteQty)

	// Zeroing the other removes the item and its comments
	draft, err = svc.AdjustQuantity(ctx, draft.ID, 1, enum.VariantFuente, -1)
	require.NoError(t, err)
	assert.Nil(t, draft.Item(1))
}

func TestAdjustQuantityInvalidVariant(t *testing.T) {
	svc, draft := setupComposerTest(t)
	ctx := context.Background()

	// Chicha Morada only prices the personal variant
	_, err := svc.AdjustQuantity(ctx, draft.ID, 2, enum.VariantFuente, 1)
	assert.ErrorIs(t, err, apperror.ErrInvalidVariant)

	_, err = svc.AdjustQuantity(ctx, draft.ID, 2, enum.PriceVariant("familiar"), 1)
	assert.ErrorIs(t, err, apperror.ErrInvalidVariant)

	_, err = svc.AdjustQuantity(ctx, draft.ID, 999, enum.VariantPersonal, 1)
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestSetCommentRequiresSelection(t *testing.T) {
	svc, draft := setupComposerTest(t)
	ctx := context.Background()

	_, err := svc.SetComment(ctx, draft.ID, 1, enum.VariantPersonal, "picante")
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)

	_, err = svc.AdjustQuantity(ctx, draft.ID, 1, enum.VariantPersonal, 1)
	require.NoError(t, err)

	draft2, err := svc.SetComment(ctx, draft.ID, 1, enum.VariantPersonal, "picante")
	require.NoError(t, err)
	assert.Equal(t, "picante", draft2.Item(1).PersonalComment)
}

func TestBuildOrderEmptySelection(t *testing.T) {
	svc, draft := setupComposerTest(t)
	ctx := context.Background()

	draft, err := svc.ToggleTable(ctx, draft.ID, 1)
	require.NoError(t, err)

	_, err = svc.BuildOrder(ctx, draft)
	assert.ErrorIs(t, err, apperror.ErrEmptySelection)
}

func TestBuildOrderVariantSuffix(t *testing.T) {
	svc, draft := setupComposerTest(t)
	ctx := context.Background()

	draft, err := svc.AdjustQuantity(ctx, draft.ID, 1, enum.VariantPersonal, 1)
	require.NoError(t, err)
	draft, err = svc.AdjustQuantity(ctx, draft.ID, 1, enum.VariantFuente, 1)
	require.NoError(t, err)
	draft, err = svc.AdjustQuantity(ctx, draft.ID, 2, enum.VariantPersonal, 2)
	require.NoError(t, err)
	draft, err = svc.ToggleTable(ctx, draft.ID, 1)
	require.NoError(t, err)

	order, err := svc.BuildOrder(ctx, draft)
	require.NoError(t, err)

	require.Len(t, order.Items, 3)
	// Both variants priced: name carries the variant suffix
	assert.Equal(t, "Ceviche Mixto (Personal)", order.Items[0].Name)
	assert.Equal(t, "Ceviche Mixto (Fuente)", order.Items[1].Name)
	// Single variant: bare name
	assert.Equal(t, "Chicha Morada", order.Items[2].Name)

	assert.Equal(t, int64(2500+4500+1000), order.TotalCents)
	assert.Equal(t, []int{1}, order.Tables)
	assert.False(t, order.IsDelivery)
}

func TestBuildOrderTakeAwaySendsEmptyTables(t *testing.T) {
	svc, draft := setupComposerTest(t)
	ctx := context.Background()

	draft, err := svc.ToggleTable(ctx, draft.ID, TakeAwayTable)
	require.NoError(t, err)
	draft, err = svc.AdjustQuantity(ctx, draft.ID, 1, enum.VariantPersonal, 1)
	require.NoError(t, err)

	order, err := svc.BuildOrder(ctx, draft)
	require.NoError(t, err)
	assert.NotNil(t, order.Tables)
	assert.Empty(t, order.Tables)
}

func TestBuildOrderDelivery(t *testing.T) {
	svc, draft := setupComposerTest(t)
	ctx := context.Background()

	// Two personal + one fuente ceviche need tapers; chicha is exempt
	draft, err := svc.AdjustQuantity(ctx, draft.ID, 1, enum.VariantPersonal, 2)
	require.NoError(t, err)
	draft, err = svc.AdjustQuantity(ctx, draft.ID, 1, enum.VariantFuente, 1)
	require.NoError(t, err)
	draft, err = svc.AdjustQuantity(ctx, draft.ID, 2, enum.VariantPersonal, 3)
	require.NoError(t, err)
	draft, err = svc.SetDelivery(ctx, draft.ID, true, "Maria", 500)
	require.NoError(t, err)

	order, err := svc.BuildOrder(ctx, draft)
	require.NoError(t, err)

	require.Len(t, order.Items, 6)
	assert.True(t, order.IsDelivery)
	assert.Equal(t, "Maria", order.CustomerName)

	taperPersonal := order.Items[3]
	assert.Equal(t, "Taper", taperPersonal.Name)
	assert.Equal(t, 2, taperPersonal.Quantity)
	assert.Equal(t, enum.VariantPersonal, taperPersonal.PriceVariant)
	assert.Equal(t, int64(200), taperPersonal.SubtotalCents)

	taperFuente := order.Items[4]
	assert.Equal(t, "Taper", taperFuente.Name)
	assert.Equal(t, 1, taperFuente.Quantity)
	assert.Equal(t, enum.VariantFuente, taperFuente.PriceVariant)
	assert.Equal(t, int64(200), taperFuente.SubtotalCents)

	charge := order.Items[5]
	assert.Equal(t, "Cargo por delivery", charge.Name)
	assert.Equal(t, 1, charge.Quantity)
	assert.Equal(t, int64(500), charge.SubtotalCents)
	assert.True(t, charge.IsSurcharge)
	assert.Equal(t, uint(5), charge.ProductID)

	// products + tapers + charge
	expected := int64(2*2500+4500+3*500) + 200 + 200 + 500
	assert.Equal(t, expected, order.TotalCents)
}

func TestComputeDeliverySurcharge(t *testing.T) {
	svc, draft := setupComposerTest(t)
	ctx := context.Background()

	draft, err := svc.AdjustQuantity(ctx, draft.ID, 1, enum.VariantPersonal, 2)
	require.NoError(t, err)
	draft, err = svc.AdjustQuantity(ctx, draft.ID, 1, enum.VariantFuente, 1)
	require.NoError(t, err)
	// Exempt category, no taper needed
	draft, err = svc.AdjustQuantity(ctx, draft.ID, 3, enum.VariantPersonal, 4)
	require.NoError(t, err)

	cents, err := svc.ComputeDeliverySurcharge(ctx, draft)
	require.NoError(t, err)
	assert.Equal(t, int64(2*100+1*200), cents)
}

func TestSetDeliveryDisableClears(t *testing.T) {
	svc, draft := setupComposerTest(t)
	ctx := context.Background()

	draft, err := svc.SetDelivery(ctx, draft.ID, true, "Jose", 700)
	require.NoError(t, err)
	assert.True(t, draft.DeliveryEnabled)

	draft, err = svc.SetDelivery(ctx, draft.ID, false, "ignored", 900)
	require.NoError(t, err)
	assert.False(t, draft.DeliveryEnabled)
	assert.Empty(t, draft.CustomerName)
	assert.Zero(t, draft.DeliveryChargeCents)
}

func TestReset(t *testing.T) {
	svc, draft := setupComposerTest(t)
	ctx := context.Background()

	_, err := svc.ToggleTable(ctx, draft.ID, 1)
	require.NoError(t, err)
	_, err = svc.AdjustQuantity(ctx, draft.ID, 1, enum.VariantPersonal, 2)
	require.NoError(t, err)
	_, err = svc.SetDelivery(ctx, draft.ID, true, "Ana", 300)
	require.NoError(t, err)

	draft, err = svc.Reset(ctx, draft.ID)
	require.NoError(t, err)
	assert.Empty(t, draft.Tables)
	assert.Empty(t, draft.Items)
	assert.False(t, draft.DeliveryEnabled)
	assert.Empty(t, draft.CustomerName)

	reloaded, err := svc.GetDraft(ctx, draft.ID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.Tables)
	assert.Empty(t, reloaded.Items)
}
