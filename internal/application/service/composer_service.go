package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/marea-picante/pos-terminal/internal/config"
	"github.com/marea-picante/pos-terminal/internal/domain/entity"
	"github.com/marea-picante/pos-terminal/internal/domain/enum"
	"github.com/marea-picante/pos-terminal/internal/domain/repository"
	"github.com/marea-picante/pos-terminal/pkg/apperror"
)

// ComposerService drives order composition: table selection, per-variant
// quantities and comments, and the delivery switch. All mutations go through
// the draft repository so an in-progress order survives a terminal restart.
type ComposerService struct {
	draftRepo   repository.DraftRepository
	catalogRepo repository.CatalogRepository
	surcharge   config.SurchargeConfig
}

// NewComposerService creates a new composer service
func NewComposerService(
	draftRepo repository.DraftRepository,
	catalogRepo repository.CatalogRepository,
	surcharge config.SurchargeConfig,
) *ComposerService {
	return &ComposerService{
		draftRepo:   draftRepo,
		catalogRepo: catalogRepo,
		surcharge:   surcharge,
	}
}

// TakeAwayTable is the sentinel table number for take-away orders. It is
// mutually exclusive with real table selections and never sent to the
// backend; a take-away order travels with an empty tables list.
const TakeAwayTable = 0

// CreateDraft starts a new empty composition. A non-nil targetOrderID makes
// it an addition draft that appends to an existing backend order.
func (s *ComposerService) CreateDraft(ctx context.Context, targetOrderID *uint) (*entity.Draft, error) {
	draft := &entity.Draft{
		TargetOrderID: targetOrderID,
		Tables:        []entity.DraftTable{},
		Items:         []entity.DraftItem{},
	}
	if err := s.draftRepo.Create(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// GetDraft loads a draft by ID.
func (s *ComposerService) GetDraft(ctx context.Context, id uuid.UUID) (*entity.Draft, error) {
	draft, err := s.draftRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, apperror.NewNotFoundError("Draft")
	}
	return draft, nil
}

// DeleteDraft discards a draft entirely.
func (s *ComposerService) DeleteDraft(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetDraft(ctx, id); err != nil {
		return err
	}
	return s.draftRepo.Delete(ctx, id)
}

// Reset clears every selection on a draft but keeps the draft itself, so the
// operator lands back on an empty composition.
func (s *ComposerService) Reset(ctx context.Context, id uuid.UUID) (*entity.Draft, error) {
	draft, err := s.GetDraft(ctx, id)
	if err != nil {
		return nil, err
	}

	draft.Tables = []entity.DraftTable{}
	draft.Items = []entity.DraftItem{}
	draft.DeliveryEnabled = false
	draft.CustomerName = ""
	draft.DeliveryChargeCents = 0

	if err := s.draftRepo.Save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// ToggleTable flips the selection state of one table number. The take-away
// sentinel displaces every real table, and selecting a real table displaces
// the sentinel; the two selection modes never mix.
func (s *ComposerService) ToggleTable(ctx context.Context, id uuid.UUID, number int) (*entity.Draft, error) {
	if number < 0 {
		return nil, apperror.NewBadRequestError("Table number must not be negative")
	}

	draft, err := s.GetDraft(ctx, id)
	if err != nil {
		return nil, err
	}

	if number != TakeAwayTable {
		known, err := s.tableExists(ctx, number)
		if err != nil {
			return nil, err
		}
		if !known {
			return nil, apperror.NewNotFoundError("Table")
		}
	}

	if draft.HasTable(number) {
		draft.Tables = removeTable(draft.Tables, number)
	} else if number == TakeAwayTable {
		draft.Tables = []entity.DraftTable{{DraftID: draft.ID, Number: TakeAwayTable}}
	} else {
		draft.Tables = removeTable(draft.Tables, TakeAwayTable)
		draft.Tables = append(draft.Tables, entity.DraftTable{DraftID: draft.ID, Number: number})
	}

	if err := s.draftRepo.Save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// AdjustQuantity applies a signed delta to one product variant. The result
// clamps at zero, and a product whose variants both reach zero drops out of
// the selection along with its comments.
func (s *ComposerService) AdjustQuantity(ctx context.Context, id uuid.UUID, productID uint, variant enum.PriceVariant, delta int) (*entity.Draft, error) {
	if !variant.Valid() {
		return nil, apperror.ErrInvalidVariant
	}

	draft, err := s.GetDraft(ctx, id)
	if err != nil {
		return nil, err
	}

	product, err := s.catalogRepo.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	if _, offered := product.PriceCents(variant); !offered {
		return nil, apperror.ErrInvalidVariant
	}

	item := draft.Item(productID)
	if item == nil {
		draft.Items = append(draft.Items, entity.DraftItem{DraftID: draft.ID, ProductID: productID})
		item = &draft.Items[len(draft.Items)-1]
	}

	next := item.Quantity(variant) + delta
	if next < 0 {
		next = 0
	}
	item.SetQuantity(variant, next)

	if item.Empty() {
		draft.Items = removeItem(draft.Items, productID)
	}

	if err := s.draftRepo.Save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// SetComment stores a free-text kitchen note for one selected product
// variant. The product must already carry a quantity for that variant.
func (s *ComposerService) SetComment(ctx context.Context, id uuid.UUID, productID uint, variant enum.PriceVariant, comment string) (*entity.Draft, error) {
	if !variant.Valid() {
		return nil, apperror.ErrInvalidVariant
	}

	draft, err := s.GetDraft(ctx, id)
	if err != nil {
		return nil, err
	}

	item := draft.Item(productID)
	if item == nil || item.Quantity(variant) <= 0 {
		return nil, apperror.NewBadRequestError("Product is not selected for that variant")
	}
	item.SetComment(variant, comment)

	if err := s.draftRepo.Save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// SetDelivery flips the delivery switch and records the customer name and
// the operator-entered delivery fee. Disabling delivery clears all three.
func (s *ComposerService) SetDelivery(ctx context.Context, id uuid.UUID, enabled bool, customerName string, chargeCents int64) (*entity.Draft, error) {
	if chargeCents < 0 {
		return nil, apperror.NewBadRequestError("Delivery charge must not be negative")
	}

	draft, err := s.GetDraft(ctx, id)
	if err != nil {
		return nil, err
	}

	draft.DeliveryEnabled = enabled
	if enabled {
		draft.CustomerName = customerName
		draft.DeliveryChargeCents = chargeCents
	} else {
		draft.CustomerName = ""
		draft.DeliveryChargeCents = 0
	}

	if err := s.draftRepo.Save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// ComputeDeliverySurcharge suggests a container surcharge for the current
// selection: one personal taper per personal portion and one fuente taper
// per fuente portion, skipping exempt categories (sides and drinks come in
// their own packaging). Prices come from the taper catalog product.
func (s *ComposerService) ComputeDeliverySurcharge(ctx context.Context, draft *entity.Draft) (int64, error) {
	personal, fuente, err := s.taperCounts(ctx, draft)
	if err != nil {
		return 0, err
	}
	if personal == 0 && fuente == 0 {
		return 0, nil
	}

	taper, err := s.catalogRepo.GetProductByName(ctx, s.surcharge.TaperProductName)
	if err != nil {
		return 0, err
	}
	if taper == nil {
		return 0, nil
	}
	return int64(personal)*taper.PricePersonalCents + int64(fuente)*taper.PriceFuenteCents, nil
}

// BuildOrder assembles the submittable order from a draft. Line items keep
// selection order; when delivery is on, taper lines and the delivery charge
// line are appended after the products. A draft with no priced selection is
// rejected before anything reaches the backend.
func (s *ComposerService) BuildOrder(ctx context.Context, draft *entity.Draft) (*entity.Order, error) {
	var items []entity.OrderLineItem
	var totalCents int64

	for i := range draft.Items {
		sel := &draft.Items[i]
		product, err := s.catalogRepo.GetProductByID(ctx, sel.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			// Product vanished from the catalog since selection; skip it.
			continue
		}

		for _, variant := range []enum.PriceVariant{enum.VariantPersonal, enum.VariantFuente} {
			qty := sel.Quantity(variant)
			price, offered := product.PriceCents(variant)
			if qty <= 0 || !offered {
				continue
			}

			subtotal := price * int64(qty)
			items = append(items, entity.OrderLineItem{
				ProductID:      product.ID,
				Name:           product.DisplayName(variant),
				UnitPriceCents: price,
				Quantity:       qty,
				SubtotalCents:  subtotal,
				PriceVariant:   variant,
				Comment:        sel.Comment(variant),
			})
			totalCents += subtotal
		}
	}

	if len(items) == 0 {
		return nil, apperror.ErrEmptySelection
	}

	if draft.DeliveryEnabled {
		taperItems, taperCents, err := s.taperLines(ctx, draft)
		if err != nil {
			return nil, err
		}
		items = append(items, taperItems...)
		totalCents += taperCents

		if draft.DeliveryChargeCents > 0 {
			charge, err := s.deliveryChargeLine(ctx, draft.DeliveryChargeCents)
			if err != nil {
				return nil, err
			}
			items = append(items, *charge)
			totalCents += draft.DeliveryChargeCents
		}
	}

	tables := draft.TableNumbers()
	if draft.HasTable(TakeAwayTable) {
		tables = []int{}
	}

	return &entity.Order{
		Tables:       tables,
		Items:        items,
		TotalCents:   totalCents,
		Status:       enum.OrderStatusPending,
		IsDelivery:   draft.DeliveryEnabled,
		CustomerName: draft.CustomerName,
		Timestamp:    time.Now(),
	}, nil
}

// taperCounts totals the portions that need a disposable container, per
// variant, across the non-exempt selection.
func (s *ComposerService) taperCounts(ctx context.Context, draft *entity.Draft) (personal, fuente int, err error) {
	for i := range draft.Items {
		sel := &draft.Items[i]
		product, err := s.catalogRepo.GetProductByID(ctx, sel.ProductID)
		if err != nil {
			return 0, 0, err
		}
		if product == nil || s.isExemptCategory(product.CategoryID) {
			continue
		}
		personal += sel.PersonalQty
		fuente += sel.FuenteQty
	}
	return personal, fuente, nil
}

func (s *ComposerService) taperLines(ctx context.Context, draft *entity.Draft) ([]entity.OrderLineItem, int64, error) {
	personal, fuente, err := s.taperCounts(ctx, draft)
	if err != nil {
		return nil, 0, err
	}
	if personal == 0 && fuente == 0 {
		return nil, 0, nil
	}

	taper, err := s.catalogRepo.GetProductByName(ctx, s.surcharge.TaperProductName)
	if err != nil {
		return nil, 0, err
	}
	if taper == nil {
		// No taper product in the catalog; the order goes out without
		// container lines rather than failing the submission.
		return nil, 0, nil
	}

	var items []entity.OrderLineItem
	var totalCents int64

	if personal > 0 {
		subtotal := taper.PricePersonalCents * int64(personal)
		items = append(items, entity.OrderLineItem{
			ProductID:      taper.ID,
			Name:           taper.Name,
			UnitPriceCents: taper.PricePersonalCents,
			Quantity:       personal,
			SubtotalCents:  subtotal,
			PriceVariant:   enum.VariantPersonal,
			Comment:        "Tapers descartables para productos personales",
		})
		totalCents += subtotal
	}
	if fuente > 0 {
		subtotal := taper.PriceFuenteCents * int64(fuente)
		items = append(items, entity.OrderLineItem{
			ProductID:      taper.ID,
			Name:           taper.Name,
			UnitPriceCents: taper.PriceFuenteCents,
			Quantity:       fuente,
			SubtotalCents:  subtotal,
			PriceVariant:   enum.VariantFuente,
			Comment:        "Tapers descartables para productos fuente",
		})
		totalCents += subtotal
	}

	return items, totalCents, nil
}

func (s *ComposerService) deliveryChargeLine(ctx context.Context, chargeCents int64) (*entity.OrderLineItem, error) {
	var productID uint
	deliveryProduct, err := s.catalogRepo.GetProductByName(ctx, s.surcharge.DeliveryProductName)
	if err != nil {
		return nil, err
	}
	if deliveryProduct != nil {
		productID = deliveryProduct.ID
	}

	return &entity.OrderLineItem{
		ProductID:      productID,
		Name:           s.surcharge.DeliveryLineName,
		UnitPriceCents: chargeCents,
		Quantity:       1,
		SubtotalCents:  chargeCents,
		PriceVariant:   enum.VariantPersonal,
		Comment:        "Cargo por servicio de delivery",
		IsSurcharge:    true,
	}, nil
}

func (s *ComposerService) isExemptCategory(categoryID uint) bool {
	for _, id := range s.surcharge.ExemptCategoryIDs {
		if id == categoryID {
			return true
		}
	}
	return false
}

func (s *ComposerService) tableExists(ctx context.Context, number int) (bool, error) {
	tables, err := s.catalogRepo.ListTables(ctx)
	if err != nil {
		return false, err
	}
	for _, t := range tables {
		if t.Number == number {
			return true, nil
		}
	}
	return false, nil
}

func removeTable(tables []entity.DraftTable, number int) []entity.DraftTable {
	out := tables[:0]
	for _, t := range tables {
		if t.Number != number {
			out = append(out, t)
		}
	}
	return out
}

func removeItem(items []entity.DraftItem, productID uint) []entity.DraftItem {
	out := items[:0]
	for _, item := range items {
		if item.ProductID != productID {
			out = append(out, item)
		}
	}
	return out
}
