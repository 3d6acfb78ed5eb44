package handler

import (
	"math"

	"github.com/gin-gonic/gin"
	"github.com/marea-picante/pos-terminal/internal/application/service"
	"github.com/marea-picante/pos-terminal/internal/domain/enum"
	"github.com/marea-picante/pos-terminal/internal/presentation/http/dto/request"
	"github.com/marea-picante/pos-terminal/internal/presentation/http/dto/response"
)

// DraftHandler handles order composition requests: table selection,
// quantities, comments, delivery and submission.
type DraftHandler struct {
	composerService *service.ComposerService
	orderService    *service.OrderService
}

// NewDraftHandler creates a new draft handler
func NewDraftHandler(composerService *service.ComposerService, orderService *service.OrderService) *DraftHandler {
	return &DraftHandler{
		composerService: composerService,
		orderService:    orderService,
	}
}

// Create starts a new draft.
func (h *DraftHandler) Create(c *gin.Context) {
	var req request.CreateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	draft, err := h.composerService.CreateDraft(c.Request.Context(), req.TargetOrderID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Draft created", draft)
}

// Get returns a draft with its selections.
func (h *DraftHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	draft, err := h.composerService.GetDraft(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Draft retrieved", draft)
}

// Delete discards a draft.
func (h *DraftHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.composerService.DeleteDraft(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Reset clears every selection but keeps the draft.
func (h *DraftHandler) Reset(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	draft, err := h.composerService.Reset(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Draft reset", draft)
}

// ToggleTable flips one table selection.
func (h *DraftHandler) ToggleTable(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req request.ToggleTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	draft, err := h.composerService.ToggleTable(c.Request.Context(), id, *req.Number)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Table selection updated", draft)
}

// AdjustQuantity applies a quantity delta to one product variant.
func (h *DraftHandler) AdjustQuantity(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req request.AdjustQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	draft, err := h.composerService.AdjustQuantity(
		c.Request.Context(), id, req.ProductID, enum.PriceVariant(req.Variant), req.Delta)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Quantity updated", draft)
}

// SetComment attaches a kitchen note to one selected variant.
func (h *DraftHandler) SetComment(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req request.SetCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	draft, err := h.composerService.SetComment(
		c.Request.Context(), id, req.ProductID, enum.PriceVariant(req.Variant), req.Comment)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Comment updated", draft)
}

// SetDelivery flips the delivery switch and stores the fee and customer name.
func (h *DraftHandler) SetDelivery(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req request.SetDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	chargeCents := int64(math.Round(req.Charge * 100))
	draft, err := h.composerService.SetDelivery(
		c.Request.Context(), id, *req.Enabled, req.CustomerName, chargeCents)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Delivery updated", draft)
}

// Surcharge returns the suggested container surcharge for the current
// selection.
func (h *DraftHandler) Surcharge(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	draft, err := h.composerService.GetDraft(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	cents, err := h.composerService.ComputeDeliverySurcharge(c.Request.Context(), draft)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Surcharge computed", gin.H{"surcharge": float64(cents) / 100})
}

// Preview returns the order the draft would submit, without submitting.
func (h *DraftHandler) Preview(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.Preview(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Order preview", order)
}

// Submit finalizes the draft: sends the order to the backend, deletes the
// draft and prints the tickets. A print failure downgrades to a warning in
// the response; the order stands.
func (h *DraftHandler) Submit(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.orderService.Submit(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "Order created"
	if !result.Printed {
		message = "Order created but not printed"
	}
	response.Created(c, message, result)
}
