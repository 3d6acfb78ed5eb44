package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/marea-picante/pos-terminal/internal/application/service"
	"github.com/marea-picante/pos-terminal/internal/presentation/http/dto/response"
	"github.com/marea-picante/pos-terminal/pkg/pagination"
)

// OrderHandler proxies backend order reads and reprints.
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// List returns the backend's orders, paginated.
func (h *OrderHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &pagination.PaginationParams{Page: page, PerPage: perPage}
	result, err := h.orderService.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Orders retrieved", result)
}

// Get returns one backend order.
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Order retrieved", order)
}

// Reprint re-prints a ticket for an existing order. The ticket query
// parameter selects the copy; the customer ticket is the default.
func (h *OrderHandler) Reprint(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	ticket := c.DefaultQuery("ticket", "customer")
	if err := h.orderService.Reprint(c.Request.Context(), id, ticket); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Ticket reprinted", nil)
}

// RegisterStatus reports whether the backend cash register is open.
func (h *OrderHandler) RegisterStatus(c *gin.Context) {
	status, err := h.orderService.RegisterStatus(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Register status retrieved", status)
}
