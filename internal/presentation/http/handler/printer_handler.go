package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/marea-picante/pos-terminal/internal/application/service"
	"github.com/marea-picante/pos-terminal/internal/presentation/http/dto/request"
	"github.com/marea-picante/pos-terminal/internal/presentation/http/dto/response"
	"github.com/marea-picante/pos-terminal/pkg/printer"
)

// PrinterHandler handles printer-related HTTP requests.
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler.
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// List returns every registered printer and which one is active.
func (h *PrinterHandler) List(c *gin.Context) {
	response.OK(c, "Printers retrieved", h.printerService.List())
}

// Register connects a new printer.
func (h *PrinterHandler) Register(c *gin.Context) {
	var req request.RegisterPrinterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	info, err := h.printerService.Register(req.Name, printer.Profile{
		Type:       req.Type,
		Address:    req.Address,
		DevicePath: req.DevicePath,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Printer registered", info)
}

// Remove disconnects a printer.
func (h *PrinterHandler) Remove(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.printerService.Remove(id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// SetActive routes subsequent tickets to the given printer.
func (h *PrinterHandler) SetActive(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.printerService.SetActive(id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Active printer updated", nil)
}

// TestPrint sends a sample ticket to the active printer.
func (h *PrinterHandler) TestPrint(c *gin.Context) {
	if err := h.printerService.TestPrint(); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Test ticket sent to printer", nil)
}
