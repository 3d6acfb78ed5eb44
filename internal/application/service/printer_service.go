package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/marea-picante/pos-terminal/internal/config"
	"github.com/marea-picante/pos-terminal/internal/domain/entity"
	"github.com/marea-picante/pos-terminal/internal/domain/enum"
	"github.com/marea-picante/pos-terminal/pkg/apperror"
	"github.com/marea-picante/pos-terminal/pkg/logger"
	"github.com/marea-picante/pos-terminal/pkg/printer"
)

// PrinterService manages the terminal's registered ticket printers. Up to
// the configured maximum can be registered at once; one of them is active
// and receives every ticket.
type PrinterService struct {
	manager *printer.Manager
	tickets *TicketFormatter
}

// NewPrinterService creates a new printer service
func NewPrinterService(manager *printer.Manager, tickets *TicketFormatter) *PrinterService {
	return &PrinterService{
		manager: manager,
		tickets: tickets,
	}
}

// RegisterFromConfig registers the printer profile from the terminal config,
// if one is configured. Called once at startup.
func (s *PrinterService) RegisterFromConfig(cfg *config.PrinterConfig) {
	if cfg.Type == "" || cfg.Type == "none" {
		return
	}

	info, err := s.manager.Register("default", printer.Profile{
		Type:       cfg.Type,
		Address:    cfg.Address,
		DevicePath: cfg.DevicePath,
		ChunkSize:  cfg.ChunkSize,
		ChunkDelay: cfg.ChunkDelay,
	})
	if err != nil {
		logger.Warn("failed to register configured printer", map[string]interface{}{
			"type":  cfg.Type,
			"error": err.Error(),
		})
		return
	}
	logger.Info("printer registered", map[string]interface{}{
		"id":   info.ID.String(),
		"type": cfg.Type,
	})
}

// Register connects a new printer and makes it active if it is the first.
func (s *PrinterService) Register(name string, profile printer.Profile) (*printer.Info, error) {
	info, err := s.manager.Register(name, profile)
	if err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}
	return info, nil
}

// Remove disconnects a printer. When the active one goes, another registered
// printer takes over.
func (s *PrinterService) Remove(id uuid.UUID) error {
	if err := s.manager.Remove(id); err != nil {
		return apperror.NewNotFoundError("Printer")
	}
	return nil
}

// SetActive routes all subsequent tickets to the given printer.
func (s *PrinterService) SetActive(id uuid.UUID) error {
	if err := s.manager.SetActive(id); err != nil {
		return apperror.NewNotFoundError("Printer")
	}
	return nil
}

// List returns every registered printer and which one is active.
func (s *PrinterService) List() []printer.Info {
	return s.manager.List()
}

// TestPrint sends a sample customer ticket to the active printer.
func (s *PrinterService) TestPrint() error {
	order := &entity.Order{
		ID:     0,
		Tables: []int{1},
		Items: []entity.OrderLineItem{
			{
				Name:           "Ceviche Mixto",
				UnitPriceCents: 2500,
				Quantity:       1,
				SubtotalCents:  2500,
				PriceVariant:   enum.VariantPersonal,
			},
			{
				Name:           "Chicha Morada",
				UnitPriceCents: 500,
				Quantity:       2,
				SubtotalCents:  1000,
				PriceVariant:   enum.VariantPersonal,
			},
		},
		TotalCents: 3500,
		Timestamp:  time.Now(),
	}

	if err := s.manager.Print(s.tickets.FormatCustomerTicket(order)); err != nil {
		logger.Error(err, "test print failed")
		return apperror.ErrPrintFailed
	}
	return nil
}
