package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/marea-picante/pos-terminal/internal/config"
	"github.com/marea-picante/pos-terminal/internal/domain/entity"
	"github.com/marea-picante/pos-terminal/internal/domain/enum"
	"github.com/marea-picante/pos-terminal/pkg/printer"
)

// kitchenExcluded hides billing-only lines from the kitchen: delivery
// charges and taper containers are not cooked.
var kitchenExcluded = []string{"delivery", "domicilio", "envío", "taper"}

// TicketFormatter renders orders as ESC/POS documents for the thermal
// printers. The layout targets 58mm paper (32 characters) but follows the
// configured width.
type TicketFormatter struct {
	cfg config.TicketConfig
}

// NewTicketFormatter creates a ticket formatter with the given layout profile.
func NewTicketFormatter(cfg config.TicketConfig) *TicketFormatter {
	if cfg.Width <= 0 {
		cfg.Width = 32
	}
	return &TicketFormatter{cfg: cfg}
}

// FormatCustomerTicket renders the full billed ticket: every line item with
// unit price and subtotal, plus the grand total.
func (f *TicketFormatter) FormatCustomerTicket(order *entity.Order) []byte {
	doc := printer.NewDocument(f.cfg.Width)

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontTall).
		TextCentered(f.cfg.BusinessName).
		SetFontSize(printer.FontNormal).
		SetBold(false).
		TextCentered(f.cfg.Tagline).
		LineFeed()

	doc.SetAlign(printer.AlignLeft).
		Separator('=').
		TextWrapped(fmt.Sprintf("Orden #: %d", order.ID)).
		TextWrapped("Fecha: " + order.Timestamp.Format("02/01/2006 15:04")).
		TextWrapped("Mesa(s): " + joinTables(order.Tables)).
		Separator('=').
		LineFeed()

	doc.SetBold(true).
		Text("PRODUCTOS:").
		SetBold(false).
		LineFeed()

	var totalCents int64
	for _, item := range order.Items {
		doc.TextWrapped(item.Name).
			TextWrapped(fmt.Sprintf("%d x S/.%s = S/.%s",
				item.Quantity, formatAmount(item.UnitPriceCents), formatAmount(item.SubtotalCents))).
			LineFeed()
		totalCents += item.SubtotalCents
	}

	doc.Separator('-').
		SetBold(true).
		SetFontSize(printer.FontTall).
		TextRight("TOTAL: S/." + formatAmount(totalCents)).
		SetFontSize(printer.FontNormal).
		SetBold(false).
		Separator('=').
		LineFeed()

	doc.SetAlign(printer.AlignCenter)
	for _, line := range f.cfg.FooterLines {
		doc.TextCentered(line)
	}

	doc.FeedLines(3).
		Cut()

	return doc.Bytes()
}

// FormatKitchenTicket renders the simplified kitchen copy: large quantities
// and bare product names, no prices. Delivery charges and tapers are
// filtered out, fuente lines carry an "F. " prefix, and comments print
// indented under their line.
func (f *TicketFormatter) FormatKitchenTicket(order *entity.Order) []byte {
	return f.kitchenTicket(order, order.Items, "PRODUCTOS:")
}

// FormatKitchenTicketForAddedItems renders a kitchen copy listing only the
// items appended to an already-open order, so the kitchen does not re-fire
// the whole table.
func (f *TicketFormatter) FormatKitchenTicketForAddedItems(order *entity.Order, added []entity.OrderLineItem) []byte {
	return f.kitchenTicket(order, added, "PRODUCTOS AGREGADOS:")
}

func (f *TicketFormatter) kitchenTicket(order *entity.Order, items []entity.OrderLineItem, heading string) []byte {
	doc := printer.NewDocument(f.cfg.Width)

	doc.LineFeed().
		LineFeed()

	doc.SetBold(true).
		SetFontSize(printer.FontTall).
		TextCentered("COCINA").
		SetBold(false).
		SetFontSize(printer.FontNormal).
		LineFeed()

	if order.IsDelivery {
		doc.SetBold(true).
			SetFontSize(printer.FontMega).
			TextCenteredLarge("PARA LLEVAR").
			SetBold(false).
			SetFontSize(printer.FontNormal)
	} else if len(order.Tables) > 0 {
		label := "MESA:"
		if len(order.Tables) > 1 {
			label = "MESAS:"
		}
		doc.SetBold(true).
			SetFontSize(printer.FontTall).
			TextCentered(label + " " + joinTables(order.Tables)).
			SetBold(false).
			SetFontSize(printer.FontNormal)
	}

	doc.LineFeed()
	if order.IsDelivery && order.CustomerName != "" {
		doc.SetBold(true).
			SetFontSize(printer.FontTall).
			TextCentered("CLIENTE: " + order.CustomerName).
			SetBold(false).
			SetFontSize(printer.FontNormal)
	}

	doc.LineFeed().
		LineFeed().
		Separator('=').
		LineFeed()

	doc.SetAlign(printer.AlignLeft).
		SetBold(true).
		Text(heading).
		SetBold(false).
		LineFeed()

	for _, item := range items {
		if kitchenHidden(item.Name) {
			continue
		}

		name := stripVariantSuffix(item.Name)
		if item.PriceVariant == enum.VariantFuente {
			name = "F. " + name
		}

		doc.SetBold(true).
			SetFontSize(printer.FontTall).
			TextWrapped(fmt.Sprintf("%d  %s", item.Quantity, name)).
			SetBold(false).
			SetFontSize(printer.FontNormal)

		if comment := strings.TrimSpace(item.Comment); comment != "" {
			doc.SetBold(true).
				TextWrapped("   >> " + comment).
				SetBold(false)
		}

		doc.LineFeed()
	}

	doc.Separator('=').
		FeedLines(3).
		Cut()

	return doc.Bytes()
}

// kitchenHidden reports whether a line item never reaches the kitchen copy.
func kitchenHidden(name string) bool {
	lower := strings.ToLower(name)
	for _, keyword := range kitchenExcluded {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// stripVariantSuffix removes the trailing " (Personal)"/" (Fuente)" display
// suffix; the kitchen marks the variant with the "F. " prefix instead.
func stripVariantSuffix(name string) string {
	name = strings.TrimSuffix(name, " (Personal)")
	return strings.TrimSuffix(name, " (Fuente)")
}

func joinTables(tables []int) string {
	sorted := make([]int, len(tables))
	copy(sorted, tables)
	sort.Ints(sorted)

	parts := make([]string, 0, len(sorted))
	for _, number := range sorted {
		parts = append(parts, fmt.Sprintf("%d", number))
	}
	return strings.Join(parts, ", ")
}

// formatAmount renders cents as a decimal amount with two places.
func formatAmount(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
