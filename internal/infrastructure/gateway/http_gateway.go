package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/marea-picante/pos-terminal/internal/config"
	"github.com/marea-picante/pos-terminal/internal/domain/entity"
	domainGateway "github.com/marea-picante/pos-terminal/internal/domain/gateway"
	"github.com/marea-picante/pos-terminal/internal/domain/enum"
	"github.com/marea-picante/pos-terminal/pkg/apperror"
)

// httpGateway talks to the central restaurant backend over its JSON API.
// The backend speaks camelCase and decimal prices; conversion to the
// terminal's cent-based entities happens here and nowhere else.
type httpGateway struct {
	baseURL    string
	httpClient *http.Client
}

// New creates an OrderGateway backed by the configured backend URL.
func New(cfg *config.BackendConfig) domainGateway.OrderGateway {
	return &httpGateway{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// wireLineItem is a line item in the backend's wire format.
type wireLineItem struct {
	ProductID uint    `json:"productId"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
	PriceType string  `json:"priceType"`
	Comment   string  `json:"comment"`

	IsDeliveryCharge bool `json:"isDeliveryCharge,omitempty"`
}

// wireOrder is an order in the backend's wire format. IsDelivery travels as
// 0/1, not a boolean.
type wireOrder struct {
	ID           uint           `json:"id,omitempty"`
	Tables       []int          `json:"tables"`
	Items        []wireLineItem `json:"items"`
	Total        float64        `json:"total"`
	Timestamp    time.Time      `json:"timestamp,omitempty"`
	Status       string         `json:"status,omitempty"`
	IsDelivery   int            `json:"isDelivery"`
	CustomerName string         `json:"customerName"`
}

// wireProduct is a catalog product in the backend's wire format. Older
// backend versions expose "productId" instead of "id"; both are accepted.
type wireProduct struct {
	ID            uint    `json:"id"`
	ProductID     uint    `json:"productId"`
	Name          string  `json:"name"`
	CategoryID    uint    `json:"categoryId"`
	PricePersonal float64 `json:"pricePersonal"`
	PriceFuente   float64 `json:"priceFuente"`
}

type wireCategory struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type wireTable struct {
	ID     uint   `json:"id"`
	Number int    `json:"number"`
	Status string `json:"status"`
}

type wireRegister struct {
	Open     bool   `json:"open"`
	IsOpen   bool   `json:"isOpen"`
	OpenedAt string `json:"openedAt"`
}

func toWireItems(items []entity.OrderLineItem) []wireLineItem {
	wire := make([]wireLineItem, 0, len(items))
	for _, item := range items {
		wire = append(wire, wireLineItem{
			ProductID:        item.ProductID,
			Name:             item.Name,
			UnitPrice:        float64(item.UnitPriceCents) / 100,
			Quantity:         item.Quantity,
			Subtotal:         float64(item.SubtotalCents) / 100,
			PriceType:        string(item.PriceVariant),
			Comment:          item.Comment,
			IsDeliveryCharge: item.IsSurcharge,
		})
	}
	return wire
}

func fromWireItems(items []wireLineItem) []entity.OrderLineItem {
	out := make([]entity.OrderLineItem, 0, len(items))
	for _, item := range items {
		out = append(out, entity.OrderLineItem{
			ProductID:      item.ProductID,
			Name:           item.Name,
			UnitPriceCents: toCents(item.UnitPrice),
			Quantity:       item.Quantity,
			SubtotalCents:  toCents(item.Subtotal),
			PriceVariant:   enum.PriceVariant(item.PriceType),
			Comment:        item.Comment,
			IsSurcharge:    item.IsDeliveryCharge,
		})
	}
	return out
}

func fromWireOrder(w *wireOrder) *entity.Order {
	order := &entity.Order{
		ID:           w.ID,
		Tables:       w.Tables,
		Items:        fromWireItems(w.Items),
		TotalCents:   toCents(w.Total),
		IsDelivery:   w.IsDelivery != 0,
		CustomerName: w.CustomerName,
		Timestamp:    w.Timestamp,
	}
	if w.Tables == nil {
		order.Tables = []int{}
	}
	order.Status.FromString(w.Status)
	return order
}

// toCents converts a backend decimal price to cents, rounding half away from
// zero to absorb float noise.
func toCents(amount float64) int64 {
	if amount < 0 {
		return int64(amount*100 - 0.5)
	}
	return int64(amount*100 + 0.5)
}

func (g *httpGateway) CreateOrder(ctx context.Context, order *entity.Order) (*entity.Order, error) {
	tables := order.Tables
	if tables == nil {
		tables = []int{}
	}
	payload := wireOrder{
		Tables:       tables,
		Items:        toWireItems(order.Items),
		Total:        float64(order.TotalCents) / 100,
		Timestamp:    order.Timestamp,
		Status:       order.Status.String(),
		IsDelivery:   boolToInt(order.IsDelivery),
		CustomerName: order.CustomerName,
	}

	var created wireOrder
	if err := g.do(ctx, http.MethodPost, "/orders", payload, &created); err != nil {
		return nil, err
	}
	return fromWireOrder(&created), nil
}

func (g *httpGateway) AddLineItems(ctx context.Context, orderID uint, items []entity.OrderLineItem) error {
	for _, item := range toWireItems(items) {
		path := fmt.Sprintf("/orders/%d/products", orderID)
		if err := g.do(ctx, http.MethodPost, path, item, nil); err != nil {
			return err
		}
	}
	return nil
}

func (g *httpGateway) GetOrder(ctx context.Context, orderID uint) (*entity.Order, error) {
	var w wireOrder
	if err := g.do(ctx, http.MethodGet, fmt.Sprintf("/orders/%d", orderID), nil, &w); err != nil {
		return nil, err
	}
	return fromWireOrder(&w), nil
}

func (g *httpGateway) ListOrders(ctx context.Context) ([]entity.Order, error) {
	var wires []wireOrder
	if err := g.do(ctx, http.MethodGet, "/orders", nil, &wires); err != nil {
		return nil, err
	}
	orders := make([]entity.Order, 0, len(wires))
	for i := range wires {
		orders = append(orders, *fromWireOrder(&wires[i]))
	}
	return orders, nil
}

func (g *httpGateway) ListCategories(ctx context.Context) ([]entity.Category, error) {
	var wires []wireCategory
	if err := g.do(ctx, http.MethodGet, "/categories", nil, &wires); err != nil {
		return nil, err
	}
	categories := make([]entity.Category, 0, len(wires))
	for _, w := range wires {
		categories = append(categories, entity.Category{ID: w.ID, Name: w.Name})
	}
	return categories, nil
}

func (g *httpGateway) ListProducts(ctx context.Context) ([]entity.Product, error) {
	var wires []wireProduct
	if err := g.do(ctx, http.MethodGet, "/products", nil, &wires); err != nil {
		return nil, err
	}
	products := make([]entity.Product, 0, len(wires))
	for _, w := range wires {
		id := w.ID
		if id == 0 {
			id = w.ProductID
		}
		products = append(products, entity.Product{
			ID:                 id,
			Name:               w.Name,
			CategoryID:         w.CategoryID,
			PricePersonalCents: toCents(w.PricePersonal),
			PriceFuenteCents:   toCents(w.PriceFuente),
		})
	}
	return products, nil
}

func (g *httpGateway) ListTables(ctx context.Context) ([]entity.DiningTable, error) {
	var wires []wireTable
	if err := g.do(ctx, http.MethodGet, "/tables", nil, &wires); err != nil {
		return nil, err
	}
	tables := make([]entity.DiningTable, 0, len(wires))
	for _, w := range wires {
		tables = append(tables, entity.DiningTable{ID: w.ID, Number: w.Number, Status: w.Status})
	}
	return tables, nil
}

func (g *httpGateway) RegisterStatus(ctx context.Context) (*domainGateway.RegisterStatus, error) {
	var w wireRegister
	if err := g.do(ctx, http.MethodGet, "/cash-movements/current-register", nil, &w); err != nil {
		return nil, err
	}
	return &domainGateway.RegisterStatus{
		Open:     w.Open || w.IsOpen,
		OpenedAt: w.OpenedAt,
	}, nil
}

// do runs one backend request. Non-2xx responses are mapped to the POS error
// taxonomy: register-closed rejections become conflict errors carrying the
// backend message verbatim, everything else becomes a submission error.
func (g *httpGateway) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return apperror.NewSubmissionError(err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return g.mapError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperror.NewSubmissionError("invalid response: " + err.Error())
	}
	return nil
}

func (g *httpGateway) mapError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	message := strings.TrimSpace(string(raw))
	var structured struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &structured); err == nil {
		if structured.Message != "" {
			message = structured.Message
		} else if structured.Error != "" {
			message = structured.Error
		}
	}

	if isRegisterClosed(resp.StatusCode, message) {
		return apperror.NewRegisterClosedError(message)
	}
	if message == "" {
		message = fmt.Sprintf("backend returned status %d", resp.StatusCode)
	}
	return apperror.NewSubmissionError(message)
}

// isRegisterClosed recognizes the backend's register-closed rejection. The
// backend phrases it in Spanish ("caja"), so match on that as well as the
// conflict status it uses.
func isRegisterClosed(status int, message string) bool {
	if status != http.StatusConflict && status != http.StatusPreconditionFailed {
		return false
	}
	lower := strings.ToLower(message)
	return strings.Contains(lower, "caja") || strings.Contains(lower, "register")
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
