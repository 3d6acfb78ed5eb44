package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// OrderStatus represents the lifecycle state of an order on the backend
type OrderStatus int

const (
	OrderStatusPending    OrderStatus = 0
	OrderStatusInProgress OrderStatus = 1
	OrderStatusPaid       OrderStatus = 2
	OrderStatusCancelled  OrderStatus = 3
)

func (s OrderStatus) String() string {
	return [...]string{"pending", "in_progress", "paid", "cancelled"}[s]
}

func (s OrderStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = OrderStatus(i)
		return nil
	}
	switch str {
	case "pending":
		*s = OrderStatusPending
	case "in_progress":
		*s = OrderStatusInProgress
	case "paid":
		*s = OrderStatusPaid
	case "cancelled":
		*s = OrderStatusCancelled
	}
	return nil
}

// FromString sets the status from its backend string form. Unknown values
// leave the status at pending.
func (s *OrderStatus) FromString(str string) {
	switch str {
	case "in_progress":
		*s = OrderStatusInProgress
	case "paid":
		*s = OrderStatusPaid
	case "cancelled":
		*s = OrderStatusCancelled
	default:
		*s = OrderStatusPending
	}
}

func (s OrderStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *OrderStatus) Scan(value interface{}) error {
	if value == nil {
		*s = OrderStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = OrderStatus(v)
	case int:
		*s = OrderStatus(v)
	}
	return nil
}
