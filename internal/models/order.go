package models

import "time"

// OrderStatus is the fulfilment state of an order
type OrderStatus string

// OrderStatus constants
const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusConfirmed OrderStatus = "Confirmed"
	OrderStatusDelivered OrderStatus = "Delivered"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// OrderStatuses lists every accepted status in display order
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// ParseOrderStatus converts a submitted value into an OrderStatus
func ParseOrderStatus(s string) (OrderStatus, error) {
	for _, st := range OrderStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", ErrInvalidStatus
}

// Order is one purchased cake.
// CakeName is a copy of the cake's name at checkout time, not a reference to the cakes table.
type Order struct {
	ID        int         `json:"id"`
	UserID    int         `json:"user_id"`
	CakeName  string      `json:"cake_name"`
	Status    OrderStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
}

// OrderWithUser is an order joined with its owner's username.
// Username is empty when the owner has been deleted.
type OrderWithUser struct {
	Order
	Username string `json:"username"`
}
