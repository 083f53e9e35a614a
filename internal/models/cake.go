package models

import "github.com/shopspring/decimal"

// Cake is a catalog product
type Cake struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
}
