package models

import "time"

type Item struct {
	ID             int       `json:"id"`
	Name           string    `json:"name"`
	Price          float64   `json:"price"`
	WholesalePrice *float64  `json:"wholesale_price,omitempty"`
	Stock          int       `json:"stock"`
	LowStockLevel  int       `json:"low_stock_level"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// UnitMargin is the profit earned per unit sold. An item without a
// recorded wholesale price contributes zero margin rather than counting
// its full price as profit; the daily profit query applies the same rule
// with COALESCE(wholesale_price, price).
func (i *Item) UnitMargin() float64 {
	if i.WholesalePrice == nil {
		return 0
	}
	return i.Price - *i.WholesalePrice
}

// CreateItemRequest represents the request body for creating an item
type CreateItemRequest struct {
	Name           string   `json:"name"`
	Price          float64  `json:"price"`
	WholesalePrice *float64 `json:"wholesale_price"`
	Stock          int      `json:"stock"`
	LowStockLevel  int      `json:"low_stock_level"`
}

// UpdateItemRequest represents the request body for updating an item
type UpdateItemRequest struct {
	Name           string   `json:"name"`
	Price          float64  `json:"price"`
	WholesalePrice *float64 `json:"wholesale_price"`
	LowStockLevel  int      `json:"low_stock_level"`
}

// AdjustStockRequest represents a manual stock correction
type AdjustStockRequest struct {
	Delta  int    `json:"delta"`
	Reason string `json:"reason"`
}
