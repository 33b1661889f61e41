// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is a single line of the shopping cart.
// Lines are unique by the (ProductID, Size, Color) triple.
type CartItem struct {
	// ID is the generated line identifier (UUID v7).
	ID string `json:"id"`

	// ProductID references the catalogue product.
	ProductID string `json:"product_id"`

	// Name is the product display name captured when the line was added.
	Name string `json:"name"`

	// Size is the chosen size variant. Empty when the product has no sizes.
	Size string `json:"size,omitempty"`

	// Color is the chosen color variant. Empty when the product has no colors.
	Color string `json:"color,omitempty"`

	// Price is the unit price.
	Price decimal.Decimal `json:"price"`

	// Quantity is always >= 1; a line reaching zero is removed.
	Quantity int `json:"quantity"`

	// Image is an optional product thumbnail URL.
	Image string `json:"image,omitempty"`
}

// Matches reports whether the line has the same dedup triple as the request.
func (c CartItem) Matches(productID, size, color string) bool {
	return c.ProductID == productID && c.Size == size && c.Color == color
}

// Subtotal returns Price × Quantity without rounding.
func (c CartItem) Subtotal() decimal.Decimal {
	return c.Price.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

// Cart is the local mirror of the shopper's cart.
type Cart struct {
	Items      []CartItem      `json:"items"`
	TotalItems int             `json:"total_items"`
	TotalPrice decimal.Decimal `json:"total_price"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// AddItemRequest is the input of the cart AddItem operation.
type AddItemRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Name      string          `json:"name"`
	Size      string          `json:"size"`
	Color     string          `json:"color"`
	Price     decimal.Decimal `json:"price" validate:"gte=0"`
	Quantity  int             `json:"quantity" validate:"gte=1"`
	Image     string          `json:"image" validate:"omitempty,url"`
}
