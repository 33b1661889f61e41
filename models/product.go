package models

import "github.com/shopspring/decimal"

// Product is a catalogue entry as served by the storefront API.
type Product struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Slug     string          `json:"slug"`
	Price    decimal.Decimal `json:"price"`
	Images   []string        `json:"images,omitempty"`
	Sizes    []string        `json:"sizes,omitempty"`
	Colors   []string        `json:"colors,omitempty"`
	Category string          `json:"category,omitempty"`
	InStock  bool            `json:"in_stock"`
}

// ProductQuery filters the product listing.
type ProductQuery struct {
	Category string
	Search   string
	Page     int
	Limit    int
}
