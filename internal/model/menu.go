package model

import "github.com/shopspring/decimal"

type MenuItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Available   bool            `json:"available"`
	Ingredients []string        `json:"ingredients,omitempty"`
	PrepMinutes int             `json:"prep_minutes,omitempty"`
}

type MenuCategory struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Order       int    `json:"order"`
	Active      bool   `json:"active"`
}
