package model

import "github.com/shopspring/decimal"

// MaxNoteLength is the longest free-text note, in runes, a cart line may carry.
const MaxNoteLength = 200

var serviceFeeRate = decimal.RequireFromString("0.10")

type CartLine struct {
	ID       string          `json:"id"`
	ItemID   string          `json:"item_id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Note     string          `json:"note"`
	Category string          `json:"category"`
	Image    string          `json:"image"`
}

// Subtotal is price times quantity.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type CartState struct {
	Lines       []CartLine      `json:"lines"`
	Total       decimal.Decimal `json:"total"`
	TableNumber string          `json:"table_number,omitempty"`
}

func (s CartState) ItemCount() int {
	var n int
	for _, l := range s.Lines {
		n += l.Quantity
	}
	return n
}

// ServiceFee is the 10% table service charge shown on the cart summary.
// It is informational; orders carry Total only.
func (s CartState) ServiceFee() decimal.Decimal {
	return s.Total.Mul(serviceFeeRate).Round(2)
}

func (s CartState) GrandTotal() decimal.Decimal {
	return s.Total.Add(s.ServiceFee())
}

func (s CartState) Empty() bool {
	return len(s.Lines) == 0
}
