package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusReceived  OrderStatus = "received"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusDelivered OrderStatus = "delivered"
)

// Lifecycle lists every status in the order it is walked.
var Lifecycle = []OrderStatus{StatusReceived, StatusPreparing, StatusReady, StatusDelivered}

func (s OrderStatus) Valid() bool {
	for _, st := range Lifecycle {
		if st == s {
			return true
		}
	}
	return false
}

// Next returns the status that follows s. ok is false for delivered and unknown statuses.
func (s OrderStatus) Next() (next OrderStatus, ok bool) {
	switch s {
	case StatusReceived:
		return StatusPreparing, true
	case StatusPreparing:
		return StatusReady, true
	case StatusReady:
		return StatusDelivered, true
	default:
		return "", false
	}
}

type OrderLine struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Note     string          `json:"note"`
}

type Order struct {
	ID               string          `json:"id"`
	TableNumber      string          `json:"table_number"`
	Lines            []OrderLine     `json:"lines"`
	Total            decimal.Decimal `json:"total"`
	Status           OrderStatus     `json:"status"`
	CreatedAt        time.Time       `json:"created_at"`
	EstimatedMinutes int             `json:"estimated_minutes,omitempty"`
}

// Clone copies o so callers cannot reach the book's line slice.
func (o Order) Clone() Order {
	o.Lines = append([]OrderLine(nil), o.Lines...)
	return o
}
