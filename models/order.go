package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const OrderCompleted = "completed"

// Order records a completed purchase. Total and BuyerName are snapshots
// taken at purchase time; later price edits or user deletion never rewrite
// an order. Orders are append-only and may outlive the ticket and users
// they reference.
type Order struct {
	ID        string          `json:"id"`
	TicketID  string          `json:"ticket_id"`
	BuyerID   string          `json:"buyer_id"`
	BuyerName string          `json:"buyer_name"`
	Quantity  int             `json:"quantity"`
	Total     decimal.Decimal `json:"total"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}
