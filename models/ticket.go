package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TicketType string

const (
	TicketRailway TicketType = "railway"
	TicketBus     TicketType = "bus"
	TicketFlight  TicketType = "flight"
)

func (t TicketType) Valid() bool {
	switch t {
	case TicketRailway, TicketBus, TicketFlight:
		return true
	}
	return false
}

type TicketStatus string

const (
	TicketActive TicketStatus = "active"
	TicketSold   TicketStatus = "sold"
)

// Ticket is a listing offered by a seller. Status is derived from the
// remaining quantity: active while quantity > 0, sold once it hits zero.
// SellerName is a snapshot taken at listing time so historical listings do
// not change when a user record does.
type Ticket struct {
	ID          string          `json:"id"`
	Type        TicketType      `json:"type"`
	From        string          `json:"from"`
	To          string          `json:"to"`
	Date        string          `json:"date"`
	Time        string          `json:"time"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	SellerID    string          `json:"seller_id"`
	SellerName  string          `json:"seller_name"`
	Status      TicketStatus    `json:"status"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`

	// File references transient bytes scoped to the running process. It is
	// excluded from serialization: a restart loses attachments.
	File *FileAttachment `json:"-"`
}

func (t *Ticket) Available() bool {
	return t.Quantity > 0
}
