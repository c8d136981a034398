package views

import (
	"fmt"

	"github.com/shopspring/decimal"

	"tickethub/internal/status"
	"tickethub/models"
)

type AttachmentInfo struct {
	Name       string `json:"name"`
	Size       int64  `json:"size"`
	Type       string `json:"type"`
	BlobHandle string `json:"blob_handle"`
}

// TicketDetailView is the listing detail: everything a potential buyer
// sees, with the buy controls and seller contact gated by the session.
type TicketDetailView struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	From          string          `json:"from"`
	To            string          `json:"to"`
	Date          string          `json:"date"`
	Time          string          `json:"time"`
	Price         decimal.Decimal `json:"price"`
	Quantity      int             `json:"quantity"`
	Description   string          `json:"description"`
	SellerName    string          `json:"seller_name"`
	SellerContact string          `json:"seller_contact,omitempty"`
	Attachment    *AttachmentInfo `json:"attachment,omitempty"`
	IsOwnListing  bool            `json:"is_own_listing"`
	CanBuy        bool            `json:"can_buy"`
	MaxQuantity   int             `json:"max_quantity"`
}

// TicketDetail builds the detail view for one listing. The seller's
// contact email is only revealed to a logged-in user who is not the
// seller; CanBuy additionally requires remaining stock.
func TicketDetail(st *models.AppState, ticketID string) (*TicketDetailView, error) {
	ticket := st.TicketByID(ticketID)
	if ticket == nil {
		return nil, fmt.Errorf("%w: ticket %s", status.ErrNotFound, ticketID)
	}

	view := &TicketDetailView{
		ID:          ticket.ID,
		Type:        string(ticket.Type),
		From:        ticket.From,
		To:          ticket.To,
		Date:        ticket.Date,
		Time:        ticket.Time,
		Price:       ticket.Price,
		Quantity:    ticket.Quantity,
		Description: ticket.Description,
		SellerName:  ticket.SellerName,
		MaxQuantity: ticket.Quantity,
	}

	if f := ticket.File; f != nil {
		view.Attachment = &AttachmentInfo{
			Name:       f.Name,
			Size:       f.Size,
			Type:       f.Type,
			BlobHandle: f.BlobHandle,
		}
	}

	me := st.CurrentUser
	if me != nil {
		view.IsOwnListing = me.ID == ticket.SellerID
		if !view.IsOwnListing {
			if seller := st.UserByID(ticket.SellerID); seller != nil {
				view.SellerContact = seller.Email
			}
			view.CanBuy = ticket.Available()
		}
	}
	return view, nil
}
