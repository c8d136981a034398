package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"tickethub/internal/status"
	"tickethub/models"
	"tickethub/monitoring"
	"tickethub/notify"
	"tickethub/utils"
)

type ListingInput struct {
	Type        models.TicketType `json:"type"`
	From        string            `json:"from"`
	To          string            `json:"to"`
	Date        string            `json:"date"`
	Time        string            `json:"time"`
	Price       decimal.Decimal   `json:"price"`
	Quantity    int               `json:"quantity"`
	Description string            `json:"description"`
}

type ListingService struct {
	app     *App
	uploads *UploadService
}

func NewListingService(app *App, uploads *UploadService) *ListingService {
	return &ListingService{app: app, uploads: uploads}
}

// Create lists a new ticket for the current session's user. A staged
// upload draft, if any, is attached and consumed. On success the UI moves
// to the my-tickets view.
func (s *ListingService) Create(ctx context.Context, in ListingInput) (ticket *models.Ticket, err error) {
	defer func() { monitoring.RecordOperation("create_listing", err) }()

	s.app.mu.Lock()
	defer s.app.mu.Unlock()

	seller := s.app.State.CurrentUser
	if seller == nil {
		s.app.notifier.Notify(ctx, notify.LevelError, "Please login to sell tickets")
		return nil, status.ErrLoginRequired
	}

	if !in.Type.Valid() || in.From == "" || in.To == "" || in.Date == "" || in.Time == "" {
		s.app.notifier.Notify(ctx, notify.LevelError, "Please fill in all required fields")
		return nil, fmt.Errorf("%w: type, route, date and time are required", status.ErrValidation)
	}
	if !in.Price.IsPositive() {
		s.app.notifier.Notify(ctx, notify.LevelError, "Please fill in all required fields")
		return nil, fmt.Errorf("%w: price must be positive", status.ErrValidation)
	}
	if in.Quantity < 1 {
		s.app.notifier.Notify(ctx, notify.LevelError, "Please fill in all required fields")
		return nil, fmt.Errorf("%w: quantity must be at least 1", status.ErrValidation)
	}

	ticket = &models.Ticket{
		ID:          utils.NewID("ticket"),
		Type:        in.Type,
		From:        in.From,
		To:          in.To,
		Date:        in.Date,
		Time:        in.Time,
		Price:       in.Price,
		Quantity:    in.Quantity,
		SellerID:    seller.ID,
		SellerName:  seller.Name,
		Status:      models.TicketActive,
		Description: in.Description,
		CreatedAt:   time.Now().UTC(),
		File:        s.app.State.UploadDraft,
	}

	s.app.State.Tickets = append(s.app.State.Tickets, ticket)
	s.app.State.UploadDraft = nil
	s.app.State.CurrentPage = models.PageMyTickets
	s.app.persist(ctx)
	s.app.notifier.Notify(ctx, notify.LevelSuccess, "Ticket listed successfully!")
	return ticket, nil
}

// Delete removes a listing. Only its seller or an admin may do so; the
// removal is unconditional, orders referencing the ticket stay behind as
// historical records.
func (s *ListingService) Delete(ctx context.Context, ticketID string) (err error) {
	defer func() { monitoring.RecordOperation("delete_listing", err) }()

	s.app.mu.Lock()
	defer s.app.mu.Unlock()

	actor := s.app.State.CurrentUser
	if actor == nil {
		return status.ErrLoginRequired
	}

	ticket := s.app.State.TicketByID(ticketID)
	if ticket == nil {
		return fmt.Errorf("%w: ticket %s", status.ErrNotFound, ticketID)
	}
	if ticket.SellerID != actor.ID && !actor.IsAdmin() {
		return fmt.Errorf("%w: only the seller or an admin can delete a listing", status.ErrForbidden)
	}

	kept := s.app.State.Tickets[:0]
	for _, t := range s.app.State.Tickets {
		if t.ID != ticketID {
			kept = append(kept, t)
		}
	}
	s.app.State.Tickets = kept

	if ticket.File != nil {
		s.uploads.release(ticket.File.BlobHandle)
	}

	s.app.persist(ctx)
	if actor.IsAdmin() && ticket.SellerID != actor.ID {
		s.app.notifier.Notify(ctx, notify.LevelSuccess, "Ticket removed successfully")
	} else {
		s.app.notifier.Notify(ctx, notify.LevelSuccess, "Ticket deleted successfully")
	}
	return nil
}
