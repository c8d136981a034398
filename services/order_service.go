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

type OrderService struct {
	app *App
}

func NewOrderService(app *App) *OrderService {
	return &OrderService{app: app}
}

// Purchase buys quantity units of a listing for the current session's
// user. The order snapshots price and buyer name at purchase time; the
// ticket's remaining quantity drops and flips the status to sold when it
// reaches zero. On any failure neither the ticket nor the orders change.
func (s *OrderService) Purchase(ctx context.Context, ticketID string, quantity int) (order *models.Order, err error) {
	defer func() { monitoring.RecordOperation("purchase", err) }()

	s.app.mu.Lock()
	defer s.app.mu.Unlock()

	buyer := s.app.State.CurrentUser
	if buyer == nil {
		s.app.notifier.Notify(ctx, notify.LevelError, "Please login to buy tickets")
		return nil, status.ErrLoginRequired
	}

	ticket := s.app.State.TicketByID(ticketID)
	if ticket == nil {
		return nil, fmt.Errorf("%w: ticket %s", status.ErrNotFound, ticketID)
	}
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", status.ErrValidation)
	}
	if ticket.SellerID == buyer.ID {
		s.app.notifier.Notify(ctx, notify.LevelInfo, "You are the seller of this ticket")
		return nil, status.ErrOwnListing
	}
	if quantity > ticket.Quantity {
		s.app.notifier.Notify(ctx, notify.LevelError, "Not enough tickets available")
		return nil, status.ErrInsufficientQuantity
	}

	order = &models.Order{
		ID:        utils.NewID("order"),
		TicketID:  ticket.ID,
		BuyerID:   buyer.ID,
		BuyerName: buyer.Name,
		Quantity:  quantity,
		Total:     ticket.Price.Mul(decimal.NewFromInt(int64(quantity))),
		Status:    models.OrderCompleted,
		CreatedAt: time.Now().UTC(),
	}

	s.app.State.Orders = append(s.app.State.Orders, order)
	ticket.Quantity -= quantity
	if ticket.Quantity == 0 {
		ticket.Status = models.TicketSold
	}

	s.app.persist(ctx)
	s.app.notifier.Notify(ctx, notify.LevelSuccess, "Ticket purchased successfully!")
	return order, nil
}
