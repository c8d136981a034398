package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"tickethub/models"
	"tickethub/monitoring"
	"tickethub/notify"
	"tickethub/store"
	"tickethub/utils"
)

// App owns the whole application state and the persistence cycle around it.
// Every domain operation runs under its lock, mutates the state fully or
// not at all, persists a snapshot, and notifies the outcome. There is no
// other path to the state: handlers and views go through App.
type App struct {
	mu       sync.Mutex
	State    *models.AppState
	store    store.Store
	notifier notify.Notifier
	breaker  *utils.CircuitBreaker
}

func NewApp(st store.Store, notifier notify.Notifier) *App {
	return &App{
		State:    &models.AppState{CurrentPage: models.PageHome},
		store:    st,
		notifier: notifier,
		breaker:  utils.NewCircuitBreaker("snapshot-store"),
	}
}

// Load restores the last snapshot. A first run (or an unreadable store)
// yields an empty user set, which triggers demo seeding so the marketplace
// is never empty.
func (a *App) Load(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	snap, err := a.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	a.State.Users = snap.Users
	a.State.Tickets = snap.Tickets
	a.State.Orders = snap.Orders
	a.State.CurrentUser = snap.CurrentUser

	if len(a.State.Users) == 0 {
		a.seedDemoData()
		a.persist(ctx)
		slog.Info("seeded demo data", "users", len(a.State.Users), "tickets", len(a.State.Tickets))
	}
	return nil
}

func (a *App) seedDemoData() {
	now := time.Now().UTC()

	a.State.Users = []*models.User{
		{
			ID:        "admin-001",
			Email:     "admin@tickethub.com",
			Password:  "admin123",
			Name:      "Admin User",
			Role:      models.RoleAdmin,
			CreatedAt: now,
		},
		{
			ID:        "user-001",
			Email:     "john@example.com",
			Password:  "john123",
			Name:      "John Doe",
			Role:      models.RoleUser,
			CreatedAt: now,
		},
		{
			ID:        "user-002",
			Email:     "jane@example.com",
			Password:  "jane123",
			Name:      "Jane Smith",
			Role:      models.RoleUser,
			CreatedAt: now,
		},
	}

	a.State.Tickets = []*models.Ticket{
		{
			ID:          "ticket-001",
			Type:        models.TicketRailway,
			From:        "New York",
			To:          "Boston",
			Date:        "2024-01-15",
			Time:        "10:00",
			Price:       decimal.NewFromInt(45),
			Quantity:    2,
			SellerID:    "user-001",
			SellerName:  "John Doe",
			Status:      models.TicketActive,
			Description: "Return tickets for Northeast Regional",
			CreatedAt:   now,
		},
		{
			ID:          "ticket-002",
			Type:        models.TicketBus,
			From:        "Los Angeles",
			To:          "San Francisco",
			Date:        "2024-01-20",
			Time:        "14:30",
			Price:       decimal.NewFromInt(35),
			Quantity:    1,
			SellerID:    "user-002",
			SellerName:  "Jane Smith",
			Status:      models.TicketActive,
			Description: "Greyhound Bus ticket",
			CreatedAt:   now,
		},
		{
			ID:          "ticket-003",
			Type:        models.TicketFlight,
			From:        "Miami",
			To:          "New York",
			Date:        "2024-01-18",
			Time:        "08:00",
			Price:       decimal.NewFromInt(120),
			Quantity:    3,
			SellerID:    "user-001",
			SellerName:  "John Doe",
			Status:      models.TicketActive,
			Description: "Return flight tickets",
			CreatedAt:   now,
		},
	}

	a.State.Orders = []*models.Order{
		{
			ID:        "order-001",
			TicketID:  "ticket-001",
			BuyerID:   "user-002",
			BuyerName: "Jane Smith",
			Quantity:  1,
			Total:     decimal.NewFromInt(45),
			Status:    models.OrderCompleted,
			CreatedAt: now.Add(-24 * time.Hour),
		},
	}
}

// persist writes the current snapshot. Failures are non-fatal: the
// in-memory state stays authoritative for the running session, the failure
// is logged, counted, and surfaced as a warning notification. Callers must
// hold a.mu.
func (a *App) persist(ctx context.Context) {
	err := a.breaker.Execute(ctx, func() error {
		return a.store.Save(ctx, a.State.Snapshot())
	})
	if err != nil {
		monitoring.PersistenceFailure()
		slog.Warn("snapshot save failed, keeping in-memory state", "error", err)
		a.notifier.Notify(ctx, notify.LevelError, "Warning: your latest changes could not be saved")
	}
}

// NavigateTo switches the current view. Transitions are never rejected;
// access gating happens when the view is rendered.
func (a *App) NavigateTo(page models.Page) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.State.CurrentPage = page
}

// Do runs fn with exclusive access to the application state. The render
// layer uses it to read a consistent state.
func (a *App) Do(fn func(st *models.AppState)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fn(a.State)
}

// Session returns the currently authenticated user, or nil.
func (a *App) Session() *models.User {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.State.CurrentUser
}

// StateStats summarizes the state for the metrics gauges.
func (a *App) StateStats() monitoring.StateStats {
	a.mu.Lock()
	defer a.mu.Unlock()

	stats := monitoring.StateStats{
		Users:  len(a.State.Users),
		Orders: len(a.State.Orders),
	}
	for _, t := range a.State.Tickets {
		if t.Available() {
			stats.ActiveTickets++
		} else {
			stats.SoldTickets++
		}
	}
	return stats
}
