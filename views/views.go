package views

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"tickethub/models"
)

// ViewModel describes what a view should display. Rendering it (HTML,
// TUI, JSON) is the presentation layer's problem; everything here is
// derived purely from the application state, with no memory of previous
// renders.
type ViewModel interface {
	viewModel()
}

func (HomeView) viewModel()          {}
func (BrowseView) viewModel()        {}
func (SellView) viewModel()          {}
func (MyTicketsView) viewModel()     {}
func (AdminView) viewModel()         {}
func (LoginRequiredView) viewModel() {}
func (AccessDeniedView) viewModel()  {}

// Render maps the current state to the ViewModel for its current page.
// Navigation is never rejected: a page the session may not see renders a
// login-required or access-denied descriptor instead.
func Render(st *models.AppState) ViewModel {
	switch st.CurrentPage {
	case models.PageBrowse:
		return Browse(st, BrowseQuery{})
	case models.PageSell:
		if st.CurrentUser == nil {
			return LoginRequiredView{Page: "login-required", Requested: models.PageSell}
		}
		return Sell(st)
	case models.PageMyTickets:
		if st.CurrentUser == nil {
			return LoginRequiredView{Page: "login-required", Requested: models.PageMyTickets}
		}
		return MyTickets(st)
	case models.PageAdmin:
		if st.CurrentUser == nil || !st.CurrentUser.IsAdmin() {
			return AccessDeniedView{Page: "access-denied", Requested: models.PageAdmin}
		}
		return Admin(st)
	default:
		return Home(st)
	}
}

type TicketCard struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	From          string          `json:"from"`
	To            string          `json:"to"`
	Date          string          `json:"date"`
	Time          string          `json:"time"`
	SellerName    string          `json:"seller_name"`
	Price         decimal.Decimal `json:"price"`
	Quantity      int             `json:"quantity"`
	Status        string          `json:"status"`
	HasAttachment bool            `json:"has_attachment"`
}

func ticketCard(t *models.Ticket) TicketCard {
	return TicketCard{
		ID:            t.ID,
		Type:          string(t.Type),
		From:          t.From,
		To:            t.To,
		Date:          t.Date,
		Time:          t.Time,
		SellerName:    t.SellerName,
		Price:         t.Price,
		Quantity:      t.Quantity,
		Status:        string(t.Status),
		HasAttachment: t.File != nil,
	}
}

type Stats struct {
	TotalListings  int `json:"total_listings"`
	ActiveTickets  int `json:"active_tickets"`
	CompletedSales int `json:"completed_sales"`
	ActiveUsers    int `json:"active_users"`
}

type HomeView struct {
	Page     string       `json:"page"`
	Stats    Stats        `json:"stats"`
	Featured []TicketCard `json:"featured"`
}

func Home(st *models.AppState) HomeView {
	view := HomeView{Page: string(models.PageHome), Featured: []TicketCard{}}

	view.Stats.TotalListings = len(st.Tickets)
	view.Stats.CompletedSales = len(st.Orders)
	for _, t := range st.Tickets {
		if t.Available() {
			view.Stats.ActiveTickets++
		}
	}
	for _, u := range st.Users {
		if !u.IsAdmin() {
			view.Stats.ActiveUsers++
		}
	}

	for _, t := range st.Tickets {
		if len(view.Featured) == 6 {
			break
		}
		view.Featured = append(view.Featured, ticketCard(t))
	}
	return view
}

const (
	SortNewest    = "newest"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
)

// BrowseQuery narrows the browse results. Search matches either end of the
// route, case-insensitively.
type BrowseQuery struct {
	Search string
	Type   models.TicketType
	Sort   string
}

type BrowseView struct {
	Page    string       `json:"page"`
	Total   int          `json:"total"`
	Results []TicketCard `json:"results"`
}

func Browse(st *models.AppState, q BrowseQuery) BrowseView {
	view := BrowseView{Page: string(models.PageBrowse), Results: []TicketCard{}}

	needle := strings.ToLower(q.Search)
	matched := []*models.Ticket{}
	for _, t := range st.Tickets {
		if !t.Available() {
			continue
		}
		if q.Type != "" && t.Type != q.Type {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(t.From), needle) &&
			!strings.Contains(strings.ToLower(t.To), needle) {
			continue
		}
		matched = append(matched, t)
	}

	switch q.Sort {
	case SortPriceLow:
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].Price.LessThan(matched[j].Price)
		})
	case SortPriceHigh:
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[j].Price.LessThan(matched[i].Price)
		})
	default: // SortNewest
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[j].CreatedAt.Before(matched[i].CreatedAt)
		})
	}

	for _, t := range matched {
		view.Results = append(view.Results, ticketCard(t))
	}
	view.Total = len(view.Results)
	return view
}

type DraftInfo struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	Type string `json:"type"`
}

type SellView struct {
	Page  string     `json:"page"`
	Draft *DraftInfo `json:"draft,omitempty"`
}

func Sell(st *models.AppState) SellView {
	view := SellView{Page: string(models.PageSell)}
	if d := st.UploadDraft; d != nil {
		view.Draft = &DraftInfo{Name: d.Name, Size: d.Size, Type: d.Type}
	}
	return view
}

type PurchaseRow struct {
	OrderID  string          `json:"order_id"`
	Route    string          `json:"route"`
	Quantity int             `json:"quantity"`
	Total    decimal.Decimal `json:"total"`
	Date     time.Time       `json:"date"`
	Status   string          `json:"status"`
}

type MyTicketsView struct {
	Page      string        `json:"page"`
	Listings  []TicketCard  `json:"listings"`
	Purchases []PurchaseRow `json:"purchases"`
}

func MyTickets(st *models.AppState) MyTicketsView {
	view := MyTicketsView{
		Page:      string(models.PageMyTickets),
		Listings:  []TicketCard{},
		Purchases: []PurchaseRow{},
	}
	me := st.CurrentUser

	for _, t := range st.Tickets {
		if t.SellerID == me.ID {
			view.Listings = append(view.Listings, ticketCard(t))
		}
	}
	for _, o := range st.Orders {
		if o.BuyerID != me.ID {
			continue
		}
		view.Purchases = append(view.Purchases, PurchaseRow{
			OrderID:  o.ID,
			Route:    orderRoute(st, o),
			Quantity: o.Quantity,
			Total:    o.Total,
			Date:     o.CreatedAt,
			Status:   o.Status,
		})
	}
	return view
}

// orderRoute tolerates dangling ticket references: orders outlive the
// tickets they bought.
func orderRoute(st *models.AppState, o *models.Order) string {
	if t := st.TicketByID(o.TicketID); t != nil {
		return fmt.Sprintf("%s -> %s", t.From, t.To)
	}
	return "Unknown"
}

type UserRow struct {
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
	Joined time.Time `json:"joined"`
}

type AdminTicketRow struct {
	TicketCard
	SellerID string `json:"seller_id"`
}

type OrderRow struct {
	ID        string          `json:"id"`
	BuyerName string          `json:"buyer_name"`
	Quantity  int             `json:"quantity"`
	Total     decimal.Decimal `json:"total"`
	Date      time.Time       `json:"date"`
	Status    string          `json:"status"`
}

type AdminStats struct {
	TotalUsers    int             `json:"total_users"`
	TotalListings int             `json:"total_listings"`
	TotalOrders   int             `json:"total_orders"`
	Revenue       decimal.Decimal `json:"revenue"`
}

type AdminView struct {
	Page         string           `json:"page"`
	Stats        AdminStats       `json:"stats"`
	Users        []UserRow        `json:"users"`
	Tickets      []AdminTicketRow `json:"tickets"`
	RecentOrders []OrderRow       `json:"recent_orders"`
}

func Admin(st *models.AppState) AdminView {
	view := AdminView{
		Page:         string(models.PageAdmin),
		Users:        []UserRow{},
		Tickets:      []AdminTicketRow{},
		RecentOrders: []OrderRow{},
	}

	view.Stats.TotalListings = len(st.Tickets)
	view.Stats.TotalOrders = len(st.Orders)
	view.Stats.Revenue = decimal.Zero
	for _, o := range st.Orders {
		view.Stats.Revenue = view.Stats.Revenue.Add(o.Total)
	}

	// Admin accounts are managed out of band; the table only lists
	// deletable users.
	for _, u := range st.Users {
		if u.IsAdmin() {
			continue
		}
		view.Stats.TotalUsers++
		view.Users = append(view.Users, UserRow{
			ID:     u.ID,
			Name:   u.Name,
			Email:  u.Email,
			Role:   string(u.Role),
			Joined: u.CreatedAt,
		})
	}

	for _, t := range st.Tickets {
		view.Tickets = append(view.Tickets, AdminTicketRow{
			TicketCard: ticketCard(t),
			SellerID:   t.SellerID,
		})
	}

	// Last five orders, newest first.
	for i := len(st.Orders) - 1; i >= 0 && len(view.RecentOrders) < 5; i-- {
		o := st.Orders[i]
		view.RecentOrders = append(view.RecentOrders, OrderRow{
			ID:        o.ID,
			BuyerName: o.BuyerName,
			Quantity:  o.Quantity,
			Total:     o.Total,
			Date:      o.CreatedAt,
			Status:    o.Status,
		})
	}
	return view
}

type LoginRequiredView struct {
	Page      string      `json:"page"`
	Requested models.Page `json:"requested"`
}

type AccessDeniedView struct {
	Page      string      `json:"page"`
	Requested models.Page `json:"requested"`
}
