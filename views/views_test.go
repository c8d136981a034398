package views

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tickethub/internal/status"
	"tickethub/models"
)

func fixtureState() *models.AppState {
	base := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

	admin := &models.User{ID: "admin-001", Email: "admin@tickethub.com", Name: "Admin User", Role: models.RoleAdmin, CreatedAt: base}
	john := &models.User{ID: "user-001", Email: "john@example.com", Name: "John Doe", Role: models.RoleUser, CreatedAt: base}
	jane := &models.User{ID: "user-002", Email: "jane@example.com", Name: "Jane Smith", Role: models.RoleUser, CreatedAt: base}

	return &models.AppState{
		Users: []*models.User{admin, john, jane},
		Tickets: []*models.Ticket{
			{
				ID: "ticket-001", Type: models.TicketRailway,
				From: "New York", To: "Boston", Date: "2024-01-15", Time: "10:00",
				Price: decimal.NewFromInt(45), Quantity: 2,
				SellerID: "user-001", SellerName: "John Doe",
				Status: models.TicketActive, CreatedAt: base,
			},
			{
				ID: "ticket-002", Type: models.TicketBus,
				From: "Los Angeles", To: "San Francisco", Date: "2024-01-20", Time: "14:30",
				Price: decimal.NewFromInt(35), Quantity: 1,
				SellerID: "user-002", SellerName: "Jane Smith",
				Status: models.TicketActive, CreatedAt: base.Add(time.Hour),
			},
			{
				ID: "ticket-003", Type: models.TicketFlight,
				From: "Miami", To: "New York", Date: "2024-01-18", Time: "08:00",
				Price: decimal.NewFromInt(120), Quantity: 0,
				SellerID: "user-001", SellerName: "John Doe",
				Status: models.TicketSold, CreatedAt: base.Add(2 * time.Hour),
			},
		},
		Orders: []*models.Order{
			{
				ID: "order-001", TicketID: "ticket-001", BuyerID: "user-002", BuyerName: "Jane Smith",
				Quantity: 1, Total: decimal.NewFromInt(45), Status: models.OrderCompleted, CreatedAt: base,
			},
		},
		CurrentPage: models.PageHome,
	}
}

func TestRender_GatesProtectedPages(t *testing.T) {
	st := fixtureState()

	st.CurrentPage = models.PageSell
	view, ok := Render(st).(LoginRequiredView)
	require.True(t, ok)
	assert.Equal(t, models.PageSell, view.Requested)

	st.CurrentPage = models.PageMyTickets
	_, ok = Render(st).(LoginRequiredView)
	assert.True(t, ok)

	st.CurrentPage = models.PageAdmin
	_, denied := Render(st).(AccessDeniedView)
	assert.True(t, denied)

	// A plain user gets access-denied for admin, not login-required
	st.CurrentUser = st.UserByID("user-001")
	_, denied = Render(st).(AccessDeniedView)
	assert.True(t, denied)

	st.CurrentUser = st.UserByID("admin-001")
	_, isAdmin := Render(st).(AdminView)
	assert.True(t, isAdmin)
}

func TestHome_Stats(t *testing.T) {
	st := fixtureState()

	view := Home(st)

	assert.Equal(t, 3, view.Stats.TotalListings)
	assert.Equal(t, 2, view.Stats.ActiveTickets)
	assert.Equal(t, 1, view.Stats.CompletedSales)
	assert.Equal(t, 2, view.Stats.ActiveUsers, "admin accounts are not counted")
	assert.Len(t, view.Featured, 3)
}

func TestHome_FeaturedCapsAtSix(t *testing.T) {
	st := fixtureState()
	for i := 0; i < 10; i++ {
		st.Tickets = append(st.Tickets, &models.Ticket{
			ID: "extra", Quantity: 1, Status: models.TicketActive,
			Price: decimal.NewFromInt(10),
		})
	}

	view := Home(st)
	assert.Len(t, view.Featured, 6)
}

func TestBrowse_ExcludesSoldOut(t *testing.T) {
	view := Browse(fixtureState(), BrowseQuery{})

	assert.Equal(t, 2, view.Total)
	for _, card := range view.Results {
		assert.NotEqual(t, "ticket-003", card.ID)
	}
}

func TestBrowse_SearchMatchesEitherEnd(t *testing.T) {
	st := fixtureState()

	view := Browse(st, BrowseQuery{Search: "boston"})
	require.Equal(t, 1, view.Total)
	assert.Equal(t, "ticket-001", view.Results[0].ID)

	view = Browse(st, BrowseQuery{Search: "new york"})
	require.Equal(t, 1, view.Total, "sold-out flight to New York is excluded")
	assert.Equal(t, "ticket-001", view.Results[0].ID)

	view = Browse(st, BrowseQuery{Search: "tokyo"})
	assert.Equal(t, 0, view.Total)
}

func TestBrowse_TypeFilter(t *testing.T) {
	view := Browse(fixtureState(), BrowseQuery{Type: models.TicketBus})

	require.Equal(t, 1, view.Total)
	assert.Equal(t, "ticket-002", view.Results[0].ID)
}

func TestBrowse_Sorting(t *testing.T) {
	st := fixtureState()

	view := Browse(st, BrowseQuery{Sort: SortPriceLow})
	require.Equal(t, 2, view.Total)
	assert.Equal(t, "ticket-002", view.Results[0].ID)

	view = Browse(st, BrowseQuery{Sort: SortPriceHigh})
	assert.Equal(t, "ticket-001", view.Results[0].ID)

	// Default sort is newest first
	view = Browse(st, BrowseQuery{})
	assert.Equal(t, "ticket-002", view.Results[0].ID)
}

func TestSell_IncludesDraft(t *testing.T) {
	st := fixtureState()
	st.CurrentUser = st.UserByID("user-001")
	st.CurrentPage = models.PageSell

	view, ok := Render(st).(SellView)
	require.True(t, ok)
	assert.Nil(t, view.Draft)

	st.UploadDraft = &models.FileAttachment{Name: "doc.pdf", Size: 1024, Type: "application/pdf"}
	view = Sell(st)
	require.NotNil(t, view.Draft)
	assert.Equal(t, "doc.pdf", view.Draft.Name)
}

func TestMyTickets_SplitsListingsAndPurchases(t *testing.T) {
	st := fixtureState()
	st.CurrentUser = st.UserByID("user-002")

	view := MyTickets(st)

	require.Len(t, view.Listings, 1)
	assert.Equal(t, "ticket-002", view.Listings[0].ID)
	require.Len(t, view.Purchases, 1)
	assert.Equal(t, "order-001", view.Purchases[0].OrderID)
	assert.Equal(t, "New York -> Boston", view.Purchases[0].Route)
}

func TestMyTickets_DanglingOrderShowsUnknown(t *testing.T) {
	st := fixtureState()
	st.CurrentUser = st.UserByID("user-002")
	st.Tickets = st.Tickets[1:] // drop ticket-001

	view := MyTickets(st)

	require.Len(t, view.Purchases, 1)
	assert.Equal(t, "Unknown", view.Purchases[0].Route)
}

func TestAdmin_View(t *testing.T) {
	st := fixtureState()
	st.CurrentUser = st.UserByID("admin-001")

	view := Admin(st)

	assert.Equal(t, 2, view.Stats.TotalUsers)
	assert.Equal(t, 3, view.Stats.TotalListings)
	assert.Equal(t, 1, view.Stats.TotalOrders)
	assert.True(t, decimal.NewFromInt(45).Equal(view.Stats.Revenue))

	// Only deletable users appear in the table
	require.Len(t, view.Users, 2)
	for _, row := range view.Users {
		assert.NotEqual(t, "admin", row.Role)
	}

	require.Len(t, view.RecentOrders, 1)
	assert.Equal(t, "order-001", view.RecentOrders[0].ID)
}

func TestAdmin_RecentOrdersNewestFirstCapFive(t *testing.T) {
	st := fixtureState()
	for i := 0; i < 7; i++ {
		st.Orders = append(st.Orders, &models.Order{
			ID:    string(rune('a' + i)),
			Total: decimal.NewFromInt(int64(i)),
		})
	}

	view := Admin(st)

	require.Len(t, view.RecentOrders, 5)
	assert.Equal(t, "g", view.RecentOrders[0].ID)
}

func TestTicketDetail_GatesBuyerFields(t *testing.T) {
	st := fixtureState()

	// Anonymous visitor: no contact, no buy
	detail, err := TicketDetail(st, "ticket-001")
	require.NoError(t, err)
	assert.Empty(t, detail.SellerContact)
	assert.False(t, detail.CanBuy)
	assert.Equal(t, 2, detail.MaxQuantity)

	// Logged-in non-seller sees contact and can buy
	st.CurrentUser = st.UserByID("user-002")
	detail, err = TicketDetail(st, "ticket-001")
	require.NoError(t, err)
	assert.Equal(t, "john@example.com", detail.SellerContact)
	assert.True(t, detail.CanBuy)
	assert.False(t, detail.IsOwnListing)

	// The seller gets neither
	st.CurrentUser = st.UserByID("user-001")
	detail, err = TicketDetail(st, "ticket-001")
	require.NoError(t, err)
	assert.True(t, detail.IsOwnListing)
	assert.Empty(t, detail.SellerContact)
	assert.False(t, detail.CanBuy)
}

func TestTicketDetail_SoldOutNotBuyable(t *testing.T) {
	st := fixtureState()
	st.CurrentUser = st.UserByID("user-002")

	detail, err := TicketDetail(st, "ticket-003")
	require.NoError(t, err)
	assert.False(t, detail.CanBuy)
}

func TestTicketDetail_NotFound(t *testing.T) {
	_, err := TicketDetail(fixtureState(), "ticket-999")
	assert.ErrorIs(t, err, status.ErrNotFound)
}

func TestTicketDetail_Attachment(t *testing.T) {
	st := fixtureState()
	st.Tickets[0].File = &models.FileAttachment{Name: "doc.pdf", Size: 10, Type: "application/pdf", BlobHandle: "blob-1"}

	detail, err := TicketDetail(st, "ticket-001")
	require.NoError(t, err)
	require.NotNil(t, detail.Attachment)
	assert.Equal(t, "blob-1", detail.Attachment.BlobHandle)
}
