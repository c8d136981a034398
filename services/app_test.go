package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tickethub/models"
	"tickethub/notify"
	"tickethub/store"
)

func setupTestApp(t *testing.T) (*App, *store.MemoryStore, *notify.MemoryNotifier) {
	t.Helper()

	memStore := store.NewMemoryStore()
	notifier := notify.NewMemoryNotifier()
	app := NewApp(memStore, notifier)
	require.NoError(t, app.Load(context.Background()))

	return app, memStore, notifier
}

func login(app *App, userID string) *models.User {
	user := app.State.UserByID(userID)
	app.State.CurrentUser = user
	return user
}

func TestApp_Load_SeedsEmptyStore(t *testing.T) {
	app, memStore, _ := setupTestApp(t)

	assert.Len(t, app.State.Users, 3)
	assert.Len(t, app.State.Tickets, 3)
	assert.Len(t, app.State.Orders, 1)
	assert.Nil(t, app.State.CurrentUser)
	assert.Equal(t, models.PageHome, app.State.CurrentPage)

	admin := app.State.UserByEmail("admin@tickethub.com")
	require.NotNil(t, admin)
	assert.True(t, admin.IsAdmin())

	// The seeded state is persisted immediately
	snap, err := memStore.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.Users, 3)
	assert.Len(t, snap.Tickets, 3)
	assert.Len(t, snap.Orders, 1)
}

func TestApp_Load_RestoresExistingSnapshot(t *testing.T) {
	app, memStore, _ := setupTestApp(t)

	login(app, "user-001")
	app.mu.Lock()
	app.persist(context.Background())
	app.mu.Unlock()

	restored := NewApp(memStore, notify.NewMemoryNotifier())
	require.NoError(t, restored.Load(context.Background()))

	// Restored, not reseeded: same data, session included
	assert.Len(t, restored.State.Users, 3)
	require.NotNil(t, restored.State.CurrentUser)
	assert.Equal(t, "user-001", restored.State.CurrentUser.ID)
}

func TestApp_Load_CorruptSnapshotReseeds(t *testing.T) {
	_, memStore, _ := setupTestApp(t)
	memStore.Corrupt(store.KeyTickets)

	app := NewApp(memStore, notify.NewMemoryNotifier())
	require.NoError(t, app.Load(context.Background()))

	// A corrupt key throws away the whole snapshot and reseeds
	assert.Len(t, app.State.Users, 3)
	assert.Len(t, app.State.Tickets, 3)
	assert.Nil(t, app.State.CurrentUser)
}

func TestApp_Persist_FailureIsNonFatal(t *testing.T) {
	app, memStore, notifier := setupTestApp(t)
	memStore.FailSaves = errors.New("backend down")

	auth := NewAuthService(app)
	user, err := auth.Login(context.Background(), "john@example.com", "john123")

	// The operation still succeeds against the in-memory state
	require.NoError(t, err)
	assert.Equal(t, "user-001", user.ID)
	assert.Equal(t, user, app.Session())

	entries := notifier.Entries()
	require.NotEmpty(t, entries)
	assert.Contains(t, entries, notify.Entry{
		Level:   notify.LevelError,
		Message: "Warning: your latest changes could not be saved",
	})

	// The welcome message still arrives after the warning
	last, ok := notifier.Last()
	require.True(t, ok)
	assert.Equal(t, notify.LevelSuccess, last.Level)
	assert.Equal(t, "Welcome back, John Doe!", last.Message)
}

func TestApp_NavigateTo(t *testing.T) {
	app, _, _ := setupTestApp(t)

	app.NavigateTo(models.PageBrowse)
	assert.Equal(t, models.PageBrowse, app.State.CurrentPage)

	// Gated pages are reachable too; gating happens at render time
	app.NavigateTo(models.PageAdmin)
	assert.Equal(t, models.PageAdmin, app.State.CurrentPage)
}

func TestApp_StateStats(t *testing.T) {
	app, _, _ := setupTestApp(t)

	app.State.TicketByID("ticket-002").Quantity = 0

	stats := app.StateStats()
	assert.Equal(t, 3, stats.Users)
	assert.Equal(t, 2, stats.ActiveTickets)
	assert.Equal(t, 1, stats.SoldTickets)
	assert.Equal(t, 1, stats.Orders)
}
