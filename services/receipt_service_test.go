package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tickethub/internal/status"
)

func TestReceiptService_Receipt(t *testing.T) {
	app, _, _ := setupTestApp(t)
	receipts := NewReceiptService(app)

	data, filename, err := receipts.Receipt("order-001")

	require.NoError(t, err)
	assert.Equal(t, "receipt-order-001.pdf", filename)
	require.Greater(t, len(data), 4)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestReceiptService_Receipt_UnknownOrder(t *testing.T) {
	app, _, _ := setupTestApp(t)
	receipts := NewReceiptService(app)

	_, _, err := receipts.Receipt("order-999")
	assert.ErrorIs(t, err, status.ErrNotFound)
}

func TestReceiptService_Receipt_DanglingTicket(t *testing.T) {
	app, _, _ := setupTestApp(t)
	receipts := NewReceiptService(app)
	listings := NewListingService(app, NewUploadService(app))

	// Delete the ticket the order references; the receipt still renders
	login(app, "user-001")
	require.NoError(t, listings.Delete(context.Background(), "ticket-001"))

	data, _, err := receipts.Receipt("order-001")
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}
