package services

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"

	"tickethub/internal/status"
	"tickethub/utils"
)

// ReceiptService renders a PDF receipt for a completed order. Orders may
// reference tickets that were deleted since; the receipt then shows the
// route as Unknown instead of failing, matching how the views handle
// dangling references.
type ReceiptService struct {
	app *App
}

func NewReceiptService(app *App) *ReceiptService {
	return &ReceiptService{app: app}
}

func (s *ReceiptService) Receipt(orderID string) ([]byte, string, error) {
	s.app.mu.Lock()
	defer s.app.mu.Unlock()

	order := s.app.State.OrderByID(orderID)
	if order == nil {
		return nil, "", fmt.Errorf("%w: order %s", status.ErrNotFound, orderID)
	}

	route := "Unknown"
	kind := "-"
	travel := "-"
	if ticket := s.app.State.TicketByID(order.TicketID); ticket != nil {
		route = fmt.Sprintf("%s -> %s", ticket.From, ticket.To)
		kind = string(ticket.Type)
		travel = fmt.Sprintf("%s %s", ticket.Date, ticket.Time)
	}

	refCode, err := utils.GenerateCode(4)
	if err != nil {
		return nil, "", fmt.Errorf("generate receipt code: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("TicketHub Receipt", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "TICKETHUB RECEIPT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Receipt No : %s", refCode),
		fmt.Sprintf("Order ID   : %s", order.ID),
		fmt.Sprintf("Buyer      : %s", order.BuyerName),
		fmt.Sprintf("Route      : %s", route),
		fmt.Sprintf("Type       : %s", kind),
		fmt.Sprintf("Travel     : %s", travel),
		fmt.Sprintf("Quantity   : %d", order.Quantity),
		fmt.Sprintf("Total      : $%s", order.Total.StringFixed(2)),
		fmt.Sprintf("Status     : %s", order.Status),
		fmt.Sprintf("Purchased  : %s", order.CreatedAt.Format("2006-01-02 15:04")),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("render receipt: %w", err)
	}

	filename := fmt.Sprintf("receipt-%s.pdf", order.ID)
	return buf.Bytes(), filename, nil
}
