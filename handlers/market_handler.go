package handlers

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v5"

	"tickethub/models"
	"tickethub/services"
	"tickethub/views"
)

type MarketHandler struct {
	app      *services.App
	listings *services.ListingService
	orders   *services.OrderService
	uploads  *services.UploadService
	receipts *services.ReceiptService
}

func NewMarketHandler(
	app *services.App,
	listings *services.ListingService,
	orders *services.OrderService,
	uploads *services.UploadService,
	receipts *services.ReceiptService,
) *MarketHandler {
	return &MarketHandler{
		app:      app,
		listings: listings,
		orders:   orders,
		uploads:  uploads,
		receipts: receipts,
	}
}

// View navigates to the requested page and returns its ViewModel. Unknown
// pages fall back to home; gated pages render their login-required or
// access-denied descriptor instead of an error.
func (h *MarketHandler) View(c echo.Context) error {
	page := models.ParsePage(c.QueryParam("page"))
	h.app.NavigateTo(page)

	var vm views.ViewModel
	h.app.Do(func(st *models.AppState) {
		if page == models.PageBrowse {
			vm = views.Browse(st, views.BrowseQuery{
				Search: c.QueryParam("search"),
				Type:   models.TicketType(c.QueryParam("type")),
				Sort:   c.QueryParam("sort"),
			})
			return
		}
		vm = views.Render(st)
	})
	return c.JSON(http.StatusOK, vm)
}

func (h *MarketHandler) TicketDetail(c echo.Context) error {
	var detail *views.TicketDetailView
	var err error
	h.app.Do(func(st *models.AppState) {
		detail, err = views.TicketDetail(st, c.QueryParam("id"))
	})
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, detail)
}

func (h *MarketHandler) CreateListing(c echo.Context) error {
	var req services.ListingInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	ticket, err := h.listings.Create(c.Request().Context(), req)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusCreated, ticket)
}

func (h *MarketHandler) DeleteListing(c echo.Context) error {
	if err := h.listings.Delete(c.Request().Context(), c.QueryParam("id")); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *MarketHandler) Purchase(c echo.Context) error {
	var req struct {
		TicketID string `json:"ticket_id"`
		Quantity int    `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	order, err := h.orders.Purchase(c.Request().Context(), req.TicketID, req.Quantity)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusCreated, order)
}

// StageUpload stages a multipart file as the draft for the next listing.
func (h *MarketHandler) StageUpload(c echo.Context) error {
	file, header, err := c.Request().FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Missing file"})
	}
	defer file.Close()

	// Read one byte past the cap so oversized uploads are detected without
	// buffering arbitrarily large bodies.
	data, err := io.ReadAll(io.LimitReader(file, services.MaxUploadSize+1))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Unreadable file"})
	}

	draft, err := h.uploads.Stage(
		c.Request().Context(),
		header.Filename,
		header.Header.Get("Content-Type"),
		0,
		data,
	)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusCreated, draft)
}

func (h *MarketHandler) CancelUpload(c echo.Context) error {
	h.uploads.Cancel(c.Request().Context())
	return c.JSON(http.StatusOK, map[string]string{"status": "cancelled"})
}

// Attachment streams the bytes behind a staged or attached file handle.
func (h *MarketHandler) Attachment(c echo.Context) error {
	data, ok := h.uploads.Resolve(c.QueryParam("handle"))
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Unknown attachment"})
	}
	return c.Blob(http.StatusOK, "application/octet-stream", data)
}

func (h *MarketHandler) Receipt(c echo.Context) error {
	data, filename, err := h.receipts.Receipt(c.QueryParam("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	c.Response().Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK, "application/pdf", data)
}
