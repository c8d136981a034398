package handlers

import (
	"net/http"

	"github.com/labstack/echo/v5"

	"tickethub/services"
)

type AdminHandler struct {
	admin *services.AdminService
}

func NewAdminHandler(admin *services.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

func (h *AdminHandler) DeleteUser(c echo.Context) error {
	if err := h.admin.DeleteUser(c.Request().Context(), c.QueryParam("id")); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "deleted"})
}
