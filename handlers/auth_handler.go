package handlers

import (
	"net/http"

	"github.com/labstack/echo/v5"

	"tickethub/services"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	user, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) Signup(c echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	user, err := h.auth.Signup(c.Request().Context(), req.Email, req.Password, req.Name)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) Logout(c echo.Context) error {
	h.auth.Logout(c.Request().Context())
	return c.JSON(http.StatusOK, map[string]string{"status": "logged out"})
}
