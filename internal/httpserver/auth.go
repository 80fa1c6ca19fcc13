package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Nerldy/hello-books-api/internal/service"
	"github.com/Nerldy/hello-books-api/internal/transport"
	"github.com/Nerldy/hello-books-api/internal/validate"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil || req == (transport.RegisterRequest{}) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bad request"})
	}

	if err := h.Svc.Register(c.Request().Context(), req); err != nil {
		var verr *validate.ValidationError
		switch {
		case errors.As(err, &verr):
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": verr.Fields})
		case errors.Is(err, service.ErrUserExists):
			return c.JSON(http.StatusAccepted, echo.Map{"message": "user already exists. Please login"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{"message": "you successfully registered"})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil || req == (transport.LoginRequest{}) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bad request"})
	}

	token, err := h.Svc.Login(c.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found. Please register"})
		case errors.Is(err, service.ErrInvalidCredentials):
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid username, password or email. Try again."})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":      "successfully logged in",
		"access_token": token,
	})
}
