package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Nerldy/hello-books-api/internal/middleware"
)

type Deps struct {
	AuthHandler *AuthHTTP
	BookHandler *BookHTTP
	AuthMW      *middleware.Auth
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	auth := e.Group("/api/v2/auth")
	auth.POST("/register", d.AuthHandler.Register)
	auth.POST("/login", d.AuthHandler.Login)

	books := e.Group("/api/v2/books")
	books.GET("", d.BookHandler.ListBooks)
	books.GET("/search", d.BookHandler.SearchBooks)

	protected := books.Group("", d.AuthMW.RequireAuth)
	protected.GET("/:id", d.BookHandler.GetBook)

	admin := books.Group("", d.AuthMW.RequireAuth, d.AuthMW.AdminOnly)
	admin.POST("", d.BookHandler.CreateBook)
	admin.PUT("/:id", d.BookHandler.UpdateBook)
	admin.DELETE("/:id", d.BookHandler.DeleteBook)
}
