package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Nerldy/hello-books-api/internal/models"
	"github.com/Nerldy/hello-books-api/internal/repo"
	"github.com/Nerldy/hello-books-api/internal/service"
	"github.com/Nerldy/hello-books-api/internal/transport"
	"github.com/Nerldy/hello-books-api/internal/util"
	"github.com/Nerldy/hello-books-api/internal/validate"
)

type BookHTTP struct {
	Svc *service.BookService
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

func (h *BookHTTP) ListBooks(c echo.Context) error {
	pageNum := parseIntDefault(c.QueryParam("page_num"), 1)
	limit := parseIntDefault(c.QueryParam("limit"), util.DefaultPageSize)

	offset, size := util.Calculate(pageNum, limit)

	total, items, err := h.Svc.List(c.Request().Context(), offset, size)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"books": items,
		"meta": echo.Map{
			"page_num":    pageNum,
			"limit":       size,
			"total":       total,
			"total_pages": (total + int64(size) - 1) / int64(size),
			"has_prev":    pageNum > 1,
			"has_next":    int64(offset+size) < total,
		},
	})
}

func (h *BookHTTP) SearchBooks(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "query param q is required"})
	}

	pageNum := parseIntDefault(c.QueryParam("page_num"), 1)
	limit := parseIntDefault(c.QueryParam("limit"), util.DefaultPageSize)
	offset, size := util.Calculate(pageNum, limit)

	total, items, err := h.Svc.SearchBooks(c.Request().Context(), query, offset, size)
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "search is unavailable"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"books": items,
		"meta": echo.Map{
			"page_num": pageNum,
			"limit":    size,
			"total":    total,
		},
	})
}

func (h *BookHTTP) GetBook(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bad request"})
	}

	book, err := h.Svc.Get(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}

	return c.JSON(http.StatusOK, book)
}

func (h *BookHTTP) CreateBook(c echo.Context) error {
	var req transport.CreateBookRequest
	if err := c.Bind(&req); err != nil || req == (transport.CreateBookRequest{}) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bad request"})
	}

	if verr := validate.Struct(req); verr != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": verr.Fields})
	}

	isbn := validate.FormatInput(req.ISBN)
	if len(isbn) != 10 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "isbn length must be 10"})
	}
	if !isNumeric(isbn) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "isbn must only include numbers"})
	}

	book := models.Book{
		Title: validate.FormatInput(req.Title),
		ISBN:  isbn,
	}
	if err := h.Svc.Create(c.Request().Context(), &book); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": fmt.Sprintf("book with ISBN %s already exists", req.ISBN),
			})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}

	return c.JSON(http.StatusCreated, echo.Map{"book_created": book})
}

func (h *BookHTTP) UpdateBook(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bad request"})
	}

	var req transport.UpdateBookRequest
	if err := c.Bind(&req); err != nil || req == (transport.UpdateBookRequest{}) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bad request"})
	}

	if verr := validate.Struct(req); verr != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": verr.Fields})
	}

	book, err := h.Svc.UpdateTitle(c.Request().Context(), uint(id), validate.FormatInput(req.Title))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}

	return c.JSON(http.StatusCreated, echo.Map{"book_updated": book})
}

func (h *BookHTTP) DeleteBook(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bad request"})
	}

	if err := h.Svc.Delete(c.Request().Context(), uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": fmt.Sprintf("Book with ID %d deleted", id)})
}
