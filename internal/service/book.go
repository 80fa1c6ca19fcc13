package service

import (
	"context"
	"fmt"

	"github.com/Nerldy/hello-books-api/internal/logging"
	"github.com/Nerldy/hello-books-api/internal/models"
	"github.com/Nerldy/hello-books-api/internal/mykafka"
	"github.com/Nerldy/hello-books-api/internal/repo"
	"github.com/Nerldy/hello-books-api/internal/search"
)

type BookService struct {
	Repo     *repo.GormRepo
	Producer *mykafka.Producer
	Search   *search.Client
}

func (s *BookService) List(ctx context.Context, offset, limit int) (int64, []models.Book, error) {
	return s.Repo.ListBooks(ctx, offset, limit)
}

func (s *BookService) Get(ctx context.Context, id uint) (*models.Book, error) {
	return s.Repo.GetBook(ctx, id)
}

func (s *BookService) Create(ctx context.Context, book *models.Book) error {
	if err := s.Repo.CreateBook(ctx, book); err != nil {
		return err
	}
	s.indexBook(ctx, book)
	s.publish(ctx, book.ID, map[string]any{
		"type":    "book_created",
		"book_id": book.ID,
		"isbn":    book.ISBN,
	})
	return nil
}

func (s *BookService) UpdateTitle(ctx context.Context, id uint, title string) (*models.Book, error) {
	book, err := s.Repo.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}

	book.Title = title
	if err := s.Repo.UpdateBook(ctx, book); err != nil {
		return nil, err
	}

	s.indexBook(ctx, book)
	s.publish(ctx, book.ID, map[string]any{
		"type":    "book_updated",
		"book_id": book.ID,
	})
	return book, nil
}

func (s *BookService) Delete(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteBook(ctx, id); err != nil {
		return err
	}

	l := logging.FromContext(ctx)
	if err := s.Search.DeleteBook(ctx, id); err != nil {
		l.Warn("search_delete_failed", "book_id", id, "error", err)
	}
	s.publish(ctx, id, map[string]any{
		"type":    "book_deleted",
		"book_id": id,
	})
	return nil
}

func (s *BookService) SearchBooks(ctx context.Context, query string, from, size int) (int64, []models.Book, error) {
	return s.Search.Search(ctx, query, from, size)
}

// Indexing and event publishing are best effort, the store is the source
// of truth.
func (s *BookService) indexBook(ctx context.Context, book *models.Book) {
	if err := s.Search.IndexBook(ctx, book); err != nil {
		logging.FromContext(ctx).Warn("search_index_failed", "book_id", book.ID, "error", err)
	}
}

func (s *BookService) publish(ctx context.Context, key uint, event map[string]any) {
	if err := s.Producer.PublishEvent(ctx, "book_events", fmt.Sprint(key), event); err != nil {
		logging.FromContext(ctx).Warn("event_publish_failed", "error", err)
	}
}
