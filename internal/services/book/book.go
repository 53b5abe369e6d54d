// Package book содержит бизнес-логику каталога книг, включая кеширование
// публичного списка. Остаток склада для проверок корзины через кеш не ходит:
// сервис корзины читает книги напрямую из хранилища.
package book

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bookvault/bookvault/internal/lib/sl"
	"github.com/bookvault/bookvault/internal/models"
)

const listCacheKey = "books:list"

// Repository определяет методы хранилища для каталога книг.
type Repository interface {
	// CreateBook вставляет книгу и возвращает её ID.
	CreateBook(ctx context.Context, book models.Book) (int64, error)
	// GetBook возвращает книгу по ID или models.ErrBookNotFound.
	GetBook(ctx context.Context, bookID int64) (*models.Book, error)
	// ListBooks возвращает весь каталог.
	ListBooks(ctx context.Context) ([]*models.Book, error)
	// UpdateBook обновляет книгу, возвращает число изменённых строк.
	UpdateBook(ctx context.Context, book models.Book, bookID int64) (int, error)
	// RemoveBook удаляет книгу, возвращает число удалённых строк.
	RemoveBook(ctx context.Context, bookID int64) (int, error)
}

// Cache описывает методы для кэширования данных каталога.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// Service реализует бизнес-логику каталога книг.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, cache Cache, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Create добавляет книгу в каталог и сбрасывает кеш списка.
func (s *Service) Create(ctx context.Context, req models.DummyBook) (int64, error) {
	const op = "services.book.Create"

	book := models.Book{
		Title:           req.Title,
		Author:          req.Author,
		ISBN:            req.ISBN,
		PublicationYear: req.PublicationYear,
		Genre:           req.Genre,
		Price:           req.Price,
		StockQuantity:   req.StockQuantity,
		CoverImage:      req.CoverImage,
	}
	id, err := s.repo.CreateBook(ctx, book)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	s.invalidateList(ctx)
	s.log.Info("created book", slog.Int64("id", id))
	return id, nil
}

// Read возвращает книгу по ID.
func (s *Service) Read(ctx context.Context, bookID int64) (*models.Book, error) {
	const op = "services.book.Read"

	book, err := s.repo.GetBook(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return book, nil
}

// List возвращает каталог целиком, пользуясь кешем.
// Недоступный кеш деградирует до чтения из базы.
func (s *Service) List(ctx context.Context) ([]*models.Book, error) {
	const op = "services.book.List"

	var cached []*models.Book
	hit, err := s.cache.Get(ctx, listCacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read books cache", sl.Err(err))
	}
	if hit {
		return cached, nil
	}

	books, err := s.repo.ListBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.Set(ctx, listCacheKey, books, time.Minute); err != nil {
		s.log.Warn("failed to cache books list", sl.Err(err))
	}
	return books, nil
}

// Update перезаписывает поля книги и сбрасывает кеш списка.
// Отсутствующая книга — models.ErrBookNotFound.
func (s *Service) Update(ctx context.Context, req models.DummyBook, bookID int64) error {
	const op = "services.book.Update"

	book := models.Book{
		Title:           req.Title,
		Author:          req.Author,
		ISBN:            req.ISBN,
		PublicationYear: req.PublicationYear,
		Genre:           req.Genre,
		Price:           req.Price,
		StockQuantity:   req.StockQuantity,
		CoverImage:      req.CoverImage,
	}
	rows, err := s.repo.UpdateBook(ctx, book, bookID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrBookNotFound)
	}
	s.invalidateList(ctx)
	return nil
}

// Remove удаляет книгу из каталога и сбрасывает кеш списка.
// Позиции корзин с этой книгой удаляются каскадно на уровне базы.
func (s *Service) Remove(ctx context.Context, bookID int64) error {
	const op = "services.book.Remove"

	rows, err := s.repo.RemoveBook(ctx, bookID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrBookNotFound)
	}
	s.invalidateList(ctx)
	return nil
}

func (s *Service) invalidateList(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, listCacheKey); err != nil {
		s.log.Warn("failed to invalidate books cache", sl.Err(err))
	}
}
