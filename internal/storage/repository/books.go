package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bookvault/bookvault/internal/models"
)

// CreateBook вставляет новую книгу каталога и возвращает её ID.
func (s *Storage) CreateBook(ctx context.Context, book models.Book) (int64, error) {
	const op = "storage.CreateBook"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO books (title, author, isbn, publication_year, genre,
			      price, stock_quantity, cover_image)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id`
	var newID int64
	err := s.DB.QueryRowContext(ctx, query,
		book.Title, book.Author, book.ISBN, book.PublicationYear, book.Genre,
		book.Price, book.StockQuantity, book.CoverImage).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetBook возвращает книгу по её ID.
// Если книга не найдена, возвращает models.ErrBookNotFound.
func (s *Storage) GetBook(ctx context.Context, bookID int64) (*models.Book, error) {
	const op = "storage.GetBook"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, author, isbn, publication_year, genre,
			      price, stock_quantity, cover_image, created_at
			  FROM books WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, bookID)

	var result models.Book
	if err := row.Scan(&result.ID, &result.Title, &result.Author, &result.ISBN,
		&result.PublicationYear, &result.Genre, &result.Price, &result.StockQuantity,
		&result.CoverImage, &result.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrBookNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// ListBooks возвращает все книги каталога.
func (s *Storage) ListBooks(ctx context.Context) ([]*models.Book, error) {
	const op = "storage.ListBooks"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, author, isbn, publication_year, genre,
			      price, stock_quantity, cover_image, created_at
			  FROM books
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Book
	for rows.Next() {
		var item models.Book
		if err := rows.Scan(&item.ID, &item.Title, &item.Author, &item.ISBN,
			&item.PublicationYear, &item.Genre, &item.Price, &item.StockQuantity,
			&item.CoverImage, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateBook обновляет данные книги по её ID и возвращает количество изменённых строк.
func (s *Storage) UpdateBook(ctx context.Context, book models.Book, bookID int64) (int, error) {
	const op = "storage.UpdateBook"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE books
			  SET title = $1, author = $2, isbn = $3, publication_year = $4,
			      genre = $5, price = $6, stock_quantity = $7, cover_image = $8
			  WHERE id = $9`
	result, err := s.DB.ExecContext(ctx, query,
		book.Title, book.Author, book.ISBN, book.PublicationYear,
		book.Genre, book.Price, book.StockQuantity, book.CoverImage, bookID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveBook удаляет книгу по ID и возвращает количество удалённых строк.
// Позиции корзин, ссылающиеся на книгу, удаляются каскадно внешним ключом.
func (s *Storage) RemoveBook(ctx context.Context, bookID int64) (int, error) {
	const op = "storage.RemoveBook"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM books WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, bookID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
