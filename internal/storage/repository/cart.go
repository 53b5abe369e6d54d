package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bookvault/bookvault/internal/models"
)

// GetCartLine возвращает позицию корзины пользователя для конкретной книги.
// Если позиции нет, возвращает models.ErrCartLineNotFound.
func (s *Storage) GetCartLine(ctx context.Context, userID, bookID int64) (*models.CartLine, error) {
	const op = "storage.GetCartLine"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, book_id, quantity, created_at
			  FROM cart
			  WHERE user_id = $1 AND book_id = $2`
	var line models.CartLine
	row := s.DB.QueryRowContext(ctx, query, userID, bookID)
	if err := row.Scan(&line.ID, &line.UserID, &line.BookID, &line.Quantity,
		&line.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrCartLineNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &line, nil
}

// GetOwnedCartLine возвращает позицию корзины по её ID, только если она
// принадлежит указанному пользователю. Чужая или несуществующая позиция
// неразличимы: в обоих случаях models.ErrCartLineNotFound.
func (s *Storage) GetOwnedCartLine(ctx context.Context, userID, lineID int64) (*models.CartLine, error) {
	const op = "storage.GetOwnedCartLine"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, book_id, quantity, created_at
			  FROM cart
			  WHERE id = $1 AND user_id = $2`
	var line models.CartLine
	row := s.DB.QueryRowContext(ctx, query, lineID, userID)
	if err := row.Scan(&line.ID, &line.UserID, &line.BookID, &line.Quantity,
		&line.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrCartLineNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &line, nil
}

// CreateCartLine вставляет новую позицию корзины и возвращает её ID.
func (s *Storage) CreateCartLine(ctx context.Context, line models.CartLine) (int64, error) {
	const op = "storage.CreateCartLine"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO cart (user_id, book_id, quantity)
			  VALUES ($1, $2, $3)
			  RETURNING id`
	var newID int64
	err := s.DB.QueryRowContext(ctx, query,
		line.UserID, line.BookID, line.Quantity).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// UpdateCartLineQuantity устанавливает количество в позиции корзины пользователя
// и возвращает количество изменённых строк. Ноль означает, что позиция
// не существует или принадлежит другому пользователю.
func (s *Storage) UpdateCartLineQuantity(ctx context.Context, userID, lineID int64, quantity int) (int, error) {
	const op = "storage.UpdateCartLineQuantity"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE cart SET quantity = $1 WHERE id = $2 AND user_id = $3`
	result, err := s.DB.ExecContext(ctx, query, quantity, lineID, userID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveCartLine удаляет позицию корзины пользователя и возвращает количество
// удалённых строк.
func (s *Storage) RemoveCartLine(ctx context.Context, userID, lineID int64) (int, error) {
	const op = "storage.RemoveCartLine"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM cart WHERE id = $1 AND user_id = $2`
	result, err := s.DB.ExecContext(ctx, query, lineID, userID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListCartItems возвращает позиции корзины пользователя вместе с текущими
// полями книг, от недавно добавленных к старым.
func (s *Storage) ListCartItems(ctx context.Context, userID int64) ([]*models.CartItem, error) {
	const op = "storage.ListCartItems"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT c.id, c.book_id, c.quantity,
			      b.title, b.author, b.price, b.stock_quantity, b.cover_image
			  FROM cart c
			  JOIN books b ON b.id = c.book_id
			  WHERE c.user_id = $1
			  ORDER BY c.created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.CartItem
	for rows.Next() {
		var item models.CartItem
		if err := rows.Scan(&item.CartID, &item.BookID, &item.Quantity,
			&item.Title, &item.Author, &item.Price, &item.StockQuantity,
			&item.CoverImage); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
