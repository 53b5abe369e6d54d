// Package cart содержит бизнес-логику корзины покупателя: добавление
// со слиянием дубликатов, смену количества, удаление и выдачу содержимого.
//
// Проверка остатка склада консультативная: количество в корзине сверяется
// со свежепрочитанным stock_quantity, но сам остаток здесь никогда не
// уменьшается. Резервирование и списание — задача оформления заказа,
// которой в этом сервисе нет. Кросс-пользовательской блокировки остатка
// нет намеренно: два покупателя могут одновременно пройти проверку по
// одному и тому же снимку склада.
package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bookvault/bookvault/internal/models"
)

// Repository определяет методы хранилища, нужные корзине.
type Repository interface {
	// GetBook возвращает книгу по ID или models.ErrBookNotFound.
	GetBook(ctx context.Context, bookID int64) (*models.Book, error)
	// GetCartLine возвращает позицию (userID, bookID) или models.ErrCartLineNotFound.
	GetCartLine(ctx context.Context, userID, bookID int64) (*models.CartLine, error)
	// GetOwnedCartLine возвращает позицию по ID для владельца или models.ErrCartLineNotFound.
	GetOwnedCartLine(ctx context.Context, userID, lineID int64) (*models.CartLine, error)
	// CreateCartLine вставляет позицию и возвращает её ID.
	CreateCartLine(ctx context.Context, line models.CartLine) (int64, error)
	// UpdateCartLineQuantity меняет количество, возвращает число изменённых строк.
	UpdateCartLineQuantity(ctx context.Context, userID, lineID int64, quantity int) (int, error)
	// RemoveCartLine удаляет позицию владельца, возвращает число удалённых строк.
	RemoveCartLine(ctx context.Context, userID, lineID int64) (int, error)
	// ListCartItems возвращает корзину пользователя вместе с полями книг.
	ListCartItems(ctx context.Context, userID int64) ([]*models.CartItem, error)
}

// Service реализует бизнес-логику корзины.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// AddResult — результат добавления в корзину.
type AddResult struct {
	LineID   int64 // Идентификатор позиции (новой или слитой)
	Quantity int   // Итоговое количество в позиции
	Merged   bool  // true, если книга уже была в корзине и количество слилось
}

// Add добавляет книгу в корзину пользователя.
//
// Если позиция (userID, bookID) уже существует, количество складывается
// с имеющимся, а не создаётся дубликат. Слитое количество тоже сверяется
// с остатком: превышение — models.ErrInsufficientStock.
func (s *Service) Add(ctx context.Context, userID, bookID int64, quantity int) (*AddResult, error) {
	const op = "services.cart.Add"

	book, err := s.repo.GetBook(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if quantity > book.StockQuantity {
		return nil, fmt.Errorf("%s: %w", op, models.ErrInsufficientStock)
	}

	existing, err := s.repo.GetCartLine(ctx, userID, bookID)
	if err == nil {
		merged := existing.Quantity + quantity
		if merged > book.StockQuantity {
			return nil, fmt.Errorf("%s: %w", op, models.ErrInsufficientStock)
		}
		if _, err = s.repo.UpdateCartLineQuantity(ctx, userID, existing.ID, merged); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		s.log.Info("merged cart line",
			slog.Int64("cart_id", existing.ID), slog.Int("quantity", merged))
		return &AddResult{LineID: existing.ID, Quantity: merged, Merged: true}, nil
	}
	if !isNotFound(err) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	line := models.CartLine{
		UserID:   userID,
		BookID:   bookID,
		Quantity: quantity,
	}
	id, err := s.repo.CreateCartLine(ctx, line)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("created cart line", slog.Int64("cart_id", id), slog.Int("quantity", quantity))
	return &AddResult{LineID: id, Quantity: quantity, Merged: false}, nil
}

// UpdateQuantity устанавливает новое количество для позиции корзины.
//
// Позиция должна принадлежать пользователю; остаток склада перечитывается
// заново, а не берётся из позиции.
func (s *Service) UpdateQuantity(ctx context.Context, userID, lineID int64, quantity int) error {
	const op = "services.cart.UpdateQuantity"

	line, err := s.repo.GetOwnedCartLine(ctx, userID, lineID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	book, err := s.repo.GetBook(ctx, line.BookID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if quantity > book.StockQuantity {
		return fmt.Errorf("%s: %w", op, models.ErrInsufficientStock)
	}

	rows, err := s.repo.UpdateCartLineQuantity(ctx, userID, lineID, quantity)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrCartLineNotFound)
	}
	return nil
}

// Remove удаляет позицию корзины пользователя.
// Повторное удаление той же позиции возвращает models.ErrCartLineNotFound.
func (s *Service) Remove(ctx context.Context, userID, lineID int64) error {
	const op = "services.cart.Remove"

	rows, err := s.repo.RemoveCartLine(ctx, userID, lineID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrCartLineNotFound)
	}
	return nil
}

// List возвращает содержимое корзины пользователя вместе с актуальными
// полями книг, от недавно добавленных к старым.
func (s *Service) List(ctx context.Context, userID int64) ([]*models.CartItem, error) {
	const op = "services.cart.List"

	items, err := s.repo.ListCartItems(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return items, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, models.ErrCartLineNotFound)
}
