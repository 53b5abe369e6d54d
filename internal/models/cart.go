// Package models содержит доменные структуры корзины покупателя.
package models

import "time"

// CartLine — позиция корзины: количество конкретной книги у конкретного
// пользователя. Пара (UserID, BookID) уникальна: повторное добавление той же
// книги увеличивает количество в существующей позиции, а не создаёт новую.
type CartLine struct {
	ID        int64     // Идентификатор позиции корзины
	UserID    int64     // Владелец корзины
	BookID    int64     // Книга
	Quantity  int       // Количество, всегда >= 1
	CreatedAt time.Time // Дата добавления в корзину
}

// CartItem — позиция корзины, объединённая с текущими полями книги.
// Используется при выдаче содержимого корзины; итоговую сумму
// (price * quantity) считает клиент.
type CartItem struct {
	CartID        int64   `json:"cart_id"`
	BookID        int64   `json:"book_id"`
	Quantity      int     `json:"quantity"`
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stock_quantity"`
	CoverImage    string  `json:"cover_image"`
}
