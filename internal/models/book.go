// Package models содержит доменные структуры каталога книг,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// Book представляет книгу каталога, используется в бизнес-логике и хранилище.
type Book struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	ISBN            string    `json:"isbn"`
	PublicationYear int       `json:"publication_year"`
	Genre           string    `json:"genre"`
	Price           float64   `json:"price"`
	StockQuantity   int       `json:"stock_quantity"` // Доступный остаток на складе
	CoverImage      string    `json:"cover_image"`
	CreatedAt       time.Time `json:"-"`
}

// DummyBook используется для приёма данных книги из JSON-запроса,
// прежде чем конвертировать их в Book.
type DummyBook struct {
	Title           string  `json:"title" validate:"required"`
	Author          string  `json:"author" validate:"required"`
	ISBN            string  `json:"isbn"`
	PublicationYear int     `json:"publication_year"`
	Genre           string  `json:"genre"`
	Price           float64 `json:"price" validate:"required,gt=0"`
	StockQuantity   int     `json:"stock_quantity" validate:"gte=0"`
	CoverImage      string  `json:"cover_image"`
}
