// Package list реализует HTTP-обработчик выдачи каталога книг.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/bookvault/bookvault/internal/http/response"
	"github.com/bookvault/bookvault/internal/lib/sl"
	"github.com/bookvault/bookvault/internal/models"
)

// Service описывает интерфейс бизнес-логики каталога для выдачи списка.
type Service interface {
	List(ctx context.Context) ([]*models.Book, error)
}

// Handler обрабатывает HTTP-запросы на выдачу каталога.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.book.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	books, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list books", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal server error"))
		return
	}

	log.Info("books listed", slog.Int("count", len(books)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"books_count": len(books),
		"books":       books,
	}))
}
