// Package read реализует HTTP-обработчик выдачи одной книги каталога.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/bookvault/bookvault/internal/http/response"
	"github.com/bookvault/bookvault/internal/lib/sl"
	"github.com/bookvault/bookvault/internal/models"
)

// Service описывает интерфейс бизнес-логики каталога для чтения книги.
type Service interface {
	Read(ctx context.Context, bookID int64) (*models.Book, error)
}

// Handler обрабатывает HTTP-запросы на чтение книги.
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
	const op = "handlers.book.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	bookID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid book id"))
		return
	}

	book, err := h.service.Read(r.Context(), bookID)
	if err != nil {
		if errors.Is(err, models.ErrBookNotFound) {
			log.Error("book not found", slog.Int64("id", bookID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("book not found"))
			return
		}
		log.Error("failed to read book", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal server error"))
		return
	}

	render.JSON(w, r, response.OKWithData(book))
}
