// Package remove реализует HTTP-обработчик удаления книги из каталога.
// Доступен только администраторам; позиции корзин с этой книгой
// удаляются каскадно на уровне базы.
package remove

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

// Service описывает интерфейс бизнес-логики удаления книги.
type Service interface {
	Remove(ctx context.Context, bookID int64) error
}

// Handler обрабатывает HTTP-запросы на удаление книги.
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
	const op = "handlers.book.remove"

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

	if err := h.service.Remove(r.Context(), bookID); err != nil {
		if errors.Is(err, models.ErrBookNotFound) {
			log.Error("book not found", slog.Int64("id", bookID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("book not found"))
			return
		}
		log.Error("failed to delete book", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not delete book"))
		return
	}

	log.Info("book removed", slog.Int64("id", bookID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"id": bookID,
	}))
}
