package errors

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"factureme/internal/http-server/middleware/language"
	"factureme/lib/api/response"
	"factureme/lib/sl"
)

func NotFound(logger *slog.Logger) http.HandlerFunc {
	log := logger.With(sl.Module("http.handlers.errors"))
	return func(w http.ResponseWriter, r *http.Request) {
		log.With(
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		).Debug("route not found")

		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Localized(language.From(r), "not_found"))
	}
}
