package admin

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"factureme/entity"
	"factureme/impl/core"
	"factureme/internal/http-server/middleware/language"
	"factureme/lib/api/cont"
	"factureme/lib/api/response"
	"factureme/lib/sl"
)

type Core interface {
	Stats(ctx context.Context, user *entity.User) (*entity.Stats, error)
}

func Stats(logger *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.admin")
		log := logger.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
		lang := language.From(r)

		user := cont.GetUser(r.Context())
		if user == nil {
			log.Error("user not found")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Localized(lang, "unauthenticated"))
			return
		}
		log = log.With(sl.User(user.IdUser))

		if handler == nil {
			log.Error("admin service not available")
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, response.Localized(lang, "server_error"))
			return
		}

		stats, err := handler.Stats(r.Context(), user)
		if err != nil {
			if errors.Is(err, core.ErrForbidden) {
				log.Warn("stats requested by non admin")
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Localized(lang, "forbidden"))
				return
			}
			log.Error("load stats", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Localized(lang, "server_error"))
			return
		}
		render.JSON(w, r, response.Ok(stats))
	}
}
