package account

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"factureme/entity"
	"factureme/internal/http-server/middleware/language"
	"factureme/lib/api/response"
	"factureme/lib/sl"
)

type Core interface {
	Register(ctx context.Context, user *entity.User) (*entity.User, error)
}

// Register creates an account, the response carries the api token
func Register(logger *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.account")
		log := logger.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
		lang := language.From(r)

		if handler == nil {
			log.Error("account service not available")
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, response.Localized(lang, "server_error"))
			return
		}

		var user entity.User
		if err := render.Bind(r, &user); err != nil {
			log.Warn("invalid request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}
		if user.Language == "" {
			user.Language = lang
		}
		log = log.With(slog.String("username", user.Username))

		created, err := handler.Register(r.Context(), &user)
		if err != nil {
			if errors.Is(err, entity.ErrDuplicateKey) {
				log.Warn("username taken")
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("username already registered"))
				return
			}
			log.Error("register user", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Localized(lang, "server_error"))
			return
		}

		log.With(sl.User(created.IdUser)).Info("user registered")
		render.Status(r, http.StatusCreated)
		render.JSON(w, r, response.Ok(created))
	}
}
