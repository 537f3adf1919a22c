package catalog

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"factureme/entity"
	"factureme/internal/http-server/middleware/language"
	"factureme/lib/api/cont"
	"factureme/lib/api/response"
	"factureme/lib/sl"
)

type Core interface {
	ListObjets(ctx context.Context, user *entity.User) ([]*entity.Objet, error)
	CreateObjet(ctx context.Context, user *entity.User, objet *entity.Objet) error
	UpdateObjet(ctx context.Context, user *entity.User, objet *entity.Objet) error
	ListTauxHoraires(ctx context.Context, user *entity.User) ([]*entity.TauxHoraire, error)
	CreateTauxHoraire(ctx context.Context, user *entity.User, taux *entity.TauxHoraire) error
	UpdateTauxHoraire(ctx context.Context, user *entity.User, taux *entity.TauxHoraire) error
	ListClients(ctx context.Context, user *entity.User) ([]*entity.Client, error)
	CreateClient(ctx context.Context, user *entity.User, client *entity.Client) error
	ListBusinesses(ctx context.Context, user *entity.User) ([]*entity.Business, error)
	CreateBusiness(ctx context.Context, user *entity.User, business *entity.Business) error
}

type request struct {
	log  *slog.Logger
	user *entity.User
	lang string
}

func begin(w http.ResponseWriter, r *http.Request, logger *slog.Logger, handler Core) (*request, bool) {
	log := logger.With(
		sl.Module("http.handlers.catalog"),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
	req := &request{log: log, lang: language.From(r)}

	req.user = cont.GetUser(r.Context())
	if req.user == nil {
		log.Error("user not found")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Localized(req.lang, "unauthenticated"))
		return nil, false
	}
	if handler == nil {
		log.Error("catalog service not available")
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, response.Localized(req.lang, "server_error"))
		return nil, false
	}
	req.log = log.With(sl.User(req.user.IdUser))
	return req, true
}

func (req *request) bind(w http.ResponseWriter, r *http.Request, v render.Binder) bool {
	if err := render.Bind(r, v); err != nil {
		req.log.Warn("invalid request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(err.Error()))
		return false
	}
	return true
}

func (req *request) failed(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, entity.ErrNotFound):
		req.log.Debug("not found")
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Localized(req.lang, "not_found"))
	case errors.Is(err, entity.ErrDocumentValidation):
		req.log.Warn("document rejected", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Localized(req.lang, "data_validation_failed"))
	default:
		req.log.Error("catalog store", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Localized(req.lang, "server_error"))
	}
}

func (req *request) id(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		req.log.Warn("invalid id", slog.String("id", raw))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Localized(req.lang, "invalid_id"))
		return 0, false
	}
	return id, true
}

func ListProducts(logger *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := begin(w, r, logger, handler)
		if !ok {
			return
		}
		objets, err := handler.ListObjets(r.Context(), req.user)
		if err != nil {
			req.failed(w, r, err)
			return
		}
		render.JSON(w, r, response.Ok(objets))
	}
}

func CreateProduct(logger *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := begin(w, r, logger, handler)
		if !ok {
			return
		}
		var objet entity.Objet
		if !req.bind(w, r, &objet) {
			return
		}
		if err := handler.CreateObjet(r.Context(), req.user, &objet); err != nil {
			req.failed(w, r, err)
			return
		}
		req.log.With(slog.Int64("id_objet", objet.IdObjet)).Info("product created")
		render.Status(r, http.StatusCreated)
		render.JSON(w, r, response.Ok(objet))
	}
}

// UpdateProduct changes the catalog entry only, invoice lines keep their snapshot
func UpdateProduct(logger *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := begin(w, r, logger, handler)
		if !ok {
			return
		}
		id, ok := req.id(w, r)
		if !ok {
			return
		}
		var objet entity.Objet
		if !req.bind(w, r, &objet) {
			return
		}
		objet.IdObjet = id
		if err := handler.UpdateObjet(r.Context(), req.user, &objet); err != nil {
			req.failed(w, r, err)
			return
		}
		render.JSON(w, r, response.Ok(objet))
	}
}

func ListRates(logger *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := begin(w, r, logger, handler)
		if !ok {
			return
		}
		rates, err := handler.ListTauxHoraires(r.Context(), req.user)
		if err != nil {
			req.failed(w, r, err)
			return
		}
		render.JSON(w, r, response.Ok(rates))
	}
}

func CreateRate(logger *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := begin(w, r, logger, handler)
		if !ok {
			return
		}
		var taux entity.TauxHoraire
		if !req.bind(w, r, &taux) {
			return
		}
		if err := handler.CreateTauxHoraire(r.Context(), req.user, &taux); err != nil {
			req.failed(w, r, err)
			return
		}
		req.log.With(slog.Int64("id_taux_horaire", taux.IdTauxHoraire)).Info("hourly rate created")
		render.Status(r, http.StatusCreated)
		render.JSON(w, r, response.Ok(taux))
	}
}

func UpdateRate(logger *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := begin(w, r, logger, handler)
		if !ok {
			return
		}
		id, ok := req.id(w, r)
		if !ok {
			return
		}
		var taux entity.TauxHoraire
		if !req.bind(w, r, &taux) {
			return
		}
		taux.IdTauxHoraire = id
		if err := handler.UpdateTauxHoraire(r.Context(), req.user, &taux); err != nil {
			req.failed(w, r, err)
			return
		}
		render.JSON(w, r, response.Ok(taux))
	}
}

func ListClients(logger *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := begin(w, r, logger, handler)
		if !ok {
			return
		}
		clients, err := handler.ListClients(r.Context(), req.user)
		if err != nil {
			req.failed(w, r, err)
			return
		}
		render.JSON(w, r, response.Ok(clients))
	}
}

func CreateClient(logger *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := begin(w, r, logger, handler)
		if !ok {
			return
		}
		var client entity.Client
		if !req.bind(w, r, &client) {
			return
		}
		if err := handler.CreateClient(r.Context(), req.user, &client); err != nil {
			req.failed(w, r, err)
			return
		}
		req.log.With(slog.Int64("id_client", client.IdClient)).Info("client created")
		render.Status(r, http.StatusCreated)
		render.JSON(w, r, response.Ok(client))
	}
}

func ListBusinesses(logger *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := begin(w, r, logger, handler)
		if !ok {
			return
		}
		businesses, err := handler.ListBusinesses(r.Context(), req.user)
		if err != nil {
			req.failed(w, r, err)
			return
		}
		render.JSON(w, r, response.Ok(businesses))
	}
}

func CreateBusiness(logger *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := begin(w, r, logger, handler)
		if !ok {
			return
		}
		var business entity.Business
		if !req.bind(w, r, &business) {
			return
		}
		if err := handler.CreateBusiness(r.Context(), req.user, &business); err != nil {
			req.failed(w, r, err)
			return
		}
		req.log.With(slog.Int64("id_business", business.IdBusiness)).Info("business created")
		render.Status(r, http.StatusCreated)
		render.JSON(w, r, response.Ok(business))
	}
}
