package facture

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"factureme/entity"
	"factureme/internal/http-server/middleware/language"
	"factureme/internal/invoice"
	"factureme/lib/api/cont"
	"factureme/lib/api/response"
	"factureme/lib/i18n"
	"factureme/lib/sl"
)

const maxFormMemory = 1 << 20

type Core interface {
	CreateFacture(ctx context.Context, user *entity.User, values url.Values) *invoice.Result
	ListFactures(ctx context.Context, user *entity.User, filter entity.FactureFilter) ([]*entity.Facture, error)
	Calendar(ctx context.Context, user *entity.User, year int, month time.Month) ([]*entity.DayGroup, error)
	FactureDetails(ctx context.Context, user *entity.User, idFacture int64) (*entity.FactureDetails, error)
	SetFacturePaid(ctx context.Context, user *entity.User, idFacture int64, paid bool) error
	ArchiveFacture(ctx context.Context, user *entity.User, idFacture int64) error
}

// Create handles the invoice form. Success redirects to the home view,
// failures answer with the errors and the submitted form.
func Create(logger *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.facture")
		log := logger.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
		lang := language.From(r)

		if handler == nil {
			log.Error("facture service not available")
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, response.Localized(lang, invoice.CodeServerError))
			return
		}

		var err error
		if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			err = r.ParseMultipartForm(maxFormMemory)
		} else {
			err = r.ParseForm()
		}
		if err != nil {
			log.Warn("parse form", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Localized(lang, invoice.CodeValidation))
			return
		}

		result := handler.CreateFacture(r.Context(), cont.GetUser(r.Context()), r.PostForm)
		if result.OK() {
			log.With(
				slog.Int64("id_facture", result.Facture.IdFacture),
			).Debug("facture created")
			w.Header().Set("X-Facture-Id", strconv.FormatInt(result.Facture.IdFacture, 10))
			w.Header().Set("Cache-Control", "no-store")
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		translate := func(code string) string { return i18n.T(lang, code) }
		out := &invoice.Result{
			Errors:   result.Errors.Localize(translate),
			Message:  translate(result.Message),
			FormData: result.FormData,
		}
		render.Status(r, statusFor(result))
		render.JSON(w, r, out)
	}
}

func statusFor(result *invoice.Result) int {
	switch result.Kind {
	case invoice.KindAuth:
		return http.StatusUnauthorized
	case invoice.KindValidation:
		return http.StatusUnprocessableEntity
	case invoice.KindBusiness:
		if result.Message == invoice.CodeNumberUsed {
			return http.StatusConflict
		}
		return http.StatusUnprocessableEntity
	case invoice.KindPersistence:
		if result.Message == invoice.CodeDuplicateNumber {
			return http.StatusConflict
		}
	}
	return http.StatusInternalServerError
}

// List is the invoice history, filtered by ?from=&to= (YYYY-MM-DD, to exclusive), ?paid= and ?active=
func List(logger *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log, user, lang, ok := prepare(w, r, logger, handler != nil)
		if !ok {
			return
		}

		filter, err := parseFilter(r.URL.Query())
		if err != nil {
			log.Warn("invalid filter", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Localized(lang, invoice.CodeInvalidChoice))
			return
		}

		factures, err := handler.ListFactures(r.Context(), user, filter)
		if err != nil {
			storeFailed(w, r, log, lang, err)
			return
		}
		w.Header().Set("Cache-Control", "no-cache")
		render.JSON(w, r, response.Ok(factures))
	}
}

func Calendar(logger *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log, user, lang, ok := prepare(w, r, logger, handler != nil)
		if !ok {
			return
		}

		year, errYear := strconv.Atoi(chi.URLParam(r, "year"))
		month, errMonth := strconv.Atoi(chi.URLParam(r, "month"))
		if errYear != nil || errMonth != nil || month < 1 || month > 12 {
			log.Warn("invalid calendar period")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Localized(lang, invoice.CodeInvalidDate))
			return
		}

		days, err := handler.Calendar(r.Context(), user, year, time.Month(month))
		if err != nil {
			storeFailed(w, r, log, lang, err)
			return
		}
		w.Header().Set("Cache-Control", "no-cache")
		render.JSON(w, r, response.Ok(days))
	}
}

func Details(logger *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log, user, lang, ok := prepare(w, r, logger, handler != nil)
		if !ok {
			return
		}
		id, ok := factureId(w, r, log, lang)
		if !ok {
			return
		}

		details, err := handler.FactureDetails(r.Context(), user, id)
		if err != nil {
			storeFailed(w, r, log, lang, err)
			return
		}
		render.JSON(w, r, response.Ok(details))
	}
}

func SetPaid(logger *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log, user, lang, ok := prepare(w, r, logger, handler != nil)
		if !ok {
			return
		}
		id, ok := factureId(w, r, log, lang)
		if !ok {
			return
		}

		var req entity.PaidRequest
		if err := render.Bind(r, &req); err != nil {
			log.Warn("invalid request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Localized(lang, invoice.CodeValidation))
			return
		}

		if err := handler.SetFacturePaid(r.Context(), user, id, req.Paid); err != nil {
			storeFailed(w, r, log, lang, err)
			return
		}
		log.With(slog.Bool("paid", req.Paid)).Info("facture paid flag changed")
		render.JSON(w, r, response.Ok(nil))
	}
}

func Archive(logger *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log, user, lang, ok := prepare(w, r, logger, handler != nil)
		if !ok {
			return
		}
		id, ok := factureId(w, r, log, lang)
		if !ok {
			return
		}

		if err := handler.ArchiveFacture(r.Context(), user, id); err != nil {
			storeFailed(w, r, log, lang, err)
			return
		}
		log.Info("facture archived")
		render.JSON(w, r, response.Ok(nil))
	}
}

func prepare(w http.ResponseWriter, r *http.Request, logger *slog.Logger, available bool) (*slog.Logger, *entity.User, string, bool) {
	log := logger.With(
		sl.Module("http.handlers.facture"),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
	lang := language.From(r)

	user := cont.GetUser(r.Context())
	if user == nil {
		log.Error("user not found")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Localized(lang, invoice.CodeUnauthenticated))
		return nil, nil, lang, false
	}
	if !available {
		log.Error("facture service not available")
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, response.Localized(lang, invoice.CodeServerError))
		return nil, nil, lang, false
	}
	return log.With(sl.User(user.IdUser)), user, lang, true
}

func factureId(w http.ResponseWriter, r *http.Request, log *slog.Logger, lang string) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		log.Warn("invalid facture id", slog.String("id", raw))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Localized(lang, invoice.CodeInvalidId))
		return 0, false
	}
	return id, true
}

func storeFailed(w http.ResponseWriter, r *http.Request, log *slog.Logger, lang string, err error) {
	if errors.Is(err, entity.ErrNotFound) {
		log.Debug("facture not found")
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Localized(lang, "not_found"))
		return
	}
	log.Error("facture store", sl.Err(err))
	render.Status(r, http.StatusInternalServerError)
	render.JSON(w, r, response.Localized(lang, invoice.CodeServerError))
}

func parseFilter(query url.Values) (entity.FactureFilter, error) {
	var filter entity.FactureFilter
	parseDate := func(name string) (*time.Time, error) {
		raw := query.Get(name)
		if raw == "" {
			return nil, nil
		}
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, err
		}
		return &t, nil
	}
	parseBool := func(name string) (*bool, error) {
		raw := query.Get(name)
		if raw == "" {
			return nil, nil
		}
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, err
		}
		return &b, nil
	}

	var err error
	if filter.From, err = parseDate("from"); err != nil {
		return filter, err
	}
	if filter.To, err = parseDate("to"); err != nil {
		return filter, err
	}
	if filter.IsPaid, err = parseBool("paid"); err != nil {
		return filter, err
	}
	if filter.IsActive, err = parseBool("active"); err != nil {
		return filter, err
	}
	return filter, nil
}
