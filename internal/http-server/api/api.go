package api

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"factureme/internal/config"
	"factureme/internal/http-server/handlers/account"
	"factureme/internal/http-server/handlers/admin"
	"factureme/internal/http-server/handlers/catalog"
	"factureme/internal/http-server/handlers/errors"
	"factureme/internal/http-server/handlers/facture"
	"factureme/internal/http-server/middleware/authenticate"
	"factureme/internal/http-server/middleware/language"
	"factureme/internal/http-server/middleware/timeout"
	"factureme/lib/sl"
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	log        *slog.Logger
}

type Handler interface {
	authenticate.Authenticate
	account.Core
	admin.Core
	catalog.Core
	facture.Core
}

// NewRouter builds the api routes, New serves them
func NewRouter(conf *config.Config, log *slog.Logger, handler Handler) http.Handler {
	router := chi.NewRouter()
	router.Use(timeout.Timeout(conf.Timeout))
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(render.SetContentType(render.ContentTypeJSON))
	router.Use(language.New())

	router.NotFound(errors.NotFound(log))
	router.MethodNotAllowed(errors.NotAllowed(log))

	router.Post("/register", account.Register(log, handler))

	router.Route("/v1", func(v1 chi.Router) {
		v1.Use(authenticate.New(log, handler))
		v1.Route("/factures", func(r chi.Router) {
			r.Get("/", facture.List(log, handler))
			r.Post("/", facture.Create(log, handler))
			r.Get("/calendar/{year}/{month}", facture.Calendar(log, handler))
			r.Get("/{id}", facture.Details(log, handler))
			r.Post("/{id}/paid", facture.SetPaid(log, handler))
			r.Post("/{id}/archive", facture.Archive(log, handler))
		})
		v1.Route("/products", func(r chi.Router) {
			r.Get("/", catalog.ListProducts(log, handler))
			r.Post("/", catalog.CreateProduct(log, handler))
			r.Put("/{id}", catalog.UpdateProduct(log, handler))
		})
		v1.Route("/rates", func(r chi.Router) {
			r.Get("/", catalog.ListRates(log, handler))
			r.Post("/", catalog.CreateRate(log, handler))
			r.Put("/{id}", catalog.UpdateRate(log, handler))
		})
		v1.Get("/clients", catalog.ListClients(log, handler))
		v1.Post("/clients", catalog.CreateClient(log, handler))
		v1.Get("/businesses", catalog.ListBusinesses(log, handler))
		v1.Post("/businesses", catalog.CreateBusiness(log, handler))
		v1.Get("/admin/stats", admin.Stats(log, handler))
	})

	return router
}

func New(conf *config.Config, log *slog.Logger, handler Handler) error {

	server := Server{
		conf: conf,
		log:  log.With(sl.Module("api.server")),
	}

	httpLog := slog.NewLogLogger(log.Handler(), slog.LevelError)
	server.httpServer = &http.Server{
		Handler:      NewRouter(conf, log, handler),
		ErrorLog:     httpLog,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverAddress := fmt.Sprintf("%s:%s", conf.Listen.BindIp, conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	server.log.Info("starting api server", slog.String("address", serverAddress))

	return server.httpServer.Serve(listener)
}
