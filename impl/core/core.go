package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"time"

	"factureme/entity"
	"factureme/internal/invoice"
	"factureme/internal/tax"
	"factureme/lib/sl"
)

type AuthService interface {
	UserByToken(ctx context.Context, token string) (*entity.User, error)
	Register(ctx context.Context, user *entity.User) (*entity.User, error)
}

// Database is the document store behind the invoicing operations
type Database interface {
	invoice.Store

	GetFacture(ctx context.Context, idUser, idFacture int64) (*entity.Facture, []*entity.ObjetFacture, []*entity.FactureHoraire, error)
	ListFactures(ctx context.Context, idUser int64, filter entity.FactureFilter) ([]*entity.Facture, error)
	SetFacturePaid(ctx context.Context, idUser, idFacture int64, paid bool) error
	ArchiveFacture(ctx context.Context, idUser, idFacture int64) error

	ListObjets(ctx context.Context, idUser int64) ([]*entity.Objet, error)
	CreateObjet(ctx context.Context, objet *entity.Objet) error
	UpdateObjet(ctx context.Context, objet *entity.Objet) error
	ListTauxHoraires(ctx context.Context, idUser int64) ([]*entity.TauxHoraire, error)
	CreateTauxHoraire(ctx context.Context, taux *entity.TauxHoraire) error
	UpdateTauxHoraire(ctx context.Context, taux *entity.TauxHoraire) error

	ListClients(ctx context.Context, idUser int64) ([]*entity.Client, error)
	GetClient(ctx context.Context, idUser, idClient int64) (*entity.Client, error)
	CreateClient(ctx context.Context, client *entity.Client) error
	ListBusinesses(ctx context.Context, idUser int64) ([]*entity.Business, error)
	CreateBusiness(ctx context.Context, business *entity.Business) error

	Stats(ctx context.Context) (*entity.Stats, error)
}

var ErrForbidden = errors.New("forbidden")

type Core struct {
	db        Database
	auth      AuthService
	assembler *invoice.Assembler
	loc       *time.Location
	log       *slog.Logger
}

func New(db Database, auth AuthService, loc *time.Location, log *slog.Logger) *Core {
	if db == nil {
		panic("database is nil")
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Core{
		db:        db,
		auth:      auth,
		assembler: invoice.NewAssembler(db, loc, log),
		loc:       loc,
		log:       log.With(sl.Module("core")),
	}
}

func (c *Core) AuthenticateByToken(ctx context.Context, token string) (*entity.User, error) {
	if c.auth == nil {
		return nil, fmt.Errorf("auth service not connected")
	}
	return c.auth.UserByToken(ctx, token)
}

func (c *Core) Register(ctx context.Context, user *entity.User) (*entity.User, error) {
	if c.auth == nil {
		return nil, fmt.Errorf("auth service not connected")
	}
	return c.auth.Register(ctx, user)
}

func (c *Core) CreateFacture(ctx context.Context, user *entity.User, values url.Values) *invoice.Result {
	return c.assembler.Create(ctx, user, values)
}

func (c *Core) ListFactures(ctx context.Context, user *entity.User, filter entity.FactureFilter) ([]*entity.Facture, error) {
	return c.db.ListFactures(ctx, user.IdUser, filter)
}

// Calendar groups the invoices of a month by day, days without invoices are left out
func (c *Core) Calendar(ctx context.Context, user *entity.User, year int, month time.Month) ([]*entity.DayGroup, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("invalid month %d", month)
	}
	from := time.Date(year, month, 1, 0, 0, 0, 0, c.loc)
	to := from.AddDate(0, 1, 0)
	factures, err := c.db.ListFactures(ctx, user.IdUser, entity.FactureFilter{From: &from, To: &to})
	if err != nil {
		return nil, err
	}

	byDay := make(map[int]*entity.DayGroup)
	for _, f := range factures {
		day := f.DateFacture.In(c.loc).Day()
		group, ok := byDay[day]
		if !ok {
			group = &entity.DayGroup{Day: day}
			byDay[day] = group
		}
		group.Factures = append(group.Factures, f)
	}
	days := make([]*entity.DayGroup, 0, len(byDay))
	for _, group := range byDay {
		days = append(days, group)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Day < days[j].Day })
	return days, nil
}

// FactureDetails loads an invoice with its lines and computes amounts and taxes
func (c *Core) FactureDetails(ctx context.Context, user *entity.User, idFacture int64) (*entity.FactureDetails, error) {
	facture, objets, horaires, err := c.db.GetFacture(ctx, user.IdUser, idFacture)
	if err != nil {
		return nil, err
	}
	details := entity.NewFactureDetails(facture, objets, horaires)

	client, err := c.db.GetClient(ctx, user.IdUser, facture.IdClient)
	if err != nil && !errors.Is(err, entity.ErrNotFound) {
		return nil, err
	}
	details.Client = client

	if facture.IdBusiness != nil {
		business, err := c.db.GetBusiness(ctx, user.IdUser, *facture.IdBusiness)
		if err != nil && !errors.Is(err, entity.ErrNotFound) {
			return nil, err
		}
		details.Business = business
	}
	details.SetTaxes(tax.ForInvoice(facture, details.Business, details.Subtotal))
	return details, nil
}

func (c *Core) SetFacturePaid(ctx context.Context, user *entity.User, idFacture int64, paid bool) error {
	return c.db.SetFacturePaid(ctx, user.IdUser, idFacture, paid)
}

func (c *Core) ArchiveFacture(ctx context.Context, user *entity.User, idFacture int64) error {
	return c.db.ArchiveFacture(ctx, user.IdUser, idFacture)
}

func (c *Core) Stats(ctx context.Context, user *entity.User) (*entity.Stats, error) {
	if !user.IsAdmin {
		return nil, ErrForbidden
	}
	return c.db.Stats(ctx)
}
