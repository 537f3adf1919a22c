package invoice

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"factureme/entity"
	"factureme/lib/sl"
)

// SeqFacture is the counter handing out invoice ids
const SeqFacture = "idFacture"

// Store is what invoice creation needs from persistence
type Store interface {
	Catalog
	NextSeq(ctx context.Context, name string) (int64, error)
	FactureNumberUsed(ctx context.Context, idUser int64, number string) (bool, error)
	GetBusiness(ctx context.Context, idUser, idBusiness int64) (*entity.Business, error)
	// CreateFacture writes the invoice and all of its lines atomically
	CreateFacture(ctx context.Context, f *entity.Facture, objets []*entity.ObjetFacture, horaires []*entity.FactureHoraire) error
}

type stage string

const (
	stageValidating  stage = "validating"
	stageResolving   stage = "resolving-references"
	stageNumberCheck stage = "checking-number-uniqueness"
	stageComputeType stage = "computing-type"
	stagePersisting  stage = "persisting"
)

type Assembler struct {
	store    Store
	resolver *Resolver
	loc      *time.Location
	now      func() time.Time
	log      *slog.Logger
}

func NewAssembler(store Store, loc *time.Location, log *slog.Logger) *Assembler {
	if loc == nil {
		loc = time.UTC
	}
	return &Assembler{
		store:    store,
		resolver: NewResolver(store),
		loc:      loc,
		now:      time.Now,
		log:      log.With(sl.Module("invoice.assembler")),
	}
}

type references struct {
	objetIds   []int64
	tauxIds    []int64
	objets     []*entity.Objet
	taux       []*entity.TauxHoraire
	idFacture  int64
	numberUsed bool
	business   *entity.Business
}

// Create validates the submitted form and stores a new invoice with its lines.
// It never returns a Go error; failures are described by the result.
func (a *Assembler) Create(ctx context.Context, user *entity.User, values url.Values) *Result {
	result := &Result{FormData: values}
	log := a.log

	// validating
	if user == nil {
		log.Warn("create facture", slog.String("stage", string(stageValidating)), slog.String("reason", "no user"))
		return result.fail(KindAuth, CodeUnauthenticated)
	}
	log = log.With(sl.User(user.IdUser))

	form, errs := ParseForm(values, a.loc)
	if !errs.Empty() {
		result.Errors = errs
		log.Debug("create facture", slog.String("stage", string(stageValidating)), slog.String("reason", "invalid form"))
		return result.fail(KindValidation, CodeValidation)
	}

	// resolving-references and checking-number-uniqueness run together
	refs, err := a.resolve(ctx, user.IdUser, form)
	if err != nil {
		log.Error("create facture", slog.String("stage", string(stageResolving)), sl.Err(err))
		return result.fail(KindPersistence, CodeServerError)
	}
	if refs.numberUsed {
		errs.Add("number", CodeNumberUsed)
		result.Errors = errs
		log.Debug("create facture", slog.String("stage", string(stageNumberCheck)), slog.String("number", form.Number))
		return result.fail(KindBusiness, CodeNumberUsed)
	}

	if form.IsCompany() && refs.business == nil {
		errs.Add("businessId", CodeBusinessNotFound)
		result.Errors = errs
		log.Debug("create facture", slog.String("stage", string(stageResolving)), slog.Int64("id_business", *form.idBusiness))
		return result.fail(KindBusiness, CodeBusinessNotFound)
	}

	table := NewTable(refs.objetIds, refs.objets, refs.tauxIds, refs.taux)
	for i, item := range form.Items {
		if _, ok := table.Lookup(item); !ok {
			errs.AddItem(i, "id", CodeItemNotFound)
		}
	}
	if !errs.Empty() {
		result.Errors = errs
		log.Debug("create facture", slog.String("stage", string(stageResolving)), slog.Int("unresolved", len(errs.Items)))
		return result.fail(KindBusiness, CodeInvalidItems)
	}

	// computing-type
	facture, objets, horaires := a.build(user.IdUser, form, table, refs.idFacture)
	if facture.TypeFacture == "" {
		errs.Add(fieldGeneral, CodeNoItems)
		result.Errors = errs
		log.Warn("create facture", slog.String("stage", string(stageComputeType)), slog.String("reason", "no lines"))
		return result.fail(KindValidation, CodeValidation)
	}

	// persisting
	if err = a.store.CreateFacture(ctx, facture, objets, horaires); err != nil {
		log = log.With(slog.String("stage", string(stagePersisting)), slog.Int64("id_facture", facture.IdFacture), sl.Err(err))
		switch {
		case errors.Is(err, entity.ErrDuplicateKey):
			log.Warn("create facture")
			errs.Add("number", CodeDuplicateNumber)
			result.Errors = errs
			return result.fail(KindPersistence, CodeDuplicateNumber)
		case errors.Is(err, entity.ErrDocumentValidation):
			log.Error("create facture")
			return result.fail(KindPersistence, CodeDataValidation)
		default:
			log.Error("create facture")
			return result.fail(KindPersistence, CodeServerError)
		}
	}

	log.With(
		slog.Int64("id_facture", facture.IdFacture),
		slog.String("number", facture.FactureNumber),
		slog.String("type", string(facture.TypeFacture)),
		slog.Int("products", len(objets)),
		slog.Int("hourly", len(horaires)),
	).Info("facture created")

	result.Facture = facture
	return result
}

// resolve issues the independent lookups concurrently
func (a *Assembler) resolve(ctx context.Context, idUser int64, form *Form) (*references, error) {
	refs := &references{}
	refs.objetIds, refs.tauxIds = referencedIds(form.Items)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		objets, err := a.resolver.Objets(gctx, idUser, refs.objetIds)
		refs.objets = objets
		return err
	})
	g.Go(func() error {
		taux, err := a.resolver.TauxHoraires(gctx, idUser, refs.tauxIds)
		refs.taux = taux
		return err
	})
	g.Go(func() error {
		id, err := a.store.NextSeq(gctx, SeqFacture)
		refs.idFacture = id
		return err
	})
	if form.IsCustomNumber() {
		g.Go(func() error {
			used, err := a.store.FactureNumberUsed(gctx, idUser, form.Number)
			refs.numberUsed = used
			return err
		})
	}
	if form.IsCompany() {
		g.Go(func() error {
			business, err := a.store.GetBusiness(gctx, idUser, *form.idBusiness)
			if errors.Is(err, entity.ErrNotFound) {
				return nil
			}
			refs.business = business
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return refs, nil
}

// build snapshots catalog prices into the line documents
func (a *Assembler) build(idUser int64, form *Form, table Table, idFacture int64) (*entity.Facture, []*entity.ObjetFacture, []*entity.FactureHoraire) {
	objets := make([]*entity.ObjetFacture, 0)
	horaires := make([]*entity.FactureHoraire, 0)

	for i, item := range form.Items {
		ref, _ := table.Lookup(item)
		switch it := item.(type) {
		case entity.ProductItem:
			objets = append(objets, &entity.ObjetFacture{
				IdFacture:    idFacture,
				IdColumn:     i,
				IdObjet:      it.Id,
				ProductName:  ref.Objet.ProductName,
				Description:  ref.Objet.Description,
				Quantity:     it.Quantity,
				PricePerUnit: ref.Objet.Price,
				ProductPhoto: ref.Objet.ProductPhoto,
			})
		case entity.HourlyItem:
			horaires = append(horaires, &entity.FactureHoraire{
				IdFacture:          idFacture,
				IdColumn:           i,
				IdTauxHoraire:      it.Id,
				WorkPosition:       ref.TauxHoraire.WorkPosition,
				HourlyRate:         ref.TauxHoraire.HourlyRate,
				StartTime:          it.StartTime,
				EndTime:            it.EndTime,
				LunchTimeInMinutes: it.BreakTime,
			})
		case entity.UnknownItem:
		}
	}

	date := a.now().In(a.loc)
	if form.DateType == DateFuture {
		date = form.date
	}
	number := form.Number
	if !form.IsCustomNumber() {
		number = strconv.FormatInt(idFacture, 10)
	}

	facture := &entity.Facture{
		IdFacture:         idFacture,
		IdUser:            idUser,
		DateFacture:       date,
		TypeFacture:       entity.TypeFor(len(objets) > 0, len(horaires) > 0),
		FactureNumber:     number,
		IncludesTaxes:     form.IncludesTaxes,
		IsActive:          true,
		IsPaid:            false,
		IsBusinessInvoice: form.IsCompany(),
		IdClient:          form.idClient,
	}
	if form.IsCompany() {
		facture.IdBusiness = form.idBusiness
	}
	return facture, objets, horaires
}
