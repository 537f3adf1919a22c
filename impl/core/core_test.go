package core

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"factureme/entity"
)

// fakeDB implements the reads used here, any other call panics on the nil Database
type fakeDB struct {
	Database
	facture    *entity.Facture
	objets     []*entity.ObjetFacture
	horaires   []*entity.FactureHoraire
	client     *entity.Client
	business   *entity.Business
	factures   []*entity.Facture
	lastFilter entity.FactureFilter
}

func (f *fakeDB) GetFacture(_ context.Context, idUser, idFacture int64) (*entity.Facture, []*entity.ObjetFacture, []*entity.FactureHoraire, error) {
	if f.facture == nil || f.facture.IdUser != idUser || f.facture.IdFacture != idFacture {
		return nil, nil, nil, entity.ErrNotFound
	}
	return f.facture, f.objets, f.horaires, nil
}

func (f *fakeDB) GetClient(_ context.Context, _, _ int64) (*entity.Client, error) {
	if f.client == nil {
		return nil, entity.ErrNotFound
	}
	return f.client, nil
}

func (f *fakeDB) GetBusiness(_ context.Context, _, _ int64) (*entity.Business, error) {
	if f.business == nil {
		return nil, entity.ErrNotFound
	}
	return f.business, nil
}

func (f *fakeDB) ListFactures(_ context.Context, _ int64, filter entity.FactureFilter) ([]*entity.Facture, error) {
	f.lastFilter = filter
	return f.factures, nil
}

func (f *fakeDB) Stats(_ context.Context) (*entity.Stats, error) {
	return &entity.Stats{Users: 2, Factures: 5}, nil
}

func newTestCore(db *fakeDB) *Core {
	return New(db, nil, time.UTC, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func strPtr(s string) *string { return &s }

func TestFactureDetailsWithTaxes(t *testing.T) {
	idBusiness := int64(3)
	db := &fakeDB{
		facture: &entity.Facture{IdFacture: 9, IdUser: 1, IdClient: 4, IsBusinessInvoice: true, IncludesTaxes: true, IdBusiness: &idBusiness},
		objets:  []*entity.ObjetFacture{{Quantity: 2, PricePerUnit: 25}},
		horaires: []*entity.FactureHoraire{
			{HourlyRate: 20, StartTime: "2024-01-01T08:00", EndTime: "2024-01-01T16:30", LunchTimeInMinutes: 30},
		},
		client: &entity.Client{IdClient: 4, Name: "Dupont"},
		business: &entity.Business{
			Name:      "Atelier",
			Address:   &entity.Address{Province: "QC"},
			TvsNumber: strPtr("1"),
			TvqNumber: strPtr("2"),
		},
	}
	details, err := newTestCore(db).FactureDetails(context.Background(), &entity.User{IdUser: 1}, 9)
	require.NoError(t, err)

	assert.Equal(t, 210.0, details.Subtotal)
	require.Len(t, details.Taxes, 2)
	assert.Equal(t, &entity.Tax{Name: entity.TaxTVS, Rate: 5, Amount: 10.5}, details.Taxes[0])
	assert.Equal(t, &entity.Tax{Name: entity.TaxTVQ, Rate: 9.975, Amount: 20.95}, details.Taxes[1])
	assert.Equal(t, 241.45, details.Total)
	assert.Equal(t, "Dupont", details.Client.Name)
}

func TestFactureDetailsPersonal(t *testing.T) {
	db := &fakeDB{
		facture: &entity.Facture{IdFacture: 9, IdUser: 1, IncludesTaxes: true},
		objets:  []*entity.ObjetFacture{{Quantity: 1, PricePerUnit: 100}},
	}
	details, err := newTestCore(db).FactureDetails(context.Background(), &entity.User{IdUser: 1}, 9)
	require.NoError(t, err)
	assert.Empty(t, details.Taxes)
	assert.Nil(t, details.Client)
	assert.Nil(t, details.Business)
	assert.Equal(t, 100.0, details.Total)

	_, err = newTestCore(db).FactureDetails(context.Background(), &entity.User{IdUser: 2}, 9)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestCalendar(t *testing.T) {
	at := func(day, hour int) time.Time { return time.Date(2024, 2, day, hour, 0, 0, 0, time.UTC) }
	db := &fakeDB{factures: []*entity.Facture{
		{IdFacture: 3, DateFacture: at(20, 9)},
		{IdFacture: 2, DateFacture: at(5, 15)},
		{IdFacture: 1, DateFacture: at(5, 8)},
	}}
	days, err := newTestCore(db).Calendar(context.Background(), &entity.User{IdUser: 1}, 2024, time.February)
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, 5, days[0].Day)
	assert.Len(t, days[0].Factures, 2)
	assert.Equal(t, 20, days[1].Day)

	require.NotNil(t, db.lastFilter.From)
	require.NotNil(t, db.lastFilter.To)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), *db.lastFilter.From)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *db.lastFilter.To)

	_, err = newTestCore(db).Calendar(context.Background(), &entity.User{IdUser: 1}, 2024, 13)
	assert.Error(t, err)
}

func TestStatsNeedsAdmin(t *testing.T) {
	c := newTestCore(&fakeDB{})
	_, err := c.Stats(context.Background(), &entity.User{IdUser: 1})
	assert.ErrorIs(t, err, ErrForbidden)

	stats, err := c.Stats(context.Background(), &entity.User{IdUser: 1, IsAdmin: true})
	require.NoError(t, err)
	assert.Equal(t, int64(5), stats.Factures)
}

func TestNoAuthService(t *testing.T) {
	c := newTestCore(&fakeDB{})
	_, err := c.AuthenticateByToken(context.Background(), "x")
	assert.Error(t, err)
}
