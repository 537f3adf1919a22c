package invoice

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"sync"

	"factureme/entity"
)

// memStore keeps everything in memory, CreateFacture writes all or nothing
type memStore struct {
	mu           sync.Mutex
	objets       []*entity.Objet
	taux         []*entity.TauxHoraire
	businesses   []*entity.Business
	seq          int64
	factures     []*entity.Facture
	objetLines   []*entity.ObjetFacture
	horaireLines []*entity.FactureHoraire

	createErr error
	seqErr    error
	calls     int
}

func newMemStore() *memStore {
	return &memStore{
		objets: []*entity.Objet{
			{IdObjet: 1, IdUser: 1, ProductName: "Chaise", Description: "Bois", Price: 49.99},
			{IdObjet: 2, IdUser: 1, ProductName: "Table", Price: 150},
			{IdObjet: 3, IdUser: 2, ProductName: "Lampe", Price: 20},
		},
		taux: []*entity.TauxHoraire{
			{IdTauxHoraire: 1, IdUser: 1, WorkPosition: "Menuisier", HourlyRate: 20},
			{IdTauxHoraire: 5, IdUser: 2, WorkPosition: "Peintre", HourlyRate: 35},
		},
		businesses: []*entity.Business{
			{IdBusiness: 4, IdUser: 1, Name: "Atelier Marie"},
			{IdBusiness: 6, IdUser: 2, Name: "Peinture Lucas"},
		},
		seq: 100,
	}
}

func (m *memStore) FindObjets(_ context.Context, idUser int64, ids []int64) ([]*entity.Objet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	var out []*entity.Objet
	for _, o := range m.objets {
		if o.IdUser == idUser && slices.Contains(ids, o.IdObjet) {
			c := *o
			out = append(out, &c)
		}
	}
	return out, nil
}

func (m *memStore) FindTauxHoraires(_ context.Context, idUser int64, ids []int64) ([]*entity.TauxHoraire, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	var out []*entity.TauxHoraire
	for _, t := range m.taux {
		if t.IdUser == idUser && slices.Contains(ids, t.IdTauxHoraire) {
			c := *t
			out = append(out, &c)
		}
	}
	return out, nil
}

func (m *memStore) NextSeq(_ context.Context, _ string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.seqErr != nil {
		return 0, m.seqErr
	}
	m.seq++
	return m.seq, nil
}

func (m *memStore) FactureNumberUsed(_ context.Context, idUser int64, number string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	for _, f := range m.factures {
		if f.IdUser == idUser && f.FactureNumber == number {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) GetBusiness(_ context.Context, idUser, idBusiness int64) (*entity.Business, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	for _, b := range m.businesses {
		if b.IdUser == idUser && b.IdBusiness == idBusiness {
			c := *b
			return &c, nil
		}
	}
	return nil, entity.ErrNotFound
}

func (m *memStore) CreateFacture(_ context.Context, f *entity.Facture, objets []*entity.ObjetFacture, horaires []*entity.FactureHoraire) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.createErr != nil {
		return m.createErr
	}
	m.factures = append(m.factures, f)
	m.objetLines = append(m.objetLines, objets...)
	m.horaireLines = append(m.horaireLines, horaires...)
	return nil
}

func (m *memStore) writes() (int, int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.factures), len(m.objetLines), len(m.horaireLines)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
