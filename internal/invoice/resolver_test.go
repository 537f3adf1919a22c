package invoice

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"factureme/entity"
)

func TestResolverAlignsToInput(t *testing.T) {
	r := NewResolver(newMemStore())

	objets, err := r.Objets(context.Background(), 1, []int64{2, 9, 1, 3})
	require.NoError(t, err)
	require.Len(t, objets, 4)
	assert.Equal(t, int64(2), objets[0].IdObjet)
	assert.Nil(t, objets[1])
	assert.Equal(t, int64(1), objets[2].IdObjet)
	// owned by another user
	assert.Nil(t, objets[3])

	taux, err := r.TauxHoraires(context.Background(), 1, []int64{5, 1})
	require.NoError(t, err)
	assert.Equal(t, []*entity.TauxHoraire{nil, {IdTauxHoraire: 1, IdUser: 1, WorkPosition: "Menuisier", HourlyRate: 20}}, taux)
}

func TestResolverSkipsEmptyLookups(t *testing.T) {
	store := newMemStore()
	r := NewResolver(store)
	objets, err := r.Objets(context.Background(), 1, nil)
	require.NoError(t, err)
	assert.Empty(t, objets)
	taux, err := r.TauxHoraires(context.Background(), 1, []int64{})
	require.NoError(t, err)
	assert.Empty(t, taux)
	assert.Zero(t, store.calls)
}

type failingCatalog struct{}

func (failingCatalog) FindObjets(context.Context, int64, []int64) ([]*entity.Objet, error) {
	return nil, errors.New("connection refused")
}

func (failingCatalog) FindTauxHoraires(context.Context, int64, []int64) ([]*entity.TauxHoraire, error) {
	return nil, errors.New("connection refused")
}

func TestResolverPropagatesErrors(t *testing.T) {
	r := NewResolver(failingCatalog{})
	_, err := r.Objets(context.Background(), 1, []int64{1})
	assert.ErrorContains(t, err, "connection refused")
	_, err = r.TauxHoraires(context.Background(), 1, []int64{1})
	assert.ErrorContains(t, err, "connection refused")
}

func TestTableKeepsKindsApart(t *testing.T) {
	objet := &entity.Objet{IdObjet: 1, ProductName: "Chaise"}
	taux := &entity.TauxHoraire{IdTauxHoraire: 1, WorkPosition: "Menuisier"}
	table := NewTable([]int64{1, 2}, []*entity.Objet{objet, nil}, []int64{1}, []*entity.TauxHoraire{taux})

	ref, ok := table.Lookup(entity.ProductItem{Id: 1, Quantity: 1})
	require.True(t, ok)
	assert.Same(t, objet, ref.Objet)
	assert.Nil(t, ref.TauxHoraire)

	ref, ok = table.Lookup(entity.HourlyItem{Id: 1})
	require.True(t, ok)
	assert.Same(t, taux, ref.TauxHoraire)
	assert.Nil(t, ref.Objet)

	_, ok = table.Lookup(entity.ProductItem{Id: 2})
	assert.False(t, ok)
	_, ok = table.Lookup(entity.UnknownItem{Id: 1, Type: entity.ItemProduct})
	assert.False(t, ok)
}

func TestReferencedIds(t *testing.T) {
	objetIds, tauxIds := referencedIds([]entity.FormItem{
		entity.ProductItem{Id: 3},
		entity.HourlyItem{Id: 3},
		entity.ProductItem{Id: 1},
		entity.ProductItem{Id: 3},
		entity.ProductItem{Id: 0},
		entity.UnknownItem{Id: 8},
	})
	assert.Equal(t, []int64{3, 1}, objetIds)
	assert.Equal(t, []int64{3}, tauxIds)
}
