package invoice

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"factureme/entity"
)

// Catalog fetches a user's catalog entries, missing ids are simply absent from the result
type Catalog interface {
	FindObjets(ctx context.Context, idUser int64, ids []int64) ([]*entity.Objet, error)
	FindTauxHoraires(ctx context.Context, idUser int64, ids []int64) ([]*entity.TauxHoraire, error)
}

type Resolver struct {
	catalog Catalog
}

func NewResolver(catalog Catalog) *Resolver {
	return &Resolver{catalog: catalog}
}

// Objets returns one entry per id in the same order, nil where nothing matched
func (r *Resolver) Objets(ctx context.Context, idUser int64, ids []int64) ([]*entity.Objet, error) {
	if len(ids) == 0 {
		return []*entity.Objet{}, nil
	}
	found, err := r.catalog.FindObjets(ctx, idUser, ids)
	if err != nil {
		return nil, fmt.Errorf("find objets: %w", err)
	}
	byId := lo.KeyBy(found, func(o *entity.Objet) int64 { return o.IdObjet })
	return lo.Map(ids, func(id int64, _ int) *entity.Objet { return byId[id] }), nil
}

// TauxHoraires returns one entry per id in the same order, nil where nothing matched
func (r *Resolver) TauxHoraires(ctx context.Context, idUser int64, ids []int64) ([]*entity.TauxHoraire, error) {
	if len(ids) == 0 {
		return []*entity.TauxHoraire{}, nil
	}
	found, err := r.catalog.FindTauxHoraires(ctx, idUser, ids)
	if err != nil {
		return nil, fmt.Errorf("find hourly rates: %w", err)
	}
	byId := lo.KeyBy(found, func(t *entity.TauxHoraire) int64 { return t.IdTauxHoraire })
	return lo.Map(ids, func(id int64, _ int) *entity.TauxHoraire { return byId[id] }), nil
}

// Reference is the catalog entry a form item points to, exactly one field is set
type Reference struct {
	Objet       *entity.Objet
	TauxHoraire *entity.TauxHoraire
}

// Table joins resolved entries of both kinds under entity.ItemKey
type Table map[string]Reference

func NewTable(objetIds []int64, objets []*entity.Objet, tauxIds []int64, taux []*entity.TauxHoraire) Table {
	table := make(Table, len(objets)+len(taux))
	for i, o := range objets {
		if o != nil {
			table[entity.ItemKey(entity.ItemProduct, objetIds[i])] = Reference{Objet: o}
		}
	}
	for i, t := range taux {
		if t != nil {
			table[entity.ItemKey(entity.ItemHourly, tauxIds[i])] = Reference{TauxHoraire: t}
		}
	}
	return table
}

func (t Table) Lookup(item entity.FormItem) (Reference, bool) {
	switch item.(type) {
	case entity.ProductItem, entity.HourlyItem:
		ref, ok := t[entity.ItemKey(item.ItemType(), item.ItemId())]
		return ref, ok
	}
	return Reference{}, false
}

// referencedIds lists distinct valid ids per kind in first-seen order
func referencedIds(items []entity.FormItem) (objetIds, tauxIds []int64) {
	objetIds = make([]int64, 0)
	tauxIds = make([]int64, 0)
	for _, item := range items {
		if item.ItemId() <= 0 {
			continue
		}
		switch it := item.(type) {
		case entity.ProductItem:
			objetIds = append(objetIds, it.Id)
		case entity.HourlyItem:
			tauxIds = append(tauxIds, it.Id)
		case entity.UnknownItem:
		}
	}
	return lo.Uniq(objetIds), lo.Uniq(tauxIds)
}
