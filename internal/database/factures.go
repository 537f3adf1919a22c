package database

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"factureme/entity"
)

// FactureNumberUsed reports whether idUser already issued an invoice with this number
func (m *MongoDB) FactureNumberUsed(ctx context.Context, idUser int64, number string) (bool, error) {
	filter := bson.D{{"idUser", idUser}, {"factureNumber", number}}
	count, err := m.collection(collectionFactures).CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, storeError("count factures", err)
	}
	return count > 0, nil
}

// CreateFacture inserts the invoice, then its product and hourly lines, in one transaction.
// Any failure aborts the whole write.
func (m *MongoDB) CreateFacture(ctx context.Context, facture *entity.Facture, objets []*entity.ObjetFacture, horaires []*entity.FactureHoraire) error {
	session, err := m.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := m.collection(collectionFactures).InsertOne(sc, facture); err != nil {
			return nil, storeError("insert facture", err)
		}
		if len(objets) > 0 {
			if _, err := m.collection(collectionObjetsFacture).InsertMany(sc, lo.ToAnySlice(objets)); err != nil {
				return nil, storeError("insert product lines", err)
			}
		}
		if len(horaires) > 0 {
			if _, err := m.collection(collectionFacturesHoraires).InsertMany(sc, lo.ToAnySlice(horaires)); err != nil {
				return nil, storeError("insert hourly lines", err)
			}
		}
		return nil, nil
	})
	return err
}

func (m *MongoDB) GetFacture(ctx context.Context, idUser, idFacture int64) (*entity.Facture, []*entity.ObjetFacture, []*entity.FactureHoraire, error) {
	filter := bson.D{{"idUser", idUser}, {"idFacture", idFacture}}
	var facture entity.Facture
	if err := m.collection(collectionFactures).FindOne(ctx, filter).Decode(&facture); err != nil {
		return nil, nil, nil, storeError("find facture", err)
	}

	lines := bson.D{{"idFacture", idFacture}}
	byColumn := options.Find().SetSort(bson.D{{"idColumn", 1}})
	objets, err := findAll[entity.ObjetFacture](ctx, m.collection(collectionObjetsFacture), lines, byColumn)
	if err != nil {
		return nil, nil, nil, storeError("find product lines", err)
	}
	horaires, err := findAll[entity.FactureHoraire](ctx, m.collection(collectionFacturesHoraires), lines, byColumn)
	if err != nil {
		return nil, nil, nil, storeError("find hourly lines", err)
	}
	return &facture, objets, horaires, nil
}

func (m *MongoDB) ListFactures(ctx context.Context, idUser int64, f entity.FactureFilter) ([]*entity.Facture, error) {
	filter := bson.D{{"idUser", idUser}}
	date := bson.D{}
	if f.From != nil {
		date = append(date, bson.E{Key: "$gte", Value: *f.From})
	}
	if f.To != nil {
		date = append(date, bson.E{Key: "$lt", Value: *f.To})
	}
	if len(date) > 0 {
		filter = append(filter, bson.E{Key: "dateFacture", Value: date})
	}
	if f.IsPaid != nil {
		filter = append(filter, bson.E{Key: "isPaid", Value: *f.IsPaid})
	}
	if f.IsActive != nil {
		filter = append(filter, bson.E{Key: "isActive", Value: *f.IsActive})
	}
	opts := options.Find().SetSort(bson.D{{"dateFacture", -1}, {"idFacture", -1}})
	factures, err := findAll[entity.Facture](ctx, m.collection(collectionFactures), filter, opts)
	return factures, storeError("list factures", err)
}

func (m *MongoDB) SetFacturePaid(ctx context.Context, idUser, idFacture int64, paid bool) error {
	filter := bson.D{{"idUser", idUser}, {"idFacture", idFacture}}
	update := bson.D{{"$set", bson.D{{"isPaid", paid}}}}
	return m.updateOne(ctx, collectionFactures, filter, update, "set facture paid")
}

// ArchiveFacture hides an invoice from the active list, invoices are never deleted
func (m *MongoDB) ArchiveFacture(ctx context.Context, idUser, idFacture int64) error {
	filter := bson.D{{"idUser", idUser}, {"idFacture", idFacture}}
	update := bson.D{{"$set", bson.D{{"isActive", false}}}}
	return m.updateOne(ctx, collectionFactures, filter, update, "archive facture")
}
