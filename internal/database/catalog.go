package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"factureme/entity"
)

const (
	seqClient      = "idClient"
	seqBusiness    = "idBusiness"
	seqObjet       = "idObjet"
	seqTauxHoraire = "idTauxHoraire"
)

func ownedIn(idUser int64, field string, ids []int64) bson.D {
	return bson.D{{"idUser", idUser}, {field, bson.D{{"$in", ids}}}}
}

// FindObjets returns the products of idUser among ids, in no particular order
func (m *MongoDB) FindObjets(ctx context.Context, idUser int64, ids []int64) ([]*entity.Objet, error) {
	objets, err := findAll[entity.Objet](ctx, m.collection(collectionObjets), ownedIn(idUser, "idObjet", ids))
	return objets, storeError("find objets", err)
}

// FindTauxHoraires returns the hourly rates of idUser among ids, in no particular order
func (m *MongoDB) FindTauxHoraires(ctx context.Context, idUser int64, ids []int64) ([]*entity.TauxHoraire, error) {
	taux, err := findAll[entity.TauxHoraire](ctx, m.collection(collectionTauxHoraires), ownedIn(idUser, "idTauxHoraire", ids))
	return taux, storeError("find hourly rates", err)
}

func (m *MongoDB) ListObjets(ctx context.Context, idUser int64) ([]*entity.Objet, error) {
	opts := options.Find().SetSort(bson.D{{"productName", 1}})
	objets, err := findAll[entity.Objet](ctx, m.collection(collectionObjets), bson.D{{"idUser", idUser}}, opts)
	return objets, storeError("list objets", err)
}

func (m *MongoDB) CreateObjet(ctx context.Context, objet *entity.Objet) error {
	id, err := m.NextSeq(ctx, seqObjet)
	if err != nil {
		return err
	}
	objet.IdObjet = id
	_, err = m.collection(collectionObjets).InsertOne(ctx, objet)
	return storeError("insert objet", err)
}

// UpdateObjet changes the catalog entry only, invoice lines keep their snapshot
func (m *MongoDB) UpdateObjet(ctx context.Context, objet *entity.Objet) error {
	filter := bson.D{{"idUser", objet.IdUser}, {"idObjet", objet.IdObjet}}
	update := bson.D{{"$set", bson.D{
		{"productName", objet.ProductName},
		{"description", objet.Description},
		{"price", objet.Price},
		{"productPhoto", objet.ProductPhoto},
	}}}
	return m.updateOne(ctx, collectionObjets, filter, update, "update objet")
}

func (m *MongoDB) ListTauxHoraires(ctx context.Context, idUser int64) ([]*entity.TauxHoraire, error) {
	opts := options.Find().SetSort(bson.D{{"workPosition", 1}})
	taux, err := findAll[entity.TauxHoraire](ctx, m.collection(collectionTauxHoraires), bson.D{{"idUser", idUser}}, opts)
	return taux, storeError("list hourly rates", err)
}

func (m *MongoDB) CreateTauxHoraire(ctx context.Context, taux *entity.TauxHoraire) error {
	id, err := m.NextSeq(ctx, seqTauxHoraire)
	if err != nil {
		return err
	}
	taux.IdTauxHoraire = id
	_, err = m.collection(collectionTauxHoraires).InsertOne(ctx, taux)
	return storeError("insert hourly rate", err)
}

func (m *MongoDB) UpdateTauxHoraire(ctx context.Context, taux *entity.TauxHoraire) error {
	filter := bson.D{{"idUser", taux.IdUser}, {"idTauxHoraire", taux.IdTauxHoraire}}
	update := bson.D{{"$set", bson.D{
		{"clientName", taux.ClientName},
		{"workPosition", taux.WorkPosition},
		{"hourlyRate", taux.HourlyRate},
	}}}
	return m.updateOne(ctx, collectionTauxHoraires, filter, update, "update hourly rate")
}

func (m *MongoDB) ListClients(ctx context.Context, idUser int64) ([]*entity.Client, error) {
	opts := options.Find().SetSort(bson.D{{"name", 1}})
	clients, err := findAll[entity.Client](ctx, m.collection(collectionClients), bson.D{{"idUser", idUser}}, opts)
	return clients, storeError("list clients", err)
}

func (m *MongoDB) GetClient(ctx context.Context, idUser, idClient int64) (*entity.Client, error) {
	filter := bson.D{{"idUser", idUser}, {"idClient", idClient}}
	var client entity.Client
	if err := m.collection(collectionClients).FindOne(ctx, filter).Decode(&client); err != nil {
		return nil, storeError("find client", err)
	}
	return &client, nil
}

func (m *MongoDB) CreateClient(ctx context.Context, client *entity.Client) error {
	id, err := m.NextSeq(ctx, seqClient)
	if err != nil {
		return err
	}
	client.IdClient = id
	_, err = m.collection(collectionClients).InsertOne(ctx, client)
	return storeError("insert client", err)
}

func (m *MongoDB) ListBusinesses(ctx context.Context, idUser int64) ([]*entity.Business, error) {
	opts := options.Find().SetSort(bson.D{{"name", 1}})
	businesses, err := findAll[entity.Business](ctx, m.collection(collectionBusinesses), bson.D{{"idUser", idUser}}, opts)
	return businesses, storeError("list businesses", err)
}

func (m *MongoDB) GetBusiness(ctx context.Context, idUser, idBusiness int64) (*entity.Business, error) {
	filter := bson.D{{"idUser", idUser}, {"idBusiness", idBusiness}}
	var business entity.Business
	if err := m.collection(collectionBusinesses).FindOne(ctx, filter).Decode(&business); err != nil {
		return nil, storeError("find business", err)
	}
	return &business, nil
}

func (m *MongoDB) CreateBusiness(ctx context.Context, business *entity.Business) error {
	id, err := m.NextSeq(ctx, seqBusiness)
	if err != nil {
		return err
	}
	business.IdBusiness = id
	_, err = m.collection(collectionBusinesses).InsertOne(ctx, business)
	return storeError("insert business", err)
}

func (m *MongoDB) updateOne(ctx context.Context, collection string, filter, update bson.D, op string) error {
	res, err := m.collection(collection).UpdateOne(ctx, filter, update)
	if err != nil {
		return storeError(op, err)
	}
	if res.MatchedCount == 0 {
		return storeError(op, entity.ErrNotFound)
	}
	return nil
}
