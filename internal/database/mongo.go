package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"factureme/entity"
	"factureme/internal/config"
)

const (
	collectionUsers            = "users"
	collectionClients          = "clients"
	collectionBusinesses       = "businesses"
	collectionObjets           = "objets"
	collectionTauxHoraires     = "taux_horaires"
	collectionFactures         = "factures"
	collectionObjetsFacture    = "objets_facture"
	collectionFacturesHoraires = "factures_horaires"
	collectionCounters         = "counters"
)

const codeDocumentValidationFailure = 121

type MongoDB struct {
	client   *mongo.Client
	database string
}

func NewMongoClient(ctx context.Context, conf *config.Config) (*MongoDB, error) {
	if !conf.Mongo.Enabled {
		return nil, fmt.Errorf("mongodb is disabled in configuration")
	}
	connectionUri := fmt.Sprintf("mongodb://%s:%s", conf.Mongo.Host, conf.Mongo.Port)
	clientOptions := options.Client().ApplyURI(connectionUri)
	if conf.Mongo.User != "" {
		clientOptions.SetAuth(options.Credential{
			Username:   conf.Mongo.User,
			Password:   conf.Mongo.Password,
			AuthSource: conf.Mongo.Database,
		})
	}
	if conf.Mongo.ReplicaSet != "" {
		clientOptions.SetReplicaSet(conf.Mongo.ReplicaSet)
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("mongodb connect: %w", err)
	}
	if err = client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongodb ping: %w", err)
	}

	return &MongoDB{
		client:   client,
		database: conf.Mongo.Database,
	}, nil
}

func (m *MongoDB) Close(ctx context.Context) {
	_ = m.client.Disconnect(ctx)
}

func (m *MongoDB) collection(name string) *mongo.Collection {
	return m.client.Database(m.database).Collection(name)
}

// EnsureIndexes creates the indexes the store relies on, the unique ones back the
// invoice number and id guarantees
func (m *MongoDB) EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)
	indexes := map[string][]mongo.IndexModel{
		collectionUsers: {
			{Keys: bson.D{{"idUser", 1}}, Options: unique},
			{Keys: bson.D{{"token", 1}}, Options: unique},
			{Keys: bson.D{{"username", 1}}, Options: unique},
		},
		collectionClients: {
			{Keys: bson.D{{"idUser", 1}, {"idClient", 1}}, Options: unique},
		},
		collectionBusinesses: {
			{Keys: bson.D{{"idUser", 1}, {"idBusiness", 1}}, Options: unique},
		},
		collectionObjets: {
			{Keys: bson.D{{"idUser", 1}, {"idObjet", 1}}, Options: unique},
		},
		collectionTauxHoraires: {
			{Keys: bson.D{{"idUser", 1}, {"idTauxHoraire", 1}}, Options: unique},
		},
		collectionFactures: {
			{Keys: bson.D{{"idFacture", 1}}, Options: unique},
			{Keys: bson.D{{"idUser", 1}, {"factureNumber", 1}}, Options: unique},
			{Keys: bson.D{{"idUser", 1}, {"dateFacture", -1}}},
		},
		collectionObjetsFacture: {
			{Keys: bson.D{{"idFacture", 1}, {"idColumn", 1}}, Options: unique},
		},
		collectionFacturesHoraires: {
			{Keys: bson.D{{"idFacture", 1}, {"idColumn", 1}}, Options: unique},
		},
	}
	for name, models := range indexes {
		if _, err := m.collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	return nil
}

// NextSeq atomically increments and returns the named counter
func (m *MongoDB) NextSeq(ctx context.Context, name string) (int64, error) {
	filter := bson.D{{"_id", name}}
	update := bson.D{{"$inc", bson.D{{"seq", int64(1)}}}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := m.collection(collectionCounters).FindOneAndUpdate(ctx, filter, update, opts).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("next %s: %w", name, err)
	}
	return counter.Seq, nil
}

// storeError maps driver errors onto the entity sentinels, keeping the original message
func storeError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%s: %w", op, entity.ErrNotFound)
	}
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%s: %w: %v", op, entity.ErrDuplicateKey, err)
	}
	var serverErr mongo.ServerError
	if errors.As(err, &serverErr) && serverErr.HasErrorCode(codeDocumentValidationFailure) {
		return fmt.Errorf("%s: %w: %v", op, entity.ErrDocumentValidation, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter interface{}, opts ...*options.FindOptions) ([]*T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := make([]*T, 0)
	if err = cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
