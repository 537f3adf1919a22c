package database

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"factureme/entity"
	"factureme/internal/config"
)

func TestStoreError(t *testing.T) {
	assert.NoError(t, storeError("op", nil))

	err := storeError("find", mongo.ErrNoDocuments)
	assert.ErrorIs(t, err, entity.ErrNotFound)

	dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key"}}}
	err = storeError("insert", dup)
	assert.ErrorIs(t, err, entity.ErrDuplicateKey)
	assert.ErrorContains(t, err, "E11000")

	invalid := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 121, Message: "Document failed validation"}}}
	assert.ErrorIs(t, storeError("insert", invalid), entity.ErrDocumentValidation)

	other := errors.New("connection reset")
	err = storeError("insert", other)
	assert.ErrorIs(t, err, other)
	assert.NotErrorIs(t, err, entity.ErrDuplicateKey)
}

// testMongo connects to MONGO_TEST_HOST, a replica set member, and skips otherwise
func testMongo(t *testing.T) *MongoDB {
	t.Helper()
	host := os.Getenv("MONGO_TEST_HOST")
	if host == "" {
		t.Skip("MONGO_TEST_HOST not set")
	}
	port := os.Getenv("MONGO_TEST_PORT")
	if port == "" {
		port = "27017"
	}
	conf := &config.Config{Mongo: config.Mongo{
		Enabled:    true,
		Host:       host,
		Port:       port,
		Database:   fmt.Sprintf("factureme_test_%d", time.Now().UnixNano()),
		ReplicaSet: os.Getenv("MONGO_TEST_REPLICA_SET"),
	}}
	ctx := context.Background()
	db, err := NewMongoClient(ctx, conf)
	require.NoError(t, err)
	require.NoError(t, db.EnsureIndexes(ctx))
	t.Cleanup(func() {
		_ = db.client.Database(db.database).Drop(ctx)
		db.Close(ctx)
	})
	return db
}

func TestNextSeq(t *testing.T) {
	db := testMongo(t)
	ctx := context.Background()
	first, err := db.NextSeq(ctx, "test")
	require.NoError(t, err)
	second, err := db.NextSeq(ctx, "test")
	require.NoError(t, err)
	assert.Equal(t, first+1, second)
}

func TestCreateFactureIsAtomic(t *testing.T) {
	db := testMongo(t)
	ctx := context.Background()

	facture := &entity.Facture{IdFacture: 1, IdUser: 7, FactureNumber: "F-1", TypeFacture: entity.FactureMixed, IsActive: true, DateFacture: time.Now().UTC()}
	objets := []*entity.ObjetFacture{{IdFacture: 1, IdColumn: 0, ProductName: "Chaise", Quantity: 2, PricePerUnit: 10}}
	horaires := []*entity.FactureHoraire{{IdFacture: 1, IdColumn: 1, WorkPosition: "Menuisier", HourlyRate: 20}}
	require.NoError(t, db.CreateFacture(ctx, facture, objets, horaires))

	used, err := db.FactureNumberUsed(ctx, 7, "F-1")
	require.NoError(t, err)
	assert.True(t, used)
	used, err = db.FactureNumberUsed(ctx, 8, "F-1")
	require.NoError(t, err)
	assert.False(t, used)

	// same number for the same user, the unique index rejects it and no line is left behind
	again := &entity.Facture{IdFacture: 2, IdUser: 7, FactureNumber: "F-1", IsActive: true}
	againLines := []*entity.ObjetFacture{{IdFacture: 2, IdColumn: 0, ProductName: "Table", Quantity: 1}}
	err = db.CreateFacture(ctx, again, againLines, nil)
	assert.ErrorIs(t, err, entity.ErrDuplicateKey)

	count, err := db.collection(collectionObjetsFacture).CountDocuments(ctx, bson.D{{"idFacture", int64(2)}})
	require.NoError(t, err)
	assert.Zero(t, count)

	got, gotObjets, gotHoraires, err := db.GetFacture(ctx, 7, 1)
	require.NoError(t, err)
	assert.Equal(t, "F-1", got.FactureNumber)
	assert.Len(t, gotObjets, 1)
	assert.Len(t, gotHoraires, 1)

	require.NoError(t, db.ArchiveFacture(ctx, 7, 1))
	active := true
	list, err := db.ListFactures(ctx, 7, entity.FactureFilter{IsActive: &active})
	require.NoError(t, err)
	assert.Empty(t, list)

	assert.ErrorIs(t, db.SetFacturePaid(ctx, 8, 1, true), entity.ErrNotFound)
}
