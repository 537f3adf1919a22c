package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"factureme/entity"
)

const seqUser = "idUser"

func (m *MongoDB) CreateUser(ctx context.Context, user *entity.User) error {
	id, err := m.NextSeq(ctx, seqUser)
	if err != nil {
		return err
	}
	user.IdUser = id
	user.RegisteredAt = time.Now().UTC()
	_, err = m.collection(collectionUsers).InsertOne(ctx, user)
	return storeError("insert user", err)
}

func (m *MongoDB) GetUserByToken(ctx context.Context, token string) (*entity.User, error) {
	filter := bson.D{{"token", token}}
	var user entity.User
	err := m.collection(collectionUsers).FindOne(ctx, filter).Decode(&user)
	if err != nil {
		return nil, storeError("find user", err)
	}
	return &user, nil
}

func (m *MongoDB) Stats(ctx context.Context) (*entity.Stats, error) {
	var stats entity.Stats
	var err error
	if stats.Users, err = m.collection(collectionUsers).CountDocuments(ctx, bson.D{}); err != nil {
		return nil, storeError("count users", err)
	}
	factures := m.collection(collectionFactures)
	if stats.Factures, err = factures.CountDocuments(ctx, bson.D{}); err != nil {
		return nil, storeError("count factures", err)
	}
	if stats.Paid, err = factures.CountDocuments(ctx, bson.D{{"isPaid", true}}); err != nil {
		return nil, storeError("count paid factures", err)
	}
	if stats.Archived, err = factures.CountDocuments(ctx, bson.D{{"isActive", false}}); err != nil {
		return nil, storeError("count archived factures", err)
	}
	return &stats, nil
}
