package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sanad-aid/registry-api/internal/core/domain"
)

const identityCollection = "identities"

type MongoIdentityRepository struct {
	coll *mongo.Collection
}

func NewIdentityRepository(db *mongo.Database) *MongoIdentityRepository {
	return &MongoIdentityRepository{coll: db.Collection(identityCollection)}
}

type mongoIdentity struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	Phone        string             `bson:"phone,omitempty"`
	IsProtected  bool               `bson:"is_protected"`
	Capabilities []string           `bson:"capabilities,omitempty"`
	CreatedAt    int64              `bson:"created_at"`
	UpdatedAt    int64              `bson:"updated_at"`
}

func (r *MongoIdentityRepository) Create(ctx context.Context, identity *domain.Identity) (*domain.Identity, error) {
	doc := toMongoIdentity(identity)
	_, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrIdentityExists
		}
		return nil, fmt.Errorf("insert identity: %w", err)
	}

	// fetch back to get ID
	return r.FindByUsername(ctx, identity.Username)
}

func (r *MongoIdentityRepository) FindByUsername(ctx context.Context, username string) (*domain.Identity, error) {
	var mi mongoIdentity
	if err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&mi); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("find identity: %w", err)
	}
	return fromMongoIdentity(mi), nil
}

func (r *MongoIdentityRepository) FindByID(ctx context.Context, id string) (*domain.Identity, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrIdentityNotFound
	}

	var mi mongoIdentity
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mi); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("find identity: %w", err)
	}
	return fromMongoIdentity(mi), nil
}

func (r *MongoIdentityRepository) Update(ctx context.Context, identity *domain.Identity) (*domain.Identity, error) {
	oid, err := primitive.ObjectIDFromHex(identity.ID)
	if err != nil {
		return nil, domain.ErrIdentityNotFound
	}

	doc := toMongoIdentity(identity)
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return nil, fmt.Errorf("update identity: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrIdentityNotFound
	}
	return r.FindByID(ctx, identity.ID)
}

func (r *MongoIdentityRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrIdentityNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete identity: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrIdentityNotFound
	}
	return nil
}

func (r *MongoIdentityRepository) List(ctx context.Context) ([]*domain.Identity, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list identities: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*domain.Identity
	for cursor.Next(ctx) {
		var mi mongoIdentity
		if err := cursor.Decode(&mi); err != nil {
			return nil, fmt.Errorf("decode identity: %w", err)
		}
		out = append(out, fromMongoIdentity(mi))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list identities: %w", err)
	}
	return out, nil
}

func toMongoIdentity(i *domain.Identity) mongoIdentity {
	caps := make([]string, 0, len(i.Capabilities))
	for _, c := range i.Capabilities {
		caps = append(caps, string(c))
	}
	return mongoIdentity{
		Username:     i.Username,
		PasswordHash: i.PasswordHash,
		Role:         i.Role,
		Phone:        i.Phone,
		IsProtected:  i.IsProtected,
		Capabilities: caps,
		CreatedAt:    i.CreatedAt.Unix(),
		UpdatedAt:    i.UpdatedAt.Unix(),
	}
}

func fromMongoIdentity(mi mongoIdentity) *domain.Identity {
	caps := make([]domain.Capability, 0, len(mi.Capabilities))
	for _, c := range mi.Capabilities {
		caps = append(caps, domain.Capability(c))
	}
	return &domain.Identity{
		ID:           mi.ID.Hex(),
		Username:     mi.Username,
		PasswordHash: mi.PasswordHash,
		Role:         mi.Role,
		Phone:        mi.Phone,
		IsProtected:  mi.IsProtected,
		Capabilities: caps,
		CreatedAt:    unixToTime(mi.CreatedAt),
		UpdatedAt:    unixToTime(mi.UpdatedAt),
	}
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
