package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sanad-aid/registry-api/internal/core/domain"
)

const householdCollection = "households"

type MongoHouseholdRepository struct {
	coll *mongo.Collection
}

func NewHouseholdRepository(db *mongo.Database) *MongoHouseholdRepository {
	return &MongoHouseholdRepository{coll: db.Collection(householdCollection)}
}

type mongoHousehold struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	NationalID  string             `bson:"national_id"`
	DisplayName string             `bson:"display_name"`
	Phone       string             `bson:"phone,omitempty"`
	CreatedAt   int64              `bson:"created_at"`
	UpdatedAt   int64              `bson:"updated_at"`
}

func (r *MongoHouseholdRepository) Create(ctx context.Context, household *domain.Household) (*domain.Household, error) {
	doc := mongoHousehold{
		NationalID:  household.NationalID,
		DisplayName: household.DisplayName,
		Phone:       household.Phone,
		CreatedAt:   household.CreatedAt.Unix(),
		UpdatedAt:   household.UpdatedAt.Unix(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert household: %w", err)
	}
	return r.FindByNationalID(ctx, household.NationalID)
}

func (r *MongoHouseholdRepository) FindByNationalID(ctx context.Context, nationalID string) (*domain.Household, error) {
	var mh mongoHousehold
	if err := r.coll.FindOne(ctx, bson.M{"national_id": nationalID}).Decode(&mh); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrHouseholdNotFound
		}
		return nil, fmt.Errorf("find household: %w", err)
	}

	return &domain.Household{
		ID:          mh.ID.Hex(),
		NationalID:  mh.NationalID,
		DisplayName: mh.DisplayName,
		Phone:       mh.Phone,
		CreatedAt:   unixToTime(mh.CreatedAt),
		UpdatedAt:   unixToTime(mh.UpdatedAt),
	}, nil
}
