package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sanad-aid/registry-api/internal/core/domain"
)

const settingsCollection = "settings"

// settingsDocID pins the single global settings document.
const settingsDocID = "global"

type MongoSettingsRepository struct {
	coll *mongo.Collection
}

func NewSettingsRepository(db *mongo.Database) *MongoSettingsRepository {
	return &MongoSettingsRepository{coll: db.Collection(settingsCollection)}
}

type mongoSettings struct {
	ID       string          `bson:"_id"`
	Settings domain.Settings `bson:"settings"`
}

// Load returns the settings document, or the defaults when none has been
// saved yet.
func (r *MongoSettingsRepository) Load(ctx context.Context) (domain.Settings, error) {
	var ms mongoSettings
	if err := r.coll.FindOne(ctx, bson.M{"_id": settingsDocID}).Decode(&ms); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.DefaultSettings(), nil
		}
		return domain.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	return ms.Settings, nil
}

func (r *MongoSettingsRepository) Save(ctx context.Context, settings domain.Settings) error {
	doc := mongoSettings{ID: settingsDocID, Settings: settings}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"_id": settingsDocID}, doc, opts); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
