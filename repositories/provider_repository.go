package repositories

import (
	"context"
	"time"

	"github.com/localxp/localxp_backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProviderRepository struct {
	collection *mongo.Collection
}

func NewProviderRepository(db *mongo.Database) *ProviderRepository {
	return &ProviderRepository{
		collection: db.Collection("providers"),
	}
}

func (r *ProviderRepository) Create(ctx context.Context, provider *models.Provider) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if provider.ID.IsZero() {
		provider.ID = primitive.NewObjectID()
	}
	_, err := r.collection.InsertOne(ctx, provider)
	return translate(err)
}

func (r *ProviderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Provider, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *ProviderRepository) FindByEmail(ctx context.Context, email string) (*models.Provider, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *ProviderRepository) findOne(ctx context.Context, filter bson.M) (*models.Provider, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var provider models.Provider
	if err := r.collection.FindOne(ctx, filter).Decode(&provider); err != nil {
		return nil, translate(err)
	}
	return &provider, nil
}

// List returns providers, newest first. A nil approved lists all of them.
func (r *ProviderRepository) List(ctx context.Context, approved *bool) ([]models.Provider, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	filter := bson.M{}
	if approved != nil {
		filter["approved"] = *approved
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	providers := []models.Provider{}
	if err := cursor.All(ctx, &providers); err != nil {
		return nil, err
	}
	return providers, nil
}

// Update replaces the stored document with provider
func (r *ProviderRepository) Update(ctx context.Context, provider *models.Provider) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": provider.ID}, provider)
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Approve flips the approved flag and returns the updated provider
func (r *ProviderRepository) Approve(ctx context.Context, id primitive.ObjectID) (*models.Provider, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"approved":  true,
		"updatedAt": time.Now(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var provider models.Provider
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&provider)
	if err != nil {
		return nil, translate(err)
	}
	return &provider, nil
}

func (r *ProviderRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
