package repositories

import (
	"context"

	"github.com/localxp/localxp_backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TouristRepository struct {
	collection *mongo.Collection
}

func NewTouristRepository(db *mongo.Database) *TouristRepository {
	return &TouristRepository{
		collection: db.Collection("tourists"),
	}
}

func (r *TouristRepository) Create(ctx context.Context, tourist *models.Tourist) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if tourist.ID.IsZero() {
		tourist.ID = primitive.NewObjectID()
	}
	_, err := r.collection.InsertOne(ctx, tourist)
	return translate(err)
}

func (r *TouristRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Tourist, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *TouristRepository) FindByEmail(ctx context.Context, email string) (*models.Tourist, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *TouristRepository) findOne(ctx context.Context, filter bson.M) (*models.Tourist, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var tourist models.Tourist
	if err := r.collection.FindOne(ctx, filter).Decode(&tourist); err != nil {
		return nil, translate(err)
	}
	return &tourist, nil
}

// List returns every tourist, newest first
func (r *TouristRepository) List(ctx context.Context) ([]models.Tourist, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	tourists := []models.Tourist{}
	if err := cursor.All(ctx, &tourists); err != nil {
		return nil, err
	}
	return tourists, nil
}

// Update replaces the stored document with tourist
func (r *TouristRepository) Update(ctx context.Context, tourist *models.Tourist) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": tourist.ID}, tourist)
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TouristRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
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
