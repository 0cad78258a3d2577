package listings

import (
	"context"
	"errors"

	"soko/apperrors"
	"soko/models"
	"soko/query"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store is the listing persistence surface. It applies query specs but
// never builds them.
type Store struct {
	col *mongo.Collection
}

func NewStore(col *mongo.Collection) *Store {
	return &Store{col: col}
}

// Find applies a bounded query spec and decodes the matching listings.
func (s *Store) Find(ctx context.Context, spec query.Spec) ([]models.Listing, error) {
	opts := options.Find().
		SetSort(spec.Sort).
		SetSkip(spec.Skip).
		SetLimit(spec.Limit)
	if spec.Projection != nil {
		opts.SetProjection(spec.Projection)
	}

	cursor, err := s.col.Find(ctx, spec.Filter, opts)
	if err != nil {
		return nil, apperrors.Storage("find", err)
	}
	defer cursor.Close(ctx)

	listings := []models.Listing{}
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, apperrors.Storage("decode", err)
	}
	return listings, nil
}

func (s *Store) FindByID(ctx context.Context, id string) (*models.Listing, error) {
	var listing models.Listing
	err := s.col.FindOne(ctx, bson.M{"listingid": id}).Decode(&listing)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, apperrors.Storage("findById", err)
	}
	return &listing, nil
}

func (s *Store) Insert(ctx context.Context, listing *models.Listing) error {
	if _, err := s.col.InsertOne(ctx, listing); err != nil {
		return apperrors.Storage("insert", err)
	}
	return nil
}

// UpdateByID applies a $set update to one listing.
func (s *Store) UpdateByID(ctx context.Context, id string, set bson.M) error {
	res, err := s.col.UpdateOne(ctx, bson.M{"listingid": id}, bson.M{"$set": set})
	if err != nil {
		return apperrors.Storage("updateById", err)
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteByID(ctx context.Context, id string) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"listingid": id})
	if err != nil {
		return apperrors.Storage("deleteById", err)
	}
	if res.DeletedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	n, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return 0, apperrors.Storage("count", err)
	}
	return n, nil
}
