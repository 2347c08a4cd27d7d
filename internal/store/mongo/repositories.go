package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lugondev/go-brewstake/internal/store"
)

var upsert = options.Replace().SetUpsert(true)

type platformRepository struct {
	collection *mongo.Collection
}

func (r *platformRepository) Save(ctx context.Context, platform *store.PlatformModel) error {
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": platform.ID}, platform, upsert)
	return err
}

func (r *platformRepository) Get(ctx context.Context) (*store.PlatformModel, error) {
	var m store.PlatformModel
	err := r.collection.FindOne(ctx, bson.M{"_id": store.PlatformID}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

type poolRepository struct {
	collection *mongo.Collection
}

func (r *poolRepository) Save(ctx context.Context, pool *store.PoolModel) error {
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": pool.Key}, pool, upsert)
	return err
}

func (r *poolRepository) FindByKey(ctx context.Context, key string) (*store.PoolModel, error) {
	var m store.PoolModel
	err := r.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *poolRepository) FindByOwner(ctx context.Context, owner string, limit, offset int) ([]*store.PoolModel, error) {
	return r.find(ctx, bson.M{"owner": owner}, limit, offset)
}

func (r *poolRepository) FindAll(ctx context.Context, limit, offset int) ([]*store.PoolModel, error) {
	return r.find(ctx, bson.M{}, limit, offset)
}

func (r *poolRepository) find(ctx context.Context, filter bson.M, limit, offset int) ([]*store.PoolModel, error) {
	cursor, err := r.collection.Find(ctx, filter, pageOptions(limit, offset))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*store.PoolModel
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type positionRepository struct {
	collection *mongo.Collection
}

func (r *positionRepository) Save(ctx context.Context, position *store.PositionModel) error {
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": position.Key}, position, upsert)
	return err
}

func (r *positionRepository) FindByKey(ctx context.Context, key string) (*store.PositionModel, error) {
	var m store.PositionModel
	err := r.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *positionRepository) FindByPool(ctx context.Context, pool string, limit, offset int) ([]*store.PositionModel, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"pool": pool}, pageOptions(limit, offset))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*store.PositionModel
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func pageOptions(limit, offset int) *options.FindOptions {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}).SetSkip(int64(offset))
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	return opts
}
