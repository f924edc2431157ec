package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	DefaultPage     int64 = 1
	DefaultPageSize int64 = 20
	MaxPageSize     int64 = 100
)

// ClampPage bounds client-supplied paging parameters: page >= 1,
// 1 <= pageSize <= MaxPageSize. Zero values take the defaults.
func ClampPage(page, pageSize int64) (int64, int64) {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// pageWindow converts a page number into the skip/limit pair for the
// store query.
func pageWindow(page, pageSize int64) (skip, limit int64) {
	return (page - 1) * pageSize, pageSize
}

// FindPage runs a count plus a bounded fetch against an already-scoped
// filter. The total reflects the full scoped set, not the returned window,
// so callers can compute page counts.
func FindPage[T any](
	ctx context.Context,
	coll *mongo.Collection,
	filter bson.M,
	sort bson.D,
	page, pageSize int64,
) ([]*T, int64, error) {
	page, pageSize = ClampPage(page, pageSize)

	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	skip, limit := pageWindow(page, pageSize)
	opts := options.Find().
		SetSkip(skip).
		SetLimit(limit)
	if sort != nil {
		opts.SetSort(sort)
	}

	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var out []*T
	if err := cursor.All(ctx, &out); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, opts ...*options.FindOptions) ([]*T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*T
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
