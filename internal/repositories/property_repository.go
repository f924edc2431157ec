package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hosterlink/hosterlink-api/internal/models"
)

/* ───────────── public interface ───────────── */

type PropertyRepository interface {
	Create(ctx context.Context, p *models.Property) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Property, error)
	Find(ctx context.Context, filter bson.M, page, pageSize int64) ([]*models.Property, int64, error)
	Update(ctx context.Context, p *models.Property) error
	SoftDelete(ctx context.Context, id primitive.ObjectID) error
	IDsByAdmin(ctx context.Context, adminID primitive.ObjectID) ([]primitive.ObjectID, error)
}

/* ───────────── implementation ───────────── */

type propertyRepo struct {
	coll *mongo.Collection
}

func NewPropertyRepository(db *mongo.Database) PropertyRepository {
	return &propertyRepo{coll: db.Collection("properties")}
}

func (r *propertyRepo) Create(ctx context.Context, p *models.Property) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	_, err := r.coll.InsertOne(ctx, p)
	return err
}

func (r *propertyRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Property, error) {
	var p models.Property
	err := r.coll.FindOne(ctx, bson.M{"_id": id, "isActive": true}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *propertyRepo) Find(ctx context.Context, filter bson.M, page, pageSize int64) ([]*models.Property, int64, error) {
	return FindPage[models.Property](ctx, r.coll, filter, bson.D{{Key: "name", Value: 1}}, page, pageSize)
}

func (r *propertyRepo) Update(ctx context.Context, p *models.Property) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": p.ID, "isActive": true}, p)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *propertyRepo) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"isActive": false}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// IDsByAdmin resolves the actor's managed-property scope for list filters.
func (r *propertyRepo) IDsByAdmin(ctx context.Context, adminID primitive.ObjectID) ([]primitive.ObjectID, error) {
	raw, err := r.coll.Distinct(ctx, "_id", bson.M{"adminId": adminID, "isActive": true})
	if err != nil {
		return nil, err
	}
	return toObjectIDs(raw), nil
}

func toObjectIDs(raw []any) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(raw))
	for _, v := range raw {
		if id, ok := v.(primitive.ObjectID); ok {
			out = append(out, id)
		}
	}
	return out
}
