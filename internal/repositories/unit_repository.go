package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hosterlink/hosterlink-api/internal/models"
	"github.com/hosterlink/hosterlink-api/internal/utils"
)

/* ───────────── public interface ───────────── */

type UnitRepository interface {
	Create(ctx context.Context, u *models.Unit) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Unit, error)
	ListByProperty(ctx context.Context, propertyID primitive.ObjectID, scope bson.M) ([]*models.Unit, error)
	AssignTenant(ctx context.Context, id, tenantID primitive.ObjectID) error
	RemoveTenant(ctx context.Context, id primitive.ObjectID) error
	PropertyIDsByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]primitive.ObjectID, error)
	PropertyIDsByTenant(ctx context.Context, tenantID primitive.ObjectID) ([]primitive.ObjectID, error)
	OwnershipByProperty(ctx context.Context, propertyID primitive.ObjectID) (owners, tenants []primitive.ObjectID, err error)
}

/* ───────────── implementation ───────────── */

type unitRepo struct {
	coll *mongo.Collection
}

func NewUnitRepository(db *mongo.Database) UnitRepository {
	return &unitRepo{coll: db.Collection("units")}
}

func (r *unitRepo) Create(ctx context.Context, u *models.Unit) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	_, err := r.coll.InsertOne(ctx, u)
	return err
}

func (r *unitRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Unit, error) {
	var u models.Unit
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ListByProperty merges the evaluator-supplied scope predicate into the
// property query.
func (r *unitRepo) ListByProperty(ctx context.Context, propertyID primitive.ObjectID, scope bson.M) ([]*models.Unit, error) {
	filter := bson.M{"propertyId": propertyID}
	for k, v := range scope {
		filter[k] = v
	}
	return findAll[models.Unit](ctx, r.coll, filter,
		options.Find().SetSort(bson.D{{Key: "unitNumber", Value: 1}}))
}

// AssignTenant sets tenantId and isOccupied in one conditional update
// keyed on the unit being vacant, so two concurrent assigns cannot both
// land. Occupancy and tenantId never move separately.
func (r *unitRepo) AssignTenant(ctx context.Context, id, tenantID primitive.ObjectID) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "isOccupied": false},
		bson.M{"$set": bson.M{"tenantId": tenantID, "isOccupied": true}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return r.explainMiss(ctx, id, utils.ErrUnitOccupied)
	}
	return nil
}

// RemoveTenant is the inverse conditional update, keyed on the unit being
// occupied.
func (r *unitRepo) RemoveTenant(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "isOccupied": true},
		bson.M{"$set": bson.M{"isOccupied": false}, "$unset": bson.M{"tenantId": ""}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return r.explainMiss(ctx, id, utils.ErrUnitVacant)
	}
	return nil
}

// explainMiss distinguishes "no such unit" from "condition failed".
func (r *unitRepo) explainMiss(ctx context.Context, id primitive.ObjectID, condErr error) error {
	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if n == 0 {
		return mongo.ErrNoDocuments
	}
	return condErr
}

func (r *unitRepo) PropertyIDsByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]primitive.ObjectID, error) {
	raw, err := r.coll.Distinct(ctx, "propertyId", bson.M{"ownerId": ownerID})
	if err != nil {
		return nil, err
	}
	return toObjectIDs(raw), nil
}

func (r *unitRepo) PropertyIDsByTenant(ctx context.Context, tenantID primitive.ObjectID) ([]primitive.ObjectID, error) {
	raw, err := r.coll.Distinct(ctx, "propertyId", bson.M{"tenantId": tenantID})
	if err != nil {
		return nil, err
	}
	return toObjectIDs(raw), nil
}

// OwnershipByProperty is the lightweight projection fetch the evaluator
// needs for property-level decisions: just the owner and tenant ids of the
// property's units, never the full documents.
func (r *unitRepo) OwnershipByProperty(ctx context.Context, propertyID primitive.ObjectID) ([]primitive.ObjectID, []primitive.ObjectID, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"propertyId": propertyID},
		options.Find().SetProjection(bson.M{"ownerId": 1, "tenantId": 1}))
	if err != nil {
		return nil, nil, err
	}
	defer cursor.Close(ctx)

	var docs []struct {
		OwnerID  *primitive.ObjectID `bson:"ownerId"`
		TenantID *primitive.ObjectID `bson:"tenantId"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, nil, err
	}

	var owners, tenants []primitive.ObjectID
	for _, d := range docs {
		if d.OwnerID != nil {
			owners = append(owners, *d.OwnerID)
		}
		if d.TenantID != nil {
			tenants = append(tenants, *d.TenantID)
		}
	}
	return owners, tenants, nil
}
