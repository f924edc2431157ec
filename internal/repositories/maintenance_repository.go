package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hosterlink/hosterlink-api/internal/models"
)

/* ───────────── public interface ───────────── */

type MaintenanceRepository interface {
	Create(ctx context.Context, m *models.MaintenanceRequest) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.MaintenanceRequest, error)
	Find(ctx context.Context, filter bson.M, page, pageSize int64) ([]*models.MaintenanceRequest, int64, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status models.MaintenanceStatus, paidDate *time.Time) error
	Assign(ctx context.Context, id, staffID primitive.ObjectID) error
	SetActualCost(ctx context.Context, id primitive.ObjectID, cost float64) error
}

/* ───────────── implementation ───────────── */

type maintenanceRepo struct {
	coll *mongo.Collection
}

func NewMaintenanceRepository(db *mongo.Database) MaintenanceRepository {
	return &maintenanceRepo{coll: db.Collection("maintenance_requests")}
}

func (r *maintenanceRepo) Create(ctx context.Context, m *models.MaintenanceRequest) error {
	if m.ID.IsZero() {
		m.ID = primitive.NewObjectID()
	}
	_, err := r.coll.InsertOne(ctx, m)
	return err
}

func (r *maintenanceRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.MaintenanceRequest, error) {
	var m models.MaintenanceRequest
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *maintenanceRepo) Find(ctx context.Context, filter bson.M, page, pageSize int64) ([]*models.MaintenanceRequest, int64, error) {
	return FindPage[models.MaintenanceRequest](ctx, r.coll, filter, bson.D{{Key: "createdAt", Value: -1}}, page, pageSize)
}

// SetStatus writes the status and paidDate together so the two can
// never drift apart.
func (r *maintenanceRepo) SetStatus(ctx context.Context, id primitive.ObjectID, status models.MaintenanceStatus, paidDate *time.Time) error {
	return r.setFields(ctx, id, bson.M{"status": status, "paidDate": paidDate})
}

// Assign sets the staff identity and moves the request to InProgress in
// the same update.
func (r *maintenanceRepo) Assign(ctx context.Context, id, staffID primitive.ObjectID) error {
	return r.setFields(ctx, id, bson.M{
		"assignedTo": staffID,
		"status":     models.MaintenanceInProgress,
		"paidDate":   nil,
	})
}

func (r *maintenanceRepo) SetActualCost(ctx context.Context, id primitive.ObjectID, cost float64) error {
	return r.setFields(ctx, id, bson.M{"actualCost": cost})
}

func (r *maintenanceRepo) setFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	fields["updatedAt"] = time.Now().UTC()
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
