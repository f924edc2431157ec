package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hosterlink/hosterlink-api/internal/models"
)

/* ───────────── public interface ───────────── */

type PaymentRepository interface {
	Create(ctx context.Context, p *models.Payment) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Payment, error)
	Find(ctx context.Context, filter bson.M, page, pageSize int64) ([]*models.Payment, int64, error)
	FindAll(ctx context.Context, filter bson.M) ([]*models.Payment, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status models.PaymentStatus, paidDate *time.Time) error
}

/* ───────────── implementation ───────────── */

type paymentRepo struct {
	coll *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) PaymentRepository {
	return &paymentRepo{coll: db.Collection("payments")}
}

func (r *paymentRepo) Create(ctx context.Context, p *models.Payment) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	_, err := r.coll.InsertOne(ctx, p)
	return err
}

func (r *paymentRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Payment, error) {
	var p models.Payment
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *paymentRepo) Find(ctx context.Context, filter bson.M, page, pageSize int64) ([]*models.Payment, int64, error) {
	return FindPage[models.Payment](ctx, r.coll, filter, bson.D{{Key: "dueDate", Value: -1}}, page, pageSize)
}

func (r *paymentRepo) FindAll(ctx context.Context, filter bson.M) ([]*models.Payment, error) {
	return findAll[models.Payment](ctx, r.coll, filter,
		options.Find().SetSort(bson.D{{Key: "dueDate", Value: 1}}))
}

// SetStatus writes status and paidDate together. PaidDate carries a value
// only for Completed; every other status stores null.
func (r *paymentRepo) SetStatus(ctx context.Context, id primitive.ObjectID, status models.PaymentStatus, paidDate *time.Time) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "paidDate": paidDate}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
