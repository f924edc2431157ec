package services

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hosterlink/hosterlink-api/internal/dtos"
	"github.com/hosterlink/hosterlink-api/internal/models"
	"github.com/hosterlink/hosterlink-api/internal/policy"
	"github.com/hosterlink/hosterlink-api/internal/repositories"
	"github.com/hosterlink/hosterlink-api/internal/utils"
)

// PaymentService interface
type PaymentService interface {
	Create(ctx context.Context, actor policy.Actor, req dtos.CreatePaymentRequest) (*models.Payment, error)
	Get(ctx context.Context, actor policy.Actor, id string) (*models.Payment, error)
	List(ctx context.Context, actor policy.Actor, status string, page, pageSize int64) (*dtos.PaymentListResponse, error)
	UpdateStatus(ctx context.Context, actor policy.Actor, id string, req dtos.UpdatePaymentStatusRequest) (*models.Payment, error)
	Report(ctx context.Context, actor policy.Actor, propertyID string, from, to time.Time) (*dtos.PaymentReportResponse, error)
}

type paymentService struct {
	payments   repositories.PaymentRepository
	properties repositories.PropertyRepository
	units      repositories.UnitRepository
}

func NewPaymentService(payments repositories.PaymentRepository, properties repositories.PropertyRepository, units repositories.UnitRepository) PaymentService {
	return &paymentService{payments: payments, properties: properties, units: units}
}

func (s *paymentService) Create(ctx context.Context, actor policy.Actor, req dtos.CreatePaymentRequest) (*models.Payment, error) {
	d := policy.Evaluate(actor, policy.ResourcePayments, policy.OpCreate, policy.Ownership{})
	if !d.Allowed() {
		return nil, errForbidden()
	}
	propertyID, err := parseID(req.PropertyID)
	if err != nil {
		return nil, err
	}
	unitID, err := parseID(req.UnitID)
	if err != nil {
		return nil, err
	}
	unit, err := s.units.GetByID(ctx, unitID)
	if err != nil {
		return nil, utils.NewInternal(err)
	}
	if unit == nil || unit.PropertyID != propertyID {
		return nil, utils.NewValidation("unit does not belong to the given property", nil)
	}
	if req.DueDate.Before(time.Now().UTC()) {
		return nil, utils.NewValidation("due date cannot be in the past", nil)
	}

	paymentType, err := models.ParsePaymentType(req.PaymentType)
	if err != nil {
		return nil, utils.NewValidation("invalid payment type", err)
	}
	method, err := models.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, utils.NewValidation("invalid payment method", err)
	}

	p := &models.Payment{
		UserID:        actor.ID, // never taken from the payload
		PropertyID:    propertyID,
		UnitID:        unitID,
		Amount:        req.Amount,
		PaymentType:   paymentType,
		PaymentMethod: method,
		Status:        models.PaymentPending,
		DueDate:       req.DueDate,
		Description:   strings.TrimSpace(req.Description),
	}
	if err := s.payments.Create(ctx, p); err != nil {
		return nil, utils.NewInternal(err)
	}
	return p, nil
}

func (s *paymentService) Get(ctx context.Context, actor policy.Actor, id string) (*models.Payment, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	p, err := s.payments.GetByID(ctx, oid)
	if err != nil {
		return nil, utils.NewInternal(err)
	}
	if p == nil {
		return nil, errHiddenRecord("payment")
	}
	own, err := s.recordOwnership(ctx, actor, p.UserID, p.PropertyID)
	if err != nil {
		return nil, err
	}
	d := policy.Evaluate(actor, policy.ResourcePayments, policy.OpRead, own)
	if !d.Allowed() {
		return nil, errHiddenRecord("payment")
	}
	return p, nil
}

func (s *paymentService) List(ctx context.Context, actor policy.Actor, status string, page, pageSize int64) (*dtos.PaymentListResponse, error) {
	own, err := s.listScope(ctx, actor)
	if err != nil {
		return nil, err
	}
	d := policy.Evaluate(actor, policy.ResourcePayments, policy.OpList, own)
	if !d.Allowed() {
		return nil, errForbidden()
	}
	filter := bson.M{}
	if status != "" {
		st, err := models.ParsePaymentStatus(status)
		if err != nil {
			return nil, utils.NewValidation("invalid payment status", err)
		}
		filter["status"] = st
	}
	for k, v := range d.Filter {
		filter[k] = v
	}
	page, pageSize = repositories.ClampPage(page, pageSize)
	items, total, err := s.payments.Find(ctx, filter, page, pageSize)
	if err != nil {
		return nil, utils.NewInternal(err)
	}
	return &dtos.PaymentListResponse{Payments: items, Total: total, Page: page, PageSize: pageSize}, nil
}

// UpdateStatus is a privileged mutation gated on the enclosing property's
// admin. PaidDate moves with the status: set on Completed, cleared on
// anything else.
func (s *paymentService) UpdateStatus(ctx context.Context, actor policy.Actor, id string, req dtos.UpdatePaymentStatusRequest) (*models.Payment, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	p, err := s.payments.GetByID(ctx, oid)
	if err != nil {
		return nil, utils.NewInternal(err)
	}
	if p == nil {
		return nil, errHiddenRecord("payment")
	}
	var own policy.Ownership
	if !actor.IsAdmin() {
		adminID, err := propertyAdminOf(ctx, s.properties, p.PropertyID)
		if err != nil {
			return nil, err
		}
		own.PropertyAdminID = adminID
	}
	d := policy.Evaluate(actor, policy.ResourcePayments, policy.OpManageStatus, own)
	if !d.Allowed() {
		return nil, errForbidden()
	}

	status, err := models.ParsePaymentStatus(req.Status)
	if err != nil {
		return nil, utils.NewValidation("invalid payment status", err)
	}
	var paidDate *time.Time
	if status == models.PaymentCompleted {
		now := time.Now().UTC()
		paidDate = &now
	}
	if err := s.payments.SetStatus(ctx, oid, status, paidDate); err != nil {
		return nil, mapMiss(err, "payment")
	}
	p.Status = status
	p.PaidDate = paidDate
	if req.TransactionID != "" {
		p.TransactionID = req.TransactionID
	}
	return p, nil
}

// Report aggregates a property's payments due inside [from, to]. Gated
// like a privileged read: the property's admin or a platform admin.
func (s *paymentService) Report(ctx context.Context, actor policy.Actor, propertyID string, from, to time.Time) (*dtos.PaymentReportResponse, error) {
	if !from.Before(to) {
		return nil, utils.NewValidation("from must precede to", utils.ErrInvalidDateRange)
	}
	pid, err := parseID(propertyID)
	if err != nil {
		return nil, err
	}
	var own policy.Ownership
	if !actor.IsAdmin() {
		adminID, err := propertyAdminOf(ctx, s.properties, pid)
		if err != nil {
			return nil, err
		}
		own.PropertyAdminID = adminID
	}
	d := policy.Evaluate(actor, policy.ResourcePayments, policy.OpManageStatus, own)
	if !d.Allowed() {
		return nil, errForbidden()
	}

	items, err := s.payments.FindAll(ctx, bson.M{
		"propertyId": pid,
		"dueDate":    bson.M{"$gte": from, "$lte": to},
	})
	if err != nil {
		return nil, utils.NewInternal(err)
	}

	var collected, pending float64
	for _, p := range items {
		switch p.Status {
		case models.PaymentCompleted:
			collected += p.Amount
		case models.PaymentPending:
			pending += p.Amount
		}
	}
	return &dtos.PaymentReportResponse{
		PropertyID:     pid.Hex(),
		From:           from,
		To:             to,
		TotalCollected: collected,
		TotalPending:   pending,
		Payments:       items,
	}, nil
}

func (s *paymentService) recordOwnership(ctx context.Context, actor policy.Actor, recordUserID, propertyID primitive.ObjectID) (policy.Ownership, error) {
	own := policy.Ownership{RecordUserID: recordUserID}
	if actor.IsAdmin() || recordUserID == actor.ID {
		return own, nil
	}
	adminID, err := propertyAdminOf(ctx, s.properties, propertyID)
	if err != nil {
		return policy.Ownership{}, err
	}
	own.PropertyAdminID = adminID
	return own, nil
}

func (s *paymentService) listScope(ctx context.Context, actor policy.Actor) (policy.Ownership, error) {
	var own policy.Ownership
	if actor.Role == models.RoleOwner {
		ids, err := s.properties.IDsByAdmin(ctx, actor.ID)
		if err != nil {
			return policy.Ownership{}, utils.NewInternal(err)
		}
		own.ManagedPropertyIDs = ids
	}
	return own, nil
}
