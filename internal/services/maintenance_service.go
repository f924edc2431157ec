package services

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/hosterlink/hosterlink-api/internal/dtos"
	"github.com/hosterlink/hosterlink-api/internal/models"
	"github.com/hosterlink/hosterlink-api/internal/policy"
	"github.com/hosterlink/hosterlink-api/internal/repositories"
	"github.com/hosterlink/hosterlink-api/internal/utils"
)

// MaintenanceService interface
type MaintenanceService interface {
	Create(ctx context.Context, actor policy.Actor, req dtos.CreateMaintenanceRequest) (*models.MaintenanceRequest, error)
	Get(ctx context.Context, actor policy.Actor, id string) (*models.MaintenanceRequest, error)
	List(ctx context.Context, actor policy.Actor, status string, page, pageSize int64) (*dtos.MaintenanceListResponse, error)
	UpdateStatus(ctx context.Context, actor policy.Actor, id string, req dtos.UpdateMaintenanceStatusRequest) (*models.MaintenanceRequest, error)
	Assign(ctx context.Context, actor policy.Actor, id string, req dtos.AssignMaintenanceRequest) (*models.MaintenanceRequest, error)
	UpdateCost(ctx context.Context, actor policy.Actor, id string, req dtos.UpdateMaintenanceCostRequest) (*models.MaintenanceRequest, error)
}

type maintenanceService struct {
	requests   repositories.MaintenanceRepository
	properties repositories.PropertyRepository
	units      repositories.UnitRepository
}

func NewMaintenanceService(requests repositories.MaintenanceRepository, properties repositories.PropertyRepository, units repositories.UnitRepository) MaintenanceService {
	return &maintenanceService{requests: requests, properties: properties, units: units}
}

func (s *maintenanceService) Create(ctx context.Context, actor policy.Actor, req dtos.CreateMaintenanceRequest) (*models.MaintenanceRequest, error) {
	d := policy.Evaluate(actor, policy.ResourceMaintenance, policy.OpCreate, policy.Ownership{})
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
	priority, err := models.ParseMaintenancePriority(req.Priority)
	if err != nil {
		return nil, utils.NewValidation("invalid priority", err)
	}

	now := time.Now().UTC()
	m := &models.MaintenanceRequest{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		UserID:      actor.ID, // never taken from the payload
		PropertyID:  propertyID,
		UnitID:      unitID,
		Priority:    priority,
		Status:      models.MaintenancePending,
		Images:      req.Images,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.requests.Create(ctx, m); err != nil {
		return nil, utils.NewInternal(err)
	}
	utils.Logger.WithField("requestId", m.ID.Hex()).Info("Maintenance request created")
	return m, nil
}

func (s *maintenanceService) Get(ctx context.Context, actor policy.Actor, id string) (*models.MaintenanceRequest, error) {
	m, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	own := policy.Ownership{RecordUserID: m.UserID}
	if !actor.IsAdmin() && m.UserID != actor.ID {
		adminID, err := propertyAdminOf(ctx, s.properties, m.PropertyID)
		if err != nil {
			return nil, err
		}
		own.PropertyAdminID = adminID
	}
	d := policy.Evaluate(actor, policy.ResourceMaintenance, policy.OpRead, own)
	if !d.Allowed() {
		return nil, errHiddenRecord("maintenance request")
	}
	return m, nil
}

func (s *maintenanceService) List(ctx context.Context, actor policy.Actor, status string, page, pageSize int64) (*dtos.MaintenanceListResponse, error) {
	var own policy.Ownership
	if actor.Role == models.RoleOwner {
		ids, err := s.properties.IDsByAdmin(ctx, actor.ID)
		if err != nil {
			return nil, utils.NewInternal(err)
		}
		own.ManagedPropertyIDs = ids
	}
	d := policy.Evaluate(actor, policy.ResourceMaintenance, policy.OpList, own)
	if !d.Allowed() {
		return nil, errForbidden()
	}
	filter := bson.M{}
	if status != "" {
		st, err := models.ParseMaintenanceStatus(status)
		if err != nil {
			return nil, utils.NewValidation("invalid maintenance status", err)
		}
		filter["status"] = st
	}
	for k, v := range d.Filter {
		filter[k] = v
	}
	page, pageSize = repositories.ClampPage(page, pageSize)
	items, total, err := s.requests.Find(ctx, filter, page, pageSize)
	if err != nil {
		return nil, utils.NewInternal(err)
	}
	return &dtos.MaintenanceListResponse{Requests: items, Total: total, Page: page, PageSize: pageSize}, nil
}

func (s *maintenanceService) UpdateStatus(ctx context.Context, actor policy.Actor, id string, req dtos.UpdateMaintenanceStatusRequest) (*models.MaintenanceRequest, error) {
	m, err := s.authorizeManage(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	status, err := models.ParseMaintenanceStatus(req.Status)
	if err != nil {
		return nil, utils.NewValidation("invalid maintenance status", err)
	}
	var paidDate *time.Time
	if status == models.MaintenanceCompleted {
		now := time.Now().UTC()
		paidDate = &now
	}
	if err := s.requests.SetStatus(ctx, m.ID, status, paidDate); err != nil {
		return nil, mapMiss(err, "maintenance request")
	}
	m.Status = status
	m.PaidDate = paidDate
	return m, nil
}

func (s *maintenanceService) Assign(ctx context.Context, actor policy.Actor, id string, req dtos.AssignMaintenanceRequest) (*models.MaintenanceRequest, error) {
	m, err := s.authorizeManage(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	staffID, err := parseID(req.AssignedTo)
	if err != nil {
		return nil, err
	}
	if err := s.requests.Assign(ctx, m.ID, staffID); err != nil {
		return nil, mapMiss(err, "maintenance request")
	}
	m.AssignedTo = &staffID
	m.Status = models.MaintenanceInProgress
	m.PaidDate = nil
	return m, nil
}

func (s *maintenanceService) UpdateCost(ctx context.Context, actor policy.Actor, id string, req dtos.UpdateMaintenanceCostRequest) (*models.MaintenanceRequest, error) {
	m, err := s.authorizeManage(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := s.requests.SetActualCost(ctx, m.ID, req.ActualCost); err != nil {
		return nil, mapMiss(err, "maintenance request")
	}
	m.ActualCost = &req.ActualCost
	return m, nil
}

func (s *maintenanceService) load(ctx context.Context, id string) (*models.MaintenanceRequest, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	m, err := s.requests.GetByID(ctx, oid)
	if err != nil {
		return nil, utils.NewInternal(err)
	}
	if m == nil {
		return nil, errHiddenRecord("maintenance request")
	}
	return m, nil
}

func (s *maintenanceService) authorizeManage(ctx context.Context, actor policy.Actor, id string) (*models.MaintenanceRequest, error) {
	m, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	var own policy.Ownership
	if !actor.IsAdmin() {
		adminID, err := propertyAdminOf(ctx, s.properties, m.PropertyID)
		if err != nil {
			return nil, err
		}
		own.PropertyAdminID = adminID
	}
	d := policy.Evaluate(actor, policy.ResourceMaintenance, policy.OpManageStatus, own)
	if !d.Allowed() {
		return nil, errForbidden()
	}
	return m, nil
}
