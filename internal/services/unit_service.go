package services

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hosterlink/hosterlink-api/internal/dtos"
	"github.com/hosterlink/hosterlink-api/internal/models"
	"github.com/hosterlink/hosterlink-api/internal/policy"
	"github.com/hosterlink/hosterlink-api/internal/repositories"
	"github.com/hosterlink/hosterlink-api/internal/utils"
)

// UnitService interface
type UnitService interface {
	Create(ctx context.Context, actor policy.Actor, req dtos.CreateUnitRequest) (*models.Unit, error)
	Get(ctx context.Context, actor policy.Actor, id string) (*models.Unit, error)
	ListByProperty(ctx context.Context, actor policy.Actor, propertyID string) ([]*models.Unit, error)
	AssignTenant(ctx context.Context, actor policy.Actor, id string, req dtos.AssignTenantRequest) (*models.Unit, error)
	RemoveTenant(ctx context.Context, actor policy.Actor, id string) (*models.Unit, error)
}

type unitService struct {
	units      repositories.UnitRepository
	properties repositories.PropertyRepository
	users      repositories.UserRepository
}

func NewUnitService(units repositories.UnitRepository, properties repositories.PropertyRepository, users repositories.UserRepository) UnitService {
	return &unitService{units: units, properties: properties, users: users}
}

func (s *unitService) Create(ctx context.Context, actor policy.Actor, req dtos.CreateUnitRequest) (*models.Unit, error) {
	propertyID, err := parseID(req.PropertyID)
	if err != nil {
		return nil, err
	}
	adminID, err := propertyAdminOf(ctx, s.properties, propertyID)
	if err != nil {
		return nil, err
	}
	d := policy.Evaluate(actor, policy.ResourceUnits, policy.OpCreate, policy.Ownership{PropertyAdminID: adminID})
	if !d.Allowed() {
		return nil, errForbidden()
	}

	u := &models.Unit{
		PropertyID:     propertyID,
		UnitNumber:     strings.TrimSpace(req.UnitNumber),
		RentAmount:     req.RentAmount,
		MaintenanceFee: req.MaintenanceFee,
		Features:       req.Features,
	}
	if req.OwnerID != "" {
		ownerID, err := parseID(req.OwnerID)
		if err != nil {
			return nil, err
		}
		u.OwnerID = &ownerID
	}
	if err := s.units.Create(ctx, u); err != nil {
		return nil, utils.NewInternal(err)
	}
	return u, nil
}

func (s *unitService) Get(ctx context.Context, actor policy.Actor, id string) (*models.Unit, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	u, err := s.units.GetByID(ctx, oid)
	if err != nil {
		return nil, utils.NewInternal(err)
	}
	if u == nil {
		return nil, errHiddenRecord("unit")
	}
	own := policy.Ownership{UnitOwnerID: u.OwnerID, UnitTenantID: u.TenantID}
	if !actor.IsAdmin() {
		adminID, err := propertyAdminOf(ctx, s.properties, u.PropertyID)
		if err != nil {
			return nil, err
		}
		own.PropertyAdminID = adminID
	}
	d := policy.Evaluate(actor, policy.ResourceUnits, policy.OpRead, own)
	if !d.Allowed() {
		return nil, errHiddenRecord("unit")
	}
	return u, nil
}

func (s *unitService) ListByProperty(ctx context.Context, actor policy.Actor, propertyID string) ([]*models.Unit, error) {
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
	d := policy.Evaluate(actor, policy.ResourceUnits, policy.OpList, own)
	if !d.Allowed() {
		return nil, errForbidden()
	}
	units, err := s.units.ListByProperty(ctx, pid, d.Filter)
	if err != nil {
		return nil, utils.NewInternal(err)
	}
	return units, nil
}

// AssignTenant moves a vacant unit to occupied in one conditional store
// update. The tenant must be an existing active account.
func (s *unitService) AssignTenant(ctx context.Context, actor policy.Actor, id string, req dtos.AssignTenantRequest) (*models.Unit, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	tenantID, err := parseID(req.TenantID)
	if err != nil {
		return nil, err
	}
	u, err := s.authorizeManage(ctx, actor, oid)
	if err != nil {
		return nil, err
	}

	tenant, err := s.users.GetByID(ctx, tenantID)
	if err != nil {
		return nil, utils.NewInternal(err)
	}
	if tenant == nil {
		return nil, utils.NewValidation("tenant account not found", nil)
	}

	if err := s.units.AssignTenant(ctx, oid, tenantID); err != nil {
		if errors.Is(err, utils.ErrUnitOccupied) {
			return nil, utils.NewConflict("Unit is already occupied", err)
		}
		return nil, mapMiss(err, "unit")
	}
	u.TenantID = &tenantID
	u.IsOccupied = true
	utils.Logger.WithFields(map[string]interface{}{
		"unitId":   oid.Hex(),
		"tenantId": tenantID.Hex(),
	}).Info("Tenant assigned to unit")
	return u, nil
}

func (s *unitService) RemoveTenant(ctx context.Context, actor policy.Actor, id string) (*models.Unit, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	u, err := s.authorizeManage(ctx, actor, oid)
	if err != nil {
		return nil, err
	}
	if err := s.units.RemoveTenant(ctx, oid); err != nil {
		if errors.Is(err, utils.ErrUnitVacant) {
			return nil, utils.NewConflict("Unit is already vacant", err)
		}
		return nil, mapMiss(err, "unit")
	}
	u.TenantID = nil
	u.IsOccupied = false
	return u, nil
}

// authorizeManage loads the unit and gates the occupancy mutation on the
// enclosing property's admin.
func (s *unitService) authorizeManage(ctx context.Context, actor policy.Actor, oid primitive.ObjectID) (*models.Unit, error) {
	u, err := s.units.GetByID(ctx, oid)
	if err != nil {
		return nil, utils.NewInternal(err)
	}
	if u == nil {
		return nil, errHiddenRecord("unit")
	}
	var own policy.Ownership
	if !actor.IsAdmin() {
		adminID, err := propertyAdminOf(ctx, s.properties, u.PropertyID)
		if err != nil {
			return nil, err
		}
		own.PropertyAdminID = adminID
	}
	d := policy.Evaluate(actor, policy.ResourceUnits, policy.OpManageStatus, own)
	if !d.Allowed() {
		return nil, errForbidden()
	}
	return u, nil
}
