package services

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hosterlink/hosterlink-api/internal/dtos"
	"github.com/hosterlink/hosterlink-api/internal/models"
	"github.com/hosterlink/hosterlink-api/internal/policy"
	"github.com/hosterlink/hosterlink-api/internal/repositories"
	"github.com/hosterlink/hosterlink-api/internal/utils"
)

// PropertyService interface
type PropertyService interface {
	Create(ctx context.Context, actor policy.Actor, req dtos.CreatePropertyRequest) (*models.Property, error)
	Get(ctx context.Context, actor policy.Actor, id string) (*models.Property, error)
	List(ctx context.Context, actor policy.Actor, page, pageSize int64) (*dtos.PropertyListResponse, error)
	Update(ctx context.Context, actor policy.Actor, id string, req dtos.UpdatePropertyRequest) (*models.Property, error)
	Delete(ctx context.Context, actor policy.Actor, id string) error
}

type propertyService struct {
	properties repositories.PropertyRepository
	units      repositories.UnitRepository
}

func NewPropertyService(properties repositories.PropertyRepository, units repositories.UnitRepository) PropertyService {
	return &propertyService{properties: properties, units: units}
}

func (s *propertyService) Create(ctx context.Context, actor policy.Actor, req dtos.CreatePropertyRequest) (*models.Property, error) {
	d := policy.Evaluate(actor, policy.ResourceProperties, policy.OpCreate, policy.Ownership{})
	if !d.Allowed() {
		return nil, errForbidden()
	}
	p := &models.Property{
		Name:       strings.TrimSpace(req.Name),
		Address:    strings.TrimSpace(req.Address),
		AdminID:    actor.ID, // never taken from the payload
		Amenities:  req.Amenities,
		MonthlyFee: req.MonthlyFee,
		IsActive:   true,
	}
	if err := s.properties.Create(ctx, p); err != nil {
		return nil, utils.NewInternal(err)
	}
	utils.Logger.WithField("propertyId", p.ID.Hex()).Info("Property created")
	return p, nil
}

func (s *propertyService) Get(ctx context.Context, actor policy.Actor, id string) (*models.Property, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	p, err := s.properties.GetByID(ctx, oid)
	if err != nil {
		return nil, utils.NewInternal(err)
	}
	if p == nil {
		return nil, errHiddenRecord("property")
	}
	own, err := s.ownership(ctx, actor, p)
	if err != nil {
		return nil, err
	}
	d := policy.Evaluate(actor, policy.ResourceProperties, policy.OpRead, own)
	if !d.Allowed() {
		return nil, errHiddenRecord("property")
	}
	return p, nil
}

func (s *propertyService) List(ctx context.Context, actor policy.Actor, page, pageSize int64) (*dtos.PropertyListResponse, error) {
	own, err := s.listScope(ctx, actor)
	if err != nil {
		return nil, err
	}
	d := policy.Evaluate(actor, policy.ResourceProperties, policy.OpList, own)
	if !d.Allowed() {
		return nil, errForbidden()
	}
	filter := bson.M{"isActive": true}
	for k, v := range d.Filter {
		filter[k] = v
	}
	page, pageSize = repositories.ClampPage(page, pageSize)
	items, total, err := s.properties.Find(ctx, filter, page, pageSize)
	if err != nil {
		return nil, utils.NewInternal(err)
	}
	return &dtos.PropertyListResponse{Properties: items, Total: total, Page: page, PageSize: pageSize}, nil
}

func (s *propertyService) Update(ctx context.Context, actor policy.Actor, id string, req dtos.UpdatePropertyRequest) (*models.Property, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	p, err := s.properties.GetByID(ctx, oid)
	if err != nil {
		return nil, utils.NewInternal(err)
	}
	if p == nil {
		return nil, errHiddenRecord("property")
	}
	d := policy.Evaluate(actor, policy.ResourceProperties, policy.OpUpdate, policy.Ownership{PropertyAdminID: p.AdminID})
	if !d.Allowed() {
		return nil, errForbidden()
	}
	p.Name = strings.TrimSpace(req.Name)
	p.Address = strings.TrimSpace(req.Address)
	p.Amenities = req.Amenities
	p.MonthlyFee = req.MonthlyFee
	if err := s.properties.Update(ctx, p); err != nil {
		return nil, mapMiss(err, "property")
	}
	return p, nil
}

func (s *propertyService) Delete(ctx context.Context, actor policy.Actor, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	p, err := s.properties.GetByID(ctx, oid)
	if err != nil {
		return utils.NewInternal(err)
	}
	if p == nil {
		return errHiddenRecord("property")
	}
	d := policy.Evaluate(actor, policy.ResourceProperties, policy.OpDelete, policy.Ownership{PropertyAdminID: p.AdminID})
	if !d.Allowed() {
		return errForbidden()
	}
	if err := s.properties.SoftDelete(ctx, oid); err != nil {
		return mapMiss(err, "property")
	}
	utils.Logger.WithField("propertyId", oid.Hex()).Info("Property deactivated")
	return nil
}

// ownership resolves the unit-level attributes a property read decision
// needs. Admin skips the fetch entirely.
func (s *propertyService) ownership(ctx context.Context, actor policy.Actor, p *models.Property) (policy.Ownership, error) {
	own := policy.Ownership{PropertyAdminID: p.AdminID}
	if actor.IsAdmin() || p.AdminID == actor.ID {
		return own, nil
	}
	owners, tenants, err := s.units.OwnershipByProperty(ctx, p.ID)
	if err != nil {
		return policy.Ownership{}, utils.NewInternal(err)
	}
	own.UnitOwnerIDs = owners
	own.UnitTenantIDs = tenants
	return own, nil
}

// listScope pre-resolves the property id sets the actor's list filter is
// built from.
func (s *propertyService) listScope(ctx context.Context, actor policy.Actor) (policy.Ownership, error) {
	var own policy.Ownership
	if actor.IsAdmin() {
		return own, nil
	}
	var err error
	switch actor.Role {
	case models.RoleOwner:
		own.OwnedUnitPropertyIDs, err = s.units.PropertyIDsByOwner(ctx, actor.ID)
	case models.RoleTenant:
		own.TenantPropertyIDs, err = s.units.PropertyIDsByTenant(ctx, actor.ID)
	}
	if err != nil {
		return policy.Ownership{}, utils.NewInternal(err)
	}
	return own, nil
}

// propertyAdminOf is shared by the gateways that gate privileged
// mutations on the enclosing property's admin.
func propertyAdminOf(ctx context.Context, properties repositories.PropertyRepository, id primitive.ObjectID) (primitive.ObjectID, error) {
	p, err := properties.GetByID(ctx, id)
	if err != nil {
		return primitive.NilObjectID, utils.NewInternal(err)
	}
	if p == nil {
		return primitive.NilObjectID, errHiddenRecord("property")
	}
	return p.AdminID, nil
}
