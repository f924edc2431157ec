package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hosterlink/hosterlink-api/internal/dtos"
	"github.com/hosterlink/hosterlink-api/internal/models"
	"github.com/hosterlink/hosterlink-api/internal/policy"
	"github.com/hosterlink/hosterlink-api/internal/utils"
)

type unitFixture struct {
	svc        UnitService
	users      *fakeUserRepo
	properties *fakePropertyRepo
	units      *fakeUnitRepo
	admin      policy.Actor // property admin (an Owner)
	property   *models.Property
}

func newUnitFixture() *unitFixture {
	users := newFakeUserRepo()
	properties := newFakePropertyRepo()
	units := newFakeUnitRepo()

	adminUser := users.add(&models.User{Email: "admin@example.com", Role: models.RoleOwner, IsActive: true})
	admin := policy.Actor{ID: adminUser.ID, Role: models.RoleOwner}
	property := properties.add(&models.Property{Name: "Maple Court", AdminID: admin.ID, IsActive: true})

	return &unitFixture{
		svc:        NewUnitService(units, properties, users),
		users:      users,
		properties: properties,
		units:      units,
		admin:      admin,
		property:   property,
	}
}

func (f *unitFixture) seedUnit() *models.Unit {
	return f.units.add(&models.Unit{PropertyID: f.property.ID, UnitNumber: "2B"})
}

func (f *unitFixture) seedTenant() (*models.User, policy.Actor) {
	u := f.users.add(&models.User{Email: "tenant@example.com", Role: models.RoleTenant, IsActive: true})
	return u, policy.Actor{ID: u.ID, Role: models.RoleTenant}
}

func TestUnitCreateByPropertyAdmin(t *testing.T) {
	f := newUnitFixture()
	u, err := f.svc.Create(context.Background(), f.admin, dtos.CreateUnitRequest{
		PropertyID: f.property.ID.Hex(),
		UnitNumber: "3A",
		RentAmount: 1200,
	})
	require.NoError(t, err)
	require.Equal(t, f.property.ID, u.PropertyID)
	require.False(t, u.IsOccupied)
	require.Nil(t, u.TenantID)
}

func TestUnitCreateByStrangerForbidden(t *testing.T) {
	f := newUnitFixture()
	stranger := actorOf(models.RoleOwner)
	_, err := f.svc.Create(context.Background(), stranger, dtos.CreateUnitRequest{
		PropertyID: f.property.ID.Hex(),
		UnitNumber: "3A",
	})
	requireForbidden(t, err)
}

// Occupancy and tenantId always move together, and an occupied unit
// rejects a second assignment with a conflict.
func TestAssignTenantOccupancyInvariant(t *testing.T) {
	f := newUnitFixture()
	unit := f.seedUnit()
	tenant, _ := f.seedTenant()

	got, err := f.svc.AssignTenant(context.Background(), f.admin, unit.ID.Hex(),
		dtos.AssignTenantRequest{TenantID: tenant.ID.Hex()})
	require.NoError(t, err)
	require.True(t, got.IsOccupied)
	require.NotNil(t, got.TenantID)
	require.Equal(t, tenant.ID, *got.TenantID)

	stored := f.units.units[unit.ID]
	require.True(t, stored.IsOccupied)
	require.Equal(t, tenant.ID, *stored.TenantID)

	other := f.users.add(&models.User{Email: "late@example.com", Role: models.RoleTenant, IsActive: true})
	_, err = f.svc.AssignTenant(context.Background(), f.admin, unit.ID.Hex(),
		dtos.AssignTenantRequest{TenantID: other.ID.Hex()})
	requireAppError(t, err, http.StatusConflict, utils.ErrCodeConflict)

	// Loser did not clobber the winner.
	require.Equal(t, tenant.ID, *f.units.units[unit.ID].TenantID)
}

func TestAssignTenantRejectsUnknownAccount(t *testing.T) {
	f := newUnitFixture()
	unit := f.seedUnit()
	_, err := f.svc.AssignTenant(context.Background(), f.admin, unit.ID.Hex(),
		dtos.AssignTenantRequest{TenantID: primitive.NewObjectID().Hex()})
	requireAppError(t, err, http.StatusBadRequest, utils.ErrCodeValidation)
}

func TestRemoveTenantVacantConflicts(t *testing.T) {
	f := newUnitFixture()
	unit := f.seedUnit()

	_, err := f.svc.RemoveTenant(context.Background(), f.admin, unit.ID.Hex())
	requireAppError(t, err, http.StatusConflict, utils.ErrCodeConflict)

	tenant, _ := f.seedTenant()
	_, err = f.svc.AssignTenant(context.Background(), f.admin, unit.ID.Hex(),
		dtos.AssignTenantRequest{TenantID: tenant.ID.Hex()})
	require.NoError(t, err)

	got, err := f.svc.RemoveTenant(context.Background(), f.admin, unit.ID.Hex())
	require.NoError(t, err)
	require.False(t, got.IsOccupied)
	require.Nil(t, got.TenantID)
}

func TestOccupancyMutationForbiddenForTenant(t *testing.T) {
	f := newUnitFixture()
	unit := f.seedUnit()
	tenant, tenantActor := f.seedTenant()

	_, err := f.svc.AssignTenant(context.Background(), tenantActor, unit.ID.Hex(),
		dtos.AssignTenantRequest{TenantID: tenant.ID.Hex()})
	requireForbidden(t, err)
}

func TestUnitReadScopes(t *testing.T) {
	f := newUnitFixture()
	unit := f.seedUnit()
	tenant, tenantActor := f.seedTenant()

	// Not yet the unit's tenant: hidden.
	_, err := f.svc.Get(context.Background(), tenantActor, unit.ID.Hex())
	requireNotFound(t, err)

	_, err = f.svc.AssignTenant(context.Background(), f.admin, unit.ID.Hex(),
		dtos.AssignTenantRequest{TenantID: tenant.ID.Hex()})
	require.NoError(t, err)

	got, err := f.svc.Get(context.Background(), tenantActor, unit.ID.Hex())
	require.NoError(t, err)
	require.Equal(t, unit.ID, got.ID)
}

func TestUnitListScopeFilters(t *testing.T) {
	f := newUnitFixture()
	f.seedUnit()
	_, tenantActor := f.seedTenant()

	// Tenant lists through a tenantId filter.
	_, err := f.svc.ListByProperty(context.Background(), tenantActor, f.property.ID.Hex())
	require.NoError(t, err)
	require.Equal(t, bson.M{"tenantId": tenantActor.ID}, f.units.lastScope)

	// The property admin lists unscoped.
	f.units.lastScope = bson.M{"sentinel": true}
	_, err = f.svc.ListByProperty(context.Background(), f.admin, f.property.ID.Hex())
	require.NoError(t, err)
	require.Nil(t, f.units.lastScope)
}
