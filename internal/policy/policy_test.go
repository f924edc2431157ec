package policy

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hosterlink/hosterlink-api/internal/models"
)

func newActor(role models.Role) Actor {
	return Actor{ID: primitive.NewObjectID(), Role: role}
}

func TestAdminIsUnrestrictedEverywhere(t *testing.T) {
	admin := newActor(models.RoleAdmin)
	resources := []Resource{
		ResourceUsers, ResourceProperties, ResourceUnits,
		ResourcePayments, ResourceMaintenance, ResourceMessages, ResourceNotifications,
	}
	operations := []Operation{OpList, OpRead, OpCreate, OpUpdate, OpDelete, OpManageStatus}

	for _, res := range resources {
		for _, op := range operations {
			d := Evaluate(admin, res, op, Ownership{})
			require.Equal(t, EffectAllow, d.Effect, "resource %d op %d", res, op)
			require.Nil(t, d.Filter)
		}
	}
}

// Whatever another role may do, Admin may do at least as much.
func TestRoleMonotonicity(t *testing.T) {
	own := Ownership{RecordUserID: primitive.NewObjectID()}
	admin := newActor(models.RoleAdmin)
	for _, role := range []models.Role{models.RoleTenant, models.RoleOwner} {
		actor := newActor(role)
		for res := ResourceUsers; res <= ResourceNotifications; res++ {
			for op := OpList; op <= OpManageStatus; op++ {
				if Evaluate(actor, res, op, own).Allowed() {
					require.True(t, Evaluate(admin, res, op, own).Allowed(),
						"admin denied where role %v allowed: resource %d op %d", role, res, op)
				}
			}
		}
	}
}

func TestMissingTableEntryDenies(t *testing.T) {
	tenant := newActor(models.RoleTenant)

	// No OpDelete rule for payments.
	d := Evaluate(tenant, ResourcePayments, OpDelete, Ownership{RecordUserID: tenant.ID})
	require.Equal(t, EffectDeny, d.Effect)

	// No OpCreate rule for notifications below Admin.
	d = Evaluate(tenant, ResourceNotifications, OpCreate, Ownership{})
	require.Equal(t, EffectDeny, d.Effect)
	d = Evaluate(newActor(models.RoleOwner), ResourceNotifications, OpCreate, Ownership{})
	require.Equal(t, EffectDeny, d.Effect)
}

func TestTenantSeesOnlyOwnRecords(t *testing.T) {
	tenant := newActor(models.RoleTenant)

	d := Evaluate(tenant, ResourcePayments, OpList, Ownership{})
	require.Equal(t, EffectAllowWithFilter, d.Effect)
	require.Equal(t, bson.M{"userId": tenant.ID}, d.Filter)

	other := primitive.NewObjectID()
	d = Evaluate(tenant, ResourcePayments, OpRead, Ownership{RecordUserID: other})
	require.Equal(t, EffectDeny, d.Effect)

	d = Evaluate(tenant, ResourcePayments, OpRead, Ownership{RecordUserID: tenant.ID})
	require.Equal(t, EffectAllow, d.Effect)
}

func TestOwnerPaymentVisibilityIncludesManagedProperties(t *testing.T) {
	owner := newActor(models.RoleOwner)
	managed := []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID()}

	d := Evaluate(owner, ResourcePayments, OpList, Ownership{ManagedPropertyIDs: managed})
	require.Equal(t, EffectAllowWithFilter, d.Effect)
	require.Equal(t, bson.M{"$or": []bson.M{
		{"userId": owner.ID},
		{"propertyId": bson.M{"$in": managed}},
	}}, d.Filter)

	// With nothing managed, the scope collapses to own records.
	d = Evaluate(owner, ResourcePayments, OpList, Ownership{})
	require.Equal(t, bson.M{"userId": owner.ID}, d.Filter)
}

// An Owner who is also a tenant of a unit gets the most permissive
// applicable access path.
func TestOwnerTenantTieBreak(t *testing.T) {
	owner := newActor(models.RoleOwner)

	// Owner reads a unit where they are only the tenant.
	d := Evaluate(owner, ResourceUnits, OpRead, Ownership{
		PropertyAdminID: primitive.NewObjectID(),
		UnitTenantID:    &owner.ID,
	})
	require.Equal(t, EffectAllow, d.Effect)

	// Owner who administers the property gets an unscoped unit list.
	d = Evaluate(owner, ResourceUnits, OpList, Ownership{PropertyAdminID: owner.ID})
	require.Equal(t, EffectAllow, d.Effect)

	// Otherwise the list is filtered to their own units, either side.
	d = Evaluate(owner, ResourceUnits, OpList, Ownership{PropertyAdminID: primitive.NewObjectID()})
	require.Equal(t, EffectAllowWithFilter, d.Effect)
	require.Equal(t, bson.M{"$or": []bson.M{
		{"ownerId": owner.ID},
		{"tenantId": owner.ID},
	}}, d.Filter)
}

func TestTenantPropertyListScopedToTenancies(t *testing.T) {
	tenant := newActor(models.RoleTenant)

	// No tenancies: the filter must match nothing rather than everything.
	d := Evaluate(tenant, ResourceProperties, OpList, Ownership{})
	require.Equal(t, EffectAllowWithFilter, d.Effect)
	require.Equal(t, bson.M{"_id": primitive.NilObjectID}, d.Filter)

	props := []primitive.ObjectID{primitive.NewObjectID()}
	d = Evaluate(tenant, ResourceProperties, OpList, Ownership{TenantPropertyIDs: props})
	require.Equal(t, bson.M{"_id": bson.M{"$in": props}}, d.Filter)
}

func TestMessageRules(t *testing.T) {
	tenant := newActor(models.RoleTenant)
	other := primitive.NewObjectID()

	// Participants read; outsiders do not.
	d := Evaluate(tenant, ResourceMessages, OpRead, Ownership{SenderID: tenant.ID, ReceiverID: other})
	require.True(t, d.Allowed())
	d = Evaluate(tenant, ResourceMessages, OpRead, Ownership{SenderID: other, ReceiverID: primitive.NewObjectID()})
	require.False(t, d.Allowed())

	// Only the receiver marks read.
	d = Evaluate(tenant, ResourceMessages, OpUpdate, Ownership{SenderID: tenant.ID, ReceiverID: other})
	require.False(t, d.Allowed())
	d = Evaluate(tenant, ResourceMessages, OpUpdate, Ownership{SenderID: other, ReceiverID: tenant.ID})
	require.True(t, d.Allowed())
}

func TestUsersSelfScopeOnly(t *testing.T) {
	owner := newActor(models.RoleOwner)

	d := Evaluate(owner, ResourceUsers, OpList, Ownership{})
	require.Equal(t, bson.M{"_id": owner.ID}, d.Filter)

	d = Evaluate(owner, ResourceUsers, OpUpdate, Ownership{RecordUserID: primitive.NewObjectID()})
	require.False(t, d.Allowed())
	d = Evaluate(owner, ResourceUsers, OpUpdate, Ownership{RecordUserID: owner.ID})
	require.True(t, d.Allowed())
}
