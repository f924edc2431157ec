package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/hosterlink/hosterlink-api/internal/dtos"
	"github.com/hosterlink/hosterlink-api/internal/models"
	"github.com/hosterlink/hosterlink-api/internal/policy"
)

func seedUser(users *fakeUserRepo, role models.Role) (*models.User, policy.Actor) {
	u := users.add(&models.User{
		Name:         "Seed User",
		Email:        "seed@example.com",
		PasswordHash: "bcrypt-hash",
		Role:         role,
		IsActive:     true,
	})
	return u, policy.Actor{ID: u.ID, Role: u.Role}
}

func TestUserGetSelfIsRedacted(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users)
	u, actor := seedUser(users, models.RoleTenant)

	got, err := svc.Get(context.Background(), actor, u.ID.Hex())
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
	require.Empty(t, got.PasswordHash)
}

// A cross-user read fails as not-found, not forbidden, so callers cannot
// probe which user ids exist.
func TestUserGetOtherUserHidden(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users)
	_, actor := seedUser(users, models.RoleTenant)
	other := users.add(&models.User{Email: "other@example.com", IsActive: true})

	_, err := svc.Get(context.Background(), actor, other.ID.Hex())
	requireNotFound(t, err)
}

func TestUserGetMalformedID(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users)
	_, actor := seedUser(users, models.RoleAdmin)

	_, err := svc.Get(context.Background(), actor, "zz-not-an-id")
	requireAppError(t, err, 400, "validation_error")
}

func TestUserListScopes(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users)
	_, owner := seedUser(users, models.RoleOwner)

	_, err := svc.List(context.Background(), owner, "", 1, 20)
	require.NoError(t, err)
	require.Equal(t, bson.M{"isActive": true, "_id": owner.ID}, users.lastFilter)

	admin := actorOf(models.RoleAdmin)
	_, err = svc.List(context.Background(), admin, "", 1, 20)
	require.NoError(t, err)
	require.Equal(t, bson.M{"isActive": true}, users.lastFilter)

	// Role filter narrows the admin listing.
	_, err = svc.List(context.Background(), admin, "Tenant", 1, 20)
	require.NoError(t, err)
	require.Equal(t, bson.M{"isActive": true, "role": models.RoleTenant}, users.lastFilter)

	_, err = svc.List(context.Background(), admin, "Superuser", 1, 20)
	requireAppError(t, err, 400, "validation_error")
}

func TestUserUpdateOnlyProfileFields(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users)
	u, actor := seedUser(users, models.RoleOwner)

	got, err := svc.Update(context.Background(), actor, u.ID.Hex(), dtos.UpdateUserRequest{
		Name:  "  New Name ",
		Phone: "+15550000000",
	})
	require.NoError(t, err)
	require.Equal(t, "New Name", got.Name)
	require.Equal(t, "+15550000000", got.Phone)

	stored := users.users[u.ID]
	require.Equal(t, "seed@example.com", stored.Email)
	require.Equal(t, models.RoleOwner, stored.Role)
	require.Equal(t, "bcrypt-hash", stored.PasswordHash)
}

func TestUserUpdateOtherUserForbidden(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users)
	_, actor := seedUser(users, models.RoleOwner)
	other := users.add(&models.User{Email: "other@example.com", IsActive: true})

	_, err := svc.Update(context.Background(), actor, other.ID.Hex(), dtos.UpdateUserRequest{Name: "X"})
	requireForbidden(t, err)
}

func TestUserDeactivateAdminOnly(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users)
	victim, victimActor := seedUser(users, models.RoleTenant)

	// Even self-deactivation is reserved for Admin.
	err := svc.Deactivate(context.Background(), victimActor, victim.ID.Hex())
	requireForbidden(t, err)

	admin := actorOf(models.RoleAdmin)
	require.NoError(t, svc.Deactivate(context.Background(), admin, victim.ID.Hex()))
	require.False(t, users.users[victim.ID].IsActive)
}
