package policy

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hosterlink/hosterlink-api/internal/models"
)

// Actor is the validated identity behind a request: the token's subject
// and role, nothing else. Every scoping decision derives from these two
// fields, never from request parameters.
type Actor struct {
	ID   primitive.ObjectID
	Role models.Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}
