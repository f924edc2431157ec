package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an identity record. PasswordHash is the credential verifier:
// it is never serialized to JSON and Redact clears it before any user
// document leaves a service.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	Phone        string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Role         Role               `bson:"role" json:"role"`
	IsActive     bool               `bson:"isActive" json:"isActive"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// Redact clears the credential verifier. Applied unconditionally to every
// outbound user record, whatever the caller's role.
func (u *User) Redact() *User {
	if u != nil {
		u.PasswordHash = ""
	}
	return u
}
