package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification is owned solely by its recipient (UserID).
type Notification struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID  `bson:"userId" json:"userId"`
	Title           string              `bson:"title" json:"title"`
	Message         string              `bson:"message" json:"message"`
	Type            NotificationType    `bson:"type" json:"type"`
	IsRead          bool                `bson:"isRead" json:"isRead"`
	RelatedEntity   string              `bson:"relatedEntity,omitempty" json:"relatedEntity,omitempty"`
	RelatedEntityID *primitive.ObjectID `bson:"relatedEntityId,omitempty" json:"relatedEntityId,omitempty"`
	CreatedAt       time.Time           `bson:"createdAt" json:"createdAt"`
}
