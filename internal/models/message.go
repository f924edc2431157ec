package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message belongs to both participants: SenderID and ReceiverID each
// anchor an ownership path. Conversations are derived, not stored: the
// key is (PropertyID, unordered participant pair).
type Message struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SenderID    primitive.ObjectID `bson:"senderId" json:"senderId"`
	ReceiverID  primitive.ObjectID `bson:"receiverId" json:"receiverId"`
	PropertyID  primitive.ObjectID `bson:"propertyId" json:"propertyId"`
	Content     string             `bson:"content" json:"content"`
	IsRead      bool               `bson:"isRead" json:"isRead"`
	SentAt      time.Time          `bson:"sentAt" json:"sentAt"`
	Attachments []string           `bson:"attachments,omitempty" json:"attachments,omitempty"`
}
