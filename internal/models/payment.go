package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment scopes through UserID. PaidDate is set exactly when Status is
// Completed; transitioning to any other status clears it.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        primitive.ObjectID `bson:"userId" json:"userId"`
	PropertyID    primitive.ObjectID `bson:"propertyId" json:"propertyId"`
	UnitID        primitive.ObjectID `bson:"unitId" json:"unitId"`
	Amount        float64            `bson:"amount" json:"amount"`
	PaymentType   PaymentType        `bson:"paymentType" json:"paymentType"`
	PaymentMethod PaymentMethod      `bson:"paymentMethod" json:"paymentMethod"`
	Status        PaymentStatus      `bson:"status" json:"status"`
	DueDate       time.Time          `bson:"dueDate" json:"dueDate"`
	PaidDate      *time.Time         `bson:"paidDate,omitempty" json:"paidDate,omitempty"`
	TransactionID string             `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
}
