package dtos

import (
	"time"

	"github.com/hosterlink/hosterlink-api/internal/models"
)

// ----------------------
// Requests
// ----------------------

type CreatePaymentRequest struct {
	PropertyID    string    `json:"propertyId" validate:"required,len=24,hexadecimal"`
	UnitID        string    `json:"unitId" validate:"required,len=24,hexadecimal"`
	Amount        float64   `json:"amount" validate:"gt=0,lte=9999999.99"`
	PaymentType   string    `json:"paymentType" validate:"required,oneof=Rent Maintenance Service"`
	PaymentMethod string    `json:"paymentMethod" validate:"required,oneof=CreditCard DebitCard Cash Transfer"`
	DueDate       time.Time `json:"dueDate" validate:"required"`
	Description   string    `json:"description,omitempty" validate:"omitempty,max=500"`
}

type UpdatePaymentStatusRequest struct {
	Status        string `json:"status" validate:"required,oneof=Pending Completed Failed Refunded"`
	TransactionID string `json:"transactionId,omitempty" validate:"omitempty,max=100"`
}

// ----------------------
// Responses
// ----------------------

type PaymentListResponse struct {
	Payments []*models.Payment `json:"payments"`
	Total    int64             `json:"total"`
	Page     int64             `json:"page"`
	PageSize int64             `json:"pageSize"`
}

// PaymentReportResponse aggregates a property's payments over a period.
type PaymentReportResponse struct {
	PropertyID     string            `json:"propertyId"`
	From           time.Time         `json:"from"`
	To             time.Time         `json:"to"`
	TotalCollected float64           `json:"totalCollected"`
	TotalPending   float64           `json:"totalPending"`
	Payments       []*models.Payment `json:"payments"`
}
