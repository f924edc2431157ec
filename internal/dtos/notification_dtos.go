package dtos

// ----------------------
// Requests
// ----------------------

type CreateNotificationRequest struct {
	UserID          string `json:"userId" validate:"required,len=24,hexadecimal"`
	Title           string `json:"title" validate:"required,min=1,max=200"`
	Message         string `json:"message" validate:"required,min=1,max=2000"`
	Type            string `json:"type" validate:"required,oneof=Payment Maintenance System Alert"`
	RelatedEntity   string `json:"relatedEntity,omitempty" validate:"omitempty,max=50"`
	RelatedEntityID string `json:"relatedEntityId,omitempty" validate:"omitempty,len=24,hexadecimal"`
}

// ----------------------
// Responses
// ----------------------

type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}
