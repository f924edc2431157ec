package dtos

// ----------------------
// Requests
// ----------------------

type SendMessageRequest struct {
	ReceiverID  string   `json:"receiverId" validate:"required,len=24,hexadecimal"`
	PropertyID  string   `json:"propertyId,omitempty" validate:"omitempty,len=24,hexadecimal"`
	Content     string   `json:"content" validate:"required,min=1,max=1000"`
	Attachments []string `json:"attachments,omitempty" validate:"omitempty,dive,url"`
}

// ----------------------
// Responses
// ----------------------

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

type MarkManyReadResponse struct {
	Updated int64 `json:"updated"`
}
