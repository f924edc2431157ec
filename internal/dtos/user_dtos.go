package dtos

import "github.com/hosterlink/hosterlink-api/internal/models"

// ----------------------
// Requests
// ----------------------

type UpdateUserRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=100"`
	Phone string `json:"phone,omitempty" validate:"omitempty,max=30"`
}

// ----------------------
// Responses
// ----------------------

type UserListResponse struct {
	Users    []*models.User `json:"users"`
	Total    int64          `json:"total"`
	Page     int64          `json:"page"`
	PageSize int64          `json:"pageSize"`
}
