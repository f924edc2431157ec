package dtos

import "github.com/hosterlink/hosterlink-api/internal/models"

// ----------------------
// Requests
// ----------------------

type CreatePropertyRequest struct {
	Name       string   `json:"name" validate:"required,min=1,max=200"`
	Address    string   `json:"address" validate:"required,min=1,max=500"`
	Amenities  []string `json:"amenities,omitempty" validate:"omitempty,dive,min=1,max=100"`
	MonthlyFee float64  `json:"monthlyFee" validate:"gte=0,lte=9999999.99"`
}

type UpdatePropertyRequest struct {
	Name       string   `json:"name" validate:"required,min=1,max=200"`
	Address    string   `json:"address" validate:"required,min=1,max=500"`
	Amenities  []string `json:"amenities,omitempty" validate:"omitempty,dive,min=1,max=100"`
	MonthlyFee float64  `json:"monthlyFee" validate:"gte=0,lte=9999999.99"`
}

// ----------------------
// Responses
// ----------------------

type PropertyListResponse struct {
	Properties []*models.Property `json:"properties"`
	Total      int64              `json:"total"`
	Page       int64              `json:"page"`
	PageSize   int64              `json:"pageSize"`
}
