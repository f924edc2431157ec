package dtos

import "github.com/hosterlink/hosterlink-api/internal/models"

// ----------------------
// Requests
// ----------------------

type CreateMaintenanceRequest struct {
	Title       string   `json:"title" validate:"required,min=1,max=200"`
	Description string   `json:"description" validate:"required,min=1,max=2000"`
	PropertyID  string   `json:"propertyId" validate:"required,len=24,hexadecimal"`
	UnitID      string   `json:"unitId" validate:"required,len=24,hexadecimal"`
	Priority    string   `json:"priority" validate:"required,oneof=Low Medium High Emergency"`
	Images      []string `json:"images,omitempty" validate:"omitempty,dive,url"`
}

type UpdateMaintenanceStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Pending InProgress Completed Cancelled"`
}

type AssignMaintenanceRequest struct {
	AssignedTo string `json:"assignedTo" validate:"required,len=24,hexadecimal"`
}

type UpdateMaintenanceCostRequest struct {
	ActualCost float64 `json:"actualCost" validate:"gte=0,lte=9999999.99"`
}

// ----------------------
// Responses
// ----------------------

type MaintenanceListResponse struct {
	Requests []*models.MaintenanceRequest `json:"requests"`
	Total    int64                        `json:"total"`
	Page     int64                        `json:"page"`
	PageSize int64                        `json:"pageSize"`
}
