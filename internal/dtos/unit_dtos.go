package dtos

// ----------------------
// Requests
// ----------------------

type CreateUnitRequest struct {
	PropertyID     string   `json:"propertyId" validate:"required,len=24,hexadecimal"`
	UnitNumber     string   `json:"unitNumber" validate:"required,min=1,max=20"`
	OwnerID        string   `json:"ownerId,omitempty" validate:"omitempty,len=24,hexadecimal"`
	RentAmount     float64  `json:"rentAmount" validate:"gte=0,lte=9999999.99"`
	MaintenanceFee float64  `json:"maintenanceFee" validate:"gte=0,lte=9999999.99"`
	Features       []string `json:"features,omitempty" validate:"omitempty,dive,min=1,max=100"`
}

type AssignTenantRequest struct {
	TenantID string `json:"tenantId" validate:"required,len=24,hexadecimal"`
}
