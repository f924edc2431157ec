package models

import (
	"fmt"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// All enumerated fields are closed int-backed types. Values travel as
// strings on the wire and in the store, so documents written by the
// previous system remain readable. The zero value of Role is Tenant,
// the least-privileged role.

// ------------------------------------------------------------------------
// Role
// ------------------------------------------------------------------------

type Role int

const (
	RoleTenant Role = iota
	RoleOwner
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleTenant:
		return "Tenant"
	case RoleOwner:
		return "Owner"
	case RoleAdmin:
		return "Admin"
	default:
		return "unknown"
	}
}

func ParseRole(s string) (Role, error) {
	switch s {
	case "Tenant":
		return RoleTenant, nil
	case "Owner":
		return RoleOwner, nil
	case "Admin":
		return RoleAdmin, nil
	default:
		return -1, fmt.Errorf("invalid role: %q", s)
	}
}

func (r Role) MarshalJSON() ([]byte, error)          { return marshalEnumJSON(r.String()) }
func (r *Role) UnmarshalJSON(data []byte) error      { return unmarshalEnumJSON(data, ParseRole, r) }
func (r Role) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(r.String())
}
func (r *Role) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	return unmarshalEnumBSON(t, data, ParseRole, r)
}

// ------------------------------------------------------------------------
// PaymentType
// ------------------------------------------------------------------------

type PaymentType int

const (
	PaymentTypeRent PaymentType = iota
	PaymentTypeMaintenance
	PaymentTypeService
)

func (p PaymentType) String() string {
	switch p {
	case PaymentTypeRent:
		return "Rent"
	case PaymentTypeMaintenance:
		return "Maintenance"
	case PaymentTypeService:
		return "Service"
	default:
		return "unknown"
	}
}

func ParsePaymentType(s string) (PaymentType, error) {
	switch s {
	case "Rent":
		return PaymentTypeRent, nil
	case "Maintenance":
		return PaymentTypeMaintenance, nil
	case "Service":
		return PaymentTypeService, nil
	default:
		return -1, fmt.Errorf("invalid payment type: %q", s)
	}
}

func (p PaymentType) MarshalJSON() ([]byte, error)     { return marshalEnumJSON(p.String()) }
func (p *PaymentType) UnmarshalJSON(data []byte) error { return unmarshalEnumJSON(data, ParsePaymentType, p) }
func (p PaymentType) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(p.String())
}
func (p *PaymentType) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	return unmarshalEnumBSON(t, data, ParsePaymentType, p)
}

// ------------------------------------------------------------------------
// PaymentMethod
// ------------------------------------------------------------------------

type PaymentMethod int

const (
	PaymentMethodCreditCard PaymentMethod = iota
	PaymentMethodDebitCard
	PaymentMethodCash
	PaymentMethodTransfer
)

func (p PaymentMethod) String() string {
	switch p {
	case PaymentMethodCreditCard:
		return "CreditCard"
	case PaymentMethodDebitCard:
		return "DebitCard"
	case PaymentMethodCash:
		return "Cash"
	case PaymentMethodTransfer:
		return "Transfer"
	default:
		return "unknown"
	}
}

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch s {
	case "CreditCard":
		return PaymentMethodCreditCard, nil
	case "DebitCard":
		return PaymentMethodDebitCard, nil
	case "Cash":
		return PaymentMethodCash, nil
	case "Transfer":
		return PaymentMethodTransfer, nil
	default:
		return -1, fmt.Errorf("invalid payment method: %q", s)
	}
}

func (p PaymentMethod) MarshalJSON() ([]byte, error)     { return marshalEnumJSON(p.String()) }
func (p *PaymentMethod) UnmarshalJSON(data []byte) error { return unmarshalEnumJSON(data, ParsePaymentMethod, p) }
func (p PaymentMethod) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(p.String())
}
func (p *PaymentMethod) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	return unmarshalEnumBSON(t, data, ParsePaymentMethod, p)
}

// ------------------------------------------------------------------------
// PaymentStatus
// ------------------------------------------------------------------------

type PaymentStatus int

const (
	PaymentPending PaymentStatus = iota
	PaymentCompleted
	PaymentFailed
	PaymentRefunded
)

func (p PaymentStatus) String() string {
	switch p {
	case PaymentPending:
		return "Pending"
	case PaymentCompleted:
		return "Completed"
	case PaymentFailed:
		return "Failed"
	case PaymentRefunded:
		return "Refunded"
	default:
		return "unknown"
	}
}

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch s {
	case "Pending":
		return PaymentPending, nil
	case "Completed":
		return PaymentCompleted, nil
	case "Failed":
		return PaymentFailed, nil
	case "Refunded":
		return PaymentRefunded, nil
	default:
		return -1, fmt.Errorf("invalid payment status: %q", s)
	}
}

func (p PaymentStatus) MarshalJSON() ([]byte, error)     { return marshalEnumJSON(p.String()) }
func (p *PaymentStatus) UnmarshalJSON(data []byte) error { return unmarshalEnumJSON(data, ParsePaymentStatus, p) }
func (p PaymentStatus) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(p.String())
}
func (p *PaymentStatus) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	return unmarshalEnumBSON(t, data, ParsePaymentStatus, p)
}

// ------------------------------------------------------------------------
// MaintenancePriority
// ------------------------------------------------------------------------

type MaintenancePriority int

const (
	PriorityLow MaintenancePriority = iota
	PriorityMedium
	PriorityHigh
	PriorityEmergency
)

func (p MaintenancePriority) String() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	case PriorityEmergency:
		return "Emergency"
	default:
		return "unknown"
	}
}

func ParseMaintenancePriority(s string) (MaintenancePriority, error) {
	switch s {
	case "Low":
		return PriorityLow, nil
	case "Medium":
		return PriorityMedium, nil
	case "High":
		return PriorityHigh, nil
	case "Emergency":
		return PriorityEmergency, nil
	default:
		return -1, fmt.Errorf("invalid maintenance priority: %q", s)
	}
}

func (p MaintenancePriority) MarshalJSON() ([]byte, error) { return marshalEnumJSON(p.String()) }
func (p *MaintenancePriority) UnmarshalJSON(data []byte) error {
	return unmarshalEnumJSON(data, ParseMaintenancePriority, p)
}
func (p MaintenancePriority) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(p.String())
}
func (p *MaintenancePriority) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	return unmarshalEnumBSON(t, data, ParseMaintenancePriority, p)
}

// ------------------------------------------------------------------------
// MaintenanceStatus
// ------------------------------------------------------------------------

type MaintenanceStatus int

const (
	MaintenancePending MaintenanceStatus = iota
	MaintenanceInProgress
	MaintenanceCompleted
	MaintenanceCancelled
)

func (m MaintenanceStatus) String() string {
	switch m {
	case MaintenancePending:
		return "Pending"
	case MaintenanceInProgress:
		return "InProgress"
	case MaintenanceCompleted:
		return "Completed"
	case MaintenanceCancelled:
		return "Cancelled"
	default:
		return "unknown"
	}
}

func ParseMaintenanceStatus(s string) (MaintenanceStatus, error) {
	switch s {
	case "Pending":
		return MaintenancePending, nil
	case "InProgress":
		return MaintenanceInProgress, nil
	case "Completed":
		return MaintenanceCompleted, nil
	case "Cancelled":
		return MaintenanceCancelled, nil
	default:
		return -1, fmt.Errorf("invalid maintenance status: %q", s)
	}
}

func (m MaintenanceStatus) MarshalJSON() ([]byte, error) { return marshalEnumJSON(m.String()) }
func (m *MaintenanceStatus) UnmarshalJSON(data []byte) error {
	return unmarshalEnumJSON(data, ParseMaintenanceStatus, m)
}
func (m MaintenanceStatus) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(m.String())
}
func (m *MaintenanceStatus) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	return unmarshalEnumBSON(t, data, ParseMaintenanceStatus, m)
}

// ------------------------------------------------------------------------
// NotificationType
// ------------------------------------------------------------------------

type NotificationType int

const (
	NotificationPayment NotificationType = iota
	NotificationMaintenance
	NotificationSystem
	NotificationAlert
)

func (n NotificationType) String() string {
	switch n {
	case NotificationPayment:
		return "Payment"
	case NotificationMaintenance:
		return "Maintenance"
	case NotificationSystem:
		return "System"
	case NotificationAlert:
		return "Alert"
	default:
		return "unknown"
	}
}

func ParseNotificationType(s string) (NotificationType, error) {
	switch s {
	case "Payment":
		return NotificationPayment, nil
	case "Maintenance":
		return NotificationMaintenance, nil
	case "System":
		return NotificationSystem, nil
	case "Alert":
		return NotificationAlert, nil
	default:
		return -1, fmt.Errorf("invalid notification type: %q", s)
	}
}

func (n NotificationType) MarshalJSON() ([]byte, error) { return marshalEnumJSON(n.String()) }
func (n *NotificationType) UnmarshalJSON(data []byte) error {
	return unmarshalEnumJSON(data, ParseNotificationType, n)
}
func (n NotificationType) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(n.String())
}
func (n *NotificationType) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	return unmarshalEnumBSON(t, data, ParseNotificationType, n)
}

// ------------------------------------------------------------------------
// shared marshalling helpers
// ------------------------------------------------------------------------

func marshalEnumJSON(s string) ([]byte, error) {
	return []byte(strconv.Quote(s)), nil
}

func unmarshalEnumJSON[T any](data []byte, parse func(string) (T, error), out *T) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return err
	}
	v, err := parse(s)
	if err != nil {
		return err
	}
	*out = v
	return nil
}

func unmarshalEnumBSON[T any](t bsontype.Type, data []byte, parse func(string) (T, error), out *T) error {
	var s string
	if err := bson.UnmarshalValue(t, data, &s); err != nil {
		return err
	}
	v, err := parse(s)
	if err != nil {
		return err
	}
	*out = v
	return nil
}
