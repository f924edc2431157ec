// Package policy centralizes every authorization and data-scoping decision.
// Services call Evaluate instead of performing ad-hoc permission checks:
// one rule table per resource, keyed by role and operation, replaces the
// role/ownership branching that would otherwise repeat in every gateway.
package policy

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hosterlink/hosterlink-api/internal/models"
)

// Resource identifies an entity family.
type Resource int

const (
	ResourceUsers Resource = iota
	ResourceProperties
	ResourceUnits
	ResourcePayments
	ResourceMaintenance
	ResourceMessages
	ResourceNotifications
)

// Operation is the requested action. ManageStatus covers the privileged
// mutations (payment status, maintenance status/assignment/cost, tenant
// assignment) that stay with Admin and the enclosing property's owner
// regardless of read visibility.
type Operation int

const (
	OpList Operation = iota
	OpRead
	OpCreate
	OpUpdate
	OpDelete
	OpManageStatus
)

// Effect is the outcome of an evaluation.
type Effect int

const (
	EffectDeny Effect = iota
	EffectAllow
	EffectAllowWithFilter
)

// Decision carries the effect and, for EffectAllowWithFilter, the
// store predicate limiting the query to the actor's visible subset.
type Decision struct {
	Effect Effect
	Filter bson.M
}

func (d Decision) Allowed() bool {
	return d.Effect != EffectDeny
}

// Ownership carries the ownership attributes of the target resource (for
// Read/Update/Delete/ManageStatus) or the actor's pre-resolved scope ids
// (for List). Gateways populate only the fields the resource has; absent
// fields simply never match.
type Ownership struct {
	// Attributes of the target record.
	PropertyAdminID primitive.ObjectID   // adminId of the (enclosing) property
	UnitOwnerID     *primitive.ObjectID  // ownerId of the target unit
	UnitTenantID    *primitive.ObjectID  // tenantId of the target unit
	UnitOwnerIDs    []primitive.ObjectID // owners of units under the target property
	UnitTenantIDs   []primitive.ObjectID // tenants of units under the target property
	RecordUserID    primitive.ObjectID   // direct userId (user/payment/maintenance/notification)
	SenderID        primitive.ObjectID   // message sender
	ReceiverID      primitive.ObjectID   // message receiver

	// Actor scope, resolved server-side from the validated identity.
	ManagedPropertyIDs   []primitive.ObjectID // properties where actor is adminId
	OwnedUnitPropertyIDs []primitive.ObjectID // properties containing actor-owned units
	TenantPropertyIDs    []primitive.ObjectID // properties containing actor-tenanted units
}

type ruleFn func(a Actor, own Ownership) Decision

// Evaluate maps (actor, resource, operation, ownership) to a decision.
// Admin is unrestricted on every resource, which also guarantees role
// monotonicity: no rule below can make Admin stricter than another role.
// A missing table entry denies.
func Evaluate(a Actor, res Resource, op Operation, own Ownership) Decision {
	if a.IsAdmin() {
		return allow()
	}
	byOp, ok := rules[res]
	if !ok {
		return deny()
	}
	byRole, ok := byOp[op]
	if !ok {
		return deny()
	}
	fn, ok := byRole[a.Role]
	if !ok {
		return deny()
	}
	return fn(a, own)
}

// The rule table. Owner rules check the permissive paths first and fall
// through to the tenant-level path, so an Owner who is also a unit's
// tenant gets the most permissive applicable access.
var rules = map[Resource]map[Operation]map[models.Role]ruleFn{
	ResourceUsers: {
		OpList: {
			models.RoleOwner:  selfUserFilter,
			models.RoleTenant: selfUserFilter,
		},
		OpRead: {
			models.RoleOwner:  selfUserOnly,
			models.RoleTenant: selfUserOnly,
		},
		OpUpdate: {
			models.RoleOwner:  selfUserOnly,
			models.RoleTenant: selfUserOnly,
		},
	},
	ResourceProperties: {
		OpList: {
			models.RoleOwner: func(a Actor, own Ownership) Decision {
				return filtered(orFilter(
					bson.M{"adminId": a.ID},
					idsFilter("_id", own.OwnedUnitPropertyIDs),
				))
			},
			models.RoleTenant: func(a Actor, own Ownership) Decision {
				return filtered(idsFilter("_id", own.TenantPropertyIDs))
			},
		},
		OpRead: {
			models.RoleOwner: func(a Actor, own Ownership) Decision {
				return allowIf(own.PropertyAdminID == a.ID ||
					contains(own.UnitOwnerIDs, a.ID) ||
					contains(own.UnitTenantIDs, a.ID))
			},
			models.RoleTenant: func(a Actor, own Ownership) Decision {
				return allowIf(contains(own.UnitTenantIDs, a.ID))
			},
		},
		OpCreate: {
			models.RoleOwner: allowAlways, // adminId is force-assigned to the actor
		},
		OpUpdate: {
			models.RoleOwner: propertyAdminOnly,
		},
		OpDelete: {
			models.RoleOwner: propertyAdminOnly,
		},
	},
	ResourceUnits: {
		OpList: {
			models.RoleOwner: func(a Actor, own Ownership) Decision {
				if own.PropertyAdminID == a.ID {
					return allow()
				}
				return filtered(orFilter(
					bson.M{"ownerId": a.ID},
					bson.M{"tenantId": a.ID},
				))
			},
			models.RoleTenant: func(a Actor, own Ownership) Decision {
				return filtered(bson.M{"tenantId": a.ID})
			},
		},
		OpRead: {
			models.RoleOwner: func(a Actor, own Ownership) Decision {
				return allowIf(own.PropertyAdminID == a.ID ||
					ptrEq(own.UnitOwnerID, a.ID) ||
					ptrEq(own.UnitTenantID, a.ID))
			},
			models.RoleTenant: func(a Actor, own Ownership) Decision {
				return allowIf(ptrEq(own.UnitTenantID, a.ID))
			},
		},
		OpCreate: {
			models.RoleOwner: propertyAdminOnly,
		},
		OpUpdate: {
			models.RoleOwner: propertyAdminOnly,
		},
		OpDelete: {
			models.RoleOwner: propertyAdminOnly,
		},
		OpManageStatus: {
			models.RoleOwner: propertyAdminOnly,
		},
	},
	ResourcePayments: {
		OpList: {
			models.RoleOwner:  ownRecordsOrManagedProperties,
			models.RoleTenant: ownRecordsFilter,
		},
		OpRead: {
			models.RoleOwner:  ownRecordOrPropertyAdmin,
			models.RoleTenant: ownRecordOnly,
		},
		OpCreate: {
			models.RoleOwner:  allowAlways, // userId is force-assigned to the actor
			models.RoleTenant: allowAlways,
		},
		OpManageStatus: {
			models.RoleOwner: propertyAdminOnly,
		},
	},
	ResourceMaintenance: {
		OpList: {
			models.RoleOwner:  ownRecordsOrManagedProperties,
			models.RoleTenant: ownRecordsFilter,
		},
		OpRead: {
			models.RoleOwner:  ownRecordOrPropertyAdmin,
			models.RoleTenant: ownRecordOnly,
		},
		OpCreate: {
			models.RoleOwner:  allowAlways, // userId is force-assigned to the actor
			models.RoleTenant: allowAlways,
		},
		OpManageStatus: {
			models.RoleOwner: propertyAdminOnly,
		},
	},
	ResourceMessages: {
		OpList: {
			models.RoleOwner:  participantFilter,
			models.RoleTenant: participantFilter,
		},
		OpRead: {
			models.RoleOwner:  participantOnly,
			models.RoleTenant: participantOnly,
		},
		OpCreate: {
			models.RoleOwner:  allowAlways, // senderId is force-assigned to the actor
			models.RoleTenant: allowAlways,
		},
		OpUpdate: { // mark-read: the receiver only
			models.RoleOwner:  receiverOnly,
			models.RoleTenant: receiverOnly,
		},
	},
	ResourceNotifications: {
		OpList: {
			models.RoleOwner:  ownRecordsFilter,
			models.RoleTenant: ownRecordsFilter,
		},
		OpRead: {
			models.RoleOwner:  ownRecordOnly,
			models.RoleTenant: ownRecordOnly,
		},
		OpUpdate: {
			models.RoleOwner:  ownRecordOnly,
			models.RoleTenant: ownRecordOnly,
		},
		OpDelete: {
			models.RoleOwner:  ownRecordOnly,
			models.RoleTenant: ownRecordOnly,
		},
		// OpCreate intentionally absent: Admin only.
	},
}

// ------------------------------------------------------------------------
// shared rules
// ------------------------------------------------------------------------

func allowAlways(Actor, Ownership) Decision {
	return allow()
}

func selfUserFilter(a Actor, _ Ownership) Decision {
	return filtered(bson.M{"_id": a.ID})
}

func selfUserOnly(a Actor, own Ownership) Decision {
	return allowIf(own.RecordUserID == a.ID)
}

func propertyAdminOnly(a Actor, own Ownership) Decision {
	return allowIf(own.PropertyAdminID == a.ID)
}

func ownRecordOnly(a Actor, own Ownership) Decision {
	return allowIf(own.RecordUserID == a.ID)
}

func ownRecordOrPropertyAdmin(a Actor, own Ownership) Decision {
	return allowIf(own.PropertyAdminID == a.ID || own.RecordUserID == a.ID)
}

func ownRecordsFilter(a Actor, _ Ownership) Decision {
	return filtered(bson.M{"userId": a.ID})
}

func ownRecordsOrManagedProperties(a Actor, own Ownership) Decision {
	return filtered(orFilter(
		bson.M{"userId": a.ID},
		idsFilter("propertyId", own.ManagedPropertyIDs),
	))
}

func participantFilter(a Actor, _ Ownership) Decision {
	return filtered(orFilter(
		bson.M{"senderId": a.ID},
		bson.M{"receiverId": a.ID},
	))
}

func participantOnly(a Actor, own Ownership) Decision {
	return allowIf(own.SenderID == a.ID || own.ReceiverID == a.ID)
}

func receiverOnly(a Actor, own Ownership) Decision {
	return allowIf(own.ReceiverID == a.ID)
}

// ------------------------------------------------------------------------
// decision helpers
// ------------------------------------------------------------------------

func allow() Decision {
	return Decision{Effect: EffectAllow}
}

func deny() Decision {
	return Decision{Effect: EffectDeny}
}

func filtered(f bson.M) Decision {
	return Decision{Effect: EffectAllowWithFilter, Filter: f}
}

func allowIf(cond bool) Decision {
	if cond {
		return allow()
	}
	return deny()
}

// orFilter drops nil branches; a single survivor is returned bare. With no
// survivors the filter matches nothing.
func orFilter(branches ...bson.M) bson.M {
	var live []bson.M
	for _, b := range branches {
		if b != nil {
			live = append(live, b)
		}
	}
	switch len(live) {
	case 0:
		return bson.M{"_id": primitive.NilObjectID} // matches no document
	case 1:
		return live[0]
	default:
		return bson.M{"$or": live}
	}
}

// idsFilter returns nil when the id set is empty so orFilter can drop it.
func idsFilter(field string, ids []primitive.ObjectID) bson.M {
	if len(ids) == 0 {
		return nil
	}
	return bson.M{field: bson.M{"$in": ids}}
}

func contains(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func ptrEq(p *primitive.ObjectID, id primitive.ObjectID) bool {
	return p != nil && *p == id
}
