package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hosterlink/hosterlink-api/internal/models"
	"github.com/hosterlink/hosterlink-api/internal/utils"
)

// In-memory stand-ins for the store layer. Filter-based queries record
// the filter they were handed and return canned results: the scoping
// behavior under test lives in the filter, not in query execution.

/* ---------- users ---------- */

type fakeUserRepo struct {
	users      map[primitive.ObjectID]*models.User
	lastFilter bson.M
	findResult []*models.User
	createErr  error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*models.User)}
}

func (f *fakeUserRepo) add(u *models.User) *models.User {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	f.users[u.ID] = u
	return u
}

func (f *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return utils.ErrEmailExists
		}
	}
	f.add(u)
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := f.users[id]
	if !ok || !u.IsActive {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email && u.IsActive {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Find(_ context.Context, filter bson.M, _, _ int64) ([]*models.User, int64, error) {
	f.lastFilter = filter
	return f.findResult, int64(len(f.findResult)), nil
}

func (f *fakeUserRepo) Update(_ context.Context, u *models.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) SetActive(_ context.Context, id primitive.ObjectID, active bool) error {
	u, ok := f.users[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	u.IsActive = active
	return nil
}

/* ---------- properties ---------- */

type fakePropertyRepo struct {
	properties map[primitive.ObjectID]*models.Property
	lastFilter bson.M
	findResult []*models.Property
}

func newFakePropertyRepo() *fakePropertyRepo {
	return &fakePropertyRepo{properties: make(map[primitive.ObjectID]*models.Property)}
}

func (f *fakePropertyRepo) add(p *models.Property) *models.Property {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	f.properties[p.ID] = p
	return p
}

func (f *fakePropertyRepo) Create(_ context.Context, p *models.Property) error {
	f.add(p)
	return nil
}

func (f *fakePropertyRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Property, error) {
	p, ok := f.properties[id]
	if !ok || !p.IsActive {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakePropertyRepo) Find(_ context.Context, filter bson.M, _, _ int64) ([]*models.Property, int64, error) {
	f.lastFilter = filter
	return f.findResult, int64(len(f.findResult)), nil
}

func (f *fakePropertyRepo) Update(_ context.Context, p *models.Property) error {
	if _, ok := f.properties[p.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	cp := *p
	f.properties[p.ID] = &cp
	return nil
}

func (f *fakePropertyRepo) SoftDelete(_ context.Context, id primitive.ObjectID) error {
	p, ok := f.properties[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	p.IsActive = false
	return nil
}

func (f *fakePropertyRepo) IDsByAdmin(_ context.Context, adminID primitive.ObjectID) ([]primitive.ObjectID, error) {
	var out []primitive.ObjectID
	for id, p := range f.properties {
		if p.AdminID == adminID {
			out = append(out, id)
		}
	}
	return out, nil
}

/* ---------- units ---------- */

type fakeUnitRepo struct {
	units     map[primitive.ObjectID]*models.Unit
	lastScope bson.M
}

func newFakeUnitRepo() *fakeUnitRepo {
	return &fakeUnitRepo{units: make(map[primitive.ObjectID]*models.Unit)}
}

func (f *fakeUnitRepo) add(u *models.Unit) *models.Unit {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	f.units[u.ID] = u
	return u
}

func (f *fakeUnitRepo) Create(_ context.Context, u *models.Unit) error {
	f.add(u)
	return nil
}

func (f *fakeUnitRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Unit, error) {
	u, ok := f.units[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUnitRepo) ListByProperty(_ context.Context, propertyID primitive.ObjectID, scope bson.M) ([]*models.Unit, error) {
	f.lastScope = scope
	var out []*models.Unit
	for _, u := range f.units {
		if u.PropertyID == propertyID {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeUnitRepo) AssignTenant(_ context.Context, id, tenantID primitive.ObjectID) error {
	u, ok := f.units[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	if u.IsOccupied {
		return utils.ErrUnitOccupied
	}
	u.TenantID = &tenantID
	u.IsOccupied = true
	return nil
}

func (f *fakeUnitRepo) RemoveTenant(_ context.Context, id primitive.ObjectID) error {
	u, ok := f.units[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	if !u.IsOccupied {
		return utils.ErrUnitVacant
	}
	u.TenantID = nil
	u.IsOccupied = false
	return nil
}

func (f *fakeUnitRepo) PropertyIDsByOwner(_ context.Context, ownerID primitive.ObjectID) ([]primitive.ObjectID, error) {
	return f.propertyIDsBy(func(u *models.Unit) bool { return u.OwnerID != nil && *u.OwnerID == ownerID }), nil
}

func (f *fakeUnitRepo) PropertyIDsByTenant(_ context.Context, tenantID primitive.ObjectID) ([]primitive.ObjectID, error) {
	return f.propertyIDsBy(func(u *models.Unit) bool { return u.TenantID != nil && *u.TenantID == tenantID }), nil
}

func (f *fakeUnitRepo) propertyIDsBy(match func(*models.Unit) bool) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]bool)
	var out []primitive.ObjectID
	for _, u := range f.units {
		if match(u) && !seen[u.PropertyID] {
			seen[u.PropertyID] = true
			out = append(out, u.PropertyID)
		}
	}
	return out
}

func (f *fakeUnitRepo) OwnershipByProperty(_ context.Context, propertyID primitive.ObjectID) ([]primitive.ObjectID, []primitive.ObjectID, error) {
	var owners, tenants []primitive.ObjectID
	for _, u := range f.units {
		if u.PropertyID != propertyID {
			continue
		}
		if u.OwnerID != nil {
			owners = append(owners, *u.OwnerID)
		}
		if u.TenantID != nil {
			tenants = append(tenants, *u.TenantID)
		}
	}
	return owners, tenants, nil
}

/* ---------- payments ---------- */

type fakePaymentRepo struct {
	payments   map[primitive.ObjectID]*models.Payment
	lastFilter bson.M
	allResult  []*models.Payment
	findResult []*models.Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[primitive.ObjectID]*models.Payment)}
}

func (f *fakePaymentRepo) add(p *models.Payment) *models.Payment {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	f.payments[p.ID] = p
	return p
}

func (f *fakePaymentRepo) Create(_ context.Context, p *models.Payment) error {
	f.add(p)
	return nil
}

func (f *fakePaymentRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Payment, error) {
	p, ok := f.payments[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

// Find pages over the seeded findResult slice the way the store would,
// so window and total behavior can be asserted through the services.
func (f *fakePaymentRepo) Find(_ context.Context, filter bson.M, page, pageSize int64) ([]*models.Payment, int64, error) {
	f.lastFilter = filter
	total := int64(len(f.findResult))
	start := (page - 1) * pageSize
	if start >= total {
		return nil, total, nil
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return f.findResult[start:end], total, nil
}

func (f *fakePaymentRepo) FindAll(_ context.Context, filter bson.M) ([]*models.Payment, error) {
	f.lastFilter = filter
	return f.allResult, nil
}

func (f *fakePaymentRepo) SetStatus(_ context.Context, id primitive.ObjectID, status models.PaymentStatus, paidDate *time.Time) error {
	p, ok := f.payments[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	p.Status = status
	p.PaidDate = paidDate
	return nil
}

/* ---------- maintenance ---------- */

type fakeMaintenanceRepo struct {
	requests   map[primitive.ObjectID]*models.MaintenanceRequest
	lastFilter bson.M
}

func newFakeMaintenanceRepo() *fakeMaintenanceRepo {
	return &fakeMaintenanceRepo{requests: make(map[primitive.ObjectID]*models.MaintenanceRequest)}
}

func (f *fakeMaintenanceRepo) add(m *models.MaintenanceRequest) *models.MaintenanceRequest {
	if m.ID.IsZero() {
		m.ID = primitive.NewObjectID()
	}
	f.requests[m.ID] = m
	return m
}

func (f *fakeMaintenanceRepo) Create(_ context.Context, m *models.MaintenanceRequest) error {
	f.add(m)
	return nil
}

func (f *fakeMaintenanceRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.MaintenanceRequest, error) {
	m, ok := f.requests[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMaintenanceRepo) Find(_ context.Context, filter bson.M, _, _ int64) ([]*models.MaintenanceRequest, int64, error) {
	f.lastFilter = filter
	return nil, 0, nil
}

func (f *fakeMaintenanceRepo) SetStatus(_ context.Context, id primitive.ObjectID, status models.MaintenanceStatus, paidDate *time.Time) error {
	m, ok := f.requests[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	m.Status = status
	m.PaidDate = paidDate
	return nil
}

func (f *fakeMaintenanceRepo) Assign(_ context.Context, id, staffID primitive.ObjectID) error {
	m, ok := f.requests[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	m.AssignedTo = &staffID
	m.Status = models.MaintenanceInProgress
	m.PaidDate = nil
	return nil
}

func (f *fakeMaintenanceRepo) SetActualCost(_ context.Context, id primitive.ObjectID, cost float64) error {
	m, ok := f.requests[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	m.ActualCost = &cost
	return nil
}

/* ---------- messages ---------- */

type fakeMessageRepo struct {
	messages   map[primitive.ObjectID]*models.Message
	lastFilter bson.M
	allResult  []*models.Message
	countN     int64
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{messages: make(map[primitive.ObjectID]*models.Message)}
}

func (f *fakeMessageRepo) add(m *models.Message) *models.Message {
	if m.ID.IsZero() {
		m.ID = primitive.NewObjectID()
	}
	f.messages[m.ID] = m
	return m
}

func (f *fakeMessageRepo) Create(_ context.Context, m *models.Message) error {
	f.add(m)
	return nil
}

func (f *fakeMessageRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Message, error) {
	m, ok := f.messages[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMessageRepo) FindAll(_ context.Context, filter bson.M, _ bson.D, _ int64) ([]*models.Message, error) {
	f.lastFilter = filter
	return f.allResult, nil
}

func (f *fakeMessageRepo) MarkRead(_ context.Context, id primitive.ObjectID) error {
	m, ok := f.messages[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	m.IsRead = true
	return nil
}

func (f *fakeMessageRepo) MarkManyRead(_ context.Context, filter bson.M) (int64, error) {
	f.lastFilter = filter
	var n int64
	for _, m := range f.messages {
		if !m.IsRead {
			m.IsRead = true
			n++
		}
	}
	return n, nil
}

func (f *fakeMessageRepo) Count(_ context.Context, filter bson.M) (int64, error) {
	f.lastFilter = filter
	return f.countN, nil
}

/* ---------- notifications ---------- */

type fakeNotificationRepo struct {
	notifications map[primitive.ObjectID]*models.Notification
	lastFilter    bson.M
	createErr     error
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{notifications: make(map[primitive.ObjectID]*models.Notification)}
}

func (f *fakeNotificationRepo) add(n *models.Notification) *models.Notification {
	if n.ID.IsZero() {
		n.ID = primitive.NewObjectID()
	}
	f.notifications[n.ID] = n
	return n
}

func (f *fakeNotificationRepo) Create(_ context.Context, n *models.Notification) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.add(n)
	return nil
}

func (f *fakeNotificationRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Notification, error) {
	n, ok := f.notifications[id]
	if !ok {
		return nil, nil
	}
	cp := *n
	return &cp, nil
}

func (f *fakeNotificationRepo) FindAll(_ context.Context, filter bson.M, _ int64) ([]*models.Notification, error) {
	f.lastFilter = filter
	var out []*models.Notification
	for _, n := range f.notifications {
		cp := *n
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeNotificationRepo) Count(_ context.Context, filter bson.M) (int64, error) {
	var n int64
	for _, item := range f.notifications {
		if typ, ok := filter["type"]; ok && item.Type != typ {
			continue
		}
		if rid, ok := filter["relatedEntityId"]; ok {
			if item.RelatedEntityID == nil || *item.RelatedEntityID != rid {
				continue
			}
		}
		if read, ok := filter["isRead"]; ok && item.IsRead != read {
			continue
		}
		if uid, ok := filter["userId"]; ok && item.UserID != uid {
			continue
		}
		n++
	}
	return n, nil
}

func (f *fakeNotificationRepo) MarkRead(_ context.Context, id primitive.ObjectID) error {
	n, ok := f.notifications[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	n.IsRead = true
	return nil
}

func (f *fakeNotificationRepo) MarkAllRead(_ context.Context, userID primitive.ObjectID) (int64, error) {
	var n int64
	for _, item := range f.notifications {
		if item.UserID == userID && !item.IsRead {
			item.IsRead = true
			n++
		}
	}
	return n, nil
}

func (f *fakeNotificationRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.notifications[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(f.notifications, id)
	return nil
}
