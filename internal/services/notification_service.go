package services

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/hosterlink/hosterlink-api/internal/dtos"
	"github.com/hosterlink/hosterlink-api/internal/models"
	"github.com/hosterlink/hosterlink-api/internal/policy"
	"github.com/hosterlink/hosterlink-api/internal/repositories"
	"github.com/hosterlink/hosterlink-api/internal/utils"
)

// NotificationService interface
type NotificationService interface {
	Create(ctx context.Context, actor policy.Actor, req dtos.CreateNotificationRequest) (*models.Notification, error)
	List(ctx context.Context, actor policy.Actor, unreadOnly bool) ([]*models.Notification, error)
	MarkRead(ctx context.Context, actor policy.Actor, id string) error
	MarkAllRead(ctx context.Context, actor policy.Actor) (int64, error)
	Delete(ctx context.Context, actor policy.Actor, id string) error
}

type notificationService struct {
	notifications repositories.NotificationRepository
}

func NewNotificationService(notifications repositories.NotificationRepository) NotificationService {
	return &notificationService{notifications: notifications}
}

// Create is Admin-only: the rule table has no OpCreate entry for this
// resource, so every non-admin role is denied.
func (s *notificationService) Create(ctx context.Context, actor policy.Actor, req dtos.CreateNotificationRequest) (*models.Notification, error) {
	d := policy.Evaluate(actor, policy.ResourceNotifications, policy.OpCreate, policy.Ownership{})
	if !d.Allowed() {
		return nil, errForbidden()
	}
	userID, err := parseID(req.UserID)
	if err != nil {
		return nil, err
	}
	kind, err := models.ParseNotificationType(req.Type)
	if err != nil {
		return nil, utils.NewValidation("invalid notification type", err)
	}

	n := &models.Notification{
		UserID:        userID,
		Title:         strings.TrimSpace(req.Title),
		Message:       strings.TrimSpace(req.Message),
		Type:          kind,
		RelatedEntity: req.RelatedEntity,
		CreatedAt:     time.Now().UTC(),
	}
	if req.RelatedEntityID != "" {
		relatedID, err := parseID(req.RelatedEntityID)
		if err != nil {
			return nil, err
		}
		n.RelatedEntityID = &relatedID
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		return nil, utils.NewInternal(err)
	}
	return n, nil
}

func (s *notificationService) List(ctx context.Context, actor policy.Actor, unreadOnly bool) ([]*models.Notification, error) {
	d := policy.Evaluate(actor, policy.ResourceNotifications, policy.OpList, policy.Ownership{})
	if !d.Allowed() {
		return nil, errForbidden()
	}
	filter := bson.M{"userId": actor.ID}
	limit := int64(repositories.NotificationFeedLimit)
	if unreadOnly {
		filter["isRead"] = false
		limit = repositories.NotificationUnreadLimit
	}
	items, err := s.notifications.FindAll(ctx, filter, limit)
	if err != nil {
		return nil, utils.NewInternal(err)
	}
	return items, nil
}

func (s *notificationService) MarkRead(ctx context.Context, actor policy.Actor, id string) error {
	n, err := s.authorize(ctx, actor, id, policy.OpUpdate)
	if err != nil {
		return err
	}
	if err := s.notifications.MarkRead(ctx, n.ID); err != nil {
		return mapMiss(err, "notification")
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, actor policy.Actor) (int64, error) {
	n, err := s.notifications.MarkAllRead(ctx, actor.ID)
	if err != nil {
		return 0, utils.NewInternal(err)
	}
	return n, nil
}

func (s *notificationService) Delete(ctx context.Context, actor policy.Actor, id string) error {
	n, err := s.authorize(ctx, actor, id, policy.OpDelete)
	if err != nil {
		return err
	}
	if err := s.notifications.Delete(ctx, n.ID); err != nil {
		return mapMiss(err, "notification")
	}
	return nil
}

func (s *notificationService) authorize(ctx context.Context, actor policy.Actor, id string, op policy.Operation) (*models.Notification, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	n, err := s.notifications.GetByID(ctx, oid)
	if err != nil {
		return nil, utils.NewInternal(err)
	}
	if n == nil {
		return nil, errHiddenRecord("notification")
	}
	d := policy.Evaluate(actor, policy.ResourceNotifications, op, policy.Ownership{RecordUserID: n.UserID})
	if !d.Allowed() {
		return nil, errForbidden()
	}
	return n, nil
}
