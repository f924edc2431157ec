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

// MessageService interface
type MessageService interface {
	Send(ctx context.Context, actor policy.Actor, req dtos.SendMessageRequest) (*models.Message, error)
	Conversation(ctx context.Context, actor policy.Actor, withUserID, propertyID string) ([]*models.Message, error)
	Inbox(ctx context.Context, actor policy.Actor) ([]*models.Message, error)
	MarkRead(ctx context.Context, actor policy.Actor, id string) error
	MarkConversationRead(ctx context.Context, actor policy.Actor, withUserID string) (int64, error)
	UnreadCount(ctx context.Context, actor policy.Actor) (int64, error)
}

type messageService struct {
	messages repositories.MessageRepository
	users    repositories.UserRepository
}

func NewMessageService(messages repositories.MessageRepository, users repositories.UserRepository) MessageService {
	return &messageService{messages: messages, users: users}
}

func (s *messageService) Send(ctx context.Context, actor policy.Actor, req dtos.SendMessageRequest) (*models.Message, error) {
	d := policy.Evaluate(actor, policy.ResourceMessages, policy.OpCreate, policy.Ownership{})
	if !d.Allowed() {
		return nil, errForbidden()
	}
	receiverID, err := parseID(req.ReceiverID)
	if err != nil {
		return nil, err
	}
	if receiverID == actor.ID {
		return nil, utils.NewValidation("cannot message yourself", nil)
	}
	receiver, err := s.users.GetByID(ctx, receiverID)
	if err != nil {
		return nil, utils.NewInternal(err)
	}
	if receiver == nil {
		return nil, utils.NewValidation("receiver account not found", nil)
	}

	m := &models.Message{
		SenderID:    actor.ID, // never taken from the payload
		ReceiverID:  receiverID,
		Content:     strings.TrimSpace(req.Content),
		SentAt:      time.Now().UTC(),
		Attachments: req.Attachments,
	}
	if req.PropertyID != "" {
		propertyID, err := parseID(req.PropertyID)
		if err != nil {
			return nil, err
		}
		m.PropertyID = propertyID
	}
	if err := s.messages.Create(ctx, m); err != nil {
		return nil, utils.NewInternal(err)
	}
	return m, nil
}

// Conversation returns the two-party thread, oldest first, optionally
// narrowed to one property. The pair filter pins the actor to one side
// of every returned message, so it can never widen access.
func (s *messageService) Conversation(ctx context.Context, actor policy.Actor, withUserID, propertyID string) ([]*models.Message, error) {
	otherID, err := parseID(withUserID)
	if err != nil {
		return nil, err
	}
	d := policy.Evaluate(actor, policy.ResourceMessages, policy.OpList, policy.Ownership{})
	if !d.Allowed() {
		return nil, errForbidden()
	}
	filter := bson.M{"$or": []bson.M{
		{"senderId": actor.ID, "receiverId": otherID},
		{"senderId": otherID, "receiverId": actor.ID},
	}}
	if propertyID != "" {
		pid, err := parseID(propertyID)
		if err != nil {
			return nil, err
		}
		filter["propertyId"] = pid
	}
	items, err := s.messages.FindAll(ctx, filter,
		bson.D{{Key: "sentAt", Value: 1}}, repositories.ConversationHistoryLimit)
	if err != nil {
		return nil, utils.NewInternal(err)
	}
	return items, nil
}

// Inbox lists every message the actor participates in, newest first.
func (s *messageService) Inbox(ctx context.Context, actor policy.Actor) ([]*models.Message, error) {
	d := policy.Evaluate(actor, policy.ResourceMessages, policy.OpList, policy.Ownership{})
	if !d.Allowed() {
		return nil, errForbidden()
	}
	filter := d.Filter
	if filter == nil {
		filter = bson.M{} // Admin: unscoped
	}
	items, err := s.messages.FindAll(ctx, filter,
		bson.D{{Key: "sentAt", Value: -1}}, repositories.ConversationHistoryLimit)
	if err != nil {
		return nil, utils.NewInternal(err)
	}
	return items, nil
}

// MarkRead flips a single message. Only the receiver may mark it.
func (s *messageService) MarkRead(ctx context.Context, actor policy.Actor, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	m, err := s.messages.GetByID(ctx, oid)
	if err != nil {
		return utils.NewInternal(err)
	}
	if m == nil {
		return errHiddenRecord("message")
	}
	d := policy.Evaluate(actor, policy.ResourceMessages, policy.OpUpdate,
		policy.Ownership{SenderID: m.SenderID, ReceiverID: m.ReceiverID})
	if !d.Allowed() {
		return errForbidden()
	}
	if err := s.messages.MarkRead(ctx, oid); err != nil {
		return mapMiss(err, "message")
	}
	return nil
}

// MarkConversationRead flips everything the other party sent the actor.
func (s *messageService) MarkConversationRead(ctx context.Context, actor policy.Actor, withUserID string) (int64, error) {
	otherID, err := parseID(withUserID)
	if err != nil {
		return 0, err
	}
	d := policy.Evaluate(actor, policy.ResourceMessages, policy.OpUpdate,
		policy.Ownership{ReceiverID: actor.ID})
	if !d.Allowed() {
		return 0, errForbidden()
	}
	return s.markMany(ctx, bson.M{
		"senderId":   otherID,
		"receiverId": actor.ID,
		"isRead":     false,
	})
}

func (s *messageService) UnreadCount(ctx context.Context, actor policy.Actor) (int64, error) {
	n, err := s.messages.Count(ctx, bson.M{"receiverId": actor.ID, "isRead": false})
	if err != nil {
		return 0, utils.NewInternal(err)
	}
	return n, nil
}

func (s *messageService) markMany(ctx context.Context, filter bson.M) (int64, error) {
	n, err := s.messages.MarkManyRead(ctx, filter)
	if err != nil {
		return 0, utils.NewInternal(err)
	}
	return n, nil
}
