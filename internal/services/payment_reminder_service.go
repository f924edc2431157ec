package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/hosterlink/hosterlink-api/internal/models"
	"github.com/hosterlink/hosterlink-api/internal/repositories"
	"github.com/hosterlink/hosterlink-api/internal/utils"
)

// PaymentReminderService sweeps overdue pending payments each night and
// drops a notification on the payer.
type PaymentReminderService interface {
	SweepOverdue(ctx context.Context) error
}

type paymentReminderService struct {
	payments      repositories.PaymentRepository
	notifications repositories.NotificationRepository
}

func NewPaymentReminderService(
	payments repositories.PaymentRepository,
	notifications repositories.NotificationRepository,
) PaymentReminderService {
	return &paymentReminderService{payments: payments, notifications: notifications}
}

// SweepOverdue notifies on every pending payment whose due date has
// passed. A payment that already carries an unread overdue reminder is
// skipped, so nightly passes do not pile up duplicates. A failure on one
// payment does not stop the sweep; the first error is reported after the
// pass completes.
func (s *paymentReminderService) SweepOverdue(ctx context.Context) error {
	logger := utils.Logger
	now := time.Now().UTC()

	overdue, err := s.payments.FindAll(ctx, bson.M{
		"status":  models.PaymentPending,
		"dueDate": bson.M{"$lt": now},
	})
	if err != nil {
		logger.WithError(err).Error("Failed to query overdue payments")
		return err
	}
	if len(overdue) == 0 {
		logger.Info("Overdue payment sweep found nothing to do")
		return nil
	}

	var firstErr error
	notified := 0
	for _, p := range overdue {
		paymentID := p.ID
		pending, err := s.notifications.Count(ctx, bson.M{
			"type":            models.NotificationPayment,
			"relatedEntityId": paymentID,
			"isRead":          false,
		})
		if err != nil {
			logger.WithError(err).WithField("paymentId", p.ID.Hex()).
				Error("Failed to check for an existing overdue reminder")
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if pending > 0 {
			continue
		}
		n := &models.Notification{
			UserID: p.UserID,
			Title:  "Payment overdue",
			Message: fmt.Sprintf("Your %s payment of %.2f was due on %s.",
				p.PaymentType, p.Amount, p.DueDate.Format("2006-01-02")),
			Type:            models.NotificationPayment,
			RelatedEntity:   "payment",
			RelatedEntityID: &paymentID,
			CreatedAt:       now,
		}
		if err := s.notifications.Create(ctx, n); err != nil {
			logger.WithError(err).WithField("paymentId", p.ID.Hex()).
				Error("Failed to create overdue payment notification")
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		notified++
	}

	logger.WithField("notified", notified).Info("Overdue payment sweep completed")
	return firstErr
}
