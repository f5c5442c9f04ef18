package notifications

import (
	"context"
	"encoding/json"
	"fmt"

	pubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"

	"github.com/netwave-iq/netwave-backend/pkg/db/models"
	"github.com/netwave-iq/netwave-backend/pkg/email"
	"github.com/netwave-iq/netwave-backend/pkg/enums"
	"github.com/netwave-iq/netwave-backend/pkg/logger"
	"github.com/netwave-iq/netwave-backend/pkg/outbox"
	"github.com/netwave-iq/netwave-backend/pkg/outbox/idempotency"
	"github.com/netwave-iq/netwave-backend/pkg/outbox/payloads"
)

const notificationConsumer = "payment-notifications"

type repository interface {
	Create(ctx context.Context, notification *models.Notification) error
}

type emailSender interface {
	Send(ctx context.Context, msg email.Message) error
	AdminAddress() string
}

// Consumer turns payment domain events into admin feed entries and
// outbound email.
type Consumer struct {
	repo         repository
	sender       emailSender
	subscription *pubsub.Subscriber
	idempotency  *idempotency.Manager
	logg         *logger.Logger
}

// NewConsumer builds a payment notification consumer.
func NewConsumer(repo repository, sender emailSender, subscription *pubsub.Subscriber, manager *idempotency.Manager, logg *logger.Logger) (*Consumer, error) {
	if repo == nil {
		return nil, fmt.Errorf("notifications repository required")
	}
	if sender == nil {
		return nil, fmt.Errorf("email sender required")
	}
	if subscription == nil {
		return nil, fmt.Errorf("domain subscription required")
	}
	if manager == nil {
		return nil, fmt.Errorf("idempotency manager required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Consumer{
		repo:         repo,
		sender:       sender,
		subscription: subscription,
		idempotency:  manager,
		logg:         logg,
	}, nil
}

// Run starts the consumer loop until the context is canceled.
func (c *Consumer) Run(ctx context.Context) error {
	return c.subscription.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		result := c.process(ctx, msg)
		if result.nack {
			msg.Nack()
			return
		}
		msg.Ack()
	})
}

type processResult struct {
	ack  bool
	nack bool
}

func (c *Consumer) process(ctx context.Context, msg *pubsub.Message) processResult {
	rawType := msg.Attributes["event_type"]
	logCtx := c.logg.WithFields(ctx, map[string]any{
		"message_id": msg.ID,
		"event_type": rawType,
	})

	eventType, err := enums.ParseOutboxEventType(rawType)
	if err != nil {
		c.logg.Info(logCtx, "skipping unrecognized event")
		return processResult{ack: true}
	}

	var envelope outbox.PayloadEnvelope
	if err := json.Unmarshal(msg.Data, &envelope); err != nil {
		c.logg.Error(logCtx, "failed to decode envelope", err)
		return processResult{ack: true}
	}

	eventID, err := uuid.Parse(envelope.EventID)
	if err != nil {
		c.logg.Error(logCtx, "invalid event id", err)
		return processResult{ack: true}
	}

	already, err := c.idempotency.CheckAndMarkProcessed(ctx, notificationConsumer, eventID)
	if err != nil {
		c.logg.Error(logCtx, "idempotency check failed", err)
		return processResult{nack: true}
	}
	if already {
		c.logg.Info(logCtx, "event already processed")
		return processResult{ack: true}
	}

	if err := c.handle(ctx, eventType, envelope.Data, logCtx); err != nil {
		c.logg.Error(logCtx, "notification handling failed", err)
		_ = c.idempotency.Delete(ctx, notificationConsumer, eventID)
		return processResult{nack: true}
	}
	return processResult{ack: true}
}

func (c *Consumer) handle(ctx context.Context, eventType enums.OutboxEventType, data json.RawMessage, logCtx context.Context) error {
	switch eventType {
	case enums.EventBookingConfirmed:
		var payload payloads.BookingConfirmedEvent
		if err := json.Unmarshal(data, &payload); err != nil {
			return fmt.Errorf("parse booking confirmed payload: %w", err)
		}
		return c.handleBookingConfirmed(ctx, payload, logCtx)
	case enums.EventBookingCanceled:
		var payload payloads.BookingCanceledEvent
		if err := json.Unmarshal(data, &payload); err != nil {
			return fmt.Errorf("parse booking canceled payload: %w", err)
		}
		return c.handleBookingCanceled(ctx, payload, logCtx)
	case enums.EventPurchaseRecorded:
		var payload payloads.PurchaseRecordedEvent
		if err := json.Unmarshal(data, &payload); err != nil {
			return fmt.Errorf("parse purchase payload: %w", err)
		}
		return c.handlePurchaseRecorded(ctx, payload, logCtx)
	default:
		c.logg.Info(logCtx, "event type not handled")
		return nil
	}
}

func (c *Consumer) handleBookingConfirmed(ctx context.Context, payload payloads.BookingConfirmedEvent, logCtx context.Context) error {
	if payload.BookingID == uuid.Nil {
		return fmt.Errorf("booking id missing")
	}

	link := fmt.Sprintf("/admin/bookings/%s", payload.BookingID)
	notification := &models.Notification{
		Type:    enums.NotificationTypeBookingConfirmed,
		Title:   "حجز جديد مؤكد",
		Message: fmt.Sprintf("%s أكد حجز %s بمبلغ %s د.ع", payload.CustomerName, payload.ServiceName, payload.Amount.StringFixed(0)),
		Link:    stringPtr(link),
	}
	if err := c.repo.Create(ctx, notification); err != nil {
		return err
	}

	if payload.CustomerEmail != "" {
		subject, body := bookingConfirmedEmail(payload)
		if err := c.sender.Send(ctx, email.Message{To: payload.CustomerEmail, Subject: subject, Body: body}); err != nil {
			return err
		}
	}
	if admin := c.sender.AdminAddress(); admin != "" {
		subject, body := bookingAdminAlertEmail(payload)
		if err := c.sender.Send(ctx, email.Message{To: admin, Subject: subject, Body: body}); err != nil {
			return err
		}
	}

	c.logg.Info(logCtx, "booking confirmation dispatched")
	return nil
}

func (c *Consumer) handleBookingCanceled(ctx context.Context, payload payloads.BookingCanceledEvent, logCtx context.Context) error {
	if payload.BookingID == uuid.Nil {
		return fmt.Errorf("booking id missing")
	}

	link := fmt.Sprintf("/admin/bookings/%s", payload.BookingID)
	message := fmt.Sprintf("فشل دفع حجز %s للعميل %s", payload.ServiceName, payload.CustomerName)
	if payload.Reason != "" {
		message = fmt.Sprintf("%s: %s", message, payload.Reason)
	}
	notification := &models.Notification{
		Type:    enums.NotificationTypeBookingCanceled,
		Title:   "حجز ملغى",
		Message: message,
		Link:    stringPtr(link),
	}
	if err := c.repo.Create(ctx, notification); err != nil {
		return err
	}

	c.logg.Info(logCtx, "booking cancellation recorded")
	return nil
}

func (c *Consumer) handlePurchaseRecorded(ctx context.Context, payload payloads.PurchaseRecordedEvent, logCtx context.Context) error {
	if payload.PurchaseID == uuid.Nil {
		return fmt.Errorf("purchase id missing")
	}

	link := fmt.Sprintf("/admin/purchases/%s", payload.PurchaseID)
	notification := &models.Notification{
		Type:    enums.NotificationTypePurchaseRecorded,
		Title:   "عملية شراء جديدة",
		Message: fmt.Sprintf("تم شراء الملف %s بمبلغ %s د.ع", payload.FileTitle, payload.Amount.StringFixed(0)),
		Link:    stringPtr(link),
	}
	if err := c.repo.Create(ctx, notification); err != nil {
		return err
	}

	if admin := c.sender.AdminAddress(); admin != "" {
		subject, body := purchaseAdminAlertEmail(payload)
		if err := c.sender.Send(ctx, email.Message{To: admin, Subject: subject, Body: body}); err != nil {
			return err
		}
	}

	c.logg.Info(logCtx, "purchase notification dispatched")
	return nil
}

func stringPtr(value string) *string {
	return &value
}
