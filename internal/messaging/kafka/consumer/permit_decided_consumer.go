package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"go-silpa/internal/events"
	"go-silpa/internal/notification"

	"github.com/jackc/pgx/v5/pgconn"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumePermitWorkflow membaca event workflow izin dan menulis notifikasi
// untuk setiap keputusan admin. Event selain permit.decided di-commit tanpa
// diproses.
func ConsumePermitWorkflow(
	ctx context.Context,
	reader *kafkago.Reader,
	notificationService notification.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.permit_workflow")
	log.Info("permit workflow consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("permit workflow consumer stopped")
				return
			}
			log.Error("fetch permit workflow message failed", zap.Error(err))
			continue
		}

		if eventType(msg) != events.EventTypePermitDecided {
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		var event events.PermitDecidedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode permit_decided event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := notificationService.RecordDecision(ctx, event); err != nil {
			if isDuplicateNotification(err) {
				log.Warn("notification already recorded for event, skipping",
					zap.String("permit_id", event.PermitID),
					zap.String("status", event.Status),
				)
				_ = reader.CommitMessages(ctx, msg)
				continue
			}

			log.Error("record decision notification failed",
				zap.String("permit_id", event.PermitID),
				zap.String("student_id", event.StudentID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit permit workflow message failed", zap.Error(err))
			continue
		}

		log.Info("notification recorded from permit_decided event",
			zap.String("permit_id", event.PermitID),
			zap.String("status", event.Status),
		)
	}
}

func eventType(msg kafkago.Message) string {
	for _, h := range msg.Headers {
		if h.Key == "event_type" {
			return string(h.Value)
		}
	}
	return ""
}

func isDuplicateNotification(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == "uq_notifications_permit_status"
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_notifications_permit_status")
}
