package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-silpa/internal/events"
	notificationerrors "go-silpa/internal/notification/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Service interface {
	RecordDecision(ctx context.Context, event events.PermitDecidedEvent) error
	GetAll(ctx context.Context, studentID string) ([]NotificationResponse, error)
	MarkRead(ctx context.Context, studentID, id string) (NotificationResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) RecordDecision(ctx context.Context, event events.PermitDecidedEvent) error {
	studentID, err := uuid.Parse(event.StudentID)
	if err != nil {
		return notificationerrors.ErrInvalidStudentID
	}
	permitID, err := uuid.Parse(event.PermitID)
	if err != nil {
		return fmt.Errorf("invalid permit id in event: %w", err)
	}

	title, body := decisionMessage(event)

	n := &Notification{
		ID:        uuid.New(),
		StudentID: studentID,
		PermitID:  permitID,
		Status:    event.Status,
		Title:     title,
		Body:      body,
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}

	s.logger.Info("decision notification recorded",
		zap.String("permit_id", event.PermitID),
		zap.String("student_id", event.StudentID),
		zap.String("status", event.Status),
	)
	return nil
}

func (s *service) GetAll(ctx context.Context, studentID string) ([]NotificationResponse, error) {
	if _, err := uuid.Parse(studentID); err != nil {
		return nil, notificationerrors.ErrInvalidStudentID
	}

	rows, err := s.repo.FindAllByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	resp := make([]NotificationResponse, len(rows))
	for i, n := range rows {
		resp[i] = mapToResponse(n)
	}
	return resp, nil
}

func (s *service) MarkRead(ctx context.Context, studentID, id string) (NotificationResponse, error) {
	n, err := s.repo.FindByIDAndStudent(ctx, studentID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotificationResponse{}, notificationerrors.ErrNotificationNotFound
		}
		return NotificationResponse{}, err
	}

	if n.ReadAt == nil {
		now := time.Now().UTC()
		n.ReadAt = &now
		if err := s.repo.Update(ctx, n); err != nil {
			return NotificationResponse{}, err
		}
	}

	return mapToResponse(*n), nil
}

func decisionMessage(event events.PermitDecidedEvent) (string, string) {
	switch event.Status {
	case "APPROVED":
		return "Pengajuan izin disetujui",
			fmt.Sprintf("Pengajuan izin %s Anda telah disetujui.", event.Reference)
	case "REJECTED":
		return "Pengajuan izin ditolak",
			fmt.Sprintf("Pengajuan izin %s Anda ditolak. %s", event.Reference, event.Note)
	case "NEEDS_REVISION":
		return "Pengajuan izin perlu revisi",
			fmt.Sprintf("Pengajuan izin %s Anda perlu diperbaiki. %s", event.Reference, event.Note)
	default:
		return "Status pengajuan izin berubah",
			fmt.Sprintf("Status pengajuan izin %s Anda kini %s.", event.Reference, event.Status)
	}
}

func mapToResponse(n Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:        n.ID.String(),
		PermitID:  n.PermitID.String(),
		Status:    n.Status,
		Title:     n.Title,
		Body:      n.Body,
		Read:      n.ReadAt != nil,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
	if n.ReadAt != nil {
		v := n.ReadAt.Format(time.RFC3339)
		resp.ReadAt = &v
	}
	return resp
}
