package notification

import (
	"context"
	"testing"
	"time"

	"go-silpa/internal/events"
	notificationerrors "go-silpa/internal/notification/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeNotificationRepo struct {
	createFn             func(ctx context.Context, n *Notification) error
	findAllByStudentFn   func(ctx context.Context, studentID string) ([]Notification, error)
	findByIDAndStudentFn func(ctx context.Context, studentID, id string) (*Notification, error)
	updateFn             func(ctx context.Context, n *Notification) error
}

func (f *fakeNotificationRepo) Create(ctx context.Context, n *Notification) error {
	if f.createFn != nil {
		return f.createFn(ctx, n)
	}
	return nil
}

func (f *fakeNotificationRepo) FindAllByStudent(ctx context.Context, studentID string) ([]Notification, error) {
	if f.findAllByStudentFn != nil {
		return f.findAllByStudentFn(ctx, studentID)
	}
	return nil, nil
}

func (f *fakeNotificationRepo) FindByIDAndStudent(ctx context.Context, studentID, id string) (*Notification, error) {
	if f.findByIDAndStudentFn != nil {
		return f.findByIDAndStudentFn(ctx, studentID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeNotificationRepo) Update(ctx context.Context, n *Notification) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, n)
	}
	return nil
}

func decidedEvent(status string) events.PermitDecidedEvent {
	return events.PermitDecidedEvent{
		EventType:  events.EventTypePermitDecided,
		PermitID:   uuid.NewString(),
		StudentID:  uuid.NewString(),
		Reference:  "SILPA/2026/0012",
		Status:     status,
		Note:       "Lampiran kurang jelas",
		OccurredAt: time.Now().UTC(),
	}
}

func TestRecordDecision_Approved(t *testing.T) {
	var saved *Notification
	repo := &fakeNotificationRepo{
		createFn: func(ctx context.Context, n *Notification) error {
			saved = n
			return nil
		},
	}
	svc := NewService(repo)

	event := decidedEvent("APPROVED")
	err := svc.RecordDecision(context.Background(), event)

	assert.NoError(t, err)
	assert.NotNil(t, saved)
	assert.Equal(t, event.StudentID, saved.StudentID.String())
	assert.Equal(t, event.PermitID, saved.PermitID.String())
	assert.Equal(t, "APPROVED", saved.Status)
	assert.Equal(t, "Pengajuan izin disetujui", saved.Title)
	assert.Contains(t, saved.Body, event.Reference)
}

func TestRecordDecision_RejectedIncludesNote(t *testing.T) {
	var saved *Notification
	repo := &fakeNotificationRepo{
		createFn: func(ctx context.Context, n *Notification) error {
			saved = n
			return nil
		},
	}
	svc := NewService(repo)

	event := decidedEvent("REJECTED")
	err := svc.RecordDecision(context.Background(), event)

	assert.NoError(t, err)
	assert.Equal(t, "Pengajuan izin ditolak", saved.Title)
	assert.Contains(t, saved.Body, event.Note)
}

func TestRecordDecision_InvalidStudentID(t *testing.T) {
	svc := NewService(&fakeNotificationRepo{})

	event := decidedEvent("APPROVED")
	event.StudentID = "bukan-uuid"

	err := svc.RecordDecision(context.Background(), event)
	assert.ErrorIs(t, err, notificationerrors.ErrInvalidStudentID)
}

func TestGetAll_MapsRows(t *testing.T) {
	studentID := uuid.New()
	readAt := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	repo := &fakeNotificationRepo{
		findAllByStudentFn: func(ctx context.Context, sid string) ([]Notification, error) {
			assert.Equal(t, studentID.String(), sid)
			return []Notification{
				{
					ID:        uuid.New(),
					StudentID: studentID,
					PermitID:  uuid.New(),
					Status:    "NEEDS_REVISION",
					Title:     "Pengajuan izin perlu revisi",
					CreatedAt: time.Date(2026, 3, 1, 7, 0, 0, 0, time.UTC),
				},
				{
					ID:        uuid.New(),
					StudentID: studentID,
					PermitID:  uuid.New(),
					Status:    "APPROVED",
					Title:     "Pengajuan izin disetujui",
					ReadAt:    &readAt,
					CreatedAt: time.Date(2026, 2, 20, 7, 0, 0, 0, time.UTC),
				},
			}, nil
		},
	}
	svc := NewService(repo)

	rows, err := svc.GetAll(context.Background(), studentID.String())

	assert.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.False(t, rows[0].Read)
	assert.Nil(t, rows[0].ReadAt)
	assert.True(t, rows[1].Read)
	if assert.NotNil(t, rows[1].ReadAt) {
		assert.Equal(t, readAt.Format(time.RFC3339), *rows[1].ReadAt)
	}
}

func TestGetAll_InvalidStudentID(t *testing.T) {
	svc := NewService(&fakeNotificationRepo{})

	_, err := svc.GetAll(context.Background(), "xyz")
	assert.ErrorIs(t, err, notificationerrors.ErrInvalidStudentID)
}

func TestMarkRead_SetsReadAtOnce(t *testing.T) {
	studentID := uuid.New()
	stored := &Notification{
		ID:        uuid.New(),
		StudentID: studentID,
		PermitID:  uuid.New(),
		Status:    "APPROVED",
		Title:     "Pengajuan izin disetujui",
		CreatedAt: time.Now().UTC(),
	}
	updates := 0
	repo := &fakeNotificationRepo{
		findByIDAndStudentFn: func(ctx context.Context, sid, id string) (*Notification, error) {
			return stored, nil
		},
		updateFn: func(ctx context.Context, n *Notification) error {
			updates++
			return nil
		},
	}
	svc := NewService(repo)

	resp, err := svc.MarkRead(context.Background(), studentID.String(), stored.ID.String())
	assert.NoError(t, err)
	assert.True(t, resp.Read)
	assert.Equal(t, 1, updates)

	// Sudah terbaca; panggilan berikutnya tidak menulis ulang.
	_, err = svc.MarkRead(context.Background(), studentID.String(), stored.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, 1, updates)
}

func TestMarkRead_NotFound(t *testing.T) {
	svc := NewService(&fakeNotificationRepo{})

	_, err := svc.MarkRead(context.Background(), uuid.NewString(), uuid.NewString())
	assert.ErrorIs(t, err, notificationerrors.ErrNotificationNotFound)
}
