package permit

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=permit_repo.go -destination=mock/permit_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *Permit) error
	FindAllByUnit(ctx context.Context, unit, status string) ([]Permit, error)
	FindAllByStudent(ctx context.Context, studentID string) ([]Permit, error)
	FindByID(ctx context.Context, id string) (*Permit, error)
	Update(ctx context.Context, p *Permit) error
	ReplaceSessions(ctx context.Context, permitID string, sessions []PermitSession) error
	ReplaceAttachments(ctx context.Context, permitID string, attachments []PermitAttachment) error
	Delete(ctx context.Context, studentID, id string) error
	HasOverlappingPeriod(ctx context.Context, studentID string, startDate, endDate time.Time, excludeID *string) (bool, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, p *Permit) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindAllByUnit(ctx context.Context, unit, status string) ([]Permit, error) {
	var permits []Permit
	q := r.db.WithContext(ctx).
		Preload("Sessions").
		Preload("Attachments").
		Where("unit = ?", unit)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Order("created_at DESC").Find(&permits).Error
	return permits, err
}

func (r *repository) FindAllByStudent(ctx context.Context, studentID string) ([]Permit, error) {
	var permits []Permit
	err := r.db.WithContext(ctx).
		Preload("Sessions").
		Preload("Attachments").
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&permits).Error
	return permits, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Permit, error) {
	var p Permit
	err := r.db.WithContext(ctx).
		Preload("Sessions").
		Preload("Attachments").
		First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repository) Update(ctx context.Context, p *Permit) error {
	return r.db.WithContext(ctx).
		Omit("Sessions", "Attachments").
		Save(p).Error
}

func (r *repository) ReplaceSessions(ctx context.Context, permitID string, sessions []PermitSession) error {
	if err := r.db.WithContext(ctx).
		Where("permit_id = ?", permitID).
		Delete(&PermitSession{}).Error; err != nil {
		return err
	}
	if len(sessions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&sessions).Error
}

func (r *repository) ReplaceAttachments(ctx context.Context, permitID string, attachments []PermitAttachment) error {
	if err := r.db.WithContext(ctx).
		Where("permit_id = ?", permitID).
		Delete(&PermitAttachment{}).Error; err != nil {
		return err
	}
	if len(attachments) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&attachments).Error
}

func (r *repository) Delete(ctx context.Context, studentID, id string) error {
	return r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Delete(&Permit{}, "id = ?", id).Error
}

func (r *repository) HasOverlappingPeriod(ctx context.Context, studentID string, startDate, endDate time.Time, excludeID *string) (bool, error) {
	db := r.db.WithContext(ctx).
		Model(&Permit{}).
		Where("student_id = ?", studentID).
		Where("status <> ?", StatusRejected).
		Where("NOT (end_date < ? OR start_date > ?)", startDate, endDate)

	if excludeID != nil && *excludeID != "" {
		db = db.Where("id <> ?", *excludeID)
	}

	var count int64
	err := db.Count(&count).Error
	return count > 0, err
}
