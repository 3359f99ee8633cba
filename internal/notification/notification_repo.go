package notification

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=notification_repo.go -destination=mock/notification_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	FindAllByStudent(ctx context.Context, studentID string) ([]Notification, error)
	FindByIDAndStudent(ctx context.Context, studentID, id string) (*Notification, error)
	Update(ctx context.Context, n *Notification) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, n *Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *repository) FindAllByStudent(ctx context.Context, studentID string) ([]Notification, error) {
	var rows []Notification
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByIDAndStudent(ctx context.Context, studentID, id string) (*Notification, error) {
	var n Notification
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Where("id = ?", id).
		First(&n).Error
	return &n, err
}

func (r *repository) Update(ctx context.Context, n *Notification) error {
	return r.db.WithContext(ctx).Save(n).Error
}
