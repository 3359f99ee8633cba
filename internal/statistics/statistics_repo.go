package statistics

import (
	"context"

	"gorm.io/gorm"
)

type StatusCount struct {
	Status string
	Count  int64
}

type TypeCount struct {
	LeaveType string
	Count     int64
}

type MonthCount struct {
	Month int
	Count int64
}

//go:generate mockgen -source=statistics_repo.go -destination=mock/statistics_repo_mock.go -package=mock
type Repository interface {
	CountByStatus(ctx context.Context, unit string) ([]StatusCount, error)
	CountByLeaveType(ctx context.Context, unit string) ([]TypeCount, error)
	CountByMonth(ctx context.Context, unit string, year int) ([]MonthCount, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CountByStatus(ctx context.Context, unit string) ([]StatusCount, error) {
	var rows []StatusCount
	err := r.db.WithContext(ctx).
		Table("permits").
		Select("status, COUNT(*) AS count").
		Where("unit = ?", unit).
		Where("deleted_at IS NULL").
		Group("status").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) CountByLeaveType(ctx context.Context, unit string) ([]TypeCount, error) {
	var rows []TypeCount
	err := r.db.WithContext(ctx).
		Table("permits").
		Select("leave_type, COUNT(*) AS count").
		Where("unit = ?", unit).
		Where("deleted_at IS NULL").
		Group("leave_type").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) CountByMonth(ctx context.Context, unit string, year int) ([]MonthCount, error) {
	var rows []MonthCount
	err := r.db.WithContext(ctx).
		Table("permits").
		Select("EXTRACT(MONTH FROM start_date)::int AS month, COUNT(*) AS count").
		Where("unit = ?", unit).
		Where("EXTRACT(YEAR FROM start_date) = ?", year).
		Where("deleted_at IS NULL").
		Group("month").
		Order("month ASC").
		Scan(&rows).Error
	return rows, err
}
