package student

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=student_repo.go -destination=mock/student_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, s *Student) error
	FindAll(ctx context.Context, unit string) ([]Student, error)
	FindByID(ctx context.Context, id string) (*Student, error)
	FindByNIM(ctx context.Context, nim string) (*Student, error)
	Update(ctx context.Context, s *Student) error
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

func (r *repository) Create(ctx context.Context, s *Student) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) FindAll(ctx context.Context, unit string) ([]Student, error) {
	var rows []Student
	q := r.db.WithContext(ctx)
	if unit != "" {
		q = q.Where("unit = ?", unit)
	}
	err := q.Order("nim ASC").Find(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Student, error) {
	var s Student
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	return &s, err
}

func (r *repository) FindByNIM(ctx context.Context, nim string) (*Student, error) {
	var s Student
	err := r.db.WithContext(ctx).First(&s, "nim = ?", nim).Error
	return &s, err
}

func (r *repository) Update(ctx context.Context, s *Student) error {
	return r.db.WithContext(ctx).Save(s).Error
}
