package student

import (
	"context"
	"database/sql"

	studenterrors "go-silpa/internal/student/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=student_service.go -destination=mock/student_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, unit string, req CreateStudentRequest) (StudentResponse, error)
	GetAll(ctx context.Context, unit string) ([]StudentResponse, error)
	GetByID(ctx context.Context, id string) (StudentResponse, error)
	Update(ctx context.Context, id string, req UpdateStudentRequest) (StudentResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("student.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("student.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, unit string, req CreateStudentRequest) (StudentResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return StudentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row := &Student{
		ID:           uuid.New(),
		NIM:          req.NIM,
		FullName:     req.FullName,
		Email:        req.Email,
		StudyProgram: req.StudyProgram,
		Semester:     req.Semester,
		Unit:         unit,
	}

	if err := qtx.Create(ctx, row); err != nil {
		s.logger.Error("create student persist failed", zap.Error(err))
		return StudentResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return StudentResponse{}, err
	}

	s.logger.Info("student created",
		zap.String("student_id", row.ID.String()),
		zap.String("nim", row.NIM),
	)
	return mapToResponse(*row), nil
}

func (s *service) GetAll(ctx context.Context, unit string) ([]StudentResponse, error) {
	rows, err := s.repo.FindAll(ctx, unit)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	resp := make([]StudentResponse, len(rows))
	for i, row := range rows {
		resp[i] = mapToResponse(row)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (StudentResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return StudentResponse{}, studenterrors.ErrInvalidStudentID
	}
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return StudentResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*row), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateStudentRequest) (StudentResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return StudentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByID(ctx, id)
	if err != nil {
		return StudentResponse{}, mapRepositoryError(err)
	}

	row.FullName = req.FullName
	row.Email = req.Email
	row.StudyProgram = req.StudyProgram
	row.Semester = req.Semester

	if err := qtx.Update(ctx, row); err != nil {
		return StudentResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return StudentResponse{}, err
	}
	return mapToResponse(*row), nil
}

func mapToResponse(s Student) StudentResponse {
	return StudentResponse{
		ID:           s.ID.String(),
		NIM:          s.NIM,
		FullName:     s.FullName,
		Email:        s.Email,
		StudyProgram: s.StudyProgram,
		Semester:     s.Semester,
		Unit:         s.Unit,
	}
}
