package student

import (
	"errors"
	"strings"

	studenterrors "go-silpa/internal/student/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return studenterrors.ErrStudentNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "uq_students_nim":
				return studenterrors.ErrNIMAlreadyExists
			case "uq_students_email":
				return studenterrors.ErrStudentAlreadyExists
			}
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_students_nim") {
		return studenterrors.ErrNIMAlreadyExists
	}
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_students_email") {
		return studenterrors.ErrStudentAlreadyExists
	}

	return err
}
