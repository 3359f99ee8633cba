package app

import (
	"database/sql"
	"os"

	"go-silpa/internal/shared/connection"

	"gorm.io/gorm"
)

// openDatabase membuka koneksi Postgres dari env DB_* dengan retry; dipakai
// api, worker, dan consumer.
func openDatabase() (*gorm.DB, *sql.DB, error) {
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return nil, nil, err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, nil, err
	}

	return gormDB, sqlDB, nil
}
