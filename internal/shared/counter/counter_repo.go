package counter

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -destination=mock/counter_repo_mock.go -package=mock . Repository
type Repository interface {
	GetNextValue(ctx context.Context, scope string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// GetNextValue mengambil nilai berikutnya dari deret bernomor per scope
// (misal "permit:2025"). UPSERT mentah agar increment tetap atomik saat
// beberapa pengajuan masuk bersamaan.
func (r *repository) GetNextValue(ctx context.Context, scope string) (int64, error) {
	var nextValue int64

	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO reference_counters (scope, last_value, updated_at)
		VALUES (?, 1, now())
		ON CONFLICT (scope) DO UPDATE
		SET last_value = reference_counters.last_value + 1, updated_at = now()
		RETURNING last_value
	`, scope).Scan(&nextValue).Error

	if err != nil {
		return 0, err
	}

	return nextValue, nil
}
