package statistics

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	overviewKeyPrefix = "statistics:overview:"
	overviewTTL       = 5 * time.Minute
)

func overviewKey(unit string, year int) string {
	return fmt.Sprintf("%s%s:%d", overviewKeyPrefix, unit, year)
}

//go:generate mockgen -source=statistics_service.go -destination=mock/statistics_service_mock.go -package=mock
type Service interface {
	GetOverview(ctx context.Context, unit string, year int) (OverviewResponse, error)
	InvalidateUnit(ctx context.Context, unit string)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("statistics.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("statistics.service")
	}
	return &service{repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

func (s *service) GetOverview(ctx context.Context, unit string, year int) (OverviewResponse, error) {
	cacheKey := overviewKey(unit, year)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var resp OverviewResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	// Singleflight menahan query agregat ganda saat cache baru saja expired.
	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		resp, err := s.buildOverview(ctx, unit, year)
		if err != nil {
			return OverviewResponse{}, err
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, overviewTTL)
			}
		}
		return resp, nil
	})
	if err != nil {
		return OverviewResponse{}, err
	}

	return v.(OverviewResponse), nil
}

func (s *service) buildOverview(ctx context.Context, unit string, year int) (OverviewResponse, error) {
	resp := OverviewResponse{
		Unit:        unit,
		Year:        year,
		ByStatus:    map[string]int64{},
		ByLeaveType: map[string]int64{},
	}

	byStatus, err := s.repo.CountByStatus(ctx, unit)
	if err != nil {
		s.logger.Error("statistics count by status failed", zap.String("unit", unit), zap.Error(err))
		return OverviewResponse{}, err
	}
	for _, row := range byStatus {
		resp.ByStatus[row.Status] = row.Count
		resp.Total += row.Count
	}

	byType, err := s.repo.CountByLeaveType(ctx, unit)
	if err != nil {
		s.logger.Error("statistics count by type failed", zap.String("unit", unit), zap.Error(err))
		return OverviewResponse{}, err
	}
	for _, row := range byType {
		resp.ByLeaveType[row.LeaveType] = row.Count
	}

	byMonth, err := s.repo.CountByMonth(ctx, unit, year)
	if err != nil {
		s.logger.Error("statistics count by month failed", zap.String("unit", unit), zap.Error(err))
		return OverviewResponse{}, err
	}
	for _, row := range byMonth {
		if row.Month >= 1 && row.Month <= 12 {
			resp.ByMonth[row.Month-1] = row.Count
		}
	}

	return resp, nil
}

// InvalidateUnit membuang seluruh cache overview milik satu unit; dipanggil
// layanan permit setiap kali data pengajuan berubah.
func (s *service) InvalidateUnit(ctx context.Context, unit string) {
	if s.rdb == nil {
		return
	}
	pattern := overviewKeyPrefix + unit + ":*"
	keys, err := s.rdb.Keys(ctx, pattern).Result()
	if err != nil {
		s.logger.Warn("statistics cache scan failed", zap.String("pattern", pattern), zap.Error(err))
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		s.logger.Warn("statistics cache invalidation failed", zap.String("unit", unit), zap.Error(err))
	}
}
