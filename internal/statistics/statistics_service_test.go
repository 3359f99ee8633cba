package statistics_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-silpa/internal/statistics"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

type fakeStatsRepository struct {
	statusCalls int

	countByStatusFn    func(ctx context.Context, unit string) ([]statistics.StatusCount, error)
	countByLeaveTypeFn func(ctx context.Context, unit string) ([]statistics.TypeCount, error)
	countByMonthFn     func(ctx context.Context, unit string, year int) ([]statistics.MonthCount, error)
}

func (f *fakeStatsRepository) CountByStatus(ctx context.Context, unit string) ([]statistics.StatusCount, error) {
	f.statusCalls++
	if f.countByStatusFn != nil {
		return f.countByStatusFn(ctx, unit)
	}
	return nil, nil
}

func (f *fakeStatsRepository) CountByLeaveType(ctx context.Context, unit string) ([]statistics.TypeCount, error) {
	if f.countByLeaveTypeFn != nil {
		return f.countByLeaveTypeFn(ctx, unit)
	}
	return nil, nil
}

func (f *fakeStatsRepository) CountByMonth(ctx context.Context, unit string, year int) ([]statistics.MonthCount, error) {
	if f.countByMonthFn != nil {
		return f.countByMonthFn(ctx, unit, year)
	}
	return nil, nil
}

func sampleRepo() *fakeStatsRepository {
	return &fakeStatsRepository{
		countByStatusFn: func(ctx context.Context, unit string) ([]statistics.StatusCount, error) {
			return []statistics.StatusCount{
				{Status: "PENDING", Count: 3},
				{Status: "APPROVED", Count: 5},
			}, nil
		},
		countByLeaveTypeFn: func(ctx context.Context, unit string) ([]statistics.TypeCount, error) {
			return []statistics.TypeCount{
				{LeaveType: "SICK", Count: 6},
				{LeaveType: "IMPORTANT_REASON", Count: 2},
			}, nil
		},
		countByMonthFn: func(ctx context.Context, unit string, year int) ([]statistics.MonthCount, error) {
			return []statistics.MonthCount{
				{Month: 1, Count: 4},
				{Month: 3, Count: 4},
			}, nil
		},
	}
}

func TestStatisticsService_GetOverview(t *testing.T) {
	ctx := context.Background()

	t.Run("cache miss aggregates and stores", func(t *testing.T) {
		repo := sampleRepo()
		rdb, redisMock := redismock.NewClientMock()
		svc := statistics.NewService(repo, rdb)

		redisMock.ExpectGet("statistics:overview:FIK:2026").RedisNil()
		redisMock.Regexp().ExpectSet("statistics:overview:FIK:2026", `.*`, 5*time.Minute).SetVal("OK")

		resp, err := svc.GetOverview(ctx, "FIK", 2026)

		assert.NoError(t, err)
		assert.Equal(t, "FIK", resp.Unit)
		assert.Equal(t, int64(8), resp.Total)
		assert.Equal(t, int64(3), resp.ByStatus["PENDING"])
		assert.Equal(t, int64(6), resp.ByLeaveType["SICK"])
		assert.Equal(t, int64(4), resp.ByMonth[0])
		assert.Equal(t, int64(0), resp.ByMonth[1])
		assert.Equal(t, int64(4), resp.ByMonth[2])
		assert.Equal(t, 1, repo.statusCalls)
	})

	t.Run("cache hit skips repository", func(t *testing.T) {
		repo := sampleRepo()
		rdb, redisMock := redismock.NewClientMock()
		svc := statistics.NewService(repo, rdb)

		cached := statistics.OverviewResponse{
			Unit:  "FIK",
			Year:  2026,
			Total: 42,
			ByStatus: map[string]int64{
				"APPROVED": 42,
			},
			ByLeaveType: map[string]int64{},
		}
		payload, err := json.Marshal(cached)
		assert.NoError(t, err)

		redisMock.ExpectGet("statistics:overview:FIK:2026").SetVal(string(payload))

		resp, err := svc.GetOverview(ctx, "FIK", 2026)

		assert.NoError(t, err)
		assert.Equal(t, int64(42), resp.Total)
		assert.Equal(t, 0, repo.statusCalls)
	})

	t.Run("repository error propagates", func(t *testing.T) {
		repo := sampleRepo()
		repo.countByStatusFn = func(ctx context.Context, unit string) ([]statistics.StatusCount, error) {
			return nil, errors.New("db down")
		}
		svc := statistics.NewService(repo, nil)

		_, err := svc.GetOverview(ctx, "FIK", 2026)
		assert.Error(t, err)
	})

	t.Run("nil redis still aggregates", func(t *testing.T) {
		svc := statistics.NewService(sampleRepo(), nil)

		resp, err := svc.GetOverview(ctx, "FIK", 2026)
		assert.NoError(t, err)
		assert.Equal(t, int64(8), resp.Total)
	})
}

func TestStatisticsService_InvalidateUnit(t *testing.T) {
	ctx := context.Background()

	rdb, redisMock := redismock.NewClientMock()
	svc := statistics.NewService(sampleRepo(), rdb)

	redisMock.ExpectKeys("statistics:overview:FIK:*").SetVal([]string{
		"statistics:overview:FIK:2025",
		"statistics:overview:FIK:2026",
	})
	redisMock.ExpectDel("statistics:overview:FIK:2025", "statistics:overview:FIK:2026").SetVal(2)

	svc.InvalidateUnit(ctx, "FIK")

	assert.NoError(t, redisMock.ExpectationsWereMet())
}
