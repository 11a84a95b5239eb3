package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tradejournal/internal/stats"
)

const statsCacheTTL = 60 * time.Second

// DashboardData is the payload backing the dashboard page
type DashboardData struct {
	Summary stats.Summary         `json:"summary"`
	Monthly []stats.MonthlyBucket `json:"monthly_performance"`
	Daily   []stats.DailyBucket   `json:"daily_performance"`
}

// AnalyticsData is the payload backing the analytics page
type AnalyticsData struct {
	Summary     stats.Summary         `json:"summary"`
	Monthly     []stats.MonthlyBucket `json:"monthly_performance"`
	Markets     []stats.MarketCount   `json:"market_distribution"`
	Types       []stats.TypeBreakdown `json:"type_distribution"`
	Weekdays    []stats.WeekdayBucket `json:"day_of_week_performance"`
	EquityCurve []stats.EquityPoint   `json:"equity_curve"`
}

// AnalyticsService loads an account's full trade history and runs the
// aggregation engine over it. Dashboard results are cached in redis
// per account; the cache is best-effort and every failure falls back
// to recomputation.
type AnalyticsService struct {
	trades   TradeStore
	accounts AccountStore
	rdb      *redis.Client
}

// NewAnalyticsService creates a new AnalyticsService. rdb may be nil,
// in which case caching is disabled.
func NewAnalyticsService(trades TradeStore, accounts AccountStore, rdb *redis.Client) *AnalyticsService {
	return &AnalyticsService{
		trades:   trades,
		accounts: accounts,
		rdb:      rdb,
	}
}

// Dashboard computes summary stats plus the monthly series and the
// daily series for the month containing now.
func (s *AnalyticsService) Dashboard(ctx context.Context, userID, accountID string, now time.Time) (*DashboardData, error) {
	account, err := s.accounts.GetByIDAndUserID(accountID, userID)
	if err != nil {
		return nil, err
	}

	cacheKey := "tradejournal:dashboard:" + account.ID
	if cached := s.fromCache(ctx, cacheKey); cached != nil {
		var data DashboardData
		if err := json.Unmarshal(cached, &data); err == nil {
			return &data, nil
		}
	}

	trades, err := s.trades.ListByAccount(account.ID)
	if err != nil {
		return nil, err
	}

	data := &DashboardData{
		Summary: stats.Compute(trades),
		Monthly: stats.MonthlyPerformance(trades),
		Daily:   stats.DailyPerformance(trades, now),
	}

	s.toCache(ctx, cacheKey, data)
	return data, nil
}

// Analytics computes the full analytics page payload, including the
// distributions and the equity curve anchored at the account's
// initial balance.
func (s *AnalyticsService) Analytics(ctx context.Context, userID, accountID string) (*AnalyticsData, error) {
	account, err := s.accounts.GetByIDAndUserID(accountID, userID)
	if err != nil {
		return nil, err
	}

	cacheKey := "tradejournal:analytics:" + account.ID
	if cached := s.fromCache(ctx, cacheKey); cached != nil {
		var data AnalyticsData
		if err := json.Unmarshal(cached, &data); err == nil {
			return &data, nil
		}
	}

	trades, err := s.trades.ListByAccount(account.ID)
	if err != nil {
		return nil, err
	}

	data := &AnalyticsData{
		Summary:     stats.Compute(trades),
		Monthly:     stats.MonthlyPerformance(trades),
		Markets:     stats.MarketDistribution(trades),
		Types:       stats.TypeDistribution(trades),
		Weekdays:    stats.DayOfWeekPerformance(trades),
		EquityCurve: stats.EquityCurve(trades, account.InitialBalance),
	}

	s.toCache(ctx, cacheKey, data)
	return data, nil
}

// Calendar builds the month display grid for the month containing ref
func (s *AnalyticsService) Calendar(ctx context.Context, userID, accountID string, ref time.Time) ([]stats.CalendarDay, error) {
	account, err := s.accounts.GetByIDAndUserID(accountID, userID)
	if err != nil {
		return nil, err
	}

	trades, err := s.trades.ListByAccount(account.ID)
	if err != nil {
		return nil, err
	}

	return stats.CalendarMonth(trades, ref), nil
}

// StatsChanged drops the cached results for an account. Called after
// every trade mutation.
func (s *AnalyticsService) StatsChanged(accountID string) {
	if s.rdb == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.rdb.Del(ctx,
		"tradejournal:dashboard:"+accountID,
		"tradejournal:analytics:"+accountID,
	).Err(); err != nil {
		log.Printf("[Analytics] Failed to invalidate cache for account %s: %v", accountID, err)
	}
}

func (s *AnalyticsService) fromCache(ctx context.Context, key string) []byte {
	if s.rdb == nil {
		return nil
	}
	data, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("[Analytics] Cache read failed for %s: %v", key, err)
		}
		return nil
	}
	return data
}

func (s *AnalyticsService) toCache(ctx context.Context, key string, v interface{}) {
	if s.rdb == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, key, data, statsCacheTTL).Err(); err != nil {
		log.Printf("[Analytics] Cache write failed for %s: %v", key, err)
	}
}
