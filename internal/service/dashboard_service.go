package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/formonexsolutions/onesalon-erp-2.0-sub002/internal/dto"
	"github.com/formonexsolutions/onesalon-erp-2.0-sub002/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// Rollup periods.
const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
	PeriodYearly  = "yearly"
)

const dashboardCacheTTL = 30 * time.Second

// DashboardService is the read-only financial rollup. It never writes to
// bills, payments, or expenses.
type DashboardService interface {
	Dashboard(ctx context.Context, salonID uuid.UUID, period string) (*dto.DashboardResponse, error)
}

type dashboardService struct {
	bills    repository.BillRepository
	payments repository.PaymentRepository
	expenses repository.ExpenseRepository
	rdb      *redis.Client
	now      func() time.Time
}

func NewDashboardService(
	bills repository.BillRepository,
	payments repository.PaymentRepository,
	expenses repository.ExpenseRepository,
	rdb *redis.Client,
) DashboardService {
	return &dashboardService{bills: bills, payments: payments, expenses: expenses, rdb: rdb, now: time.Now}
}

// PeriodRange maps a period name to the half-open [start, end) range that
// contains the instant now. Weeks start on Monday.
func PeriodRange(now time.Time, period string) (time.Time, time.Time, error) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch period {
	case PeriodDaily:
		return midnight, midnight.AddDate(0, 0, 1), nil
	case PeriodWeekly:
		offset := (int(now.Weekday()) + 6) % 7 // Monday = 0
		start := midnight.AddDate(0, 0, -offset)
		return start, start.AddDate(0, 0, 7), nil
	case PeriodMonthly:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(0, 1, 0), nil
	case PeriodYearly:
		start := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(1, 0, 0), nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("%w: unknown period %q", ErrValidation, period)
	}
}

func (s *dashboardService) Dashboard(ctx context.Context, salonID uuid.UUID, period string) (*dto.DashboardResponse, error) {
	from, to, err := PeriodRange(s.now(), period)
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("dashboard:%s:%s", salonID, period)
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var cached dto.DashboardResponse
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return &cached, nil
			}
		}
	}

	revenue, err := s.bills.Revenue(ctx, salonID, from, to)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenses.SumActive(ctx, salonID, from, to)
	if err != nil {
		return nil, err
	}
	breakdown, err := s.payments.SumByMethod(ctx, salonID, from, to)
	if err != nil {
		return nil, err
	}
	if breakdown == nil {
		breakdown = map[string]decimal.Decimal{}
	}

	netProfit := revenue.TotalRevenue.Sub(expenses.TotalExpenses)
	profitMargin := decimal.Zero
	if !revenue.TotalRevenue.IsZero() {
		profitMargin = netProfit.Div(revenue.TotalRevenue).Mul(decimal.NewFromInt(100)).Round(2)
	}

	resp := &dto.DashboardResponse{
		Period:     period,
		RangeStart: from.Format(time.RFC3339),
		RangeEnd:   to.Format(time.RFC3339),
		Revenue: dto.RevenueSummary{
			TotalRevenue:    revenue.TotalRevenue,
			CollectedAmount: revenue.CollectedAmount,
			BillCount:       revenue.BillCount,
		},
		Expenses: dto.ExpenseSummary{
			TotalExpenses: expenses.TotalExpenses,
			ExpenseCount:  expenses.ExpenseCount,
		},
		NetProfit:              netProfit,
		ProfitMargin:           profitMargin,
		PaymentMethodBreakdown: breakdown,
	}

	if s.rdb != nil {
		if raw, err := json.Marshal(resp); err == nil {
			s.rdb.Set(ctx, cacheKey, raw, dashboardCacheTTL)
		}
	}
	return resp, nil
}
