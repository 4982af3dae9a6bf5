package dto

import "github.com/shopspring/decimal"

// DashboardRequest is bound from query string of GET /v1/dashboard.
type DashboardRequest struct {
	Period string `form:"period,default=daily" validate:"oneof=daily weekly monthly yearly"`
}

// RevenueSummary aggregates bills with status paid or partial in range.
type RevenueSummary struct {
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	CollectedAmount decimal.Decimal `json:"collected_amount"`
	BillCount       int64           `json:"bill_count"`
}

// ExpenseSummary aggregates non-cancelled expenses in range.
type ExpenseSummary struct {
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	ExpenseCount  int64           `json:"expense_count"`
}

// DashboardResponse is the full rollup for one salon and period.
// All aggregates default to zero on empty ranges — never null.
type DashboardResponse struct {
	Period       string                     `json:"period"`
	RangeStart   string                     `json:"range_start"`
	RangeEnd     string                     `json:"range_end"`
	Revenue      RevenueSummary             `json:"revenue"`
	Expenses     ExpenseSummary             `json:"expenses"`
	NetProfit    decimal.Decimal            `json:"net_profit"`
	ProfitMargin decimal.Decimal            `json:"profit_margin"`
	// PaymentMethodBreakdown sums verified payments grouped by method.
	PaymentMethodBreakdown map[string]decimal.Decimal `json:"payment_method_breakdown"`
}
