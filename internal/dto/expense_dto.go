package dto

import "github.com/shopspring/decimal"

type CreateExpenseRequest struct {
	Category string          `json:"category" validate:"required,oneof=rent salary supplies utilities marketing maintenance other"`
	Amount   decimal.Decimal `json:"amount"   validate:"required"`
	Date     string          `json:"date"     validate:"required,datetime=2006-01-02"`
	Notes    *string         `json:"notes"    validate:"omitempty,max=500"`
}

type ExpenseFilter struct {
	Category string `form:"category"`
	Status   string `form:"status,default=active"` // active | cancelled | all
	From     string `form:"from"`
	To       string `form:"to"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type ExpenseResponse struct {
	ID       string          `json:"id"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Date     string          `json:"date"`
	Status   string          `json:"status"`
	Notes    *string         `json:"notes,omitempty"`
}

type ExpenseListResponse struct {
	Data  []ExpenseResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
