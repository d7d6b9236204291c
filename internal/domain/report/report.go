package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryAmount is one category's contribution to a report
type CategoryAmount struct {
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Amount       decimal.Decimal `json:"amount"`
}

// ProfitLoss is the profit-and-loss statement over a date range.
// Revenue combines paid invoices and income transactions; expenses are
// expense transactions with report-excluded categories filtered out.
type ProfitLoss struct {
	From              time.Time        `json:"from"`
	To                time.Time        `json:"to"`
	InvoiceRevenue    decimal.Decimal  `json:"invoice_revenue"`
	TransactionIncome decimal.Decimal  `json:"transaction_income"`
	TotalRevenue      decimal.Decimal  `json:"total_revenue"`
	TotalExpenses     decimal.Decimal  `json:"total_expenses"`
	NetProfit         decimal.Decimal  `json:"net_profit"`
	MarginPct         decimal.Decimal  `json:"margin_pct"`
	IncomeByCategory  []CategoryAmount `json:"income_by_category"`
	ExpenseByCategory []CategoryAmount `json:"expense_by_category"`
}

// MonthlyFlow is one month in a cash-flow series
type MonthlyFlow struct {
	Month   time.Time       `json:"month"`
	Inflow  decimal.Decimal `json:"inflow"`
	Outflow decimal.Decimal `json:"outflow"`
	Net     decimal.Decimal `json:"net"`
}

// CashFlow is the monthly inflow/outflow series over a range
type CashFlow struct {
	From   time.Time       `json:"from"`
	To     time.Time       `json:"to"`
	Months []MonthlyFlow   `json:"months"`
	Net    decimal.Decimal `json:"net"`
}
