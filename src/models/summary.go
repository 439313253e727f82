package models

import "time"

// YearActivity holds the per-year totals exposed in the portfolio summary.
// All amounts are in the reporting currency.
type YearActivity struct {
	Invested  float64 `json:"invested"`
	Proceeds  float64 `json:"proceeds"`
	Dividends float64 `json:"dividends"`
	Fees      float64 `json:"fees"`
	Deposits  float64 `json:"deposits"`
}

// PortfolioSummary is the structured summary object consumed by the
// external reporting/storage layer. Amounts are in the reporting currency;
// rows flagged no-rate are excluded from every total.
type PortfolioSummary struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`

	TotalInvested       float64 `json:"total_invested"`
	TotalProceeds       float64 `json:"total_proceeds"`
	NetInvested         float64 `json:"net_invested"`
	TotalDeposits       float64 `json:"total_deposits"`
	TotalWithdrawals    float64 `json:"total_withdrawals"`
	TotalDividendsGross float64 `json:"total_dividends_gross"`
	TotalDividendsTax   float64 `json:"total_dividends_tax"`
	TotalDividendsNet   float64 `json:"total_dividends_net"`
	TotalFees           float64 `json:"total_fees"`
	PortfolioReturn     float64 `json:"portfolio_return"`
	CurrentCash         float64 `json:"current_cash"`

	CountsByCategory  map[Category]int        `json:"counts_by_category"`
	ActivityByYear    map[string]YearActivity `json:"activity_by_year"`
	InvestmentByMonth map[string]float64      `json:"investment_by_month"`
	DepositByMonth    map[string]float64      `json:"deposit_by_month"`
	DividendByCountry map[string]float64      `json:"dividend_by_country"`

	Issues []ValidationIssue `json:"issues"`
}

// Holding is a net open position derived from clean buys and sells.
type Holding struct {
	ISIN        string  `json:"isin"`
	Product     string  `json:"product"`
	Shares      int     `json:"shares"`
	InvestedEUR float64 `json:"invested_eur"`
}

// Report is the full output of one batch run: the per-category clean
// records, the audit trail and the summary.
type Report struct {
	RunID string `json:"run_id"`

	Buys              []ClassifiedTransaction `json:"buys"`
	Sells             []ClassifiedTransaction `json:"sells"`
	Dividends         []ClassifiedTransaction `json:"dividends"`
	Withholdings      []ClassifiedTransaction `json:"withholdings"`
	Deposits          []ClassifiedTransaction `json:"deposits"`
	Withdrawals       []ClassifiedTransaction `json:"withdrawals"`
	Fees              []ClassifiedTransaction `json:"fees"`
	CorporateActions  []ClassifiedTransaction `json:"corporate_actions"` // incl. corporate-action disposals
	InternalTransfers []ClassifiedTransaction `json:"internal_transfers"`

	Holdings []Holding `json:"holdings"`

	Audit  []AuditEntry      `json:"audit"` // unsupported and noise rows
	Issues []ValidationIssue `json:"issues"`

	Summary PortfolioSummary `json:"summary"`
}
