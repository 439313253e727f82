package models

import "time"

// RawTransaction represents a single line from the account export CSV,
// untouched beyond column splitting. All fields are kept as strings so the
// original file content survives into the audit trail.
type RawTransaction struct {
	Date            string `json:"date"`             // DD-MM-YYYY as exported
	Time            string `json:"time"`             // HH:MM
	ValueDate       string `json:"value_date"`       // Date the transaction is effective
	Product         string `json:"product"`          // Instrument name
	ISIN            string `json:"isin"`             // ISIN column (may be empty)
	Description     string `json:"description"`      // Free-text broker description
	Amount          string `json:"amount"`           // Amount in the original currency
	Currency        string `json:"currency"`         // Currency of the amount
	Balance         string `json:"balance"`          // Running balance after the transaction
	BalanceCurrency string `json:"balance_currency"` // Currency of the balance
	OrderID         string `json:"order_id"`         // Broker order ID (may be empty)
}

// Category is the classification assigned to a raw row before extraction.
type Category string

const (
	CategoryBuy              Category = "buy"
	CategorySell             Category = "sell"
	CategoryDividend         Category = "dividend"
	CategoryWithholdingTax   Category = "withholding_tax"
	CategoryDeposit          Category = "deposit"
	CategoryWithdrawal       Category = "withdrawal"
	CategoryFee              Category = "fee"
	CategoryCorporateAction  Category = "corporate_action"
	CategoryInternalTransfer Category = "internal_transfer"
	CategoryUnsupported      Category = "unsupported"
)

// ClassifiedTransaction is a raw row after classification, extraction and
// enrichment. The native amount and currency are always preserved next to
// the normalized EUR value.
type ClassifiedTransaction struct {
	Date        time.Time `json:"date"`
	Category    Category  `json:"category"`
	RuleName    string    `json:"rule_name"` // classifier rule that matched
	Product     string    `json:"product"`
	ISIN        string    `json:"isin"`
	Description string    `json:"description"` // original description text
	Quantity    int       `json:"quantity"`
	Price       float64   `json:"price"`

	Amount      float64 `json:"amount"`       // signed amount in the native currency
	Currency    string  `json:"currency"`     // native currency
	GrossAmount float64 `json:"gross_amount"` // sells: quantity * price (native currency)
	TaxAmount   float64 `json:"tax_amount"`   // dividends: withholding from the paired row (positive)

	ExchangeRate float64 `json:"exchange_rate"` // native -> EUR multiplier used
	AmountEUR    float64 `json:"amount_eur"`
	TaxAmountEUR float64 `json:"tax_amount_eur"`

	CountryCode string `json:"country_code"` // alpha-2 derived from the ISIN
	HashID      string `json:"hash_id"`

	// Soft validation flags. Flagged rows stay in the clean set.
	ISINMismatch bool `json:"isin_mismatch,omitempty"`
	Unpaired     bool `json:"unpaired,omitempty"`
	NoRate       bool `json:"no_rate,omitempty"`
}

// ValidationIssue records one violated rule for one row. It never mutates
// the transaction it refers to; downstream decides what to do with it.
type ValidationIssue struct {
	Rule        string `json:"rule"`
	Date        string `json:"date"`
	ISIN        string `json:"isin,omitempty"`
	Description string `json:"description"`
	Reason      string `json:"reason"`
}

// AuditEntry is a raw row excluded before extraction, kept for the audit
// trail with the reason it was set aside.
type AuditEntry struct {
	Row    RawTransaction `json:"row"`
	Reason string         `json:"reason"`
}
