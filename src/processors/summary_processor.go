package processors

import (
	"time"

	"github.com/google/uuid"
	"github.com/username/folioparse/src/models"
	"github.com/username/folioparse/src/utils"
)

// SummaryProcessor aggregates the clean transaction set into the portfolio
// summary consumed by the reporting layer. Rows flagged no-rate never
// contribute to a total.
type SummaryProcessor struct{}

func NewSummaryProcessor() *SummaryProcessor { return &SummaryProcessor{} }

func (p *SummaryProcessor) Calculate(clean []models.ClassifiedTransaction, issues []models.ValidationIssue) models.PortfolioSummary {
	summary := models.PortfolioSummary{
		RunID:             uuid.NewString(),
		GeneratedAt:       time.Now().UTC(),
		CountsByCategory:  make(map[models.Category]int),
		ActivityByYear:    make(map[string]models.YearActivity),
		InvestmentByMonth: make(map[string]float64),
		DepositByMonth:    make(map[string]float64),
		DividendByCountry: make(map[string]float64),
		Issues:            issues,
	}

	for _, tx := range clean {
		summary.CountsByCategory[tx.Category]++
		if tx.NoRate {
			continue
		}

		year := tx.Date.Format("2006")
		month := tx.Date.Format("2006-01")
		activity := summary.ActivityByYear[year]

		switch tx.Category {
		case models.CategoryBuy:
			summary.TotalInvested -= tx.AmountEUR
			summary.InvestmentByMonth[month] -= tx.AmountEUR
			activity.Invested -= tx.AmountEUR
		case models.CategorySell:
			summary.TotalProceeds += tx.AmountEUR
			activity.Proceeds += tx.AmountEUR
		case models.CategoryDividend:
			summary.TotalDividendsGross += tx.AmountEUR
			activity.Dividends += tx.AmountEUR
			if tx.CountryCode != "" {
				summary.DividendByCountry[tx.CountryCode] += tx.AmountEUR
			}
		case models.CategoryWithholdingTax:
			summary.TotalDividendsTax -= tx.AmountEUR
		case models.CategoryDeposit:
			summary.TotalDeposits += tx.AmountEUR
			summary.DepositByMonth[month] += tx.AmountEUR
			activity.Deposits += tx.AmountEUR
		case models.CategoryWithdrawal:
			summary.TotalWithdrawals -= tx.AmountEUR
		case models.CategoryFee:
			summary.TotalFees -= tx.AmountEUR
			activity.Fees -= tx.AmountEUR
		}

		if tx.Category != models.CategoryInternalTransfer {
			summary.CurrentCash += tx.AmountEUR
		}

		summary.ActivityByYear[year] = activity
	}

	summary.NetInvested = summary.TotalInvested - summary.TotalProceeds
	summary.TotalDividendsNet = summary.TotalDividendsGross - summary.TotalDividendsTax
	summary.PortfolioReturn = summary.TotalDividendsNet + summary.TotalProceeds - summary.TotalFees

	round2 := func(v *float64) { *v = utils.RoundFloat(*v, 2) }
	round2(&summary.TotalInvested)
	round2(&summary.TotalProceeds)
	round2(&summary.NetInvested)
	round2(&summary.TotalDeposits)
	round2(&summary.TotalWithdrawals)
	round2(&summary.TotalDividendsGross)
	round2(&summary.TotalDividendsTax)
	round2(&summary.TotalDividendsNet)
	round2(&summary.TotalFees)
	round2(&summary.PortfolioReturn)
	round2(&summary.CurrentCash)
	for k, v := range summary.InvestmentByMonth {
		summary.InvestmentByMonth[k] = utils.RoundFloat(v, 2)
	}
	for k, v := range summary.DepositByMonth {
		summary.DepositByMonth[k] = utils.RoundFloat(v, 2)
	}
	for k, v := range summary.DividendByCountry {
		summary.DividendByCountry[k] = utils.RoundFloat(v, 2)
	}
	for k, a := range summary.ActivityByYear {
		round2(&a.Invested)
		round2(&a.Proceeds)
		round2(&a.Dividends)
		round2(&a.Fees)
		round2(&a.Deposits)
		summary.ActivityByYear[k] = a
	}

	return summary
}
