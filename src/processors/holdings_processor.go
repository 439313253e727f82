package processors

import (
	"sort"

	"github.com/username/folioparse/src/models"
	"github.com/username/folioparse/src/utils"
)

// HoldingsProcessor derives net open positions from clean buys and
// disposals (voluntary sells plus corporate-action disposals).
type HoldingsProcessor struct{}

func NewHoldingsProcessor() *HoldingsProcessor { return &HoldingsProcessor{} }

func (p *HoldingsProcessor) Process(buys, disposals []models.ClassifiedTransaction) []models.Holding {
	type position struct {
		product  string
		shares   int
		invested float64
	}
	positions := make(map[string]*position)

	for _, tx := range buys {
		if tx.ISIN == "" {
			continue
		}
		pos, ok := positions[tx.ISIN]
		if !ok {
			pos = &position{}
			positions[tx.ISIN] = pos
		}
		pos.product = tx.Product
		pos.shares += tx.Quantity
		pos.invested -= tx.AmountEUR // buy amounts are negative
	}

	for _, tx := range disposals {
		if pos, ok := positions[tx.ISIN]; ok {
			pos.shares -= tx.Quantity
		}
	}

	var holdings []models.Holding
	for isin, pos := range positions {
		if pos.shares <= 0 {
			continue
		}
		holdings = append(holdings, models.Holding{
			ISIN:        isin,
			Product:     pos.product,
			Shares:      pos.shares,
			InvestedEUR: utils.RoundFloat(pos.invested, 2),
		})
	}
	sort.Slice(holdings, func(i, j int) bool { return holdings[i].ISIN < holdings[j].ISIN })
	return holdings
}
