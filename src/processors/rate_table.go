package processors

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/username/folioparse/src/logger"
)

// ErrRateUnavailable is returned when a lookup date precedes the first
// observation of the series, or the currency has no series at all.
var ErrRateUnavailable = errors.New("exchange rate unavailable")

const rateDateFormat = "2006-01-02"

type rateObs struct {
	date  time.Time
	value float64 // native -> reporting multiplier
}

// RateTable is an immutable, date-indexed currency conversion table loaded
// from a rate-series CSV. Lookups forward-fill over weekend/holiday gaps.
// Construct one per run; it holds no process-wide state.
type RateTable struct {
	reporting string
	series    map[string][]rateObs // currency -> observations sorted by date
}

// NewRateTableFromCSV loads a rate series from a CSV file with a required
// header of the form "Date,EUR_to_USD[,EUR_to_GBP...]". Column values are
// the amount of the foreign currency one EUR buys; lookups return the
// inverse (native -> EUR multiplier).
func NewRateTableFromCSV(path string) (*RateTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error reading rate series file '%s': %w", path, err)
	}
	defer file.Close()
	return NewRateTable(file)
}

// NewRateTable reads a rate-series CSV from r. See NewRateTableFromCSV.
func NewRateTable(r io.Reader) (*RateTable, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read rate series header: %w", err)
	}
	if len(header) < 2 || !strings.EqualFold(strings.TrimSpace(header[0]), "date") {
		return nil, fmt.Errorf("rate series header must start with 'Date': got %v", header)
	}

	// Map column index -> currency from headers like "EUR_to_USD".
	currencies := make(map[int]string)
	for i := 1; i < len(header); i++ {
		col := strings.TrimSpace(header[i])
		parts := strings.Split(col, "_to_")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "EUR") {
			return nil, fmt.Errorf("unsupported rate series column '%s': expected EUR_to_<CCY>", col)
		}
		currencies[i] = strings.ToUpper(parts[1])
	}

	t := &RateTable{
		reporting: "EUR",
		series:    make(map[string][]rateObs),
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read rate series records: %w", err)
	}
	for _, record := range records {
		if len(record) != len(header) {
			return nil, fmt.Errorf("rate series row has %d columns, header has %d", len(record), len(header))
		}
		date, err := time.Parse(rateDateFormat, strings.TrimSpace(record[0]))
		if err != nil {
			return nil, fmt.Errorf("invalid rate series date '%s': %w", record[0], err)
		}
		for i, ccy := range currencies {
			valueStr := strings.TrimSpace(record[i])
			if valueStr == "" {
				continue // gap, forward fill covers it
			}
			value, err := strconv.ParseFloat(valueStr, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid rate value '%s' for %s on %s: %w", valueStr, ccy, record[0], err)
			}
			if value <= 0 {
				return nil, fmt.Errorf("non-positive rate %f for %s on %s", value, ccy, record[0])
			}
			t.series[ccy] = append(t.series[ccy], rateObs{date: date, value: 1 / value})
		}
	}

	for ccy := range t.series {
		obs := t.series[ccy]
		sort.Slice(obs, func(i, j int) bool { return obs[i].date.Before(obs[j].date) })
		t.series[ccy] = obs
	}

	logger.L.Info("Rate table loaded", "currencies", len(t.series))
	return t, nil
}

// ReportingCurrency returns the currency every amount is normalized into.
func (t *RateTable) ReportingCurrency() string { return t.reporting }

// Supports reports whether the table can convert the given currency.
func (t *RateTable) Supports(currency string) bool {
	if strings.EqualFold(currency, t.reporting) {
		return true
	}
	_, ok := t.series[strings.ToUpper(currency)]
	return ok
}

// Rate returns the native -> reporting multiplier for the given currency
// and date. Dates without an exact observation use the most recent earlier
// one (forward fill); dates before the first observation fail with
// ErrRateUnavailable.
func (t *RateTable) Rate(currency string, date time.Time) (float64, error) {
	if strings.EqualFold(currency, t.reporting) {
		return 1.0, nil
	}

	obs, ok := t.series[strings.ToUpper(currency)]
	if !ok || len(obs) == 0 {
		return 0, fmt.Errorf("%w: no series for currency %s", ErrRateUnavailable, currency)
	}

	// First index with obs date strictly after the lookup date.
	idx := sort.Search(len(obs), func(i int) bool { return obs[i].date.After(date) })
	if idx == 0 {
		return 0, fmt.Errorf("%w: %s on %s precedes first observation %s",
			ErrRateUnavailable, currency, date.Format(rateDateFormat), obs[0].date.Format(rateDateFormat))
	}
	return obs[idx-1].value, nil
}
