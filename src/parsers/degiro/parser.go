// Package degiro parses the DEGIRO account-statement CSV export
// (Spanish locale). Column layout:
//
//	0 Fecha, 1 Hora, 2 Fecha valor, 3 Producto, 4 ISIN, 5 Descripción,
//	6 Tipo de cambio, 7 divisa, 8 Variación, 9 divisa, 10 Saldo, 11 ID Orden
package degiro

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/username/folioparse/src/logger"
	"github.com/username/folioparse/src/models"
)

const minColumns = 11

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse reads the whole export. A missing or unreadable header is a
// structural failure; rows with too few columns or no date are skipped
// and logged, never aborting the batch.
func (p *Parser) Parse(file io.Reader) ([]models.RawTransaction, error) {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	if len(header) < minColumns {
		return nil, fmt.Errorf("CSV header has %d columns, expected at least %d", len(header), minColumns)
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read all CSV records: %w", err)
	}

	var rows []models.RawTransaction
	skipped := 0
	for _, record := range records {
		if len(record) < minColumns || strings.TrimSpace(record[0]) == "" {
			skipped++
			continue
		}
		row := models.RawTransaction{
			Date:            strings.TrimSpace(record[0]),
			Time:            strings.TrimSpace(record[1]),
			ValueDate:       strings.TrimSpace(record[2]),
			Product:         strings.TrimSpace(record[3]),
			ISIN:            strings.TrimSpace(record[4]),
			Description:     strings.TrimSpace(record[5]),
			Currency:        strings.TrimSpace(record[7]),
			Amount:          strings.TrimSpace(record[8]),
			BalanceCurrency: strings.TrimSpace(record[9]),
			Balance:         strings.TrimSpace(record[10]),
		}
		if len(record) > 11 {
			row.OrderID = strings.TrimSpace(record[11])
		}
		rows = append(rows, row)
	}

	if skipped > 0 {
		logger.L.Warn("Skipped malformed export rows", "count", skipped)
	}
	logger.L.Info("Parsed account export", "rows", len(rows))
	return rows, nil
}
