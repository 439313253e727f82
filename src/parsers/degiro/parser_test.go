package degiro

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/username/folioparse/src/logger"
)

func init() {
	logger.InitLogger("error")
}

const exportHeader = "Fecha,Hora,Fecha valor,Producto,ISIN,Descripción,Tipo de cambio,,Variación,,Saldo,ID Orden\n"

func TestParseReadsAllColumns(t *testing.T) {
	input := exportHeader +
		`01-03-2023,15:30,01-03-2023,PROCTER & GAMBLE,US7427181091,"Compra 4 Procter & Gamble@155 USD (US7427181091)",1.0832,USD,-620.00,USD,379.45,abc-123` + "\n"

	rows, err := NewParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	require.Equal(t, "01-03-2023", row.Date)
	require.Equal(t, "15:30", row.Time)
	require.Equal(t, "01-03-2023", row.ValueDate)
	require.Equal(t, "PROCTER & GAMBLE", row.Product)
	require.Equal(t, "US7427181091", row.ISIN)
	require.Equal(t, "Compra 4 Procter & Gamble@155 USD (US7427181091)", row.Description)
	require.Equal(t, "USD", row.Currency)
	require.Equal(t, "-620.00", row.Amount)
	require.Equal(t, "USD", row.BalanceCurrency)
	require.Equal(t, "379.45", row.Balance)
	require.Equal(t, "abc-123", row.OrderID)
}

func TestParseSkipsMalformedRows(t *testing.T) {
	input := exportHeader +
		"01-05-2023,09:00,01-05-2023,APPLE INC,US0378331005,Dividendo,,USD,10.00,USD,389.45,\n" +
		",,,,,\n" + // too few columns
		",09:00,01-05-2023,APPLE INC,US0378331005,Dividendo,,USD,10.00,USD,389.45,\n" // empty date

	rows, err := NewParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "Dividendo", rows[0].Description)
}

func TestParseMissingOrderIDColumn(t *testing.T) {
	input := "Fecha,Hora,Fecha valor,Producto,ISIN,Descripción,Tipo de cambio,,Variación,,Saldo\n" +
		"01-05-2023,09:00,01-05-2023,APPLE INC,US0378331005,Dividendo,,USD,10.00,USD,389.45\n"

	rows, err := NewParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Empty(t, rows[0].OrderID)
}

func TestParseShortHeaderFails(t *testing.T) {
	_, err := NewParser().Parse(strings.NewReader("Fecha,Hora,Producto\n"))
	require.Error(t, err)
}

func TestParseEmptyInputFails(t *testing.T) {
	_, err := NewParser().Parse(strings.NewReader(""))
	require.Error(t, err)
}
