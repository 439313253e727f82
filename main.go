package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/username/folioparse/src/classifier"
	"github.com/username/folioparse/src/config"
	"github.com/username/folioparse/src/logger"
	"github.com/username/folioparse/src/models"
	"github.com/username/folioparse/src/processors"
	"github.com/username/folioparse/src/services"
	"github.com/username/folioparse/src/utils"
	"github.com/username/folioparse/src/validation"
)

func main() {
	inputPath := flag.String("input", "", "path to the account export CSV (required)")
	source := flag.String("source", "degiro", "export source format")
	ratesPath := flag.String("rates", "", "path to the rate series CSV (overrides RATES_DATA_PATH)")
	outputDir := flag.String("out", "", "output directory (overrides OUTPUT_DIR)")
	flag.Parse()

	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)
	logger.L.Info("folioparse batch starting...")

	if *inputPath == "" {
		logger.L.Error("Missing required -input flag")
		flag.Usage()
		os.Exit(1)
	}
	if *ratesPath == "" {
		*ratesPath = config.Cfg.RatesDataPath
	}
	if *outputDir == "" {
		*outputDir = config.Cfg.OutputDir
	}

	rateTable, err := processors.NewRateTableFromCSV(*ratesPath)
	if err != nil {
		logger.L.Error("Failed to load rate table", "path", *ratesPath, "error", err)
		os.Exit(1)
	}
	exceptions, err := validation.LoadExceptionTable(config.Cfg.DividendExceptionsPath)
	if err != nil {
		logger.L.Error("Failed to load dividend exception table", "error", err)
		os.Exit(1)
	}
	renames, err := services.LoadProductRenames(config.Cfg.ProductRenamesPath)
	if err != nil {
		logger.L.Error("Failed to load product renames", "error", err)
		os.Exit(1)
	}
	noisePatterns, err := services.LoadNoisePatterns(config.Cfg.NoisePatternsPath)
	if err != nil {
		logger.L.Error("Failed to load noise patterns", "error", err)
		os.Exit(1)
	}

	reportService := services.NewReportService(
		classifier.New(),
		validation.NewValidator(rateTable, exceptions),
		processors.NewNormalizer(rateTable),
		renames,
		noisePatterns,
	)

	file, err := os.Open(*inputPath)
	if err != nil {
		logger.L.Error("Failed to open account export", "path", *inputPath, "error", err)
		os.Exit(1)
	}
	defer file.Close()

	report, err := reportService.GenerateReport(file, *source)
	if err != nil {
		logger.L.Error("Batch failed", "error", err)
		os.Exit(1)
	}

	if err := writeOutputs(*outputDir, report); err != nil {
		logger.L.Error("Failed to write outputs", "dir", *outputDir, "error", err)
		os.Exit(1)
	}

	logger.L.Info("Batch finished",
		"runID", report.RunID,
		"buys", len(report.Buys),
		"sells", len(report.Sells),
		"dividends", len(report.Dividends),
		"issues", len(report.Issues),
		"auditRows", len(report.Audit))
	for _, issue := range report.Issues {
		logger.L.Warn("Validation issue", "rule", issue.Rule, "date", issue.Date, "isin", issue.ISIN, "reason", issue.Reason)
	}
}

func writeOutputs(dir string, report *models.Report) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	exports := map[string][]models.ClassifiedTransaction{
		"degiro_buys.csv":      report.Buys,
		"degiro_sells.csv":     report.Sells,
		"degiro_dividends.csv": report.Dividends,
		"degiro_deposits.csv":  report.Deposits,
		"degiro_fees.csv":      report.Fees,
	}
	for name, txs := range exports {
		if err := writeTransactionsCSV(filepath.Join(dir, name), txs); err != nil {
			return err
		}
	}

	summaryFile, err := os.Create(filepath.Join(dir, "portfolio_summary.json"))
	if err != nil {
		return fmt.Errorf("creating summary file: %w", err)
	}
	defer summaryFile.Close()

	encoder := json.NewEncoder(summaryFile)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report.Summary); err != nil {
		return fmt.Errorf("writing summary JSON: %w", err)
	}
	return nil
}

func writeTransactionsCSV(path string, txs []models.ClassifiedTransaction) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating '%s': %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"date", "category", "product", "isin", "quantity", "price", "amount", "currency", "amount_eur", "tax_amount_eur", "unpaired", "isin_mismatch", "no_rate"}
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, tx := range txs {
		record := []string{
			tx.Date.Format(utils.DefaultDateFormat),
			string(tx.Category),
			tx.Product,
			tx.ISIN,
			strconv.Itoa(tx.Quantity),
			strconv.FormatFloat(tx.Price, 'f', -1, 64),
			strconv.FormatFloat(tx.Amount, 'f', 2, 64),
			tx.Currency,
			strconv.FormatFloat(tx.AmountEUR, 'f', 2, 64),
			strconv.FormatFloat(tx.TaxAmountEUR, 'f', 2, 64),
			strconv.FormatBool(tx.Unpaired),
			strconv.FormatBool(tx.ISINMismatch),
			strconv.FormatBool(tx.NoRate),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	return writer.Error()
}
