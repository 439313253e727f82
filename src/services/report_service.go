package services

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/username/folioparse/src/classifier"
	"github.com/username/folioparse/src/extractors"
	"github.com/username/folioparse/src/logger"
	"github.com/username/folioparse/src/models"
	"github.com/username/folioparse/src/parsers"
	"github.com/username/folioparse/src/processors"
	"github.com/username/folioparse/src/utils"
	"github.com/username/folioparse/src/validation"
)

const (
	ckReport = "report_%s" // keyed by input content hash

	DefaultCacheExpiration = 15 * time.Minute
	CacheCleanupInterval   = 30 * time.Minute
)

type reportServiceImpl struct {
	classifier        *classifier.Classifier
	buyExtractor      *extractors.BuyExtractor
	sellExtractor     *extractors.SellExtractor
	dividendExtractor *extractors.DividendExtractor
	cashExtractor     *extractors.CashExtractor
	validator         *validation.Validator
	normalizer        *processors.Normalizer
	summaryProcessor  *processors.SummaryProcessor
	holdingsProcessor *processors.HoldingsProcessor
	productRenames    map[string]string
	noisePatterns     []string
	reportCache       *cache.Cache
}

// NewReportService wires the pipeline stages together. productRenames and
// noisePatterns come from the externalized data tables and may be empty.
func NewReportService(
	rowClassifier *classifier.Classifier,
	validator *validation.Validator,
	normalizer *processors.Normalizer,
	productRenames map[string]string,
	noisePatterns []string,
) ReportService {
	return &reportServiceImpl{
		classifier:        rowClassifier,
		buyExtractor:      extractors.NewBuyExtractor(),
		sellExtractor:     extractors.NewSellExtractor(),
		dividendExtractor: extractors.NewDividendExtractor(),
		cashExtractor:     extractors.NewCashExtractor(),
		validator:         validator,
		normalizer:        normalizer,
		summaryProcessor:  processors.NewSummaryProcessor(),
		holdingsProcessor: processors.NewHoldingsProcessor(),
		productRenames:    productRenames,
		noisePatterns:     noisePatterns,
		reportCache:       cache.New(DefaultCacheExpiration, CacheCleanupInterval),
	}
}

// GenerateReport runs the two-phase batch: (a) classify and extract every
// row independently, (b) group-level validation, then normalization and
// aggregation. Per-row failures are isolated into the audit trail; only
// structural failures on the whole file return an error.
func (s *reportServiceImpl) GenerateReport(fileReader io.Reader, source string) (*models.Report, error) {
	overallStartTime := time.Now()

	content, err := io.ReadAll(fileReader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}
	cacheKey := fmt.Sprintf(ckReport, contentHash(content))
	if cached, found := s.reportCache.Get(cacheKey); found {
		logger.L.Info("Returning cached report", "source", source)
		return cached.(*models.Report), nil
	}

	parser, err := parsers.GetParser(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}
	rawRows, err := parser.Parse(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}

	report := &models.Report{}

	// Phase (a): per-row classification and extraction.
	var extracted []models.ClassifiedTransaction
	for _, row := range rawRows {
		if reason, noisy := s.noiseReason(row); noisy {
			report.Audit = append(report.Audit, models.AuditEntry{Row: row, Reason: reason})
			continue
		}
		row.Product = s.renameProduct(row.Product)

		category, ruleName := s.classifier.Classify(row)
		if category == models.CategoryUnsupported {
			report.Audit = append(report.Audit, models.AuditEntry{Row: row, Reason: "unsupported: no classification rule matched"})
			continue
		}

		tx, err := s.extract(row, category, ruleName)
		if err != nil {
			report.Audit = append(report.Audit, models.AuditEntry{Row: row, Reason: err.Error()})
			continue
		}
		extracted = append(extracted, tx)
	}

	// Phase (b): cross-row validation over the full extracted set.
	clean, issues := s.validator.Validate(extracted)

	var normalized []models.ClassifiedTransaction
	for _, tx := range clean {
		normalizedTx, err := s.normalizer.Normalize(tx)
		if err != nil {
			if errors.Is(err, processors.ErrRateUnavailable) {
				issues = append(issues, models.ValidationIssue{
					Rule:        validation.RuleNoRate,
					Date:        tx.Date.Format(utils.DefaultDateFormat),
					ISIN:        tx.ISIN,
					Description: tx.Description,
					Reason:      err.Error(),
				})
				normalized = append(normalized, normalizedTx) // kept, flagged no-rate
				continue
			}
			return nil, fmt.Errorf("normalizing transaction on %s: %w", tx.Date.Format(utils.DefaultDateFormat), err)
		}
		normalized = append(normalized, normalizedTx)
	}

	s.bucket(report, normalized)
	report.Issues = issues
	report.Holdings = s.holdingsProcessor.Process(report.Buys, append(report.Sells, disposals(report.CorporateActions)...))
	report.Summary = s.summaryProcessor.Calculate(normalized, issues)
	report.RunID = report.Summary.RunID

	s.reportCache.Set(cacheKey, report, cache.DefaultExpiration)
	logger.L.Info("Report generated",
		"runID", report.RunID,
		"rows", len(rawRows),
		"clean", len(normalized),
		"issues", len(issues),
		"duration", time.Since(overallStartTime))
	return report, nil
}

// extract routes a classified row to its category extractor.
// Corporate-action rows with trade phrasing go through the trade
// extractors so disposals keep quantity and price.
func (s *reportServiceImpl) extract(row models.RawTransaction, category models.Category, ruleName string) (models.ClassifiedTransaction, error) {
	switch category {
	case models.CategoryBuy:
		return s.buyExtractor.Extract(row, category, ruleName)
	case models.CategorySell:
		return s.sellExtractor.Extract(row, category, ruleName)
	case models.CategoryDividend, models.CategoryWithholdingTax:
		return s.dividendExtractor.Extract(row, category, ruleName)
	case models.CategoryCorporateAction:
		if extractors.HasTradePhrasing(row.Description) {
			if extractors.IsDisposal(row.Description) {
				return s.sellExtractor.Extract(row, category, ruleName)
			}
			return s.buyExtractor.Extract(row, category, ruleName)
		}
		return s.cashExtractor.Extract(row, category, ruleName)
	default:
		return s.cashExtractor.Extract(row, category, ruleName)
	}
}

func (s *reportServiceImpl) bucket(report *models.Report, txs []models.ClassifiedTransaction) {
	for _, tx := range txs {
		switch tx.Category {
		case models.CategoryBuy:
			report.Buys = append(report.Buys, tx)
		case models.CategorySell:
			report.Sells = append(report.Sells, tx)
		case models.CategoryDividend:
			report.Dividends = append(report.Dividends, tx)
		case models.CategoryWithholdingTax:
			report.Withholdings = append(report.Withholdings, tx)
		case models.CategoryDeposit:
			report.Deposits = append(report.Deposits, tx)
		case models.CategoryWithdrawal:
			report.Withdrawals = append(report.Withdrawals, tx)
		case models.CategoryFee:
			report.Fees = append(report.Fees, tx)
		case models.CategoryCorporateAction:
			report.CorporateActions = append(report.CorporateActions, tx)
		case models.CategoryInternalTransfer:
			report.InternalTransfers = append(report.InternalTransfers, tx)
		}
	}
}

func (s *reportServiceImpl) noiseReason(row models.RawTransaction) (string, bool) {
	desc := classifier.NormalizeDescription(row.Description)
	for _, pattern := range s.noisePatterns {
		if strings.Contains(desc, strings.ToLower(pattern)) {
			return fmt.Sprintf("noise: description matches %q", pattern), true
		}
	}
	return "", false
}

func (s *reportServiceImpl) renameProduct(product string) string {
	if renamed, ok := s.productRenames[product]; ok {
		return renamed
	}
	return product
}

// disposals filters corporate-action rows down to the ones that actually
// dispose of shares.
func disposals(corporateActions []models.ClassifiedTransaction) []models.ClassifiedTransaction {
	var out []models.ClassifiedTransaction
	for _, tx := range corporateActions {
		if tx.Quantity > 0 && extractors.IsDisposal(tx.Description) {
			out = append(out, tx)
		}
	}
	return out
}

func contentHash(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}
