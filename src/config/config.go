package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	LogLevel               string
	RatesDataPath          string
	DividendExceptionsPath string
	ProductRenamesPath     string
	NoisePatternsPath      string
	ReportingCurrency      string
	OutputDir              string
	DateFormat             string
}

var Cfg *AppConfig

func LoadConfig() {
	errEnv := godotenv.Load()
	if errEnv != nil {
		log.Println("Info: No .env file found or error loading .env file. Relying on OS environment variables and defaults. Error (if any):", errEnv)
	} else {
		log.Println(".env file loaded successfully.")
	}

	log.Println("Loading application configuration...")

	reportingCurrency := getEnv("REPORTING_CURRENCY", "EUR")
	if reportingCurrency != "EUR" {
		log.Printf("WARNING: REPORTING_CURRENCY '%s' is not EUR; rate-series files are keyed as EUR_to_<CCY> and must match.", reportingCurrency)
	}

	Cfg = &AppConfig{
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		RatesDataPath:          getEnv("RATES_DATA_PATH", "data/currency_conversion_rates.csv"),
		DividendExceptionsPath: getEnv("DIVIDEND_EXCEPTIONS_PATH", "data/dividend_exceptions.json"),
		ProductRenamesPath:     getEnv("PRODUCT_RENAMES_PATH", "data/product_renames.json"),
		NoisePatternsPath:      getEnv("NOISE_PATTERNS_PATH", "data/noise_patterns.json"),
		ReportingCurrency:      reportingCurrency,
		OutputDir:              getEnv("OUTPUT_DIR", "output"),
		DateFormat:             getEnv("DATE_FORMAT", "02-01-2006"),
	}

	log.Printf("Configuration loaded: LogLevel=%s, RatesDataPath=%s, OutputDir=%s",
		Cfg.LogLevel, Cfg.RatesDataPath, Cfg.OutputDir)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Printf("Environment variable %s not set, using default: %s", key, fallback)
	return fallback
}
