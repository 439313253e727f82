package services

import (
	"errors"
	"io"

	"github.com/username/folioparse/src/models"
)

var (
	ErrParsingFailed = errors.New("file parsing failed")
)

// ReportService runs the whole batch over one account export and returns
// the structured report.
type ReportService interface {
	GenerateReport(fileReader io.Reader, source string) (*models.Report, error)
}
