package parsers

import (
	"errors"
	"io"

	"github.com/username/folioparse/src/models"
)

// ErrParse is the sentinel for structural failures on the whole input
// file: unreadable content, missing header, wrong column count. Per-row
// problems are not parse errors; they surface later as audit entries.
var ErrParse = errors.New("parse failed")

// Parser reads one broker export into raw transaction rows.
type Parser interface {
	Parse(file io.Reader) ([]models.RawTransaction, error)
}
