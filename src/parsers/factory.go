package parsers

import (
	"fmt"

	"github.com/username/folioparse/src/parsers/degiro"
)

// GetParser returns the parser for a source identifier. Only the DEGIRO
// account export is supported.
func GetParser(source string) (Parser, error) {
	switch source {
	case "degiro":
		return degiro.NewParser(), nil
	default:
		return nil, fmt.Errorf("%w: no parser available for source: %s", ErrParse, source)
	}
}
