// Package classifier assigns each raw export row to a category using an
// ordered set of named, independently testable pattern rules.
package classifier

import (
	"strings"

	"github.com/username/folioparse/src/models"
)

type Classifier struct {
	rules []Rule
}

// New returns a classifier over the default rule set.
func New() *Classifier {
	return &Classifier{rules: DefaultRules}
}

// NewWithRules returns a classifier over a custom ordered rule set.
func NewWithRules(rules []Rule) *Classifier {
	return &Classifier{rules: rules}
}

// Classify assigns a category to the row and reports the name of the rule
// that matched. It is a pure function of the row's fields; unmatched rows
// come back as unsupported with an empty rule name.
func (c *Classifier) Classify(row models.RawTransaction) (models.Category, string) {
	desc := NormalizeDescription(row.Description)
	for _, rule := range c.rules {
		if rule.Match(desc) {
			return rule.Category, rule.Name
		}
	}
	return models.CategoryUnsupported, ""
}

// NormalizeDescription lowers the description and replaces non-breaking
// spaces, which the exports sprinkle into product names.
func NormalizeDescription(description string) string {
	description = strings.ReplaceAll(description, "\u00A0", " ")
	return strings.ToLower(strings.TrimSpace(description))
}
