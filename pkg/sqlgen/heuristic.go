package sqlgen

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/meshquery-inc/meshquery-engine/pkg/models"
)

// topNPattern captures the row count in "top 5 accounts" phrasings.
var topNPattern = regexp.MustCompile(`(?i)\btop\s+(\d+)\b`)

// displayKeywords mark a display-style question when no more specific
// template applies.
var displayKeywords = []string{"show me", "display", "list"}

// Heuristic generates SQL from fixed templates keyed on question
// keywords. It needs no external service and always succeeds when a
// table is available.
type Heuristic struct {
	displayLimit int
	sampleLimit  int
}

// NewHeuristic creates the template strategy with its result bounds.
func NewHeuristic(displayLimit, sampleLimit int) *Heuristic {
	return &Heuristic{displayLimit: displayLimit, sampleLimit: sampleLimit}
}

// Generate picks a template by keyword family, most specific first:
// count, top-N, display, then a generic bounded select. Returns nil
// only when no table was resolved.
func (h *Heuristic) Generate(question string, qIntent models.Intent, table models.FullyQualifiedName) *models.SQLStatement {
	if table == "" {
		return nil
	}
	lower := strings.ToLower(question)

	switch {
	case qIntent.Type == models.IntentCountQuery || strings.Contains(lower, "how many") || strings.Contains(lower, "count"):
		return &models.SQLStatement{
			SQL:         fmt.Sprintf("SELECT COUNT(*) as total_count FROM %s", table),
			Intent:      qIntent,
			Table:       table,
			Aggregation: models.AggCount,
		}

	case topNPattern.MatchString(lower):
		n := topNPattern.FindStringSubmatch(lower)[1]
		return &models.SQLStatement{
			SQL:    fmt.Sprintf("SELECT * FROM %s LIMIT %s", table, n),
			Intent: qIntent,
			Table:  table,
		}

	case containsAny(lower, displayKeywords):
		return &models.SQLStatement{
			SQL:    fmt.Sprintf("SELECT * FROM %s LIMIT %d", table, h.displayLimit),
			Intent: qIntent,
			Table:  table,
		}

	default:
		return &models.SQLStatement{
			SQL:    fmt.Sprintf("SELECT * FROM %s LIMIT %d", table, h.sampleLimit),
			Intent: qIntent,
			Table:  table,
		}
	}
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
