// Package intent classifies questions into a closed set of intents using
// an ordered table of pattern groups. Precedence is positional: the first
// group containing a matching pattern wins, so more specific intents must
// appear before generic ones ("show me all tables" is table exploration,
// not a data query, because exploration is checked first).
package intent

import (
	"regexp"
	"strings"

	"github.com/meshquery-inc/meshquery-engine/pkg/models"
)

// patternGroup binds an intent to the patterns that select it.
type patternGroup struct {
	intent   models.IntentType
	patterns []*regexp.Regexp
}

// groups is the precedence table. Order is the contract; do not sort.
var groups = []patternGroup{
	{
		intent: models.IntentTableExploration,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b(show|list|display|get)\s+(me\s+)?(all\s+)?(tables?|datasets?|sources)\b`),
			regexp.MustCompile(`\bwhat\s+(tables?|datasets?)\s+(are\s+)?(available|there|exist)\b`),
			regexp.MustCompile(`\b(available|existing)\s+(tables?|datasets?)\b`),
		},
	},
	{
		intent: models.IntentMetadataRequest,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b(describe|tell\s+me\s+about)\b`),
			regexp.MustCompile(`\bexplain\s+(the\s+)?(table|dataset|data|schema)\b`),
			regexp.MustCompile(`\b(metadata|documentation|wiki|schema|structure)\b`),
			regexp.MustCompile(`\b(information|details)\s+(about|for|on)\b`),
			regexp.MustCompile(`\bwhat\s+(columns?|fields?)\s+(does|do|are)\b`),
			regexp.MustCompile(`\b(columns?|fields?)\s+(of|in)\b`),
		},
	},
	{
		intent: models.IntentAggregationQuery,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b(sum|total)\s+of\b`),
			regexp.MustCompile(`\b(average|avg|mean)\b`),
			regexp.MustCompile(`\b(max|maximum|highest|largest)\b`),
			regexp.MustCompile(`\b(min|minimum|lowest|smallest)\b`),
			regexp.MustCompile(`\bgroup(ed)?\s+by\b`),
		},
	},
	{
		intent: models.IntentCountQuery,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\bhow\s+many\b`),
			regexp.MustCompile(`\bcount\b`),
			regexp.MustCompile(`\bnumber\s+of\b`),
		},
	},
	{
		intent: models.IntentFieldSelection,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b(just|only)\s+(the\s+)?\w+`),
			regexp.MustCompile(`\bwhat\s+(is|are)\s+the\s+\w+\s+(of|for|in)\b`),
			regexp.MustCompile(`\b\w+\s+and\s+\w+\s+(of|from|for)\b`),
		},
	},
	{
		intent: models.IntentDataQuery,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b(show\s+me|display|list|get|fetch|retrieve|find)\b`),
			regexp.MustCompile(`\btop\s+\d+\b`),
			regexp.MustCompile(`\b(first|last)\s+\d+\b`),
			regexp.MustCompile(`\b(where|filter)\b`),
			regexp.MustCompile(`\b(records?|rows?|data)\b`),
		},
	},
}

// aggregationPatterns maps aggregate kinds to the phrases that imply them.
var aggregationPatterns = []struct {
	kind    models.AggregationKind
	pattern *regexp.Regexp
}{
	{models.AggCount, regexp.MustCompile(`\bcount\b|\bhow\s+many\b|\bnumber\s+of\b`)},
	{models.AggSum, regexp.MustCompile(`\bsum\b|\btotal\b`)},
	{models.AggAvg, regexp.MustCompile(`\baverage\b|\bavg\b|\bmean\b`)},
	{models.AggMax, regexp.MustCompile(`\bmax\b|\bmaximum\b|\bhighest\b|\blargest\b`)},
	{models.AggMin, regexp.MustCompile(`\bmin\b|\bminimum\b|\blowest\b|\bsmallest\b`)},
}

var (
	dottedNamePattern = regexp.MustCompile(`\b[a-zA-Z_][a-zA-Z0-9_]*(\.[a-zA-Z_][a-zA-Z0-9_]*)+\b`)
	namedTablePattern = regexp.MustCompile(`\b(?:table|dataset)\s+([a-zA-Z_][a-zA-Z0-9_]*)\b`)
	sourceFilterPattern = regexp.MustCompile(`\bsource[:\s]+([a-zA-Z_][a-zA-Z0-9_]*)`)
)

// Classify determines the intent of a question and extracts the derived
// attributes the downstream components need. Extraction never fails;
// absent entities or aggregations are simply empty.
func Classify(question string) models.Intent {
	lower := strings.ToLower(question)

	out := models.Intent{Type: models.IntentGeneral}
	for _, g := range groups {
		for _, p := range g.patterns {
			if p.MatchString(lower) {
				out.Type = g.intent
				break
			}
		}
		if out.Type != models.IntentGeneral {
			break
		}
	}

	switch out.Type {
	case models.IntentMetadataRequest, models.IntentDataQuery, models.IntentFieldSelection:
		out.Entities = extractEntities(question)
	case models.IntentAggregationQuery, models.IntentCountQuery:
		out.Aggregations = extractAggregations(lower)
	case models.IntentTableExploration:
		if m := sourceFilterPattern.FindStringSubmatch(lower); m != nil {
			out.Filters = map[string]string{"source": m[1]}
		}
	}

	return out
}

// extractEntities pulls candidate table references out of the question:
// dotted names first, then names following "table"/"dataset".
func extractEntities(question string) []string {
	var entities []string
	seen := make(map[string]struct{})
	add := func(s string) {
		if _, ok := seen[s]; !ok {
			seen[s] = struct{}{}
			entities = append(entities, s)
		}
	}

	for _, m := range dottedNamePattern.FindAllString(question, -1) {
		add(m)
	}
	for _, m := range namedTablePattern.FindAllStringSubmatch(strings.ToLower(question), -1) {
		add(m[1])
	}
	return entities
}

func extractAggregations(lower string) []models.AggregationKind {
	var kinds []models.AggregationKind
	for _, ap := range aggregationPatterns {
		if ap.pattern.MatchString(lower) {
			kinds = append(kinds, ap.kind)
		}
	}
	return kinds
}
