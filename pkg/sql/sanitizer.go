// Package sql provides text-level hygiene for generated SQL: reserved
// alias rewriting, whitespace normalization, single-statement checks, a
// SELECT-list parser, and an injection guard over embedded literals.
package sql

import (
	"regexp"
	"strings"
)

// reservedAliases maps reserved words that completion backends like to
// use as aliases onto safe replacements.
var reservedAliases = map[string]string{
	"count": "total_count",
	"sum":   "total_sum",
	"avg":   "average_value",
	"min":   "minimum_value",
	"max":   "maximum_value",
	"order": "order_value",
	"group": "group_value",
	"user":  "user_value",
	"data":  "data_value",
}

var (
	// Matches "AS <reserved>" with word boundaries; the rewrite applies
	// only in alias position so column references stay untouched.
	aliasPattern = regexp.MustCompile(`(?i)\b(AS\s+)(count|sum|avg|min|max|order|group|user|data)\b`)

	// Whitespace runs, including newlines from generated SQL.
	whitespaceRun = regexp.MustCompile(`\s+`)

	// Major clause keywords that must be preceded by exactly one space.
	clausePattern = regexp.MustCompile(`(?i)\s+(FROM|WHERE|GROUP\s+BY|ORDER\s+BY|LIMIT)\b`)
)

// Sanitize rewrites reserved-word aliases and normalizes spacing.
// It is a pure text transform and idempotent:
// Sanitize(Sanitize(x)) == Sanitize(x).
func Sanitize(sqlText string) string {
	out := aliasPattern.ReplaceAllStringFunc(sqlText, func(m string) string {
		parts := strings.Fields(m)
		if len(parts) != 2 {
			return m
		}
		replacement, ok := reservedAliases[strings.ToLower(parts[1])]
		if !ok {
			return m
		}
		return parts[0] + " " + replacement
	})

	out = clausePattern.ReplaceAllString(out, " $1")
	out = whitespaceRun.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}
