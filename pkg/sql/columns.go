package sql

import (
	"strings"
)

// selectListTerminators end the SELECT list.
var selectListTerminators = []string{" from ", " where ", " group ", " order ", " limit ", ";"}

// SelectedColumns extracts the output column names of a SELECT statement.
// Aliased expressions report the alias; bare functions report the
// function name. Returns nil for "SELECT *" and for non-SELECT text -
// without a schema the star cannot be expanded here.
func SelectedColumns(sqlText string) []string {
	trimmed := strings.TrimSpace(sqlText)
	lower := strings.ToLower(trimmed)

	start := strings.Index(lower, "select")
	if start != 0 {
		return nil
	}

	end := len(trimmed)
	for _, term := range selectListTerminators {
		if idx := strings.Index(lower, term); idx >= 0 && idx < end {
			end = idx
		}
	}

	list := strings.TrimSpace(trimmed[len("select"):end])
	list = strings.TrimSpace(strings.TrimPrefix(list, "DISTINCT"))
	list = strings.TrimSpace(strings.TrimPrefix(list, "distinct"))
	if list == "" || strings.HasPrefix(list, "*") {
		return nil
	}

	var names []string
	for _, expr := range splitTopLevel(list) {
		if name := columnName(expr); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// splitTopLevel splits a SELECT list on commas that are not nested
// inside parentheses, so "COUNT(*), MAX(a, b) AS m" yields two entries.
func splitTopLevel(list string) []string {
	var parts []string
	depth := 0
	begin := 0
	for i, c := range list {
		switch c {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(list[begin:i]))
				begin = i + 1
			}
		}
	}
	if last := strings.TrimSpace(list[begin:]); last != "" {
		parts = append(parts, last)
	}
	return parts
}

// columnName resolves one SELECT expression to its output name.
func columnName(expr string) string {
	lower := strings.ToLower(expr)
	if idx := strings.LastIndex(lower, " as "); idx >= 0 {
		return strings.Trim(strings.TrimSpace(expr[idx+4:]), `"`)
	}

	// Function call: report the function name.
	if paren := strings.IndexByte(expr, '('); paren >= 0 {
		return strings.ToLower(strings.TrimSpace(expr[:paren]))
	}

	// Strip a table qualifier.
	if dot := strings.LastIndexByte(expr, '.'); dot >= 0 {
		expr = expr[dot+1:]
	}
	return strings.Trim(strings.TrimSpace(expr), `"`)
}
