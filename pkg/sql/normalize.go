package sql

import (
	"errors"
	"strings"
)

// ErrMultipleStatements indicates the text contains more than one SQL
// statement. Only single statements are executed.
var ErrMultipleStatements = errors.New("multiple SQL statements not allowed")

// Normalize trims the statement and strips one trailing semicolon, then
// rejects anything that still contains a semicolon outside string
// literals - that means a second statement is riding along.
func Normalize(sqlText string) (string, error) {
	sqlText = strings.TrimSpace(sqlText)
	if sqlText == "" {
		return "", nil
	}

	normalized := strings.TrimRight(strings.TrimSuffix(strings.TrimRight(sqlText, " \t\n\r"), ";"), " \t\n\r")
	if containsBareSemicolon(normalized) {
		return "", ErrMultipleStatements
	}
	return normalized, nil
}

// containsBareSemicolon scans the statement and reports any semicolon
// found outside single-quoted strings or double-quoted identifiers.
// Both backslash escapes (\') and SQL doubled quotes ('') are tolerated:
// a doubled quote exits and immediately re-enters the string state,
// which nets out to staying inside it.
func containsBareSemicolon(sqlText string) bool {
	const (
		plain = iota
		inString
		inIdentifier
	)

	state := plain
	var prev rune
	for _, c := range sqlText {
		switch state {
		case plain:
			switch c {
			case ';':
				return true
			case '\'':
				state = inString
			case '"':
				state = inIdentifier
			}
		case inString:
			if c == '\'' && prev != '\\' {
				state = plain
			}
		case inIdentifier:
			if c == '"' && prev != '\\' {
				state = plain
			}
		}
		prev = c
	}
	return false
}
