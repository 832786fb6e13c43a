package sql

import (
	"regexp"
	"strings"

	libinjection "github.com/corazawaf/libinjection-go"
)

// literalPattern matches single-quoted string literals, tolerating SQL
// doubled-quote escapes inside them.
var literalPattern = regexp.MustCompile(`'(?:[^']|'')*'`)

// InjectionFinding describes a string literal that tripped the
// libinjection check.
type InjectionFinding struct {
	Literal     string
	Fingerprint string
}

// CheckLiterals runs libinjection over every string literal embedded in
// a generated statement. The statement structure itself is expected to
// be SQL; the literals are where question text could smuggle a payload.
// Returns nil when all literals are clean.
func CheckLiterals(sqlText string) []InjectionFinding {
	var findings []InjectionFinding
	for _, lit := range literalPattern.FindAllString(sqlText, -1) {
		value := strings.Trim(lit, "'")
		isSQLi, fingerprint := libinjection.IsSQLi(value)
		if isSQLi {
			findings = append(findings, InjectionFinding{
				Literal:     lit,
				Fingerprint: string(fingerprint),
			})
		}
	}
	return findings
}
