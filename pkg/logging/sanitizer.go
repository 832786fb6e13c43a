package logging

import (
	"regexp"
)

const (
	// MaxQueryLogLength is the maximum length of a SQL statement to log.
	MaxQueryLogLength = 200
	// RedactedText is the replacement text for sensitive data.
	RedactedText = "[REDACTED]"
)

var (
	// password=xxx, pwd=xxx, pass=xxx (until next delimiter)
	passwordPattern = regexp.MustCompile(`(?i)(password|pwd|pass)=[^;&\s]+`)

	// api keys in query strings or DSNs
	apiKeyPattern = regexp.MustCompile(`(?i)(api[_-]?key|apikey|token)=[A-Za-z0-9-_]{8,}`)

	// user:pass@host credentials in URL-style connection strings
	connStringPattern = regexp.MustCompile(`://[^:/\s]+:[^@\s]+@[^/\s]+`)
)

// SanitizeConnectionString removes credentials from connection strings
// before they reach a log line.
func SanitizeConnectionString(connStr string) string {
	if connStr == "" {
		return ""
	}
	sanitized := passwordPattern.ReplaceAllString(connStr, "${1}="+RedactedText)
	sanitized = apiKeyPattern.ReplaceAllString(sanitized, "${1}="+RedactedText)
	sanitized = connStringPattern.ReplaceAllString(sanitized, "://"+RedactedText+"@"+RedactedText)
	return sanitized
}

// TruncateSQL shortens a SQL statement for logging.
func TruncateSQL(sql string) string {
	if len(sql) <= MaxQueryLogLength {
		return sql
	}
	return sql[:MaxQueryLogLength] + "..."
}
