package sqlgen

import (
	"regexp"
	"strings"
)

// fencePattern matches a markdown code fence wrapper, with or without
// a language tag, around the whole response.
var fencePattern = regexp.MustCompile("(?s)^\\s*```[a-zA-Z]*\\s*\\n?(.*?)\\n?\\s*```\\s*$")

// ExtractSQL strips markdown code-fence wrappers and surrounding
// whitespace from a completion response. Returns "" when nothing
// usable remains.
func ExtractSQL(response string) string {
	trimmed := strings.TrimSpace(response)
	if m := fencePattern.FindStringSubmatch(trimmed); m != nil {
		trimmed = strings.TrimSpace(m[1])
	}
	return trimmed
}
