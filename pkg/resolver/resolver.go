// Package resolver maps a question onto one catalog entry. Resolution is
// a strict fallback chain and intentionally first-match rather than
// ranked-best-match; for identical (question, catalog) inputs the answer
// is always the same. First-match means an early catalog entry can shadow
// a better later one - a known precision limitation, accepted for
// predictability.
package resolver

import (
	"strings"

	"github.com/jinzhu/inflection"

	"github.com/meshquery-inc/meshquery-engine/pkg/models"
)

// stopwords are question tokens that never identify a table.
var stopwords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "of": {},
	"with": {}, "by": {}, "is": {}, "are": {}, "was": {}, "were": {},
	"be": {}, "been": {}, "have": {}, "has": {}, "had": {}, "do": {},
	"does": {}, "did": {}, "will": {}, "would": {}, "could": {},
	"should": {}, "may": {}, "might": {}, "can": {}, "must": {},
	"show": {}, "me": {}, "all": {}, "get": {}, "find": {}, "what": {},
	"how": {}, "many": {}, "count": {}, "list": {}, "display": {},
	"there": {}, "from": {}, "top": {}, "first": {}, "last": {},
}

// commonTableWords is a small dictionary of table-name words tried when
// no question token matches the catalog directly.
var commonTableWords = []string{
	"accounts", "customers", "users", "orders", "products",
	"demographic", "projects", "tags",
}

// Resolver resolves questions against a catalog.
type Resolver struct {
	preferredSource string
}

// New creates a Resolver. preferredSource marks the schema segment
// preferred in the final fallback tier; it may be empty.
func New(preferredSource string) *Resolver {
	return &Resolver{preferredSource: preferredSource}
}

// Resolve returns the catalog entry the question most plausibly refers
// to, or "" when the catalog is empty. The tiers, in order:
//
//  1. question tokens (stopwords and short tokens removed) matched as
//     substrings of each entry's schema or table segment;
//  2. common table-name words appearing in the question;
//  3. the first entry whose schema contains the preferred source marker;
//  4. the first catalog entry.
func (r *Resolver) Resolve(question string, catalog []models.FullyQualifiedName) models.FullyQualifiedName {
	if len(catalog) == 0 {
		return ""
	}

	tokens := Tokenize(question)

	// Tier 1: first entry containing any question token.
	for _, entry := range catalog {
		if matchesAnyToken(entry, tokens) {
			return entry
		}
	}

	// Tier 2: common table-name dictionary.
	lower := strings.ToLower(question)
	for _, word := range commonTableWords {
		if !containsWord(lower, word) {
			continue
		}
		for _, entry := range catalog {
			if strings.Contains(strings.ToLower(entry.String()), word) {
				return entry
			}
		}
	}

	// Tier 3: preferred source marker.
	if r.preferredSource != "" {
		marker := strings.ToLower(r.preferredSource)
		for _, entry := range catalog {
			if strings.Contains(strings.ToLower(entry.Schema()), marker) {
				return entry
			}
		}
	}

	// Tier 4: first entry overall.
	return catalog[0]
}

// Tokenize lowercases and whitespace-splits a question, dropping
// stopwords and tokens of two characters or fewer.
func Tokenize(question string) []string {
	var tokens []string
	for _, tok := range strings.Fields(strings.ToLower(question)) {
		tok = strings.Trim(tok, ".,;:!?\"'()")
		if len(tok) <= 2 {
			continue
		}
		if _, ok := stopwords[tok]; ok {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// matchesAnyToken reports whether the entry's schema or table segment
// contains any token, in singular or plural form, as a substring.
func matchesAnyToken(entry models.FullyQualifiedName, tokens []string) bool {
	schema := strings.ToLower(entry.Schema())
	table := strings.ToLower(entry.Table())
	for _, tok := range tokens {
		for _, form := range tokenForms(tok) {
			if strings.Contains(schema, form) || strings.Contains(table, form) {
				return true
			}
		}
	}
	return false
}

// tokenForms returns the token plus its singular/plural counterpart, so
// "account" finds an "accounts" table and vice versa.
func tokenForms(tok string) []string {
	forms := []string{tok}
	if s := inflection.Singular(tok); s != tok {
		forms = append(forms, s)
	}
	if p := inflection.Plural(tok); p != tok {
		forms = append(forms, p)
	}
	return forms
}

func containsWord(haystack, word string) bool {
	idx := strings.Index(haystack, word)
	for idx >= 0 {
		before := idx == 0 || !isWordChar(haystack[idx-1])
		afterIdx := idx + len(word)
		after := afterIdx >= len(haystack) || !isWordChar(haystack[afterIdx])
		if before && after {
			return true
		}
		next := strings.Index(haystack[idx+1:], word)
		if next < 0 {
			break
		}
		idx += 1 + next
	}
	return false
}

func isWordChar(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
}
