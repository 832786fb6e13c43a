package sqlgen

import (
	"fmt"
	"strings"

	"github.com/meshquery-inc/meshquery-engine/pkg/models"
	"github.com/meshquery-inc/meshquery-engine/pkg/resolver"
)

// WikiSnippet pairs a catalog entry with a short slice of its wiki
// text for prompt context.
type WikiSnippet struct {
	Table models.FullyQualifiedName
	Text  string
}

const wikiSnippetMaxLength = 400

// BuildSQLPrompt assembles the generation prompt: available tables,
// documentation snippets for tables keyword-related to the question,
// the question itself, and the output rules the sanitizer expects the
// model to follow.
func BuildSQLPrompt(question string, catalog []models.FullyQualifiedName, snippets []WikiSnippet, tableLimit int) string {
	var prompt strings.Builder

	prompt.WriteString("You are a SQL generator for a data warehouse. Generate exactly one SQL query answering the question below.\n\n")

	prompt.WriteString("## Available Tables\n\n")
	shown := catalog
	if tableLimit > 0 && len(shown) > tableLimit {
		shown = shown[:tableLimit]
	}
	for _, table := range shown {
		prompt.WriteString(fmt.Sprintf("- %s\n", table))
	}
	if len(catalog) > len(shown) {
		prompt.WriteString(fmt.Sprintf("- ... and %d more\n", len(catalog)-len(shown)))
	}
	prompt.WriteString("\n")

	if len(snippets) > 0 {
		prompt.WriteString("## Table Documentation\n\n")
		for _, s := range snippets {
			text := s.Text
			if len(text) > wikiSnippetMaxLength {
				text = text[:wikiSnippetMaxLength] + "..."
			}
			prompt.WriteString(fmt.Sprintf("### %s\n%s\n\n", s.Table, text))
		}
	}

	prompt.WriteString("## Question\n\n")
	prompt.WriteString(question)
	prompt.WriteString("\n\n")

	prompt.WriteString("## Rules\n\n")
	prompt.WriteString("1. Always use fully-qualified table names exactly as listed above.\n")
	prompt.WriteString("2. Always bound the result size with a LIMIT clause unless the query is an aggregate returning one row.\n")
	prompt.WriteString("3. Never use reserved words (count, sum, avg, min, max, order, group, user, data) as column aliases.\n")
	prompt.WriteString("4. Return only the SQL statement. No explanation, no markdown.\n")

	return prompt.String()
}

// SelectSnippets picks up to limit wiki snippets for catalog entries
// that share a question keyword. Candidates are matched in catalog
// order so output is deterministic.
func SelectSnippets(question string, catalog []models.FullyQualifiedName, lookup func(models.FullyQualifiedName) string, limit int) []WikiSnippet {
	if lookup == nil || limit <= 0 {
		return nil
	}
	tokens := resolver.Tokenize(question)
	if len(tokens) == 0 {
		return nil
	}

	var snippets []WikiSnippet
	for _, table := range catalog {
		if len(snippets) >= limit {
			break
		}
		lower := strings.ToLower(table.String())
		for _, tok := range tokens {
			if strings.Contains(lower, tok) {
				if text := lookup(table); text != "" {
					snippets = append(snippets, WikiSnippet{Table: table, Text: text})
				}
				break
			}
		}
	}
	return snippets
}
