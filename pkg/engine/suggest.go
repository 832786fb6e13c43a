package engine

import (
	"context"
	_ "embed"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed suggestions.yaml
var suggestionsYAML []byte

// skeletons are the fixed suggestion templates, loaded once at startup.
var skeletons = loadSkeletons()

func loadSkeletons() []string {
	var doc struct {
		Skeletons []string `yaml:"skeletons"`
	}
	if err := yaml.Unmarshal(suggestionsYAML, &doc); err != nil {
		// The file is embedded at build time; a parse failure here is a
		// packaging bug, not a runtime condition.
		panic("parse suggestions.yaml: " + err.Error())
	}
	return doc.Skeletons
}

// Suggest prefix-matches the partial input against catalog names and
// the fixed skeletons, catalog first. Catalog failures degrade to
// skeleton-only suggestions.
func (e *engine) Suggest(ctx context.Context, partial string) []string {
	prefix := strings.ToLower(strings.TrimSpace(partial))
	limit := e.query.SuggestLimit

	suggestions := []string{}
	if prefix == "" {
		for _, s := range skeletons {
			if len(suggestions) >= limit {
				break
			}
			suggestions = append(suggestions, s)
		}
		return suggestions
	}

	catalog, err := e.warehouse.ListTables(ctx)
	if err != nil {
		e.logger.Debug("catalog listing failed during suggest", zap.Error(err))
	}
	for _, table := range catalog {
		if len(suggestions) >= limit {
			return suggestions
		}
		name := table.String()
		if strings.HasPrefix(strings.ToLower(name), prefix) ||
			strings.HasPrefix(strings.ToLower(table.Table()), prefix) {
			suggestions = append(suggestions, name)
		}
	}

	for _, s := range skeletons {
		if len(suggestions) >= limit {
			break
		}
		if strings.HasPrefix(strings.ToLower(s), prefix) {
			suggestions = append(suggestions, s)
		}
	}
	return suggestions
}
