// Package wiki parses the semi-structured markdown attached to tables
// into a fixed set of metadata fields. Parsing is deterministic, line
// oriented, and never fails: malformed or empty input yields an
// all-default record.
package wiki

import (
	"bufio"
	"strings"

	"github.com/meshquery-inc/meshquery-engine/pkg/models"
)

// section is the parser state: which field narrative lines append to.
type section int

const (
	sectionNone section = iota
	sectionDescription
	sectionPurpose
	sectionSource
	sectionFrequency
	sectionOwner
	sectionUsage
	sectionQuality
	sectionColumns
)

// headingSections maps level-2 heading keywords to states, checked in
// order so "update frequency" resolves before the bare "update" keyword.
var headingSections = []struct {
	keyword string
	state   section
}{
	{"purpose", sectionPurpose},
	{"source", sectionSource},
	{"frequency", sectionFrequency},
	{"update", sectionFrequency},
	{"owner", sectionOwner},
	{"usage", sectionUsage},
	{"quality", sectionQuality},
	{"columns", sectionColumns},
}

// Parse converts raw wiki markdown into its fixed-shape field record.
func Parse(rawText string) models.WikiFields {
	fields := models.WikiFields{
		Tags:               []string{},
		ColumnDescriptions: map[string]string{},
	}
	if strings.TrimSpace(rawText) == "" {
		return fields
	}

	state := sectionNone
	scanner := bufio.NewScanner(strings.NewReader(rawText))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "# ") && !strings.HasPrefix(line, "## "):
			// A level-1 heading restarts the description.
			state = sectionDescription
			fields.Description = strings.TrimSpace(line[2:])

		case strings.HasPrefix(line, "## "):
			state = headingState(line[3:])

		case strings.HasPrefix(line, "**") && strings.Contains(line, ":"):
			applyBoldOverride(&fields, line)

		case strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* "):
			item := strings.TrimSpace(line[2:])
			if state == sectionColumns {
				if name, desc, ok := strings.Cut(item, ":"); ok {
					fields.ColumnDescriptions[strings.TrimSpace(name)] = strings.TrimSpace(desc)
				}
			} else if strings.Contains(strings.ToLower(item), "tag") || strings.HasPrefix(item, "#") {
				if tag := strings.TrimSpace(strings.ReplaceAll(item, "#", "")); tag != "" {
					fields.Tags = append(fields.Tags, tag)
				}
			}

		default:
			appendNarrative(&fields, state, line)
		}
	}

	return fields
}

// headingState resolves a level-2 heading to a state. Headings with no
// recognized keyword reset the state so stray narrative is dropped.
func headingState(heading string) section {
	lower := strings.ToLower(strings.TrimSpace(heading))
	for _, hs := range headingSections {
		if strings.Contains(lower, hs.keyword) {
			return hs.state
		}
	}
	return sectionNone
}

// applyBoldOverride handles "**Key:** value" lines, which assign a field
// directly regardless of the current section.
func applyBoldOverride(fields *models.WikiFields, line string) {
	key, value, ok := strings.Cut(line, ":")
	if !ok {
		return
	}
	key = strings.ToLower(strings.TrimSpace(strings.ReplaceAll(key, "*", "")))
	value = strings.TrimSpace(strings.ReplaceAll(value, "*", ""))

	switch {
	case strings.Contains(key, "description"):
		fields.Description = value
	case strings.Contains(key, "purpose"):
		fields.BusinessPurpose = value
	case strings.Contains(key, "source"):
		fields.DataSource = value
	case strings.Contains(key, "frequency"), strings.Contains(key, "update"):
		fields.UpdateFrequency = value
	case strings.Contains(key, "owner"):
		fields.Owner = value
	}
}

// appendNarrative space-joins a free text line onto the current section's
// field, preserving prose spread across multiple lines.
func appendNarrative(fields *models.WikiFields, state section, line string) {
	target := narrativeTarget(fields, state)
	if target == nil {
		return
	}
	if *target == "" {
		*target = line
	} else {
		*target += " " + line
	}
}

func narrativeTarget(fields *models.WikiFields, state section) *string {
	switch state {
	case sectionDescription:
		return &fields.Description
	case sectionPurpose:
		return &fields.BusinessPurpose
	case sectionSource:
		return &fields.DataSource
	case sectionFrequency:
		return &fields.UpdateFrequency
	case sectionOwner:
		return &fields.Owner
	case sectionUsage:
		return &fields.UsageNotes
	case sectionQuality:
		return &fields.DataQualityNotes
	default:
		// NONE and COLUMNS accept no narrative text.
		return nil
	}
}
