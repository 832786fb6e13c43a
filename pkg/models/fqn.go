package models

import "strings"

// FullyQualifiedName is the canonical dotted identifier for a table:
// "source.schema.table" or "schema.table". All catalog entries are
// normalized into this form at the collaborator boundary; downstream code
// never branches on how a collaborator represented the entry.
type FullyQualifiedName string

// NewFQN joins non-empty segments into a FullyQualifiedName.
func NewFQN(segments ...string) FullyQualifiedName {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		s = strings.TrimSpace(s)
		if s != "" {
			parts = append(parts, s)
		}
	}
	return FullyQualifiedName(strings.Join(parts, "."))
}

// String returns the dotted form.
func (f FullyQualifiedName) String() string {
	return string(f)
}

// Segments returns the dotted parts of the name.
func (f FullyQualifiedName) Segments() []string {
	if f == "" {
		return nil
	}
	return strings.Split(string(f), ".")
}

// Source returns the leading segment when the name has three or more
// parts, otherwise "".
func (f FullyQualifiedName) Source() string {
	segs := f.Segments()
	if len(segs) >= 3 {
		return segs[0]
	}
	return ""
}

// Schema returns the schema portion: everything except the final segment.
func (f FullyQualifiedName) Schema() string {
	segs := f.Segments()
	if len(segs) < 2 {
		return ""
	}
	return strings.Join(segs[:len(segs)-1], ".")
}

// Table returns the final segment.
func (f FullyQualifiedName) Table() string {
	segs := f.Segments()
	if len(segs) == 0 {
		return ""
	}
	return segs[len(segs)-1]
}
