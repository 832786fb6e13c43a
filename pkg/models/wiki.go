package models

// WikiFields is the fixed-shape record parsed from a table's wiki text.
// Absent sections stay at their zero value; the parser never fails.
type WikiFields struct {
	Description        string            `json:"description"`
	BusinessPurpose    string            `json:"business_purpose"`
	DataSource         string            `json:"data_source"`
	UpdateFrequency    string            `json:"update_frequency"`
	Owner              string            `json:"owner"`
	Tags               []string          `json:"tags"`
	ColumnDescriptions map[string]string `json:"column_descriptions"`
	UsageNotes         string            `json:"usage_notes"`
	DataQualityNotes   string            `json:"data_quality_notes"`
}

// WikiDocument pairs raw wiki markdown with its parsed fields.
type WikiDocument struct {
	RawText string     `json:"raw_text"`
	Fields  WikiFields `json:"parsed_fields"`
}
