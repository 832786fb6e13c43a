package sql

import (
	"testing"
)

func TestSanitize_AliasRewrites(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			"count alias",
			"SELECT COUNT(*) AS count FROM t",
			"SELECT COUNT(*) AS total_count FROM t",
		},
		{
			"sum alias",
			"SELECT SUM(x) AS sum FROM t",
			"SELECT SUM(x) AS total_sum FROM t",
		},
		{
			"avg alias",
			"SELECT AVG(x) AS avg FROM t",
			"SELECT AVG(x) AS average_value FROM t",
		},
		{
			"min and max aliases",
			"SELECT MIN(x) AS min, MAX(x) AS max FROM t",
			"SELECT MIN(x) AS minimum_value, MAX(x) AS maximum_value FROM t",
		},
		{
			"keyword collisions",
			"SELECT a AS order, b AS group, c AS user, d AS data FROM t",
			"SELECT a AS order_value, b AS group_value, c AS user_value, d AS data_value FROM t",
		},
		{
			"lowercase as",
			"SELECT COUNT(*) as count FROM t",
			"SELECT COUNT(*) as total_count FROM t",
		},
		{
			"function position untouched",
			"SELECT count(id) AS n FROM t",
			"SELECT count(id) AS n FROM t",
		},
		{
			"column reference untouched",
			"SELECT count_total FROM t WHERE user_id = 1",
			"SELECT count_total FROM t WHERE user_id = 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitize_WhitespaceNormalization(t *testing.T) {
	input := "SELECT *\n  FROM t\n\tWHERE x = 1   ORDER BY y    LIMIT 5"
	want := "SELECT * FROM t WHERE x = 1 ORDER BY y LIMIT 5"
	if got := Sanitize(input); got != want {
		t.Errorf("Sanitize = %q, want %q", got, want)
	}
}

func TestSanitize_TrimsEnds(t *testing.T) {
	if got := Sanitize("   SELECT 1   "); got != "SELECT 1" {
		t.Errorf("Sanitize = %q, want %q", got, "SELECT 1")
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{
		"SELECT COUNT(*) AS count FROM t",
		"SELECT a AS order, SUM(b) as sum\nFROM t\nGROUP BY a",
		"select * from accounts limit 10",
		"",
		"   SELECT x,   y   FROM t   WHERE x > 1  ",
	}
	for _, input := range inputs {
		once := Sanitize(input)
		twice := Sanitize(once)
		if once != twice {
			t.Errorf("not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}
