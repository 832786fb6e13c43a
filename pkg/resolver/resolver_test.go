package resolver

import (
	"testing"

	"github.com/meshquery-inc/meshquery-engine/pkg/models"
)

func catalog(names ...string) []models.FullyQualifiedName {
	out := make([]models.FullyQualifiedName, len(names))
	for i, n := range names {
		out[i] = models.FullyQualifiedName(n)
	}
	return out
}

func TestResolve_TokenMatch(t *testing.T) {
	r := New("DataMesh")
	cat := catalog("DataMesh.app.accounts", "DataMesh.app.orders")

	got := r.Resolve("how many accounts are there", cat)
	if got != "DataMesh.app.accounts" {
		t.Errorf("Resolve = %q, want DataMesh.app.accounts", got)
	}
}

func TestResolve_SingularPluralForms(t *testing.T) {
	r := New("")
	cat := catalog("DataMesh.app.accounts")

	// Singular question token should still find the plural table name.
	got := r.Resolve("details for one account", cat)
	if got != "DataMesh.app.accounts" {
		t.Errorf("Resolve = %q, want DataMesh.app.accounts", got)
	}
}

func TestResolve_FirstMatchWins(t *testing.T) {
	r := New("")
	cat := catalog("src.a.orders_archive", "src.a.orders")

	// First-match policy: the earlier entry shadows the exact name.
	got := r.Resolve("show me orders", cat)
	if got != "src.a.orders_archive" {
		t.Errorf("Resolve = %q, want src.a.orders_archive", got)
	}
}

func TestResolve_CommonWordFallback(t *testing.T) {
	r := New("")
	// "accounts/orders" survives tokenization as one token that matches no
	// entry, but the dictionary still finds the word "accounts" in the
	// question text.
	cat := catalog("warehouse.crm.accounts", "warehouse.crm.invoices")

	got := r.Resolve("accounts/orders breakdown", cat)
	if got != "warehouse.crm.accounts" {
		t.Errorf("Resolve = %q, want warehouse.crm.accounts", got)
	}
}

func TestResolve_PreferredSourceFallback(t *testing.T) {
	r := New("DataMesh")
	cat := catalog("legacy.dw.facts", "DataMesh.app.facts_v2")

	// No token or dictionary match: "summary" appears nowhere.
	got := r.Resolve("give me the summary", cat)
	if got != "DataMesh.app.facts_v2" {
		t.Errorf("Resolve = %q, want the preferred-source entry, got %q", got, got)
	}
}

func TestResolve_FirstEntryFallback(t *testing.T) {
	r := New("")
	cat := catalog("a.b.one", "a.b.two")

	got := r.Resolve("completely unrelated question", cat)
	if got != "a.b.one" {
		t.Errorf("Resolve = %q, want first entry a.b.one", got)
	}
}

func TestResolve_EmptyCatalog(t *testing.T) {
	r := New("DataMesh")
	if got := r.Resolve("how many accounts", nil); got != "" {
		t.Errorf("Resolve on empty catalog = %q, want empty", got)
	}
}

func TestResolve_Deterministic(t *testing.T) {
	r := New("DataMesh")
	cat := catalog("DataMesh.app.accounts", "DataMesh.app.orders")

	first := r.Resolve("how many accounts are there", cat)
	for i := 0; i < 10; i++ {
		if got := r.Resolve("how many accounts are there", cat); got != first {
			t.Fatalf("iteration %d: Resolve = %q, want %q", i, got, first)
		}
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		question string
		want     []string
	}{
		{"stopwords removed", "how many accounts are there", []string{"accounts"}},
		{"short tokens dropped", "id of an ox", []string{}},
		{"punctuation trimmed", "accounts, please!", []string{"accounts", "please"}},
		{"empty input", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.question)
			if len(got) != len(tt.want) {
				t.Fatalf("Tokenize(%q) = %v, want %v", tt.question, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
