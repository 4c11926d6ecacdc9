package resolve

import (
	"testing"

	"github.com/kennyg/scribe/internal/adapter"
	"github.com/kennyg/scribe/internal/canonical"
)

func TestTargets(t *testing.T) {
	tests := []struct {
		name       string
		configured []string
		wantLen    int
		wantFirst  string
		wantErr    bool
	}{
		{"wildcard", []string{"*"}, len(adapter.Registry()), "claudecode", false},
		{"empty means all", nil, len(adapter.Registry()), "claudecode", false},
		{"explicit order preserved", []string{"cursor", "claudecode"}, 2, "cursor", false},
		{"unknown id", []string{"vscodex"}, 0, "", true},
		{"wildcard mixed with explicit", []string{"*", "cursor"}, 0, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tools, err := Targets(tt.configured)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Targets() error = %v", err)
			}
			if len(tools) != tt.wantLen || tools[0].ID != tt.wantFirst {
				t.Errorf("got %d tools, first %q", len(tools), tools[0].ID)
			}
		})
	}
}

func TestFeatures(t *testing.T) {
	all, err := Features([]string{"*"})
	if err != nil || len(all) != len(canonical.AllKinds()) {
		t.Errorf("Features(*) = %v, %v", all, err)
	}

	kinds, err := Features([]string{"mcp", "rules"})
	if err != nil {
		t.Fatalf("Features() error = %v", err)
	}
	if len(kinds) != 2 || kinds[0] != canonical.KindMCP {
		t.Errorf("kinds = %v", kinds)
	}

	if _, err := Features([]string{"memories"}); err == nil {
		t.Error("expected error for unknown feature")
	}
}

func TestFeaturesFor(t *testing.T) {
	global := []canonical.Kind{canonical.KindRules, canonical.KindMCP}
	overrides := map[string][]string{
		"cursor": {"rules"},
		"roo":    {"bogus"},
	}

	got, err := FeaturesFor("cursor", global, overrides)
	if err != nil || len(got) != 1 || got[0] != canonical.KindRules {
		t.Errorf("FeaturesFor(cursor) = %v, %v", got, err)
	}

	got, err = FeaturesFor("claudecode", global, overrides)
	if err != nil || len(got) != 2 {
		t.Errorf("FeaturesFor(claudecode) = %v, %v", got, err)
	}

	if _, err := FeaturesFor("roo", global, overrides); err == nil {
		t.Error("expected error for invalid override")
	}
}
