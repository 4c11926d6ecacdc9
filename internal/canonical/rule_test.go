package canonical

import (
	"errors"
	"testing"

	"github.com/kennyg/scribe/internal/syncerr"
)

func TestParseRule(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		wantRoot    bool
		wantTargets []string
		wantGlobs   []string
		wantErr     bool
	}{
		{
			name: "full frontmatter",
			content: `---
root: true
targets: [claudecode]
description: Project conventions
globs: ["**/*.go"]
---
Use table tests.
`,
			wantRoot:    true,
			wantTargets: []string{"claudecode"},
			wantGlobs:   []string{"**/*.go"},
		},
		{
			name:        "bare body defaults",
			content:     "Plain guidance, no frontmatter.\n",
			wantTargets: []string{"*"},
		},
		{
			name: "empty targets default to wildcard",
			content: `---
description: something
---
body
`,
			wantTargets: []string{"*"},
		},
		{
			name: "invalid glob",
			content: `---
globs: ["[unclosed"]
---
body
`,
			wantErr: true,
		},
		{
			name:    "broken yaml",
			content: "---\ntargets: [a\n---\nbody\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, err := ParseRule("rules/test.md", "test", "", []byte(tt.content))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRule() error = %v", err)
			}
			if rule.Front.Root != tt.wantRoot {
				t.Errorf("Root = %v, want %v", rule.Front.Root, tt.wantRoot)
			}
			if len(rule.Front.Targets) != len(tt.wantTargets) || rule.Front.Targets[0] != tt.wantTargets[0] {
				t.Errorf("Targets = %v, want %v", rule.Front.Targets, tt.wantTargets)
			}
			if len(rule.Front.Globs) != len(tt.wantGlobs) {
				t.Errorf("Globs = %v, want %v", rule.Front.Globs, tt.wantGlobs)
			}
		})
	}
}

func TestParseRuleErrorTypes(t *testing.T) {
	_, err := ParseRule("rules/bad.md", "bad", "", []byte("---\nglobs: [\"[x\"]\n---\nbody\n"))
	var verr *syncerr.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("want ValidationError, got %T", err)
	}

	_, err = ParseRule("rules/bad.md", "bad", "", []byte("---\nroot: [\n---\nbody\n"))
	var perr *syncerr.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("want ParseError, got %T", err)
	}
}

func TestRuleIsTargeted(t *testing.T) {
	tests := []struct {
		name    string
		targets []string
		toolID  string
		want    bool
	}{
		{"wildcard", []string{"*"}, "cursor", true},
		{"explicit match", []string{"claudecode", "cursor"}, "cursor", true},
		{"explicit miss", []string{"claudecode"}, "cursor", false},
		{"empty means all", nil, "roo", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Rule{Front: RuleFrontmatter{Targets: tt.targets}}
			if got := r.IsTargeted(tt.toolID); got != tt.want {
				t.Errorf("IsTargeted(%q) = %v, want %v", tt.toolID, got, tt.want)
			}
		})
	}
}

func TestRuleSerializeRoundTrip(t *testing.T) {
	rule, err := ParseRule("rules/api.md", "api", "backend", []byte(`---
targets: [claudecode]
description: API conventions
---
Keep handlers thin.
`))
	if err != nil {
		t.Fatalf("ParseRule() error = %v", err)
	}

	content, err := rule.Serialize()
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	again, err := ParseRule("rules/api.md", "api", "backend", content)
	if err != nil {
		t.Fatalf("re-parse error = %v", err)
	}
	if again.Front.Description != rule.Front.Description || again.Body != rule.Body {
		t.Errorf("round trip changed rule: %+v vs %+v", again, rule)
	}
}
