package canonical

import (
	"strings"
	"testing"
)

func TestParseIgnore(t *testing.T) {
	content := `# deny list
secrets/**

[write,edit] infra/**
[read] keys/*.pem
`
	file, err := ParseIgnore("ignore", []byte(content))
	if err != nil {
		t.Fatalf("ParseIgnore() error = %v", err)
	}

	if len(file.Patterns) != 3 {
		t.Fatalf("got %d patterns, want 3", len(file.Patterns))
	}

	bare := file.Patterns[0]
	if bare.Pattern != "secrets/**" || !bare.Denies(ActionRead) || bare.Denies(ActionWrite) {
		t.Errorf("bare pattern = %+v", bare)
	}
	if len(file.Warnings) != 1 || !strings.Contains(file.Warnings[0], "secrets/**") {
		t.Errorf("Warnings = %v, want one default-action warning", file.Warnings)
	}

	tagged := file.Patterns[1]
	if !tagged.Denies(ActionWrite) || !tagged.Denies(ActionEdit) || tagged.Denies(ActionRead) {
		t.Errorf("tagged pattern = %+v", tagged)
	}
}

func TestParseIgnoreErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown action", "[execute] bin/**\n"},
		{"unterminated action list", "[write secrets/**\n"},
		{"action list without pattern", "[write]\n"},
		{"invalid pattern", "[read] [broken\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseIgnore("ignore", []byte(tt.content)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestIgnoreSerializeRoundTrip(t *testing.T) {
	file := &IgnoreFile{Patterns: []IgnorePattern{
		{Pattern: "secrets/**", Actions: []IgnoreAction{ActionRead}},
		{Pattern: "infra/**", Actions: []IgnoreAction{ActionWrite, ActionEdit}},
	}}

	content, err := file.Serialize()
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	again, err := ParseIgnore("ignore", content)
	if err != nil {
		t.Fatalf("re-parse error = %v", err)
	}
	if len(again.Patterns) != 2 {
		t.Fatalf("got %d patterns, want 2", len(again.Patterns))
	}
	if again.Patterns[1].Pattern != "infra/**" || !again.Patterns[1].Denies(ActionEdit) {
		t.Errorf("pattern 1 = %+v", again.Patterns[1])
	}
	// Read-only patterns serialize bare, so the default warning returns.
	if len(again.Warnings) != 1 {
		t.Errorf("Warnings = %v", again.Warnings)
	}
}
