package canonical

import (
	"reflect"
	"testing"
)

func TestParseHooks(t *testing.T) {
	content := `{
  "hooks": {
    "preToolUse": [{"type": "command", "command": "scripts/guard.sh", "matcher": "Bash"}],
    "sessionStart": [{"type": "command", "command": "scripts/banner.sh"}]
  }
}`
	cfg, err := ParseHooks("hooks.json", []byte(content))
	if err != nil {
		t.Fatalf("ParseHooks() error = %v", err)
	}
	if got := cfg.EventNames(); !reflect.DeepEqual(got, []string{"preToolUse", "sessionStart"}) {
		t.Errorf("EventNames() = %v", got)
	}
	if cfg.Hooks["preToolUse"][0].Matcher != "Bash" {
		t.Errorf("Matcher = %q", cfg.Hooks["preToolUse"][0].Matcher)
	}
}

func TestParseHooksErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown event", `{"hooks": {"onSave": [{"type": "command", "command": "x"}]}}`},
		{"unsupported type", `{"hooks": {"stop": [{"type": "prompt", "command": "x"}]}}`},
		{"missing command", `{"hooks": {"stop": [{"type": "command"}]}}`},
		{"broken json", `{"hooks": `},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseHooks("hooks.json", []byte(tt.content)); err == nil {
				t.Error("expected error")
			}
		})
	}
}
