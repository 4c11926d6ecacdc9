package adapter

import (
	"testing"

	"github.com/kennyg/scribe/internal/canonical"
)

func TestRegistryOrderIsStable(t *testing.T) {
	want := []string{"claudecode", "cursor", "copilot", "cline", "codexcli", "geminicli", "windsurf", "opencode", "roo"}
	got := IDs()
	if len(got) != len(want) {
		t.Fatalf("IDs() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("IDs()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLookup(t *testing.T) {
	if tool := Lookup("claudecode"); tool == nil || tool.DisplayName != "Claude Code" {
		t.Errorf("Lookup(claudecode) = %+v", tool)
	}
	if tool := Lookup("nonexistent"); tool != nil {
		t.Errorf("Lookup(nonexistent) = %+v", tool)
	}
}

func TestEveryToolSupportsRules(t *testing.T) {
	for _, tool := range Registry() {
		if !tool.Supports(canonical.KindRules) {
			t.Errorf("%s must support rules", tool.ID)
		}
		if tool.Rules.Project == nil {
			t.Errorf("%s must have a project rule layout", tool.ID)
		}
	}
}

func TestSupportingKind(t *testing.T) {
	for _, tool := range SupportingKind(canonical.KindHooks) {
		if !tool.Supports(canonical.KindHooks) {
			t.Errorf("%s returned without hooks support", tool.ID)
		}
	}
	if len(SupportingKind(canonical.KindMCP)) == 0 {
		t.Error("no tools support mcp")
	}
}

func TestMCPArtifactEmptyAfterFilter(t *testing.T) {
	tool := Lookup("cursor")
	cfg := &canonical.MCPConfig{Servers: map[string]*canonical.MCPServer{
		"claude-only": {Command: "x", Targets: []string{"claudecode"}},
	}}

	a, err := MCPArtifact(tool, cfg, "/proj", ScopeProject)
	if err != nil {
		t.Fatalf("MCPArtifact() error = %v", err)
	}
	if a != nil {
		t.Errorf("expected no artifact when every server is filtered out, got %v", a.Path())
	}
}
