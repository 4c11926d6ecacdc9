package detect

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, base, rel, content string) {
	t.Helper()
	full := filepath.Join(base, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestToolsDetection(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "CLAUDE.md", "instructions\n")
	writeFile(t, dir, ".cursor/rules/main.mdc", "---\nalwaysApply: true\n---\nbody\n")

	found := Tools(dir)
	ids := make(map[string]bool, len(found))
	for _, d := range found {
		ids[d.ToolID] = true
		if len(d.Paths) == 0 {
			t.Errorf("%s detected with no paths", d.ToolID)
		}
	}
	if !ids["claudecode"] || !ids["cursor"] {
		t.Errorf("detected = %v", found)
	}
	if ids["roo"] {
		t.Error("roo should not be detected")
	}
}

func TestHasIgnoresEmptyDirs(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, ".cursor", "rules"), 0755); err != nil {
		t.Fatal(err)
	}
	if Has(dir, "cursor") {
		t.Error("empty directory must not count as detection")
	}
	if Has(dir, "not-a-tool") {
		t.Error("unknown tool id must not be detected")
	}
}

func TestHasRootFileOnly(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "AGENTS.md", "root\n")

	if !Has(dir, "codexcli") {
		t.Error("codexcli should be detected from AGENTS.md")
	}
	if !Has(dir, "opencode") {
		t.Error("opencode also reads AGENTS.md")
	}
}
