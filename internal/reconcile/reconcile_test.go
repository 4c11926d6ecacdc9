package reconcile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kennyg/scribe/internal/adapter"
)

func artifact(base, relDir, name, content string) *adapter.ToolArtifact {
	return &adapter.ToolArtifact{
		BaseDir: base,
		RelDir:  relDir,
		Name:    name,
		Content: []byte(content),
		Scope:   adapter.ScopeProject,
	}
}

func TestBuild(t *testing.T) {
	generated := []*adapter.ToolArtifact{
		artifact("/p", ".claude/memories", "new.md", "new\n"),
		artifact("/p", ".claude/memories", "same.md", "same\n"),
		artifact("/p", ".claude/memories", "changed.md", "after\n"),
	}
	existing := []*adapter.ToolArtifact{
		artifact("/p", ".claude/memories", "same.md", "same\n"),
		artifact("/p", ".claude/memories", "changed.md", "before\n"),
		artifact("/p", ".claude/memories", "orphan.md", "stale\n"),
	}

	plan := Build(generated, existing)

	if len(plan.Writes) != 2 {
		t.Errorf("Writes = %d, want 2", len(plan.Writes))
	}
	if paths := plan.DeletePaths(); len(paths) != 1 || paths[0] != filepath.Join("/p", ".claude/memories", "orphan.md") {
		t.Errorf("DeletePaths() = %v", paths)
	}
	if len(plan.Unchanged) != 1 {
		t.Errorf("Unchanged = %v", plan.Unchanged)
	}
	if plan.IsEmpty() {
		t.Error("plan should not be empty")
	}
}

func TestBuildTrailingNewlineNormalization(t *testing.T) {
	generated := []*adapter.ToolArtifact{artifact("/p", ".", "CLAUDE.md", "body\n")}
	existing := []*adapter.ToolArtifact{artifact("/p", ".", "CLAUDE.md", "body")}

	plan := Build(generated, existing)
	if !plan.IsEmpty() {
		t.Errorf("trailing newline difference must not cause a write: %+v", plan)
	}
}

func TestBuildEmptySets(t *testing.T) {
	if plan := Build(nil, nil); !plan.IsEmpty() {
		t.Errorf("empty inputs should produce an empty plan: %+v", plan)
	}

	// Existing files with nothing generated are all orphans.
	existing := []*adapter.ToolArtifact{artifact("/p", ".", ".cursorignore", "x\n")}
	plan := Build(nil, existing)
	if len(plan.Deletes) != 1 {
		t.Errorf("Deletes = %v", plan.DeletePaths())
	}
}

func TestApply(t *testing.T) {
	dir := t.TempDir()

	stale := filepath.Join(dir, ".claude", "memories", "stale.md")
	if err := os.MkdirAll(filepath.Dir(stale), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(stale, []byte("old\n"), 0644); err != nil {
		t.Fatal(err)
	}

	plan := &Plan{
		Writes:  []*adapter.ToolArtifact{artifact(dir, ".claude/memories", "kept.md", "kept\n")},
		Deletes: []*adapter.ToolArtifact{artifact(dir, ".claude/memories", "stale.md", "old\n")},
	}
	if err := plan.Apply(); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	kept, err := os.ReadFile(filepath.Join(dir, ".claude", "memories", "kept.md"))
	if err != nil || string(kept) != "kept\n" {
		t.Errorf("kept.md = %q, %v", kept, err)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Errorf("stale.md still exists: %v", err)
	}
}

func TestApplyTolerateMissingDelete(t *testing.T) {
	plan := &Plan{Deletes: []*adapter.ToolArtifact{artifact(t.TempDir(), ".", "never-existed.md", "")}}
	if err := plan.Apply(); err != nil {
		t.Errorf("Apply() error = %v", err)
	}
}

func TestApplyRollsBackOnFailure(t *testing.T) {
	dir := t.TempDir()

	// A directory squatting on the second write's path makes the final
	// rename fail after the first write already landed.
	if err := os.MkdirAll(filepath.Join(dir, "CLAUDE.md"), 0755); err != nil {
		t.Fatal(err)
	}
	changed := filepath.Join(dir, ".claude", "memories", "api.md")
	if err := os.MkdirAll(filepath.Dir(changed), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(changed, []byte("before\n"), 0644); err != nil {
		t.Fatal(err)
	}
	stale := filepath.Join(dir, ".claude", "memories", "stale.md")
	if err := os.WriteFile(stale, []byte("old\n"), 0644); err != nil {
		t.Fatal(err)
	}

	plan := &Plan{
		Writes: []*adapter.ToolArtifact{
			artifact(dir, ".claude/memories", "api.md", "after\n"),
			artifact(dir, ".claude/memories/backend", "db.md", "fresh\n"),
			artifact(dir, ".", "CLAUDE.md", "root\n"),
		},
		Deletes: []*adapter.ToolArtifact{artifact(dir, ".claude/memories", "stale.md", "old\n")},
	}
	if err := plan.Apply(); err == nil {
		t.Fatal("Apply() should fail when the destination is a directory")
	}

	// Everything is back the way it was: prior content restored, the
	// new file and its directory gone, the orphan untouched.
	got, err := os.ReadFile(changed)
	if err != nil || string(got) != "before\n" {
		t.Errorf("api.md = %q, %v; want prior content restored", got, err)
	}
	if _, err := os.Stat(filepath.Join(dir, ".claude", "memories", "backend")); !os.IsNotExist(err) {
		t.Errorf("backend/ should be rolled back: %v", err)
	}
	if got, err := os.ReadFile(stale); err != nil || string(got) != "old\n" {
		t.Errorf("stale.md = %q, %v; want untouched", got, err)
	}
}

func TestApplyRollsBackDeletes(t *testing.T) {
	dir := t.TempDir()

	stale := filepath.Join(dir, ".claude", "memories", "stale.md")
	if err := os.MkdirAll(filepath.Dir(stale), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(stale, []byte("old\n"), 0644); err != nil {
		t.Fatal(err)
	}
	// The second delete targets a directory, which os.Remove(file) path
	// reading rejects, forcing a rollback of the first delete.
	bad := filepath.Join(dir, ".claude", "memories", "bad.md")
	if err := os.MkdirAll(bad, 0755); err != nil {
		t.Fatal(err)
	}

	plan := &Plan{Deletes: []*adapter.ToolArtifact{
		artifact(dir, ".claude/memories", "stale.md", "old\n"),
		artifact(dir, ".claude/memories", "bad.md", ""),
	}}
	if err := plan.Apply(); err == nil {
		t.Fatal("Apply() should fail on the second delete")
	}

	if got, err := os.ReadFile(stale); err != nil || string(got) != "old\n" {
		t.Errorf("stale.md = %q, %v; want restored", got, err)
	}
}

func TestApplyPrunesEmptiedDirs(t *testing.T) {
	dir := t.TempDir()

	orphan := filepath.Join(dir, ".claude", "memories", "backend", "api.md")
	if err := os.MkdirAll(filepath.Dir(orphan), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(orphan, []byte("stale\n"), 0644); err != nil {
		t.Fatal(err)
	}
	keeper := filepath.Join(dir, ".claude", "settings.json")
	if err := os.WriteFile(keeper, []byte("{}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	plan := &Plan{Deletes: []*adapter.ToolArtifact{
		artifact(dir, ".claude/memories/backend", "api.md", "stale\n"),
	}}
	if err := plan.Apply(); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, ".claude", "memories")); !os.IsNotExist(err) {
		t.Errorf(".claude/memories should be pruned: %v", err)
	}
	// .claude still holds settings.json, so pruning stops there.
	if _, err := os.Stat(keeper); err != nil {
		t.Errorf("settings.json should survive pruning: %v", err)
	}
}

func TestNormalizeLeavesInputAlone(t *testing.T) {
	buf := []byte("bodyTAIL")
	src := buf[:4] // "body" with spare capacity over the rest of buf

	got := normalize(src)

	if string(got) != "body\n" {
		t.Errorf("normalize = %q, want %q", got, "body\n")
	}
	if string(buf) != "bodyTAIL" {
		t.Errorf("normalize mutated the caller's buffer: %q", buf)
	}
}
