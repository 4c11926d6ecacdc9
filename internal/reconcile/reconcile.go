// Package reconcile computes and applies the difference between the
// artifacts a run generated and what is already on disk. The diff is
// keyed on path identity: renames surface as one delete plus one write,
// never as a move.
package reconcile

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/kennyg/scribe/internal/adapter"
)

// Plan is the computed write/delete/skip set for one (tool, kind, scope)
// pair. Dry-run mode reports the plan without applying it.
type Plan struct {
	Writes    []*adapter.ToolArtifact
	Deletes   []*adapter.ToolArtifact
	Unchanged []string
}

// Build compares the generated set against the existing set. A generated
// artifact whose on-disk content already matches (byte-for-byte after
// trailing-newline normalization) is unchanged; an existing path absent
// from the generated set is an orphan and scheduled for deletion.
func Build(generated, existing []*adapter.ToolArtifact) *Plan {
	plan := &Plan{}

	existingByPath := make(map[string]*adapter.ToolArtifact, len(existing))
	for _, a := range existing {
		existingByPath[a.Path()] = a
	}

	generatedPaths := make(map[string]bool, len(generated))
	for _, a := range generated {
		path := a.Path()
		generatedPaths[path] = true
		current, ok := existingByPath[path]
		if ok && equalContent(current.Content, a.Content) {
			plan.Unchanged = append(plan.Unchanged, path)
			continue
		}
		plan.Writes = append(plan.Writes, a)
	}

	for _, a := range existing {
		if !generatedPaths[a.Path()] {
			plan.Deletes = append(plan.Deletes, a)
		}
	}
	return plan
}

// DeletePaths returns the full path of every planned delete, in plan
// order.
func (p *Plan) DeletePaths() []string {
	paths := make([]string, 0, len(p.Deletes))
	for _, a := range p.Deletes {
		paths = append(paths, a.Path())
	}
	return paths
}

// IsEmpty reports whether the plan mutates nothing. A zero-effect run is
// a normal outcome, not an error.
func (p *Plan) IsEmpty() bool {
	return len(p.Writes) == 0 && len(p.Deletes) == 0
}

// Apply performs the planned filesystem mutation: writes first, then
// orphan deletes. Every step is journaled; any failure rolls the journal
// back before returning, so a failed plan leaves the tree exactly as it
// found it. After a successful run, directories emptied by the deletes
// are pruned up to the artifact's base directory.
func (p *Plan) Apply() error {
	var j journal
	for _, a := range p.Writes {
		if err := j.write(a); err != nil {
			j.rollback()
			return err
		}
	}
	for _, a := range p.Deletes {
		if err := j.remove(a); err != nil {
			j.rollback()
			return err
		}
	}
	for _, a := range p.Deletes {
		pruneEmptyDirs(filepath.Dir(a.Path()), a.BaseDir)
	}
	return nil
}

// journal records each mutation with enough prior state to undo it.
type journal struct {
	steps []step
}

// step is one journaled mutation. prior is nil when the path did not
// exist before; madeDirs lists directories created for the step,
// deepest first.
type step struct {
	path     string
	prior    []byte
	existed  bool
	madeDirs []string
}

// write stages the artifact to a temporary file in the destination
// directory and renames it into place, so the destination never holds a
// half-written file.
func (j *journal) write(a *adapter.ToolArtifact) error {
	path := a.Path()

	prior, err := os.ReadFile(path)
	existed := err == nil
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	dir := filepath.Dir(path)
	made := missingDirs(dir, a.BaseDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	// Directories are created before the first failable step below, so
	// the journal entry must exist even when that step fails.
	j.steps = append(j.steps, step{madeDirs: made})

	tmp, err := os.CreateTemp(dir, "."+a.Name+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(a.Content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}

	j.steps[len(j.steps)-1] = step{path: path, prior: prior, existed: existed, madeDirs: made}
	return nil
}

// remove deletes the artifact's file, keeping its content for rollback.
// A file already gone is not an error.
func (j *journal) remove(a *adapter.ToolArtifact) error {
	path := a.Path()
	prior, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if err := os.Remove(path); err != nil {
		return err
	}
	j.steps = append(j.steps, step{path: path, prior: prior, existed: true})
	return nil
}

// rollback undoes the journal in reverse order: restores prior file
// contents, removes files the run created, and clears directories the
// run created. Undo failures are swallowed; the original error is the
// one the caller needs.
func (j *journal) rollback() {
	for i := len(j.steps) - 1; i >= 0; i-- {
		s := j.steps[i]
		switch {
		case s.path == "":
		case s.existed:
			os.WriteFile(s.path, s.prior, 0644)
		default:
			os.Remove(s.path)
		}
		for _, dir := range s.madeDirs {
			os.Remove(dir)
		}
	}
	j.steps = nil
}

// missingDirs lists the ancestors of dir that do not exist yet, deepest
// first, stopping at stop. The list bounds rollback to directories this
// run is about to create.
func missingDirs(dir, stop string) []string {
	var missing []string
	for d := dir; d != stop && strings.HasPrefix(d, stop+string(filepath.Separator)); d = filepath.Dir(d) {
		if _, err := os.Stat(d); err == nil {
			break
		}
		missing = append(missing, d)
	}
	return missing
}

// pruneEmptyDirs removes now-empty directories from dir up to but
// excluding stop. os.Remove refuses non-empty directories, which is the
// stopping condition.
func pruneEmptyDirs(dir, stop string) {
	for d := dir; d != stop && strings.HasPrefix(d, stop+string(filepath.Separator)); d = filepath.Dir(d) {
		if err := os.Remove(d); err != nil {
			return
		}
	}
}

// equalContent compares content ignoring a missing or extra trailing
// newline so editors that add one do not cause rewrite churn.
func equalContent(a, b []byte) bool {
	return bytes.Equal(normalize(a), normalize(b))
}

// normalize returns a fresh buffer; appending to bytes.TrimRight's
// subslice would scribble on the caller's backing array.
func normalize(content []byte) []byte {
	trimmed := bytes.TrimRight(content, "\n")
	out := make([]byte, len(trimmed), len(trimmed)+1)
	copy(out, trimmed)
	return append(out, '\n')
}
