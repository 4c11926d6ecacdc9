// Package detect probes a project tree for tool configurations that
// already exist. It powers the tools matrix and helps pick import
// targets: a tool counts as present when any of its settable paths has
// something on disk.
package detect

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/kennyg/scribe/internal/adapter"
	"github.com/kennyg/scribe/internal/canonical"
)

// Detection records one tool found in a project tree and the paths
// that gave it away.
type Detection struct {
	ToolID string
	Paths  []string
}

// Tools probes every registered tool against baseDir in project scope
// and returns the ones with configuration on disk, in registry order.
func Tools(baseDir string) []Detection {
	var found []Detection
	for _, tool := range adapter.Registry() {
		paths := probe(tool, baseDir)
		if len(paths) > 0 {
			found = append(found, Detection{ToolID: tool.ID, Paths: paths})
		}
	}
	return found
}

// Has reports whether toolID has configuration under baseDir.
func Has(baseDir, toolID string) bool {
	tool := adapter.Lookup(toolID)
	if tool == nil {
		return false
	}
	return len(probe(tool, baseDir)) > 0
}

// probe collects the existing settable paths of one tool. Directories
// count only when they are non-empty; an empty .cursor/rules left by a
// previous cleanup is not a detection.
func probe(tool *adapter.Tool, baseDir string) []string {
	hits := map[string]bool{}

	if tool.Rules != nil {
		if paths, err := tool.RulePaths(adapter.ScopeProject); err == nil {
			if paths.Root != nil && paths.Root.File != "" {
				markFile(hits, baseDir, paths.Root.Dir, paths.Root.File)
			} else if paths.Root != nil {
				markDir(hits, baseDir, paths.Root.Dir)
			}
			if paths.NonRoot != nil {
				markDir(hits, baseDir, paths.NonRoot.Dir)
			}
		}
	}
	for _, kind := range []canonical.Kind{canonical.KindIgnore, canonical.KindMCP, canonical.KindHooks} {
		if !tool.Supports(kind) {
			continue
		}
		if p, err := tool.KindFilePath(kind, adapter.ScopeProject); err == nil {
			markFile(hits, baseDir, p.Dir, p.File)
		}
	}
	for _, kind := range []canonical.Kind{canonical.KindCommands, canonical.KindSubagents, canonical.KindSkills} {
		if !tool.Supports(kind) {
			continue
		}
		if dir, err := tool.KindDir(kind, adapter.ScopeProject); err == nil {
			markDir(hits, baseDir, dir.Dir)
		}
	}

	paths := make([]string, 0, len(hits))
	for p := range hits {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func markFile(hits map[string]bool, baseDir, relDir, name string) {
	full := filepath.Join(baseDir, filepath.FromSlash(relDir), name)
	if info, err := os.Stat(full); err == nil && !info.IsDir() {
		hits[full] = true
	}
}

func markDir(hits map[string]bool, baseDir, relDir string) {
	full := filepath.Join(baseDir, filepath.FromSlash(relDir))
	entries, err := os.ReadDir(full)
	if err != nil || len(entries) == 0 {
		return
	}
	hits[full] = true
}
