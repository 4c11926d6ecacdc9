package processor

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/kennyg/scribe/internal/adapter"
	"github.com/kennyg/scribe/internal/canonical"
)

// loadExisting enumerates the artifacts a (tool, kind) pair already has
// on disk at its settable paths, with content. This is the "existing"
// side of the reconcile plan and the input set of an import run. Paths
// outside the settable locations are never touched.
func loadExisting(tool *adapter.Tool, kind canonical.Kind, baseDir string, scope adapter.Scope) ([]*adapter.ToolArtifact, error) {
	switch kind {
	case canonical.KindRules:
		return existingRules(tool, baseDir, scope)
	case canonical.KindIgnore, canonical.KindMCP, canonical.KindHooks:
		p, err := tool.KindFilePath(kind, scope)
		if err != nil {
			return nil, err
		}
		a, err := readArtifact(baseDir, p.Dir, p.File, scope)
		if err != nil || a == nil {
			return nil, err
		}
		return []*adapter.ToolArtifact{a}, nil
	case canonical.KindCommands:
		dir, err := tool.KindDir(kind, scope)
		if err != nil {
			return nil, err
		}
		return scanDir(baseDir, dir.Dir, extOrDefault(tool.Commands.Ext), scope, nil)
	case canonical.KindSubagents:
		dir, err := tool.KindDir(kind, scope)
		if err != nil {
			return nil, err
		}
		return scanDir(baseDir, dir.Dir, extOrDefault(tool.Subagents.Ext), scope, nil)
	case canonical.KindSkills:
		dir, err := tool.KindDir(kind, scope)
		if err != nil {
			return nil, err
		}
		// Skills own their whole directory, auxiliary files included.
		return scanDir(baseDir, dir.Dir, "", scope, nil)
	}
	return nil, nil
}

// existingRules collects the root rule file plus every extension match
// under the non-root directory. When the root artifact is named after
// its rule it lives among the non-root files, so the two scans overlap
// and are deduplicated by path.
func existingRules(tool *adapter.Tool, baseDir string, scope adapter.Scope) ([]*adapter.ToolArtifact, error) {
	paths, err := tool.RulePaths(scope)
	if err != nil {
		return nil, err
	}
	ext := extOrDefault(tool.Rules.Ext)

	var artifacts []*adapter.ToolArtifact
	seen := map[string]bool{}

	if paths.Root != nil {
		if paths.Root.File != "" {
			a, err := readArtifact(baseDir, paths.Root.Dir, paths.Root.File, scope)
			if err != nil {
				return nil, err
			}
			if a != nil {
				artifacts = append(artifacts, a)
				seen[a.Path()] = true
			}
		} else {
			artifacts, err = scanDir(baseDir, paths.Root.Dir, ext, scope, seen)
			if err != nil {
				return nil, err
			}
		}
	}
	if paths.NonRoot != nil {
		more, err := scanDir(baseDir, paths.NonRoot.Dir, ext, scope, seen)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, more...)
	}
	return artifacts, nil
}

// readArtifact reads one fixed-path file. A missing file is not an
// error; it simply is not part of the existing set.
func readArtifact(baseDir, relDir, name string, scope adapter.Scope) (*adapter.ToolArtifact, error) {
	full := filepath.Join(baseDir, filepath.FromSlash(relDir), name)
	content, err := os.ReadFile(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return &adapter.ToolArtifact{BaseDir: baseDir, RelDir: relDir, Name: name, Content: content, Scope: scope}, nil
}

// scanDir walks dir under baseDir collecting files whose name ends in
// ext (every file when ext is empty). A missing directory yields an
// empty set. seen, when non-nil, deduplicates across overlapping scans
// and is updated in place.
func scanDir(baseDir, dir, ext string, scope adapter.Scope, seen map[string]bool) ([]*adapter.ToolArtifact, error) {
	root := filepath.Join(baseDir, filepath.FromSlash(dir))
	if _, err := os.Stat(root); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var artifacts []*adapter.ToolArtifact
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if ext != "" && !strings.HasSuffix(d.Name(), ext) {
			return nil
		}
		if seen != nil {
			if seen[p] {
				return nil
			}
			seen[p] = true
		}
		content, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		sub, err := filepath.Rel(root, filepath.Dir(p))
		if err != nil {
			return err
		}
		relDir := dir
		if sub != "." {
			relDir = path.Join(dir, filepath.ToSlash(sub))
		}
		artifacts = append(artifacts, &adapter.ToolArtifact{
			BaseDir: baseDir,
			RelDir:  relDir,
			Name:    d.Name(),
			Content: content,
			Scope:   scope,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return artifacts, nil
}

func extOrDefault(ext string) string {
	if ext == "" {
		return ".md"
	}
	return ext
}
