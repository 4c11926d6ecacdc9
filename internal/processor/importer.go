package processor

import (
	"bytes"
	"errors"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/kennyg/scribe/internal/adapter"
	"github.com/kennyg/scribe/internal/canonical"
	"github.com/kennyg/scribe/internal/resolve"
	"github.com/kennyg/scribe/internal/syncerr"
)

// Root rules from different tools would collide as multiple canonical
// root rules, so every imported root rule converges on one file name.
// Without Force the first import wins and later conflicts are skipped.
const importedRootRule = "main"

// Import runs the reverse pipeline: existing tool configurations are
// parsed back into canonical artifacts and written into the source
// tree. Files that already exist with different content are skipped
// unless Force is set.
func Import(opts Options) (*Report, error) {
	tools, err := resolve.Targets(opts.Targets)
	if err != nil {
		return nil, err
	}
	features, err := resolve.Features(opts.Features)
	if err != nil {
		return nil, err
	}

	report := &Report{}
	scope := opts.scope()

	for _, kind := range features {
		for _, tool := range tools {
			toolFeatures, err := resolve.FeaturesFor(tool.ID, features, opts.TargetFeatures)
			if err != nil {
				return report, err
			}
			if !kindIn(toolFeatures, kind) || !tool.Supports(kind) {
				continue
			}
			for _, baseDir := range opts.BaseDirs {
				pair := importPair(tool, kind, baseDir, scope, opts)
				if pair == nil {
					continue
				}
				report.Pairs = append(report.Pairs, *pair)
				if pair.Fatal != nil {
					return report, pair.Fatal
				}
			}
		}
	}
	return report, nil
}

// importPair converts one (tool, kind) pair's on-disk artifacts into
// canonical files. A nil return means the tool has nothing on disk for
// this kind.
func importPair(tool *adapter.Tool, kind canonical.Kind, baseDir string, scope adapter.Scope, opts Options) *PairReport {
	existing, err := loadExisting(tool, kind, baseDir, scope)
	if err != nil {
		var unsupported *syncerr.UnsupportedOperationError
		if errors.As(err, &unsupported) {
			return nil
		}
		return &PairReport{Tool: tool.ID, Kind: kind, BaseDir: baseDir, Fatal: err}
	}
	if len(existing) == 0 {
		return nil
	}

	pair := &PairReport{Tool: tool.ID, Kind: kind, BaseDir: baseDir}
	var errs syncerr.List

	for _, a := range existing {
		relPath, content, err := toCanonical(tool, kind, a, scope)
		if err != nil {
			errs = errs.Append(&syncerr.ParseError{Path: a.Path(), Err: err})
			continue
		}
		if relPath == "" {
			continue
		}
		if err := writeCanonical(pair, opts, relPath, content); err != nil {
			pair.Fatal = err
			return pair
		}
	}

	if len(errs) > 0 {
		pair.Failure = errs
	}
	return pair
}

// toCanonical converts one tool artifact into its canonical file. The
// returned path is relative to the source directory; an empty path
// means the artifact is carried verbatim elsewhere (skill aux files) or
// intentionally dropped.
func toCanonical(tool *adapter.Tool, kind canonical.Kind, a *adapter.ToolArtifact, scope adapter.Scope) (string, []byte, error) {
	switch kind {
	case canonical.KindRules:
		return ruleToCanonical(tool, a, scope)
	case canonical.KindIgnore:
		f, err := tool.Ignore.Parse(a.Content)
		if err != nil {
			return "", nil, err
		}
		content, err := f.Serialize()
		return canonical.IgnoreName, content, err
	case canonical.KindMCP:
		c, err := tool.MCP.Parse(a.Content)
		if err != nil {
			return "", nil, err
		}
		content, err := c.Serialize()
		return canonical.MCPName, content, err
	case canonical.KindHooks:
		c, err := tool.Hooks.Parse(a.Content)
		if err != nil {
			return "", nil, err
		}
		content, err := c.Serialize()
		return canonical.HooksName, content, err
	case canonical.KindCommands:
		dir, err := tool.KindDir(kind, scope)
		if err != nil {
			return "", nil, err
		}
		name := trimExt(a.Name, extOrDefault(tool.Commands.Ext))
		cmd, err := tool.Commands.Parse(name, a.Content)
		if err != nil {
			return "", nil, err
		}
		content, err := cmd.Serialize()
		if err != nil {
			return "", nil, err
		}
		return path.Join(canonical.CommandsDir, subPath(a.RelDir, dir.Dir), cmd.Name+".md"), content, nil
	case canonical.KindSubagents:
		dir, err := tool.KindDir(kind, scope)
		if err != nil {
			return "", nil, err
		}
		name := trimExt(a.Name, extOrDefault(tool.Subagents.Ext))
		sub, err := tool.Subagents.Parse(name, a.Content)
		if err != nil {
			return "", nil, err
		}
		content, err := sub.Serialize()
		if err != nil {
			return "", nil, err
		}
		return path.Join(canonical.SubagentsDir, subPath(a.RelDir, dir.Dir), sub.Name+".md"), content, nil
	case canonical.KindSkills:
		return skillToCanonical(tool, a, scope)
	}
	return "", nil, nil
}

func ruleToCanonical(tool *adapter.Tool, a *adapter.ToolArtifact, scope adapter.Scope) (string, []byte, error) {
	paths, err := tool.RulePaths(scope)
	if err != nil {
		return "", nil, err
	}

	isRoot := paths.Root != nil && paths.Root.File != "" &&
		a.RelPath() == path.Join(paths.Root.Dir, paths.Root.File)

	rule, err := adapter.RuleFromArtifact(tool, a, isRoot)
	if err != nil {
		return "", nil, err
	}
	content, err := rule.Serialize()
	if err != nil {
		return "", nil, err
	}

	// Parsers may flag rootness from content alone (alwaysApply), so
	// the decision rests with the recovered rule, not the path.
	if rule.Front.Root {
		return path.Join(canonical.RulesDir, importedRootRule+".md"), content, nil
	}
	sub := ""
	if paths.NonRoot != nil {
		sub = subPath(a.RelDir, paths.NonRoot.Dir)
	}
	return path.Join(canonical.RulesDir, sub, rule.Name+".md"), content, nil
}

// skillToCanonical maps one file of a skill directory. SKILL.md goes
// through the tool parser; auxiliary files are copied verbatim under
// the same skill directory.
func skillToCanonical(tool *adapter.Tool, a *adapter.ToolArtifact, scope adapter.Scope) (string, []byte, error) {
	dir, err := tool.KindDir(canonical.KindSkills, scope)
	if err != nil {
		return "", nil, err
	}
	sub := subPath(a.RelDir, dir.Dir)
	if sub == "" {
		// A file directly under the skills directory belongs to no
		// skill; leave it alone.
		return "", nil, nil
	}
	skillName, rest, _ := strings.Cut(sub, "/")

	if rest == "" && a.Name == canonical.SkillFileName {
		skill, err := tool.Skills.Parse(skillName, a.Content)
		if err != nil {
			return "", nil, err
		}
		content, err := skill.Serialize()
		if err != nil {
			return "", nil, err
		}
		return path.Join(canonical.SkillsDir, skill.Name, canonical.SkillFileName), content, nil
	}
	return path.Join(canonical.SkillsDir, sub, a.Name), a.Content, nil
}

// writeCanonical diff-writes one canonical file under the source tree,
// recording the outcome on the pair report.
func writeCanonical(pair *PairReport, opts Options, relPath string, content []byte) error {
	full := filepath.Join(opts.SourceDir, filepath.FromSlash(relPath))

	current, err := os.ReadFile(full)
	switch {
	case err == nil && sameContent(current, content):
		pair.Unchanged++
		return nil
	case err == nil && !opts.Force:
		pair.Skipped = append(pair.Skipped, full)
		return nil
	case err != nil && !os.IsNotExist(err):
		return err
	}

	if opts.DryRun {
		pair.Written = append(pair.Written, full)
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(full, content, 0o644); err != nil {
		return err
	}
	pair.Written = append(pair.Written, full)
	return nil
}

// subPath returns rel's path below base, or "" when rel is base itself.
func subPath(rel, base string) string {
	if rel == base {
		return ""
	}
	return strings.TrimPrefix(rel, base+"/")
}

func trimExt(name, ext string) string {
	if strings.HasSuffix(name, ext) && len(name) > len(ext) {
		return strings.TrimSuffix(name, ext)
	}
	trimmed := strings.TrimSuffix(name, filepath.Ext(name))
	if trimmed == "" {
		return name
	}
	return trimmed
}

func sameContent(a, b []byte) bool {
	return bytes.Equal(bytes.TrimRight(a, "\n"), bytes.TrimRight(b, "\n"))
}
