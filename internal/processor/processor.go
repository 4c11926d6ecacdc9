// Package processor orchestrates generate and import runs: it loads
// canonical artifacts, resolves targets and features, fans out through
// the tool adapters, and reconciles the result against the existing
// tool-side tree. All filesystem work lives here; adapters stay pure.
package processor

import (
	"errors"
	"sort"

	"github.com/kennyg/scribe/internal/adapter"
	"github.com/kennyg/scribe/internal/canonical"
	"github.com/kennyg/scribe/internal/reconcile"
	"github.com/kennyg/scribe/internal/resolve"
	"github.com/kennyg/scribe/internal/syncerr"
)

// Options configures one run. The CLI layer resolves flags and config
// files into this value; verbosity handling stays with the caller.
type Options struct {
	// SourceDir is the canonical source tree (a .scribe directory).
	SourceDir string
	// BaseDirs are the destination base directories. Project scope uses
	// the project root(s); global scope uses the home directory.
	BaseDirs []string
	// Targets is the configured tool list, or ["*"] for every registered
	// tool.
	Targets []string
	// Features is the configured feature list, or ["*"] for every kind.
	Features []string
	// TargetFeatures overrides Features per tool id.
	TargetFeatures map[string][]string
	// Scope selects project or global placement.
	Scope adapter.Scope
	// DryRun computes every plan but suppresses all mutation.
	DryRun bool
	// Force lets import overwrite canonical files that already exist
	// with different content.
	Force bool
}

func (o *Options) scope() adapter.Scope {
	if o.Scope == "" {
		return adapter.ScopeProject
	}
	return o.Scope
}

// loaded holds one run's canonical artifacts, read fresh from the source
// tree. Per-file failures are collected in Errors and the artifacts they
// belong to excluded; siblings are unaffected.
type loaded struct {
	Rules     []*canonical.Rule
	Commands  []*canonical.Command
	Subagents []*canonical.Subagent
	Skills    []*canonical.Skill
	Ignore    *canonical.IgnoreFile
	MCP       *canonical.MCPConfig
	Hooks     *canonical.HooksConfig
	Errors    []error
	Warnings  []string
}

func loadSource(dir string, features []canonical.Kind) *loaded {
	src := canonical.Source{Dir: dir}
	out := &loaded{}

	want := make(map[canonical.Kind]bool, len(features))
	for _, k := range features {
		want[k] = true
	}

	if want[canonical.KindRules] {
		rules, errs := src.LoadRules()
		out.Rules = dedupeRootRules(rules, &errs)
		out.Errors = append(out.Errors, errs...)
	}
	if want[canonical.KindCommands] {
		cmds, errs := src.LoadCommands()
		out.Commands = cmds
		out.Errors = append(out.Errors, errs...)
	}
	if want[canonical.KindSubagents] {
		subs, errs := src.LoadSubagents()
		out.Subagents = subs
		out.Errors = append(out.Errors, errs...)
	}
	if want[canonical.KindSkills] {
		skills, errs := src.LoadSkills()
		out.Skills = skills
		out.Errors = append(out.Errors, errs...)
	}
	if want[canonical.KindIgnore] {
		ignore, err := src.LoadIgnore()
		if err != nil {
			out.Errors = append(out.Errors, err)
		} else if ignore != nil {
			out.Ignore = ignore
			out.Warnings = append(out.Warnings, ignore.Warnings...)
		}
	}
	if want[canonical.KindMCP] {
		mcp, err := src.LoadMCP()
		if err != nil {
			out.Errors = append(out.Errors, err)
		} else {
			out.MCP = mcp
		}
	}
	if want[canonical.KindHooks] {
		hooks, err := src.LoadHooks()
		if err != nil {
			out.Errors = append(out.Errors, err)
		} else {
			out.Hooks = hooks
		}
	}
	return out
}

// dedupeRootRules keeps at most one root rule. The root maps onto a
// single fixed file per tool, so a second root rule can only clobber the
// first; extras are reported and excluded, keeping the first in name
// order for determinism.
func dedupeRootRules(rules []*canonical.Rule, errs *[]error) []*canonical.Rule {
	sort.Slice(rules, func(i, j int) bool { return rules[i].Name < rules[j].Name })

	seenRoot := false
	kept := rules[:0]
	for _, r := range rules {
		if r.Front.Root {
			if seenRoot {
				*errs = append(*errs, &syncerr.ValidationError{
					Path:   r.Name,
					Field:  "root",
					Reason: "multiple root rules; only one root rule is allowed per source tree",
				})
				continue
			}
			seenRoot = true
		}
		kept = append(kept, r)
	}
	return kept
}

// hasContent reports whether the canonical source has anything for kind.
// Pairs with neither canonical content nor scope support are skipped
// silently instead of raising an unsupported-operation failure the
// author never asked for.
func (l *loaded) hasContent(kind canonical.Kind) bool {
	switch kind {
	case canonical.KindRules:
		return len(l.Rules) > 0
	case canonical.KindCommands:
		return len(l.Commands) > 0
	case canonical.KindSubagents:
		return len(l.Subagents) > 0
	case canonical.KindSkills:
		return len(l.Skills) > 0
	case canonical.KindIgnore:
		return l.Ignore != nil
	case canonical.KindMCP:
		return !l.MCP.IsEmpty()
	case canonical.KindHooks:
		return !l.Hooks.IsEmpty()
	}
	return false
}

// Generate runs the forward pipeline: canonical source to tool trees.
// The returned report covers every processed (tool, kind) pair; the
// error return is reserved for filesystem failures, which abort the run.
func Generate(opts Options) (*Report, error) {
	tools, err := resolve.Targets(opts.Targets)
	if err != nil {
		return nil, err
	}
	features, err := resolve.Features(opts.Features)
	if err != nil {
		return nil, err
	}

	src := loadSource(opts.SourceDir, features)
	report := &Report{SourceErrors: src.Errors, Warnings: src.Warnings}
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
				pair := processPair(tool, kind, baseDir, scope, src, opts.DryRun)
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

// processPair runs steps 3-6 of the pipeline for one (tool, kind,
// baseDir) triple: filter, convert, load existing, reconcile. A nil
// return means the pair was silently inapplicable.
func processPair(tool *adapter.Tool, kind canonical.Kind, baseDir string, scope adapter.Scope, src *loaded, dryRun bool) *PairReport {
	pair := &PairReport{Tool: tool.ID, Kind: kind, BaseDir: baseDir}

	generated, err := convertKind(tool, kind, baseDir, scope, src)
	if err != nil {
		var unsupported *syncerr.UnsupportedOperationError
		if errors.As(err, &unsupported) && !src.hasContent(kind) {
			return nil
		}
		pair.Failure = err
		return pair
	}

	existing, err := loadExisting(tool, kind, baseDir, scope)
	if err != nil {
		var unsupported *syncerr.UnsupportedOperationError
		if errors.As(err, &unsupported) {
			if !src.hasContent(kind) {
				return nil
			}
			pair.Failure = err
			return pair
		}
		// Enumeration failures are filesystem errors, fatal to the run.
		pair.Fatal = err
		return pair
	}

	plan := reconcile.Build(generated, existing)
	if !dryRun {
		if err := plan.Apply(); err != nil {
			// Apply rolled back, so the pair mutated nothing and the
			// report must say so.
			pair.Fatal = err
			return pair
		}
	}

	for _, a := range plan.Writes {
		pair.Written = append(pair.Written, a.Path())
	}
	pair.Deleted = plan.DeletePaths()
	pair.Unchanged = len(plan.Unchanged)
	return pair
}

// convertKind fans one canonical kind out through one tool adapter,
// skipping artifacts whose targets exclude the tool.
func convertKind(tool *adapter.Tool, kind canonical.Kind, baseDir string, scope adapter.Scope, src *loaded) ([]*adapter.ToolArtifact, error) {
	var generated []*adapter.ToolArtifact

	switch kind {
	case canonical.KindRules:
		for _, rule := range src.Rules {
			if !rule.IsTargeted(tool.ID) {
				continue
			}
			artifacts, err := adapter.RuleArtifacts(tool, rule, baseDir, scope)
			if err != nil {
				return nil, err
			}
			generated = append(generated, artifacts...)
		}
	case canonical.KindIgnore:
		if src.Ignore == nil {
			return nil, nil
		}
		a, err := adapter.IgnoreArtifact(tool, src.Ignore, baseDir, scope)
		if err != nil {
			return nil, err
		}
		generated = append(generated, a)
	case canonical.KindMCP:
		if src.MCP == nil {
			return nil, nil
		}
		a, err := adapter.MCPArtifact(tool, src.MCP, baseDir, scope)
		if err != nil {
			return nil, err
		}
		if a != nil {
			generated = append(generated, a)
		}
	case canonical.KindCommands:
		for _, cmd := range src.Commands {
			if !cmd.IsTargeted(tool.ID) {
				continue
			}
			a, err := adapter.CommandArtifact(tool, cmd, baseDir, scope)
			if err != nil {
				return nil, err
			}
			generated = append(generated, a)
		}
	case canonical.KindSubagents:
		for _, sub := range src.Subagents {
			if !sub.IsTargeted(tool.ID) {
				continue
			}
			a, err := adapter.SubagentArtifact(tool, sub, baseDir, scope)
			if err != nil {
				return nil, err
			}
			generated = append(generated, a)
		}
	case canonical.KindSkills:
		for _, skill := range src.Skills {
			if !skill.IsTargeted(tool.ID) {
				continue
			}
			artifacts, err := adapter.SkillArtifacts(tool, skill, baseDir, scope)
			if err != nil {
				return nil, err
			}
			generated = append(generated, artifacts...)
		}
	case canonical.KindHooks:
		if src.Hooks == nil {
			return nil, nil
		}
		a, err := adapter.HooksArtifact(tool, src.Hooks, baseDir, scope)
		if err != nil {
			return nil, err
		}
		generated = append(generated, a)
	}
	return generated, nil
}

func kindIn(kinds []canonical.Kind, kind canonical.Kind) bool {
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}
