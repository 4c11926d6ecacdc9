// Package adapter declares the per-tool conversion contract and the
// registry of supported tools. Adapters are pure transforms: a tool is a
// value-type record of settable paths plus render/parse functions per
// artifact kind, dispatched by tool id. All I/O belongs to the processor.
package adapter

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/kennyg/scribe/internal/canonical"
	"github.com/kennyg/scribe/internal/syncerr"
)

// Scope is where generated files land: inside the project tree or under
// the user's home directory.
type Scope string

const (
	ScopeProject Scope = "project"
	ScopeGlobal  Scope = "global"
)

// IsValid returns true if the scope is recognized.
func (s Scope) IsValid() bool {
	return s == ScopeProject || s == ScopeGlobal
}

// RootPath places the single primary artifact of a kind. File may be empty
// when the root artifact is named after the canonical artifact instead of
// a fixed file name.
type RootPath struct {
	Dir  string
	File string
}

// NonRootPath places every non-primary artifact under a tool-specific
// directory, preserving the artifact's relative sub-path.
type NonRootPath struct {
	Dir string
}

// SettablePaths declares where one (tool, kind) writes in one scope. A nil
// Root or NonRoot means that side of the conversion is unsupported.
type SettablePaths struct {
	Root    *RootPath
	NonRoot *NonRootPath
}

// ToolArtifact is one file in a tool's native layout, constructed in
// memory for the duration of a generate or import pass.
type ToolArtifact struct {
	BaseDir string
	RelDir  string
	Name    string
	Content []byte
	Scope   Scope
}

// Path returns the artifact's absolute file path.
func (a *ToolArtifact) Path() string {
	return filepath.Join(a.BaseDir, filepath.FromSlash(a.RelDir), a.Name)
}

// RelPath returns the artifact's path relative to its base directory.
func (a *ToolArtifact) RelPath() string {
	return path.Join(a.RelDir, a.Name)
}

// RuleSupport declares one tool's rule handling. Render produces the
// tool's native content for one rule; Parse is its best-effort inverse
// and must tolerate missing optional fields.
type RuleSupport struct {
	Project *SettablePaths
	Global  *SettablePaths
	Ext     string // output extension, e.g. ".md" or ".mdc"
	Render  func(r *canonical.Rule) ([]byte, error)
	Parse   func(name string, root bool, content []byte) (*canonical.Rule, error)
}

// FileSupport declares handling for single-file kinds (ignore, mcp,
// hooks): one fixed output file per scope.
type FileSupport struct {
	Project *RootPath
	Global  *RootPath
}

// IgnoreSupport declares one tool's ignore-list handling.
type IgnoreSupport struct {
	FileSupport
	Render func(f *canonical.IgnoreFile) ([]byte, error)
	Parse  func(content []byte) (*canonical.IgnoreFile, error)
}

// MCPSupport declares one tool's MCP configuration handling.
type MCPSupport struct {
	FileSupport
	Render func(c *canonical.MCPConfig) ([]byte, error)
	Parse  func(content []byte) (*canonical.MCPConfig, error)
}

// HookSupport declares one tool's hook configuration handling.
type HookSupport struct {
	FileSupport
	Render func(c *canonical.HooksConfig) ([]byte, error)
	Parse  func(content []byte) (*canonical.HooksConfig, error)
}

// CommandSupport declares one tool's slash-command handling.
type CommandSupport struct {
	Project *NonRootPath
	Global  *NonRootPath
	Ext     string
	Render  func(c *canonical.Command) ([]byte, error)
	Parse   func(name string, content []byte) (*canonical.Command, error)
}

// SubagentSupport declares one tool's subagent handling.
type SubagentSupport struct {
	Project *NonRootPath
	Global  *NonRootPath
	Ext     string
	Render  func(s *canonical.Subagent) ([]byte, error)
	Parse   func(name string, content []byte) (*canonical.Subagent, error)
}

// SkillSupport declares one tool's skill handling. Skills fan out to one
// directory per skill: a rendered SKILL.md plus auxiliary files copied
// verbatim.
type SkillSupport struct {
	Project *NonRootPath
	Global  *NonRootPath
	Render  func(s *canonical.Skill) ([]byte, error)
	Parse   func(dirName string, content []byte) (*canonical.Skill, error)
}

// Tool is one external tool's complete support surface. A nil kind field
// means the tool has no representation for that kind and the pair is
// skipped during resolution.
type Tool struct {
	ID          string
	DisplayName string
	Rules       *RuleSupport
	Ignore      *IgnoreSupport
	MCP         *MCPSupport
	Commands    *CommandSupport
	Subagents   *SubagentSupport
	Skills      *SkillSupport
	Hooks       *HookSupport
}

// Supports reports whether the tool has any representation for kind.
func (t *Tool) Supports(kind canonical.Kind) bool {
	switch kind {
	case canonical.KindRules:
		return t.Rules != nil
	case canonical.KindIgnore:
		return t.Ignore != nil
	case canonical.KindMCP:
		return t.MCP != nil
	case canonical.KindCommands:
		return t.Commands != nil
	case canonical.KindSubagents:
		return t.Subagents != nil
	case canonical.KindSkills:
		return t.Skills != nil
	case canonical.KindHooks:
		return t.Hooks != nil
	}
	return false
}

// RulePaths returns the settable rule paths for scope, or an
// UnsupportedOperationError when the tool has no rule layout there.
func (t *Tool) RulePaths(scope Scope) (*SettablePaths, error) {
	var p *SettablePaths
	if scope == ScopeGlobal {
		p = t.Rules.Global
	} else {
		p = t.Rules.Project
	}
	if p == nil {
		return nil, &syncerr.UnsupportedOperationError{Tool: t.ID, Kind: string(canonical.KindRules), Scope: string(scope), Op: "any conversion"}
	}
	return p, nil
}

// RuleArtifacts converts one canonical rule into the tool's artifacts for
// the given scope. Root rules use the root path; everything else lands
// under the non-root directory preserving the rule's sub-path. Asking for
// a placement the tool does not declare is an error, not a silent no-op.
func RuleArtifacts(t *Tool, r *canonical.Rule, baseDir string, scope Scope) ([]*ToolArtifact, error) {
	paths, err := t.RulePaths(scope)
	if err != nil {
		return nil, err
	}
	content, err := t.Rules.Render(r)
	if err != nil {
		return nil, err
	}

	ext := t.Rules.Ext
	if ext == "" {
		ext = ".md"
	}

	if r.Front.Root {
		if paths.Root == nil {
			return nil, &syncerr.UnsupportedOperationError{Tool: t.ID, Kind: string(canonical.KindRules), Scope: string(scope), Op: "root rules"}
		}
		name := paths.Root.File
		if name == "" {
			name = r.Name + ext
		}
		return []*ToolArtifact{{BaseDir: baseDir, RelDir: paths.Root.Dir, Name: name, Content: content, Scope: scope}}, nil
	}

	if paths.NonRoot == nil {
		return nil, &syncerr.UnsupportedOperationError{Tool: t.ID, Kind: string(canonical.KindRules), Scope: string(scope), Op: "non-root rules"}
	}
	relDir := paths.NonRoot.Dir
	if r.RelDir != "" {
		relDir = path.Join(relDir, r.RelDir)
	}
	return []*ToolArtifact{{BaseDir: baseDir, RelDir: relDir, Name: r.Name + ext, Content: content, Scope: scope}}, nil
}

// RuleFromArtifact runs the tool's rule parser against an existing tool
// artifact, recovering a canonical rule.
func RuleFromArtifact(t *Tool, a *ToolArtifact, root bool) (*canonical.Rule, error) {
	ext := t.Rules.Ext
	if ext == "" {
		ext = ".md"
	}
	name := a.Name
	if strings.HasSuffix(name, ext) {
		name = strings.TrimSuffix(name, ext)
	} else {
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}
	if name == "" {
		name = a.Name
	}
	return t.Rules.Parse(name, root, a.Content)
}

// filePath picks the fixed output path for a single-file kind, or an
// UnsupportedOperationError for an undeclared scope.
func (f FileSupport) filePath(toolID string, kind canonical.Kind, scope Scope) (*RootPath, error) {
	var p *RootPath
	if scope == ScopeGlobal {
		p = f.Global
	} else {
		p = f.Project
	}
	if p == nil {
		return nil, &syncerr.UnsupportedOperationError{Tool: toolID, Kind: string(kind), Scope: string(scope), Op: "any conversion"}
	}
	return p, nil
}

// IgnoreArtifact converts the canonical ignore list for one tool.
func IgnoreArtifact(t *Tool, f *canonical.IgnoreFile, baseDir string, scope Scope) (*ToolArtifact, error) {
	p, err := t.Ignore.filePath(t.ID, canonical.KindIgnore, scope)
	if err != nil {
		return nil, err
	}
	content, err := t.Ignore.Render(f)
	if err != nil {
		return nil, err
	}
	return &ToolArtifact{BaseDir: baseDir, RelDir: p.Dir, Name: p.File, Content: content, Scope: scope}, nil
}

// MCPArtifact converts the target-filtered canonical MCP config for one
// tool. An empty filtered config yields no artifact (the 1:0 mapping).
func MCPArtifact(t *Tool, c *canonical.MCPConfig, baseDir string, scope Scope) (*ToolArtifact, error) {
	p, err := t.MCP.filePath(t.ID, canonical.KindMCP, scope)
	if err != nil {
		return nil, err
	}
	filtered := c.ForTarget(t.ID)
	if filtered.IsEmpty() {
		return nil, nil
	}
	content, err := t.MCP.Render(filtered)
	if err != nil {
		return nil, err
	}
	return &ToolArtifact{BaseDir: baseDir, RelDir: p.Dir, Name: p.File, Content: content, Scope: scope}, nil
}

// HooksArtifact converts the canonical hooks map for one tool.
func HooksArtifact(t *Tool, c *canonical.HooksConfig, baseDir string, scope Scope) (*ToolArtifact, error) {
	p, err := t.Hooks.filePath(t.ID, canonical.KindHooks, scope)
	if err != nil {
		return nil, err
	}
	content, err := t.Hooks.Render(c)
	if err != nil {
		return nil, err
	}
	return &ToolArtifact{BaseDir: baseDir, RelDir: p.Dir, Name: p.File, Content: content, Scope: scope}, nil
}

// CommandArtifact converts one canonical command for one tool.
func CommandArtifact(t *Tool, c *canonical.Command, baseDir string, scope Scope) (*ToolArtifact, error) {
	var dir *NonRootPath
	if scope == ScopeGlobal {
		dir = t.Commands.Global
	} else {
		dir = t.Commands.Project
	}
	if dir == nil {
		return nil, &syncerr.UnsupportedOperationError{Tool: t.ID, Kind: string(canonical.KindCommands), Scope: string(scope), Op: "any conversion"}
	}
	content, err := t.Commands.Render(c)
	if err != nil {
		return nil, err
	}
	ext := t.Commands.Ext
	if ext == "" {
		ext = ".md"
	}
	relDir := dir.Dir
	if c.RelDir != "" {
		relDir = path.Join(relDir, c.RelDir)
	}
	return &ToolArtifact{BaseDir: baseDir, RelDir: relDir, Name: c.Name + ext, Content: content, Scope: scope}, nil
}

// SubagentArtifact converts one canonical subagent for one tool.
func SubagentArtifact(t *Tool, s *canonical.Subagent, baseDir string, scope Scope) (*ToolArtifact, error) {
	var dir *NonRootPath
	if scope == ScopeGlobal {
		dir = t.Subagents.Global
	} else {
		dir = t.Subagents.Project
	}
	if dir == nil {
		return nil, &syncerr.UnsupportedOperationError{Tool: t.ID, Kind: string(canonical.KindSubagents), Scope: string(scope), Op: "any conversion"}
	}
	content, err := t.Subagents.Render(s)
	if err != nil {
		return nil, err
	}
	ext := t.Subagents.Ext
	if ext == "" {
		ext = ".md"
	}
	relDir := dir.Dir
	if s.RelDir != "" {
		relDir = path.Join(relDir, s.RelDir)
	}
	return &ToolArtifact{BaseDir: baseDir, RelDir: relDir, Name: s.Name + ext, Content: content, Scope: scope}, nil
}

// SkillArtifacts converts one canonical skill for one tool: the rendered
// SKILL.md plus every auxiliary file, all under the skill's directory.
func SkillArtifacts(t *Tool, s *canonical.Skill, baseDir string, scope Scope) ([]*ToolArtifact, error) {
	var dir *NonRootPath
	if scope == ScopeGlobal {
		dir = t.Skills.Global
	} else {
		dir = t.Skills.Project
	}
	if dir == nil {
		return nil, &syncerr.UnsupportedOperationError{Tool: t.ID, Kind: string(canonical.KindSkills), Scope: string(scope), Op: "any conversion"}
	}
	content, err := t.Skills.Render(s)
	if err != nil {
		return nil, err
	}

	skillDir := path.Join(dir.Dir, s.Name)
	artifacts := []*ToolArtifact{
		{BaseDir: baseDir, RelDir: skillDir, Name: canonical.SkillFileName, Content: content, Scope: scope},
	}
	for _, aux := range s.Aux {
		relDir := path.Join(skillDir, path.Dir(aux.RelPath))
		if path.Dir(aux.RelPath) == "." {
			relDir = skillDir
		}
		artifacts = append(artifacts, &ToolArtifact{
			BaseDir: baseDir,
			RelDir:  relDir,
			Name:    path.Base(aux.RelPath),
			Content: aux.Content,
			Scope:   scope,
		})
	}
	return artifacts, nil
}

// KindFilePath returns the fixed output path for a single-file kind
// (ignore, mcp, hooks) in the given scope. Used by the processor to scan
// the existing tool-side tree.
func (t *Tool) KindFilePath(kind canonical.Kind, scope Scope) (*RootPath, error) {
	switch kind {
	case canonical.KindIgnore:
		return t.Ignore.filePath(t.ID, kind, scope)
	case canonical.KindMCP:
		return t.MCP.filePath(t.ID, kind, scope)
	case canonical.KindHooks:
		return t.Hooks.filePath(t.ID, kind, scope)
	}
	return nil, &syncerr.UnsupportedOperationError{Tool: t.ID, Kind: string(kind), Scope: string(scope), Op: "single-file path"}
}

// KindDir returns the output directory for a per-artifact kind (commands,
// subagents, skills) in the given scope.
func (t *Tool) KindDir(kind canonical.Kind, scope Scope) (*NonRootPath, error) {
	var dir *NonRootPath
	switch kind {
	case canonical.KindCommands:
		if scope == ScopeGlobal {
			dir = t.Commands.Global
		} else {
			dir = t.Commands.Project
		}
	case canonical.KindSubagents:
		if scope == ScopeGlobal {
			dir = t.Subagents.Global
		} else {
			dir = t.Subagents.Project
		}
	case canonical.KindSkills:
		if scope == ScopeGlobal {
			dir = t.Skills.Global
		} else {
			dir = t.Skills.Project
		}
	}
	if dir == nil {
		return nil, &syncerr.UnsupportedOperationError{Tool: t.ID, Kind: string(kind), Scope: string(scope), Op: "any conversion"}
	}
	return dir, nil
}
