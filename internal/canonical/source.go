package canonical

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Standard file and directory names inside the canonical source tree.
const (
	RulesDir      = "rules"
	CommandsDir   = "commands"
	SubagentsDir  = "subagents"
	SkillsDir     = "skills"
	SkillFileName = "SKILL.md"
	IgnoreName    = "ignore"
	MCPName       = "mcp.json"
	HooksName     = "hooks.json"
)

// Source reads canonical artifacts from one source tree (a .scribe
// directory). Artifacts are read fresh on every run; per-file parse and
// validation failures are collected, never raised, so one malformed file
// cannot sink its siblings.
type Source struct {
	Dir string
}

// LoadRules reads every rule under rules/.
func (s Source) LoadRules() ([]*Rule, []error) {
	var rules []*Rule
	errs := s.walkMarkdown(RulesDir, func(path, name, relDir string, content []byte) error {
		rule, err := ParseRule(path, name, relDir, content)
		if err != nil {
			return err
		}
		rules = append(rules, rule)
		return nil
	})
	return rules, errs
}

// LoadCommands reads every command under commands/.
func (s Source) LoadCommands() ([]*Command, []error) {
	var cmds []*Command
	errs := s.walkMarkdown(CommandsDir, func(path, name, relDir string, content []byte) error {
		cmd, err := ParseCommand(path, name, relDir, content)
		if err != nil {
			return err
		}
		cmds = append(cmds, cmd)
		return nil
	})
	return cmds, errs
}

// LoadSubagents reads every subagent under subagents/.
func (s Source) LoadSubagents() ([]*Subagent, []error) {
	var subs []*Subagent
	errs := s.walkMarkdown(SubagentsDir, func(path, name, relDir string, content []byte) error {
		sub, err := ParseSubagent(path, name, relDir, content)
		if err != nil {
			return err
		}
		subs = append(subs, sub)
		return nil
	})
	return subs, errs
}

// LoadSkills reads every skill directory under skills/. A directory
// without a SKILL.md is reported as an error; auxiliary files are attached
// verbatim.
func (s Source) LoadSkills() ([]*Skill, []error) {
	root := filepath.Join(s.Dir, SkillsDir)
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, []error{err}
	}

	var skills []*Skill
	var errs []error
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		skillDir := filepath.Join(root, entry.Name())
		mainPath := filepath.Join(skillDir, SkillFileName)
		content, err := os.ReadFile(mainPath)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		skill, perr := ParseSkill(mainPath, entry.Name(), content)
		if perr != nil {
			errs = append(errs, perr)
			continue
		}

		walkErr := filepath.WalkDir(skillDir, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}
			rel, _ := filepath.Rel(skillDir, path)
			if rel == SkillFileName {
				return nil
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			skill.Aux = append(skill.Aux, SkillFile{RelPath: filepath.ToSlash(rel), Content: data})
			return nil
		})
		if walkErr != nil {
			errs = append(errs, walkErr)
			continue
		}
		skills = append(skills, skill)
	}
	return skills, errs
}

// LoadIgnore reads the canonical ignore file. A missing file returns nil
// with no error; the feature simply has nothing to generate.
func (s Source) LoadIgnore() (*IgnoreFile, error) {
	path := filepath.Join(s.Dir, IgnoreName)
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return ParseIgnore(path, content)
}

// LoadMCP reads the canonical MCP server file. Missing file returns nil.
func (s Source) LoadMCP() (*MCPConfig, error) {
	path := filepath.Join(s.Dir, MCPName)
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return ParseMCP(path, content)
}

// LoadHooks reads the canonical hooks file. Missing file returns nil.
func (s Source) LoadHooks() (*HooksConfig, error) {
	path := filepath.Join(s.Dir, HooksName)
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return ParseHooks(path, content)
}

// walkMarkdown visits every .md file under dir, handing the callback the
// file's path, base name without extension, and slash-separated relative
// subdirectory. Per-file errors are collected so siblings still load.
func (s Source) walkMarkdown(dir string, visit func(path, name, relDir string, content []byte) error) []error {
	root := filepath.Join(s.Dir, dir)
	var errs []error
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return fs.SkipAll
			}
			errs = append(errs, err)
			return fs.SkipAll
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		rel, _ := filepath.Rel(root, path)
		relDir := filepath.Dir(rel)
		if relDir == "." {
			relDir = ""
		}
		name := strings.TrimSuffix(d.Name(), ".md")
		if err := visit(path, name, filepath.ToSlash(relDir), content); err != nil {
			errs = append(errs, err)
		}
		return nil
	})
	return errs
}
