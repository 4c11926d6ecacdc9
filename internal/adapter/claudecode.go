package adapter

import (
	"encoding/json"
	"strings"

	"github.com/kennyg/scribe/internal/canonical"
)

// Claude Code layout: a root CLAUDE.md, memory files under
// .claude/memories/, permission denies in .claude/settings.json, MCP
// servers in .mcp.json, and commands/agents/skills/hooks under .claude/.
func claudecodeTool() *Tool {
	projectRules := &SettablePaths{
		Root:    &RootPath{Dir: ".", File: "CLAUDE.md"},
		NonRoot: &NonRootPath{Dir: ".claude/memories"},
	}
	globalRules := &SettablePaths{
		Root:    &RootPath{Dir: ".claude", File: "CLAUDE.md"},
		NonRoot: &NonRootPath{Dir: ".claude/memories"},
	}

	return &Tool{
		ID:          "claudecode",
		DisplayName: "Claude Code",
		Rules: &RuleSupport{
			Project: projectRules,
			Global:  globalRules,
			Render:  renderPlainRule,
			Parse:   parsePlainRule,
		},
		Ignore: &IgnoreSupport{
			FileSupport: FileSupport{
				Project: &RootPath{Dir: ".claude", File: "settings.json"},
				Global:  &RootPath{Dir: ".claude", File: "settings.json"},
			},
			Render: renderClaudeSettings,
			Parse:  parseClaudeSettings,
		},
		MCP: &MCPSupport{
			FileSupport: FileSupport{
				Project: &RootPath{Dir: ".", File: ".mcp.json"},
				Global:  &RootPath{Dir: ".claude", File: ".mcp.json"},
			},
			Render: renderMCPServersJSON,
			Parse:  parseMCPServersJSON,
		},
		Commands: &CommandSupport{
			Project: &NonRootPath{Dir: ".claude/commands"},
			Global:  &NonRootPath{Dir: ".claude/commands"},
			Render:  renderClaudeCommand,
			Parse:   parseClaudeCommand,
		},
		Subagents: &SubagentSupport{
			Project: &NonRootPath{Dir: ".claude/agents"},
			Global:  &NonRootPath{Dir: ".claude/agents"},
			Render:  renderClaudeSubagent,
			Parse:   parseClaudeSubagent,
		},
		Skills: &SkillSupport{
			Project: &NonRootPath{Dir: ".claude/skills"},
			Global:  &NonRootPath{Dir: ".claude/skills"},
			Render:  renderClaudeSkill,
			Parse:   parseClaudeSkill,
		},
		Hooks: &HookSupport{
			FileSupport: FileSupport{
				Project: &RootPath{Dir: ".claude", File: "hooks.json"},
				Global:  &RootPath{Dir: ".claude", File: "hooks.json"},
			},
			Render: renderClaudeHooks,
			Parse:  parseClaudeHooks,
		},
	}
}

// claudeSettings is the slice of .claude/settings.json this adapter owns.
type claudeSettings struct {
	Permissions claudePermissions `json:"permissions"`
}

type claudePermissions struct {
	Deny []string `json:"deny"`
}

// renderClaudeSettings wraps each ignore pattern in Claude's permission
// syntax, one deny entry per (pattern, action). Directory patterns widen
// to match their contents: tmp/ becomes Read(tmp/**).
func renderClaudeSettings(f *canonical.IgnoreFile) ([]byte, error) {
	var deny []string
	for _, p := range f.Patterns {
		pattern := p.Pattern
		if strings.HasSuffix(pattern, "/") {
			pattern += "**"
		}
		for _, action := range p.Actions {
			switch action {
			case canonical.ActionRead:
				deny = append(deny, "Read("+pattern+")")
			case canonical.ActionWrite:
				deny = append(deny, "Write("+pattern+")")
			case canonical.ActionEdit:
				deny = append(deny, "Edit("+pattern+")")
			}
		}
	}
	data, err := json.MarshalIndent(&claudeSettings{Permissions: claudePermissions{Deny: deny}}, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// parseClaudeSettings unwraps Tool(pattern) deny entries back into
// canonical patterns, merging actions that share a pattern. Entries that
// are not in the wrapped form are kept as read denies.
func parseClaudeSettings(content []byte) (*canonical.IgnoreFile, error) {
	var settings claudeSettings
	if err := json.Unmarshal(content, &settings); err != nil {
		return nil, err
	}

	actions := make(map[string][]canonical.IgnoreAction)
	var order []string
	add := func(pattern string, action canonical.IgnoreAction) {
		if _, seen := actions[pattern]; !seen {
			order = append(order, pattern)
		}
		actions[pattern] = append(actions[pattern], action)
	}

	for _, entry := range settings.Permissions.Deny {
		switch {
		case strings.HasPrefix(entry, "Read(") && strings.HasSuffix(entry, ")"):
			add(entry[5:len(entry)-1], canonical.ActionRead)
		case strings.HasPrefix(entry, "Write(") && strings.HasSuffix(entry, ")"):
			add(entry[6:len(entry)-1], canonical.ActionWrite)
		case strings.HasPrefix(entry, "Edit(") && strings.HasSuffix(entry, ")"):
			add(entry[5:len(entry)-1], canonical.ActionEdit)
		default:
			add(entry, canonical.ActionRead)
		}
	}

	file := &canonical.IgnoreFile{}
	for _, pattern := range order {
		file.Patterns = append(file.Patterns, canonical.IgnorePattern{Pattern: pattern, Actions: actions[pattern]})
	}
	return file, nil
}

type claudeCommandFrontmatter struct {
	Description  string   `yaml:"description,omitempty"`
	Model        string   `yaml:"model,omitempty"`
	AllowedTools []string `yaml:"allowed-tools,omitempty"`
}

func renderClaudeCommand(c *canonical.Command) ([]byte, error) {
	fm := &claudeCommandFrontmatter{Description: c.Front.Description}
	if ext := c.Front.Claudecode; ext != nil {
		fm.Model = ext.Model
		fm.AllowedTools = ext.AllowedTools
	}
	return canonical.EncodeFrontmatter(fm, c.Body)
}

func parseClaudeCommand(name string, content []byte) (*canonical.Command, error) {
	var fm claudeCommandFrontmatter
	body, err := canonical.DecodeFrontmatter(content, &fm)
	if err != nil {
		return nil, err
	}
	cmd := &canonical.Command{
		Name: name,
		Front: canonical.CommandFrontmatter{
			Description: fm.Description,
			Targets:     []string{"*"},
		},
		Body: body,
	}
	if cmd.Front.Description == "" {
		cmd.Front.Description = name
	}
	if fm.Model != "" || len(fm.AllowedTools) > 0 {
		cmd.Front.Claudecode = &canonical.ClaudeCommandExt{Model: fm.Model, AllowedTools: fm.AllowedTools}
	}
	return cmd, nil
}

type claudeSubagentFrontmatter struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Model       string `yaml:"model,omitempty"`
}

func renderClaudeSubagent(s *canonical.Subagent) ([]byte, error) {
	fm := &claudeSubagentFrontmatter{
		Name:        s.Front.Name,
		Description: s.Front.Description,
	}
	if s.Front.Claudecode != nil {
		fm.Model = s.Front.Claudecode.Model
	}
	return canonical.EncodeFrontmatter(fm, s.Body)
}

func parseClaudeSubagent(name string, content []byte) (*canonical.Subagent, error) {
	var fm claudeSubagentFrontmatter
	body, err := canonical.DecodeFrontmatter(content, &fm)
	if err != nil {
		return nil, err
	}
	sub := &canonical.Subagent{
		Name: name,
		Front: canonical.SubagentFrontmatter{
			Name:        fm.Name,
			Description: fm.Description,
			Targets:     []string{"*"},
		},
		Body: body,
	}
	if sub.Front.Name == "" {
		sub.Front.Name = name
	}
	if sub.Front.Description == "" {
		sub.Front.Description = name
	}
	if fm.Model != "" {
		sub.Front.Claudecode = &canonical.ClaudeSubagentExt{Model: fm.Model}
	}
	return sub, nil
}

type claudeSkillFrontmatter struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

func renderClaudeSkill(s *canonical.Skill) ([]byte, error) {
	return canonical.EncodeFrontmatter(&claudeSkillFrontmatter{
		Name:        s.Front.Name,
		Description: s.Front.Description,
	}, s.Body)
}

func parseClaudeSkill(dirName string, content []byte) (*canonical.Skill, error) {
	var fm claudeSkillFrontmatter
	body, err := canonical.DecodeFrontmatter(content, &fm)
	if err != nil {
		return nil, err
	}
	skill := &canonical.Skill{
		Name: dirName,
		Front: canonical.SkillFrontmatter{
			Name:        fm.Name,
			Description: fm.Description,
			Targets:     []string{"*"},
		},
		Body: body,
	}
	if skill.Front.Name == "" {
		skill.Front.Name = dirName
	}
	if skill.Front.Description == "" {
		skill.Front.Description = dirName
	}
	return skill, nil
}

// Claude's hook event vocabulary, keyed by canonical event name.
var claudeHookEvents = map[string]string{
	canonical.EventPreToolUse:       "PreToolUse",
	canonical.EventPostToolUse:      "PostToolUse",
	canonical.EventUserPromptSubmit: "UserPromptSubmit",
	canonical.EventSessionStart:     "SessionStart",
	canonical.EventSessionEnd:       "SessionEnd",
	canonical.EventStop:             "Stop",
}

type claudeHooksDoc struct {
	Hooks map[string][]claudeHookMatcher `json:"hooks"`
}

type claudeHookMatcher struct {
	Matcher string            `json:"matcher,omitempty"`
	Hooks   []claudeHookEntry `json:"hooks"`
}

type claudeHookEntry struct {
	Type    string `json:"type"`
	Command string `json:"command"`
}

func renderClaudeHooks(c *canonical.HooksConfig) ([]byte, error) {
	doc := claudeHooksDoc{Hooks: make(map[string][]claudeHookMatcher)}
	for _, event := range c.EventNames() {
		toolEvent := claudeHookEvents[event]
		if toolEvent == "" {
			continue
		}
		for _, cmd := range c.Hooks[event] {
			doc.Hooks[toolEvent] = append(doc.Hooks[toolEvent], claudeHookMatcher{
				Matcher: cmd.Matcher,
				Hooks:   []claudeHookEntry{{Type: cmd.Type, Command: cmd.Command}},
			})
		}
	}
	data, err := json.MarshalIndent(&doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func parseClaudeHooks(content []byte) (*canonical.HooksConfig, error) {
	var doc claudeHooksDoc
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, err
	}

	reverse := make(map[string]string, len(claudeHookEvents))
	for canon, tool := range claudeHookEvents {
		reverse[tool] = canon
	}

	cfg := &canonical.HooksConfig{Hooks: make(map[string][]canonical.HookCommand)}
	for toolEvent, matchers := range doc.Hooks {
		canon, ok := reverse[toolEvent]
		if !ok {
			// Unknown tool-side events are dropped, not fatal.
			continue
		}
		for _, m := range matchers {
			for _, h := range m.Hooks {
				cfg.Hooks[canon] = append(cfg.Hooks[canon], canonical.HookCommand{
					Type:    h.Type,
					Command: h.Command,
					Matcher: m.Matcher,
				})
			}
		}
	}
	return cfg, nil
}
