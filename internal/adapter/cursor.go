package adapter

import (
	"strings"

	"github.com/kennyg/scribe/internal/canonical"
)

// Cursor layout: MDC rule files under .cursor/rules/ (root rules become
// alwaysApply), a bare-pattern .cursorignore, Claude-shaped mcp.json, and
// plain command files under .cursor/commands/.
func cursorTool() *Tool {
	rulePaths := &SettablePaths{
		Root:    &RootPath{Dir: ".cursor/rules"}, // named after the rule, lands beside the rest
		NonRoot: &NonRootPath{Dir: ".cursor/rules"},
	}

	return &Tool{
		ID:          "cursor",
		DisplayName: "Cursor",
		Rules: &RuleSupport{
			Project: rulePaths,
			Global:  rulePaths,
			Ext:     ".mdc",
			Render:  renderCursorRule,
			Parse:   parseCursorRule,
		},
		Ignore: &IgnoreSupport{
			FileSupport: FileSupport{
				Project: &RootPath{Dir: ".", File: ".cursorignore"},
			},
			Render: renderBareIgnore,
			Parse:  parseBareIgnore,
		},
		MCP: &MCPSupport{
			FileSupport: FileSupport{
				Project: &RootPath{Dir: ".cursor", File: "mcp.json"},
				Global:  &RootPath{Dir: ".cursor", File: "mcp.json"},
			},
			Render: renderMCPServersJSON,
			Parse:  parseMCPServersJSON,
		},
		Commands: &CommandSupport{
			Project: &NonRootPath{Dir: ".cursor/commands"},
			Global:  &NonRootPath{Dir: ".cursor/commands"},
			Render:  renderDescribedCommand,
			Parse:   parseDescribedCommand,
		},
	}
}

type cursorRuleFrontmatter struct {
	Description string `yaml:"description,omitempty"`
	Globs       string `yaml:"globs,omitempty"`
	AlwaysApply bool   `yaml:"alwaysApply"`
}

// renderCursorRule emits an MDC file. Cursor expresses globs as a single
// comma-joined string, and root maps onto alwaysApply.
func renderCursorRule(r *canonical.Rule) ([]byte, error) {
	fm := &cursorRuleFrontmatter{
		Description: r.Front.Description,
		Globs:       strings.Join(r.Front.Globs, ","),
		AlwaysApply: r.Front.Root,
	}
	return canonical.EncodeFrontmatter(fm, r.Body)
}

// parseCursorRule recovers a canonical rule from an MDC file.
func parseCursorRule(name string, root bool, content []byte) (*canonical.Rule, error) {
	var fm cursorRuleFrontmatter
	body, err := canonical.DecodeFrontmatter(content, &fm)
	if err != nil {
		return nil, err
	}
	rule := &canonical.Rule{
		Name: name,
		Front: canonical.RuleFrontmatter{
			Root:        root || fm.AlwaysApply,
			Targets:     []string{"*"},
			Description: fm.Description,
		},
		Body: body,
	}
	if fm.Globs != "" {
		for _, g := range strings.Split(fm.Globs, ",") {
			if g = strings.TrimSpace(g); g != "" {
				rule.Front.Globs = append(rule.Front.Globs, g)
			}
		}
	}
	return rule, nil
}
