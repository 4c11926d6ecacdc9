package adapter

import (
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/kennyg/scribe/internal/canonical"
)

// Gemini CLI layout: a root GEMINI.md with memory files under
// .gemini/memories/, a bare-pattern .aiexclude, Claude-shaped servers in
// .gemini/settings.json, and TOML command files under .gemini/commands/.
func geminicliTool() *Tool {
	rulePaths := &SettablePaths{
		Root:    &RootPath{Dir: ".", File: "GEMINI.md"},
		NonRoot: &NonRootPath{Dir: ".gemini/memories"},
	}
	globalRulePaths := &SettablePaths{
		Root:    &RootPath{Dir: ".gemini", File: "GEMINI.md"},
		NonRoot: &NonRootPath{Dir: ".gemini/memories"},
	}

	return &Tool{
		ID:          "geminicli",
		DisplayName: "Gemini CLI",
		Rules: &RuleSupport{
			Project: rulePaths,
			Global:  globalRulePaths,
			Render:  renderPlainRule,
			Parse:   parsePlainRule,
		},
		Ignore: &IgnoreSupport{
			FileSupport: FileSupport{
				Project: &RootPath{Dir: ".", File: ".aiexclude"},
			},
			Render: renderBareIgnore,
			Parse:  parseBareIgnore,
		},
		MCP: &MCPSupport{
			FileSupport: FileSupport{
				Project: &RootPath{Dir: ".gemini", File: "settings.json"},
				Global:  &RootPath{Dir: ".gemini", File: "settings.json"},
			},
			Render: renderMCPServersJSON,
			Parse:  parseMCPServersJSON,
		},
		Commands: &CommandSupport{
			Project: &NonRootPath{Dir: ".gemini/commands"},
			Global:  &NonRootPath{Dir: ".gemini/commands"},
			Ext:     ".toml",
			Render:  renderGeminiCommand,
			Parse:   parseGeminiCommand,
		},
	}
}

type geminiCommand struct {
	Description string `toml:"description,omitempty"`
	Prompt      string `toml:"prompt"`
}

// renderGeminiCommand emits Gemini's TOML command shape: the markdown
// body becomes the prompt string.
func renderGeminiCommand(c *canonical.Command) ([]byte, error) {
	return toml.Marshal(&geminiCommand{
		Description: c.Front.Description,
		Prompt:      c.Body,
	})
}

func parseGeminiCommand(name string, content []byte) (*canonical.Command, error) {
	var cmd geminiCommand
	if err := toml.Unmarshal(content, &cmd); err != nil {
		return nil, err
	}
	desc := cmd.Description
	if desc == "" {
		desc = name
	}
	return &canonical.Command{
		Name: name,
		Front: canonical.CommandFrontmatter{
			Description: desc,
			Targets:     []string{"*"},
		},
		Body: strings.TrimSuffix(cmd.Prompt, "\n") + "\n",
	}, nil
}
