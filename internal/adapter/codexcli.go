package adapter

import (
	"github.com/pelletier/go-toml/v2"

	"github.com/kennyg/scribe/internal/canonical"
)

// Codex CLI layout: a single root AGENTS.md (no per-file rule directory,
// so non-root rules are a declared unsupported conversion), prompts under
// .codex/prompts/, and MCP servers as a table in .codex/config.toml.
func codexcliTool() *Tool {
	return &Tool{
		ID:          "codexcli",
		DisplayName: "Codex CLI",
		Rules: &RuleSupport{
			Project: &SettablePaths{
				Root: &RootPath{Dir: ".", File: "AGENTS.md"},
			},
			Global: &SettablePaths{
				Root: &RootPath{Dir: ".codex", File: "AGENTS.md"},
			},
			Render: renderPlainRule,
			Parse:  parsePlainRule,
		},
		MCP: &MCPSupport{
			FileSupport: FileSupport{
				Project: &RootPath{Dir: ".codex", File: "config.toml"},
				Global:  &RootPath{Dir: ".codex", File: "config.toml"},
			},
			Render: renderCodexMCP,
			Parse:  parseCodexMCP,
		},
		Commands: &CommandSupport{
			Project: &NonRootPath{Dir: ".codex/prompts"},
			Global:  &NonRootPath{Dir: ".codex/prompts"},
			Render:  renderDescribedCommand,
			Parse:   parseDescribedCommand,
		},
	}
}

type codexConfig struct {
	MCPServers map[string]*codexMCPServer `toml:"mcp_servers"`
}

type codexMCPServer struct {
	Command string            `toml:"command,omitempty"`
	Args    []string          `toml:"args,omitempty"`
	Env     map[string]string `toml:"env,omitempty"`
	URL     string            `toml:"url,omitempty"`
}

// renderCodexMCP emits the [mcp_servers.<name>] table form of
// .codex/config.toml.
func renderCodexMCP(c *canonical.MCPConfig) ([]byte, error) {
	cfg := codexConfig{MCPServers: make(map[string]*codexMCPServer, len(c.Servers))}
	for _, name := range c.ServerNames() {
		srv := c.Servers[name]
		cfg.MCPServers[name] = &codexMCPServer{
			Command: srv.Command,
			Args:    srv.Args,
			Env:     srv.Env,
			URL:     srv.URL,
		}
	}
	return toml.Marshal(&cfg)
}

func parseCodexMCP(content []byte) (*canonical.MCPConfig, error) {
	var cfg codexConfig
	if err := toml.Unmarshal(content, &cfg); err != nil {
		return nil, err
	}
	out := &canonical.MCPConfig{Servers: make(map[string]*canonical.MCPServer, len(cfg.MCPServers))}
	for name, srv := range cfg.MCPServers {
		out.Servers[name] = &canonical.MCPServer{
			Command: srv.Command,
			Args:    srv.Args,
			Env:     srv.Env,
			URL:     srv.URL,
		}
	}
	return out, nil
}
