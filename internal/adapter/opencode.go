package adapter

import (
	"encoding/json"

	"github.com/kennyg/scribe/internal/canonical"
)

// OpenCode layout: a single root AGENTS.md, commands under
// .opencode/command/ (singular), subagents under .opencode/agent/, and
// its own MCP shape in opencode.json where local servers carry the
// command as an argv array.
func opencodeTool() *Tool {
	return &Tool{
		ID:          "opencode",
		DisplayName: "OpenCode",
		Rules: &RuleSupport{
			Project: &SettablePaths{
				Root: &RootPath{Dir: ".", File: "AGENTS.md"},
			},
			Global: &SettablePaths{
				Root: &RootPath{Dir: ".config/opencode", File: "AGENTS.md"},
			},
			Render: renderPlainRule,
			Parse:  parsePlainRule,
		},
		MCP: &MCPSupport{
			FileSupport: FileSupport{
				Project: &RootPath{Dir: ".", File: "opencode.json"},
				Global:  &RootPath{Dir: ".config/opencode", File: "opencode.json"},
			},
			Render: renderOpenCodeMCP,
			Parse:  parseOpenCodeMCP,
		},
		Commands: &CommandSupport{
			Project: &NonRootPath{Dir: ".opencode/command"},
			Global:  &NonRootPath{Dir: ".config/opencode/command"},
			Render:  renderDescribedCommand,
			Parse:   parseDescribedCommand,
		},
		Subagents: &SubagentSupport{
			Project: &NonRootPath{Dir: ".opencode/agent"},
			Global:  &NonRootPath{Dir: ".config/opencode/agent"},
			Render:  renderOpenCodeSubagent,
			Parse:   parseOpenCodeSubagent,
		},
	}
}

type openCodeMCPDoc struct {
	MCP map[string]*openCodeMCPServer `json:"mcp"`
}

type openCodeMCPServer struct {
	Type        string            `json:"type"`
	Command     []string          `json:"command,omitempty"`
	Environment map[string]string `json:"environment,omitempty"`
	URL         string            `json:"url,omitempty"`
	Headers     map[string]string `json:"headers,omitempty"`
}

// renderOpenCodeMCP emits OpenCode's {"mcp": {...}} shape: local servers
// fold command and args into one argv array, env is spelled environment.
func renderOpenCodeMCP(c *canonical.MCPConfig) ([]byte, error) {
	doc := openCodeMCPDoc{MCP: make(map[string]*openCodeMCPServer, len(c.Servers))}
	for _, name := range c.ServerNames() {
		srv := c.Servers[name]
		out := &openCodeMCPServer{Environment: srv.Env, URL: srv.URL, Headers: srv.Headers}
		if srv.Command != "" {
			out.Type = "local"
			out.Command = append([]string{srv.Command}, srv.Args...)
		} else {
			out.Type = "remote"
		}
		doc.MCP[name] = out
	}
	return marshalJSONFile(&doc)
}

func parseOpenCodeMCP(content []byte) (*canonical.MCPConfig, error) {
	var doc openCodeMCPDoc
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, err
	}
	cfg := &canonical.MCPConfig{Servers: make(map[string]*canonical.MCPServer, len(doc.MCP))}
	for name, srv := range doc.MCP {
		out := &canonical.MCPServer{Env: srv.Environment, URL: srv.URL, Headers: srv.Headers}
		if len(srv.Command) > 0 {
			out.Command = srv.Command[0]
			out.Args = srv.Command[1:]
		}
		cfg.Servers[name] = out
	}
	return cfg, nil
}

type openCodeSubagentFrontmatter struct {
	Description string `yaml:"description"`
	Mode        string `yaml:"mode"`
}

func renderOpenCodeSubagent(s *canonical.Subagent) ([]byte, error) {
	return canonical.EncodeFrontmatter(&openCodeSubagentFrontmatter{
		Description: s.Front.Description,
		Mode:        "subagent",
	}, s.Body)
}

func parseOpenCodeSubagent(name string, content []byte) (*canonical.Subagent, error) {
	var fm openCodeSubagentFrontmatter
	body, err := canonical.DecodeFrontmatter(content, &fm)
	if err != nil {
		return nil, err
	}
	desc := fm.Description
	if desc == "" {
		desc = name
	}
	return &canonical.Subagent{
		Name: name,
		Front: canonical.SubagentFrontmatter{
			Name:        name,
			Description: desc,
			Targets:     []string{"*"},
		},
		Body: body,
	}, nil
}
