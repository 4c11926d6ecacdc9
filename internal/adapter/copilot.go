package adapter

import (
	"encoding/json"
	"strings"

	"github.com/kennyg/scribe/internal/canonical"
)

// GitHub Copilot layout: a root .github/copilot-instructions.md, scoped
// instruction files under .github/instructions/ with an applyTo glob,
// prompts under .github/prompts/, and MCP servers in .vscode/mcp.json.
// Copilot has no global-scope convention; every kind is project only.
func copilotTool() *Tool {
	return &Tool{
		ID:          "copilot",
		DisplayName: "GitHub Copilot",
		Rules: &RuleSupport{
			Project: &SettablePaths{
				Root:    &RootPath{Dir: ".github", File: "copilot-instructions.md"},
				NonRoot: &NonRootPath{Dir: ".github/instructions"},
			},
			Ext:    ".instructions.md",
			Render: renderCopilotRule,
			Parse:  parseCopilotRule,
		},
		MCP: &MCPSupport{
			FileSupport: FileSupport{
				Project: &RootPath{Dir: ".vscode", File: "mcp.json"},
			},
			Render: renderCopilotMCP,
			Parse:  parseCopilotMCP,
		},
		Commands: &CommandSupport{
			Project: &NonRootPath{Dir: ".github/prompts"},
			Ext:     ".prompt.md",
			Render:  renderDescribedCommand,
			Parse:   parseDescribedCommand,
		},
	}
}

type copilotRuleFrontmatter struct {
	Description string `yaml:"description,omitempty"`
	ApplyTo     string `yaml:"applyTo,omitempty"`
}

// renderCopilotRule emits either the plain root instructions file or a
// scoped .instructions.md with an applyTo glob joined from the canonical
// globs list.
func renderCopilotRule(r *canonical.Rule) ([]byte, error) {
	if r.Front.Root {
		return renderPlainRule(r)
	}
	fm := &copilotRuleFrontmatter{
		Description: r.Front.Description,
		ApplyTo:     strings.Join(r.Front.Globs, ","),
	}
	return canonical.EncodeFrontmatter(fm, r.Body)
}

// parseCopilotRule recovers a canonical rule from either Copilot shape.
func parseCopilotRule(name string, root bool, content []byte) (*canonical.Rule, error) {
	if root {
		return parsePlainRule(name, true, content)
	}
	var fm copilotRuleFrontmatter
	body, err := canonical.DecodeFrontmatter(content, &fm)
	if err != nil {
		return nil, err
	}
	rule := &canonical.Rule{
		Name: name,
		Front: canonical.RuleFrontmatter{
			Targets:     []string{"*"},
			Description: fm.Description,
		},
		Body: body,
	}
	if fm.ApplyTo != "" {
		for _, g := range strings.Split(fm.ApplyTo, ",") {
			if g = strings.TrimSpace(g); g != "" {
				rule.Front.Globs = append(rule.Front.Globs, g)
			}
		}
	}
	return rule, nil
}

type copilotMCPDoc struct {
	Servers map[string]*copilotMCPServer `json:"servers"`
}

type copilotMCPServer struct {
	Command string            `json:"command,omitempty"`
	Args    []string          `json:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
	Type    string            `json:"type,omitempty"`
	URL     string            `json:"url,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
}

// renderCopilotMCP emits VS Code's {"servers": {...}} shape. Local
// servers are tagged stdio, remote ones keep their transport or default
// to http.
func renderCopilotMCP(c *canonical.MCPConfig) ([]byte, error) {
	doc := copilotMCPDoc{Servers: make(map[string]*copilotMCPServer, len(c.Servers))}
	for _, name := range c.ServerNames() {
		srv := c.Servers[name]
		out := &copilotMCPServer{
			Command: srv.Command,
			Args:    srv.Args,
			Env:     srv.Env,
			URL:     srv.URL,
			Headers: srv.Headers,
		}
		switch {
		case srv.Command != "":
			out.Type = "stdio"
		case srv.Transport != "":
			out.Type = srv.Transport
		default:
			out.Type = "http"
		}
		doc.Servers[name] = out
	}
	return marshalJSONFile(&doc)
}

func parseCopilotMCP(content []byte) (*canonical.MCPConfig, error) {
	var doc copilotMCPDoc
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, err
	}
	cfg := &canonical.MCPConfig{Servers: make(map[string]*canonical.MCPServer, len(doc.Servers))}
	for name, srv := range doc.Servers {
		out := &canonical.MCPServer{
			Command: srv.Command,
			Args:    srv.Args,
			Env:     srv.Env,
			URL:     srv.URL,
			Headers: srv.Headers,
		}
		if srv.Type != "" && srv.Type != "stdio" {
			out.Transport = srv.Type
		}
		cfg.Servers[name] = out
	}
	return cfg, nil
}
