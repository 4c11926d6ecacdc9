package adapter

import (
	"encoding/json"
	"strings"

	"github.com/kennyg/scribe/internal/canonical"
)

// Shared render/parse helpers. Most tools cluster around a handful of
// on-disk shapes: plain-markdown rules, description-frontmatter command
// files, bare-pattern ignore files, and the mcpServers JSON document that
// Claude Code introduced and half the ecosystem copied.

// marshalJSONFile renders v as indented JSON with a trailing newline, the
// shape every tool's JSON config file uses.
func marshalJSONFile(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

type mcpServersDoc struct {
	MCPServers map[string]*mcpServerJSON `json:"mcpServers"`
}

type mcpServerJSON struct {
	Command string            `json:"command,omitempty"`
	Args    []string          `json:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
	Type    string            `json:"type,omitempty"`
	URL     string            `json:"url,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
}

// renderMCPServersJSON emits the Claude-style {"mcpServers": {...}}
// document. Canonical-only fields (targets) are projected away.
func renderMCPServersJSON(c *canonical.MCPConfig) ([]byte, error) {
	doc := mcpServersDoc{MCPServers: make(map[string]*mcpServerJSON, len(c.Servers))}
	for _, name := range c.ServerNames() {
		srv := c.Servers[name]
		doc.MCPServers[name] = &mcpServerJSON{
			Command: srv.Command,
			Args:    srv.Args,
			Env:     srv.Env,
			Type:    srv.Transport,
			URL:     srv.URL,
			Headers: srv.Headers,
		}
	}
	return marshalJSONFile(&doc)
}

// parseMCPServersJSON is the inverse of renderMCPServersJSON. Unknown
// fields are dropped, not fatal.
func parseMCPServersJSON(content []byte) (*canonical.MCPConfig, error) {
	var doc mcpServersDoc
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, err
	}
	cfg := &canonical.MCPConfig{Servers: make(map[string]*canonical.MCPServer, len(doc.MCPServers))}
	for name, srv := range doc.MCPServers {
		cfg.Servers[name] = &canonical.MCPServer{
			Command:   srv.Command,
			Args:      srv.Args,
			Env:       srv.Env,
			Transport: srv.Type,
			URL:       srv.URL,
			Headers:   srv.Headers,
		}
	}
	return cfg, nil
}

// renderBareIgnore emits one pattern per line, gitignore style. Action
// tags have no representation in these formats and are dropped.
func renderBareIgnore(f *canonical.IgnoreFile) ([]byte, error) {
	var b strings.Builder
	for _, p := range f.Patterns {
		b.WriteString(p.Pattern)
		b.WriteString("\n")
	}
	return []byte(b.String()), nil
}

// parseBareIgnore reads a gitignore-style file back into canonical form.
// Every pattern recovers as a read deny, the only action the bare format
// can represent.
func parseBareIgnore(content []byte) (*canonical.IgnoreFile, error) {
	file := &canonical.IgnoreFile{}
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		file.Patterns = append(file.Patterns, canonical.IgnorePattern{
			Pattern: line,
			Actions: []canonical.IgnoreAction{canonical.ActionRead},
		})
	}
	return file, nil
}

// renderPlainRule emits only the rule body; the format has no frontmatter.
func renderPlainRule(r *canonical.Rule) ([]byte, error) {
	body := r.Body
	if !strings.HasSuffix(body, "\n") {
		body += "\n"
	}
	return []byte(body), nil
}

// parsePlainRule recovers a canonical rule from a body-only file.
func parsePlainRule(name string, root bool, content []byte) (*canonical.Rule, error) {
	return &canonical.Rule{
		Name: name,
		Front: canonical.RuleFrontmatter{
			Root:    root,
			Targets: []string{"*"},
		},
		Body: strings.TrimSuffix(string(content), "\n") + "\n",
	}, nil
}

type descriptionFrontmatter struct {
	Description string `yaml:"description,omitempty"`
}

// renderDescribedCommand emits description frontmatter plus the body, the
// common shape for command/prompt files.
func renderDescribedCommand(c *canonical.Command) ([]byte, error) {
	return canonical.EncodeFrontmatter(&descriptionFrontmatter{Description: c.Front.Description}, c.Body)
}

// parseDescribedCommand recovers a canonical command from description
// frontmatter plus body.
func parseDescribedCommand(name string, content []byte) (*canonical.Command, error) {
	var fm descriptionFrontmatter
	body, err := canonical.DecodeFrontmatter(content, &fm)
	if err != nil {
		return nil, err
	}
	if fm.Description == "" {
		// Imported canonical files must pass their own schema on the next
		// load, and description is required there.
		fm.Description = name
	}
	return &canonical.Command{
		Name: name,
		Front: canonical.CommandFrontmatter{
			Description: fm.Description,
			Targets:     []string{"*"},
		},
		Body: body,
	}, nil
}
