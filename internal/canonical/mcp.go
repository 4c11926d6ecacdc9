package canonical

import (
	"encoding/json"
	"sort"

	"github.com/kennyg/scribe/internal/syncerr"
)

// MCPServer is the canonical description of one MCP server. Local servers
// set Command; remote servers set URL. Targets limits which tools receive
// the server; empty means all.
type MCPServer struct {
	Command   string            `json:"command,omitempty"`
	Args      []string          `json:"args,omitempty"`
	Env       map[string]string `json:"env,omitempty"`
	URL       string            `json:"url,omitempty"`
	Transport string            `json:"transport,omitempty"` // stdio (default), sse, http
	Headers   map[string]string `json:"headers,omitempty"`
	Targets   []string          `json:"targets,omitempty"`
}

// MCPConfig is the canonical server map, read from .scribe/mcp.json.
type MCPConfig struct {
	Servers map[string]*MCPServer
}

type mcpDocument struct {
	MCPServers map[string]*MCPServer `json:"mcpServers"`
}

// ParseMCP parses the canonical MCP server file. A server with neither a
// command nor a URL is an authoring error.
func ParseMCP(path string, content []byte) (*MCPConfig, error) {
	var doc mcpDocument
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, &syncerr.ParseError{Path: path, Err: err}
	}
	for name, srv := range doc.MCPServers {
		if srv.Command == "" && srv.URL == "" {
			return nil, &syncerr.ValidationError{Path: path, Field: name, Reason: "server must set command or url"}
		}
	}
	return &MCPConfig{Servers: doc.MCPServers}, nil
}

// Serialize renders the config back to canonical file content.
func (c *MCPConfig) Serialize() ([]byte, error) {
	data, err := json.MarshalIndent(&mcpDocument{MCPServers: c.Servers}, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// ServerNames returns sorted server names for deterministic output.
func (c *MCPConfig) ServerNames() []string {
	names := make([]string, 0, len(c.Servers))
	for name := range c.Servers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ForTarget returns a copy holding only the servers targeted at toolID.
// The result may be empty, in which case no tool artifact is produced.
func (c *MCPConfig) ForTarget(toolID string) *MCPConfig {
	out := &MCPConfig{Servers: make(map[string]*MCPServer)}
	for name, srv := range c.Servers {
		if TargetsInclude(srv.Targets, toolID) {
			out.Servers[name] = srv
		}
	}
	return out
}

// IsEmpty reports whether the config holds no servers.
func (c *MCPConfig) IsEmpty() bool {
	return c == nil || len(c.Servers) == 0
}
