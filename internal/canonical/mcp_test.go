package canonical

import (
	"reflect"
	"testing"
)

func TestParseMCP(t *testing.T) {
	content := `{
  "mcpServers": {
    "files": {"command": "mcp-files", "args": ["--root", "."]},
    "search": {"url": "https://search.example.com/mcp", "transport": "http", "targets": ["claudecode"]}
  }
}`
	cfg, err := ParseMCP("mcp.json", []byte(content))
	if err != nil {
		t.Fatalf("ParseMCP() error = %v", err)
	}

	if got := cfg.ServerNames(); !reflect.DeepEqual(got, []string{"files", "search"}) {
		t.Errorf("ServerNames() = %v", got)
	}
	if cfg.Servers["search"].Transport != "http" {
		t.Errorf("Transport = %q", cfg.Servers["search"].Transport)
	}
}

func TestParseMCPRequiresCommandOrURL(t *testing.T) {
	content := `{"mcpServers": {"broken": {"env": {"A": "1"}}}}`
	if _, err := ParseMCP("mcp.json", []byte(content)); err == nil {
		t.Fatal("expected validation error for server without command or url")
	}
}

func TestMCPForTarget(t *testing.T) {
	cfg := &MCPConfig{Servers: map[string]*MCPServer{
		"everywhere": {Command: "a"},
		"claude":     {Command: "b", Targets: []string{"claudecode"}},
		"cursor":     {Command: "c", Targets: []string{"cursor"}},
	}}

	got := cfg.ForTarget("claudecode")
	if !reflect.DeepEqual(got.ServerNames(), []string{"claude", "everywhere"}) {
		t.Errorf("ForTarget(claudecode) = %v", got.ServerNames())
	}

	none := cfg.ForTarget("roo")
	if !reflect.DeepEqual(none.ServerNames(), []string{"everywhere"}) {
		t.Errorf("ForTarget(roo) = %v", none.ServerNames())
	}
}

func TestMCPIsEmpty(t *testing.T) {
	var nilCfg *MCPConfig
	if !nilCfg.IsEmpty() {
		t.Error("nil config should be empty")
	}
	if !(&MCPConfig{}).IsEmpty() {
		t.Error("zero config should be empty")
	}
	if (&MCPConfig{Servers: map[string]*MCPServer{"a": {Command: "x"}}}).IsEmpty() {
		t.Error("populated config should not be empty")
	}
}

func TestMCPSerializeRoundTrip(t *testing.T) {
	cfg := &MCPConfig{Servers: map[string]*MCPServer{
		"files": {Command: "mcp-files", Env: map[string]string{"ROOT": "."}},
	}}
	content, err := cfg.Serialize()
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	again, err := ParseMCP("mcp.json", content)
	if err != nil {
		t.Fatalf("re-parse error = %v", err)
	}
	if !reflect.DeepEqual(again.Servers["files"], cfg.Servers["files"]) {
		t.Errorf("round trip changed server: %+v", again.Servers["files"])
	}
}
