package adapter

// Cline layout: plain markdown rules in .clinerules/ (root and non-root
// rules land side by side), a bare-pattern .clineignore, and
// Claude-shaped MCP servers in .cline/mcp.json.
func clineTool() *Tool {
	rulePaths := &SettablePaths{
		Root:    &RootPath{Dir: ".clinerules"},
		NonRoot: &NonRootPath{Dir: ".clinerules"},
	}

	return &Tool{
		ID:          "cline",
		DisplayName: "Cline",
		Rules: &RuleSupport{
			Project: rulePaths,
			Render:  renderPlainRule,
			Parse:   parsePlainRule,
		},
		Ignore: &IgnoreSupport{
			FileSupport: FileSupport{
				Project: &RootPath{Dir: ".", File: ".clineignore"},
			},
			Render: renderBareIgnore,
			Parse:  parseBareIgnore,
		},
		MCP: &MCPSupport{
			FileSupport: FileSupport{
				Project: &RootPath{Dir: ".cline", File: "mcp.json"},
			},
			Render: renderMCPServersJSON,
			Parse:  parseMCPServersJSON,
		},
	}
}
