package adapter

// Roo Code layout: plain markdown rules in .roo/rules/, a bare-pattern
// .rooignore, Claude-shaped MCP servers in .roo/mcp.json, and commands
// under .roo/commands/.
func rooTool() *Tool {
	rulePaths := &SettablePaths{
		Root:    &RootPath{Dir: ".roo/rules"},
		NonRoot: &NonRootPath{Dir: ".roo/rules"},
	}

	return &Tool{
		ID:          "roo",
		DisplayName: "Roo Code",
		Rules: &RuleSupport{
			Project: rulePaths,
			Global:  rulePaths,
			Render:  renderPlainRule,
			Parse:   parsePlainRule,
		},
		Ignore: &IgnoreSupport{
			FileSupport: FileSupport{
				Project: &RootPath{Dir: ".", File: ".rooignore"},
			},
			Render: renderBareIgnore,
			Parse:  parseBareIgnore,
		},
		MCP: &MCPSupport{
			FileSupport: FileSupport{
				Project: &RootPath{Dir: ".roo", File: "mcp.json"},
			},
			Render: renderMCPServersJSON,
			Parse:  parseMCPServersJSON,
		},
		Commands: &CommandSupport{
			Project: &NonRootPath{Dir: ".roo/commands"},
			Render:  renderDescribedCommand,
			Parse:   parseDescribedCommand,
		},
	}
}
