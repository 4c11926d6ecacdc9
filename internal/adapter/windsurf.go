package adapter

// Windsurf layout: plain markdown rules in .windsurf/rules/, a
// bare-pattern .codeiumignore, and workflow files under
// .windsurf/workflows/ for commands.
func windsurfTool() *Tool {
	rulePaths := &SettablePaths{
		Root:    &RootPath{Dir: ".windsurf/rules"},
		NonRoot: &NonRootPath{Dir: ".windsurf/rules"},
	}

	return &Tool{
		ID:          "windsurf",
		DisplayName: "Windsurf",
		Rules: &RuleSupport{
			Project: rulePaths,
			Render:  renderPlainRule,
			Parse:   parsePlainRule,
		},
		Ignore: &IgnoreSupport{
			FileSupport: FileSupport{
				Project: &RootPath{Dir: ".", File: ".codeiumignore"},
			},
			Render: renderBareIgnore,
			Parse:  parseBareIgnore,
		},
		Commands: &CommandSupport{
			Project: &NonRootPath{Dir: ".windsurf/workflows"},
			Render:  renderDescribedCommand,
			Parse:   parseDescribedCommand,
		},
	}
}
