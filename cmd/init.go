package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kennyg/scribe/internal/canonical"
	"github.com/kennyg/scribe/internal/config"
	"github.com/kennyg/scribe/internal/ui"
)

var initCmd = &cobra.Command{
	Use:     "init",
	Aliases: []string{"new"},
	Short:   "Create a canonical source tree",
	Long: `Initialize a ` + config.SourceDirName + `/ source tree in the current directory.

Creates the standard layout with starter files:
  rules/       Rule files (.md with frontmatter)
  commands/    Slash commands
  subagents/   Subagent definitions
  skills/      Skills (subdirectories with SKILL.md)
  ignore       Access-control patterns
  mcp.json     MCP server definitions

Examples:
  scribe init
  scribe init && scribe generate --dry-run`,
	Run: runInit,
}

func runInit(cmd *cobra.Command, args []string) {
	fmt.Println()
	fmt.Println(ui.SectionHeader("New Source Tree"))
	fmt.Println()

	cwd, err := os.Getwd()
	if err != nil {
		exitWithError(fmt.Sprintf("failed to get current directory: %v", err))
	}
	sourceDir := config.SourceDir(cwd)

	if _, err := os.Stat(sourceDir); err == nil {
		exitWithError(config.SourceDirName + " already exists in this directory")
	}

	dirs := []string{
		canonical.RulesDir,
		canonical.CommandsDir,
		canonical.SubagentsDir,
		canonical.SkillsDir,
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(filepath.Join(sourceDir, dir), 0755); err != nil {
			exitWithError(fmt.Sprintf("failed to create %s/: %v", dir, err))
		}
		fmt.Println(ui.Muted.Render(fmt.Sprintf("  Created %s/%s/", config.SourceDirName, dir)))
	}

	starters := map[string]string{
		filepath.Join(canonical.RulesDir, "main.md"): `---
root: true
targets: ["*"]
description: Project overview and conventions
---

# Project Overview

Describe your project here. This root rule becomes each tool's
primary instruction file (CLAUDE.md, AGENTS.md, ...).
`,
		canonical.IgnoreName: `# One pattern per line. Optional action prefix:
#   [read]        deny reads (default)
#   [write,edit]  deny writes and edits
#
# [read] secrets/**
# [write] infra/**
`,
	}
	for rel, content := range starters {
		full := filepath.Join(sourceDir, rel)
		if err := os.WriteFile(full, []byte(content), 0644); err != nil {
			exitWithError(fmt.Sprintf("failed to write %s: %v", rel, err))
		}
		fmt.Println(ui.Muted.Render(fmt.Sprintf("  Created %s/%s", config.SourceDirName, rel)))
	}

	fmt.Println()
	fmt.Println(ui.SuccessLine("Source tree created"))
	fmt.Println()
	fmt.Println(ui.Muted.Render("  Next steps:"))
	fmt.Println(ui.Muted.Render("    1. Edit " + config.SourceDirName + "/rules/main.md"))
	fmt.Println(ui.Muted.Render("    2. Run 'scribe generate --dry-run' to preview"))
	fmt.Println(ui.Muted.Render("    3. Run 'scribe generate' to write tool configs"))
	fmt.Println()
}
