package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kennyg/scribe/internal/adapter"
	"github.com/kennyg/scribe/internal/canonical"
	"github.com/kennyg/scribe/internal/config"
	"github.com/kennyg/scribe/internal/detect"
	"github.com/kennyg/scribe/internal/ui"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List supported tools and their feature matrix",
	Long: `Show every supported tool, which feature kinds it can represent,
and whether it already has configuration in the current project.`,
	Run: runTools,
}

func runTools(cmd *cobra.Command, args []string) {
	fmt.Println()
	fmt.Println(ui.SectionHeader("Supported Tools"))
	fmt.Println()

	kinds := canonical.AllKinds()

	detected := map[string]bool{}
	if root, err := config.ProjectRoot(); err == nil {
		for _, d := range detect.Tools(root) {
			detected[d.ToolID] = true
		}
	}

	header := []string{fmt.Sprintf("%-12s", "TOOL")}
	for _, kind := range kinds {
		header = append(header, fmt.Sprintf("%-9s", kind))
	}
	header = append(header, "DETECTED")
	fmt.Println("  " + ui.TableHeader(header...))

	yes, no := "✓", "-"
	if !ui.IsTTY {
		yes = "x"
	}

	for _, tool := range adapter.Registry() {
		row := []string{fmt.Sprintf("%-12s", tool.ID)}
		for _, kind := range kinds {
			mark := no
			if tool.Supports(kind) {
				mark = yes
			}
			row = append(row, fmt.Sprintf("%-9s", mark))
		}
		mark := ""
		if detected[tool.ID] {
			mark = yes
		}
		row = append(row, mark)
		fmt.Println("  " + ui.TableRow(row...))
	}

	fmt.Println()
	fmt.Println(ui.Muted.Render("  Use tool ids with --targets, kinds with --features."))
	if len(detected) > 0 {
		fmt.Println(ui.Muted.Render("  Detected tools can be pulled in with 'scribe import --targets <id>'."))
	}
	fmt.Println()
}
