package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kennyg/scribe/internal/adapter"
	"github.com/kennyg/scribe/internal/config"
	"github.com/kennyg/scribe/internal/processor"
	"github.com/kennyg/scribe/internal/ui"
)

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen", "apply"},
	Short:   "Generate tool configurations from the canonical source",
	Long: `Generate each tool's native configuration files from the
canonical source tree (` + config.SourceDirName + `/).

Files the tools own at their settable paths are overwritten or
deleted to match the source; nothing outside those paths is touched.

Examples:
  scribe generate
  scribe generate --targets claudecode,cursor
  scribe generate --features rules,mcp --dry-run
  scribe generate --global`,
	Run: runGenerate,
}

var (
	genTargets  []string
	genFeatures []string
	genBaseDirs []string
	genGlobal   bool
	genDryRun   bool
	genVerbose  bool
)

func init() {
	generateCmd.Flags().StringSliceVarP(&genTargets, "targets", "t", []string{"*"}, "Tools to generate for (* for all)")
	generateCmd.Flags().StringSliceVar(&genFeatures, "features", []string{"*"}, "Feature kinds to generate (* for all)")
	generateCmd.Flags().StringSliceVar(&genBaseDirs, "base-dir", nil, "Base directories to generate into (defaults to the project root)")
	generateCmd.Flags().BoolVarP(&genGlobal, "global", "g", false, "Generate into the user scope (home directory)")
	generateCmd.Flags().BoolVar(&genDryRun, "dry-run", false, "Show the plan without writing anything")
	generateCmd.Flags().BoolVarP(&genVerbose, "verbose", "v", false, "List every written and deleted file")
}

func runGenerate(cmd *cobra.Command, args []string) {
	opts, err := runOptions(genTargets, genFeatures, genBaseDirs, genGlobal, genDryRun)
	if err != nil {
		exitWithError(err.Error())
	}

	fmt.Println()
	fmt.Println(ui.Title.Render("  Generating from " + opts.SourceDir))
	fmt.Println()

	report, err := processor.Generate(opts)
	if err != nil {
		if report != nil {
			printReport(report, genVerbose, genDryRun)
		}
		exitWithError(err.Error())
	}

	printReport(report, genVerbose, genDryRun)
	if !report.OK() {
		exitWithError("completed with errors")
	}
}

// runOptions resolves flag values into processor options shared by
// generate and import.
func runOptions(targets, features, baseDirs []string, global, dryRun bool) (processor.Options, error) {
	projectRoot, err := config.ProjectRoot()
	if err != nil {
		return processor.Options{}, err
	}

	scope := adapter.ScopeProject
	if global {
		scope = adapter.ScopeGlobal
	}

	if len(baseDirs) == 0 {
		if global {
			home, err := config.GlobalBaseDir()
			if err != nil {
				return processor.Options{}, err
			}
			baseDirs = []string{home}
		} else {
			baseDirs = []string{projectRoot}
		}
	}

	return processor.Options{
		SourceDir: config.SourceDir(projectRoot),
		BaseDirs:  baseDirs,
		Targets:   targets,
		Features:  features,
		Scope:     scope,
		DryRun:    dryRun,
	}, nil
}

func printReport(report *processor.Report, verbose, dryRun bool) {
	for _, w := range report.Warnings {
		fmt.Println(ui.WarningLine(w))
	}
	for _, err := range report.SourceErrors {
		fmt.Println(ui.ErrorLine(err.Error()))
	}

	for i := range report.Pairs {
		pair := &report.Pairs[i]
		if pair.Failure != nil {
			fmt.Printf("  %s %s %s\n", ui.StatusError(), pairLabel(pair), ui.RenderError(pair.Failure.Error()))
			continue
		}
		if !pair.Changed() && !verbose {
			continue
		}
		fmt.Printf("  %s %s %s\n", ui.KindBadge(pair.Kind), ui.RenderHighlight(pair.Tool), ui.RenderMuted(pairCounts(pair)))
		if verbose {
			for _, p := range pair.Written {
				fmt.Println(ui.RenderMuted("      + " + p))
			}
			for _, p := range pair.Deleted {
				fmt.Println(ui.RenderMuted("      - " + p))
			}
			for _, p := range pair.Skipped {
				fmt.Println(ui.RenderMuted("      ~ " + p + " (exists, use --force)"))
			}
		}
	}

	written, deleted, skipped, unchanged := report.Totals()
	fmt.Println()
	fmt.Println(ui.Divider(50))
	fmt.Println()

	summary := fmt.Sprintf("%d written, %d deleted, %d unchanged", written, deleted, unchanged)
	if skipped > 0 {
		summary += fmt.Sprintf(", %d skipped", skipped)
	}
	switch {
	case dryRun:
		fmt.Println(ui.InfoLine("Dry run: " + summary))
	case written == 0 && deleted == 0:
		fmt.Println(ui.SuccessLine("Everything up to date."))
	default:
		fmt.Println(ui.SuccessLine(summary))
	}

	if failures := report.Failures(); len(failures) > 0 {
		fmt.Println(ui.WarningLine(fmt.Sprintf("%d pair(s) failed.", len(failures))))
	}
	fmt.Println()
}

func pairLabel(pair *processor.PairReport) string {
	return pair.Tool + "/" + string(pair.Kind)
}

func pairCounts(pair *processor.PairReport) string {
	var parts []string
	if n := len(pair.Written); n > 0 {
		parts = append(parts, fmt.Sprintf("%d written", n))
	}
	if n := len(pair.Deleted); n > 0 {
		parts = append(parts, fmt.Sprintf("%d deleted", n))
	}
	if n := len(pair.Skipped); n > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped", n))
	}
	if pair.Unchanged > 0 {
		parts = append(parts, fmt.Sprintf("%d unchanged", pair.Unchanged))
	}
	if len(parts) == 0 {
		return "nothing to do"
	}
	return strings.Join(parts, ", ")
}
