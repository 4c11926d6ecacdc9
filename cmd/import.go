package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kennyg/scribe/internal/config"
	"github.com/kennyg/scribe/internal/processor"
	"github.com/kennyg/scribe/internal/ui"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import existing tool configurations into the canonical source",
	Long: `Parse a tool's existing configuration files back into canonical
artifacts under ` + config.SourceDirName + `/.

Canonical files that already exist with different content are left
alone unless --force is given.

Examples:
  scribe import --targets claudecode
  scribe import --targets cursor --features rules
  scribe import --targets claudecode --force`,
	Run: runImport,
}

var (
	importTargets  []string
	importFeatures []string
	importBaseDirs []string
	importGlobal   bool
	importForce    bool
	importDryRun   bool
	importVerbose  bool
)

func init() {
	importCmd.Flags().StringSliceVarP(&importTargets, "targets", "t", nil, "Tools to import from (required)")
	importCmd.Flags().StringSliceVar(&importFeatures, "features", []string{"*"}, "Feature kinds to import (* for all)")
	importCmd.Flags().StringSliceVar(&importBaseDirs, "base-dir", nil, "Base directories to import from (defaults to the project root)")
	importCmd.Flags().BoolVarP(&importGlobal, "global", "g", false, "Import from the user scope (home directory)")
	importCmd.Flags().BoolVar(&importForce, "force", false, "Overwrite canonical files that differ")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Show what would be imported without writing")
	importCmd.Flags().BoolVarP(&importVerbose, "verbose", "v", false, "List every imported file")
	importCmd.MarkFlagRequired("targets")
}

func runImport(cmd *cobra.Command, args []string) {
	// Importing from every tool at once would have unrelated layouts
	// fight over the same canonical files, so targets stay explicit.
	for _, t := range importTargets {
		if t == "*" {
			exitWithError("import requires explicit --targets, not *")
		}
	}

	opts, err := runOptions(importTargets, importFeatures, importBaseDirs, importGlobal, importDryRun)
	if err != nil {
		exitWithError(err.Error())
	}
	opts.Force = importForce

	fmt.Println()
	fmt.Println(ui.Title.Render("  Importing into " + opts.SourceDir))
	fmt.Println()

	report, err := processor.Import(opts)
	if err != nil {
		if report != nil {
			printReport(report, importVerbose, importDryRun)
		}
		exitWithError(err.Error())
	}

	printReport(report, importVerbose, importDryRun)
	if !report.OK() {
		exitWithError("completed with errors")
	}
}
