package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/propyaml/internal/config"
	"github.com/danieljhkim/propyaml/internal/engine"
	"github.com/danieljhkim/propyaml/internal/fsops"
)

var (
	convertPattern   string
	convertSortKeys  bool
	convertSuffix    string
	convertRetire    string
	convertBackupDir string
	convertManifest  string
	convertJobs      int
	convertDryRun    bool
)

var convertCmd = &cobra.Command{
	Use:   "convert [root]",
	Short: "Convert matching .properties documents under a root into YAML",
	Long: `Convert every .properties document under [root] that matches the file pattern
into a nested YAML document next to it, then retire the original.

[root] defaults to the enclosing git repository, or the current directory
outside a repository. A YAML document that already exists at the computed
target path is never overwritten: the source is reported as a collision.

Options are read from .propyaml.yaml in the root, then PROPYAML_* variables
(also from a .env file in the root), then flags.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := resolveRoot(args)
		if err != nil {
			return err
		}

		opts, err := config.Load(fsops.NewRealFS(), root)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		applyConvertFlags(cmd, &opts)

		result, err := newEngine().Convert(commandContext(cmd), &engine.ConvertRequest{
			Root:    root,
			Options: opts,
			DryRun:  convertDryRun,
		})
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(result)
		}
		printConvertResult(result)
		return nil
	},
}

// applyConvertFlags overrides opts with the flags set on the command line.
func applyConvertFlags(cmd *cobra.Command, opts *config.Options) {
	flags := cmd.Flags()
	if flags.Changed("pattern") {
		opts.FilePattern = convertPattern
	}
	if flags.Changed("sort-keys") {
		opts.SortKeys = convertSortKeys
	}
	if flags.Changed("suffix") {
		opts.TargetSuffix = convertSuffix
	}
	if flags.Changed("retire") {
		opts.Retire = config.RetirePolicy(convertRetire)
	}
	if flags.Changed("backup-dir") {
		opts.BackupDir = convertBackupDir
	}
	if flags.Changed("manifest") {
		opts.Manifest = convertManifest
	}
	if flags.Changed("jobs") {
		opts.Jobs = convertJobs
	}
}

func printConvertResult(result *engine.ConvertResult) {
	if result.DryRun {
		PrintSection("Dry Run")
	} else {
		PrintSection("Conversion")
	}
	PrintLabelValue("Root", result.Root)
	PrintLabelValue("Scanned", PrintCount(result.Scanned, "document", "documents"))
	fmt.Fprintln(stdout)

	if len(result.Generated) > 0 {
		PrintSubsection("Generated:")
		rows := make([][]string, 0, len(result.Generated))
		for _, doc := range result.Generated {
			rows = append(rows, []string{doc.Source, doc.Target})
		}
		PrintTable([]string{"SOURCE", "TARGET"}, rows)
		fmt.Fprintln(stdout)
	} else {
		PrintEmptyState("No documents to generate")
	}

	for _, c := range result.Collisions {
		PrintWarning(fmt.Sprintf("Skipped %s: %s (%s)", c.SourcePath, c.Reason, c.TargetPath))
	}

	if len(result.Retired) > 0 {
		PrintSubsection("Retired:")
		items := make([]string, 0, len(result.Retired))
		for _, doc := range result.Retired {
			item := doc.Source
			if doc.Backup != "" {
				item = fmt.Sprintf("%s (backup: %s)", doc.Source, doc.Backup)
			}
			items = append(items, item)
		}
		PrintList(items, 1)
		fmt.Fprintln(stdout)
	}

	for _, doc := range result.Retired {
		if doc.WithoutTarget {
			PrintWarning(fmt.Sprintf("%s retired without a converted replacement", doc.Source))
		}
	}

	if result.ManifestPath != "" {
		PrintLabelValue("Manifest", result.ManifestPath)
	}

	generated := PrintCount(len(result.Generated), "document", "documents")
	retired := PrintCount(len(result.Retired), "original", "originals")
	if result.DryRun {
		PrintInfo(fmt.Sprintf("Would generate %s and retire %s", generated, retired))
		return
	}
	PrintSuccess(fmt.Sprintf("Generated %s, retired %s", generated, retired))
}

func init() {
	convertCmd.Flags().StringVarP(&convertPattern, "pattern", "p", config.Defaults().FilePattern, "Glob selecting the .properties documents to convert")
	convertCmd.Flags().BoolVarP(&convertSortKeys, "sort-keys", "s", false, "Sort keys alphabetically at every level")
	convertCmd.Flags().StringVar(&convertSuffix, "suffix", config.Defaults().TargetSuffix, "Extension of generated documents (yml or yaml)")
	convertCmd.Flags().StringVar(&convertRetire, "retire", string(config.RetireAlways), "Which originals to retire (always, converted, never)")
	convertCmd.Flags().StringVar(&convertBackupDir, "backup-dir", "", "Copy retired originals into this directory first")
	convertCmd.Flags().StringVar(&convertManifest, "manifest", "", "Write a JSON manifest of the run to this path")
	convertCmd.Flags().IntVarP(&convertJobs, "jobs", "j", 1, "Number of documents parsed in parallel")
	convertCmd.Flags().BoolVar(&convertDryRun, "dry-run", false, "Show what would be converted without writing")
}
