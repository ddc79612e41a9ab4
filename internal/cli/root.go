package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const (
	groupConversion = "conversion"
	groupTooling    = "cli-tooling"
)

var (
	// Global flags
	jsonOutput bool
	logLevel   string
	logFormat  string

	groupTitleColor   = color.New(color.FgCyan, color.Bold)
	sectionTitleColor = color.New(color.FgBlue, color.Bold)
)

// rootCmd is the root command for propyaml.
var rootCmd = &cobra.Command{
	Use:     "propyaml",
	Version: "dev",
	Short:   "Convert flat .properties documents into nested YAML",
	Long: `propyaml converts dot-delimited .properties documents into equivalent nested
YAML documents.

Comments preceding each property are carried over, keys can be sorted, and an
existing YAML document is never overwritten.`,
	Example: `  propyaml convert
  propyaml convert ./services --sort-keys --retire converted
  propyaml render src/main/resources/application.properties --flat`,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// SetVersion sets the version reported by --version and the version command.
func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

// helpFunc prints grouped, colored help. Subcommands without children fall
// back to a shorter layout with their examples.
func helpFunc(cmd *cobra.Command, _ []string) {
	var b strings.Builder

	desc := cmd.Long
	if desc == "" {
		desc = cmd.Short
	}
	if desc != "" {
		b.WriteString(desc)
		b.WriteString("\n\n")
	}

	writeSection(&b, "Usage:")
	fmt.Fprintf(&b, "  %s\n\n", cmd.UseLine())

	for _, group := range cmd.Groups() {
		b.WriteString(groupTitleColor.Sprint(group.Title))
		b.WriteString("\n")
		writeCommands(&b, cmd, group.ID)
		b.WriteString("\n")
	}
	if hasCommandsIn(cmd, "") {
		writeSection(&b, "Additional Commands:")
		writeCommands(&b, cmd, "")
		b.WriteString("\n")
	}

	if cmd.Example != "" {
		writeSection(&b, "Examples:")
		b.WriteString(cmd.Example)
		b.WriteString("\n\n")
	}

	if local := cmd.LocalFlags().FlagUsages(); local != "" {
		writeSection(&b, "Flags:")
		b.WriteString(local)
		b.WriteString("\n")
	}
	if inherited := cmd.InheritedFlags().FlagUsages(); inherited != "" {
		writeSection(&b, "Global Flags:")
		b.WriteString(inherited)
		b.WriteString("\n")
	}

	if cmd.HasAvailableSubCommands() {
		fmt.Fprintf(&b, "Use \"%s [command] --help\" for more information about a command.\n", cmd.CommandPath())
	}

	fmt.Fprint(cmd.OutOrStdout(), b.String())
}

func writeSection(b *strings.Builder, title string) {
	b.WriteString(sectionTitleColor.Sprint(title))
	b.WriteString("\n")
}

func writeCommands(b *strings.Builder, cmd *cobra.Command, groupID string) {
	for _, c := range cmd.Commands() {
		if c.GroupID == groupID && c.IsAvailableCommand() {
			fmt.Fprintf(b, "  %-11s %s\n", c.Name(), c.Short)
		}
	}
}

func hasCommandsIn(cmd *cobra.Command, groupID string) bool {
	for _, c := range cmd.Commands() {
		if c.GroupID == groupID && c.IsAvailableCommand() {
			return true
		}
	}
	return false
}

// completionCmd generates shell completion scripts on stdout.
func completionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "completion",
		Short:   "Generate the autocompletion script for the specified shell",
		GroupID: groupTooling,
		Long: `Generate the autocompletion script for propyaml for the specified shell.
See each sub-command's help for details on how to use the generated script.`,
	}

	shells := []struct {
		name string
		gen  func(root *cobra.Command, w io.Writer) error
	}{
		{"bash", func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) }},
		{"zsh", func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) }},
		{"fish", func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) }},
		{"powershell", func(root *cobra.Command, w io.Writer) error { return root.GenPowerShellCompletionWithDesc(w) }},
	}
	for _, shell := range shells {
		cmd.AddCommand(&cobra.Command{
			Use:                   shell.name,
			Short:                 "Generate the autocompletion script for " + shell.name,
			Args:                  cobra.NoArgs,
			DisableFlagsInUseLine: true,
			RunE: func(c *cobra.Command, _ []string) error {
				return shell.gen(c.Root(), c.OutOrStdout())
			},
		})
	}
	return cmd
}

func init() {
	rootCmd.SetHelpFunc(helpFunc)

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text or json)")

	rootCmd.AddGroup(
		&cobra.Group{ID: groupConversion, Title: "Conversion:"},
		&cobra.Group{ID: groupTooling, Title: "CLI & Tooling:"},
	)

	convertCmd.GroupID = groupConversion
	renderCmd.GroupID = groupConversion
	rootCmd.AddCommand(convertCmd, renderCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:     "version",
		Short:   "Print the propyaml CLI version",
		Args:    cobra.NoArgs,
		GroupID: groupTooling,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), cmd.Root().Version)
		},
	})
	rootCmd.AddCommand(completionCmd())

	rootCmd.SetHelpCommand(&cobra.Command{
		Use:     "help [command]",
		Short:   "Help about any command",
		GroupID: groupTooling,
		RunE: func(cmd *cobra.Command, args []string) error {
			target, _, err := cmd.Root().Find(args)
			if err != nil {
				return err
			}
			return target.Help()
		},
	})
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}
