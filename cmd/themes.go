package cmd

import (
	"fmt"
	"sort"

	"github.com/alecthomas/chroma/v2/styles"
	"github.com/spf13/cobra"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List the built-in theme presets",
	Long:  `Print the chroma style names usable as theme.preset or with --theme.`,
	RunE:  runThemes,
}

func init() {
	rootCmd.AddCommand(themesCmd)
}

func runThemes(cmd *cobra.Command, args []string) error {
	names := styles.Names()
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}
