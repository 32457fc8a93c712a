package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information, set by build flags.
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"

	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "jgo",
	Short: "A tacit array-language interpreter",
	Long: `jgo is a Go implementation of a tacit, rank-polymorphic array
language in the J family: scalars extend across arrays, verbs compose
into forks and hooks, and every value lives in a single polymorphic
numeric-and-box array model.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().StringVar(&configPath, "config", ".jgorc.yaml", "session config file (YAML)")
}
