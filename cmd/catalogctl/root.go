package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/coralstream/catalogstore/internal/catalogstore"
	"github.com/coralstream/catalogstore/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "catalogctl",
	Short: "Inspect and administer a catalog store",
	Long: `catalogctl opens a catalog store, runs any pending migrations, and
exposes the repository's databases, schemas, roles, compute instances,
items, and settings for scripting and operator inspection.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().Bool("experimental", false, "request experimental mode on open")
}

// Execute runs the root command, exiting the process with status 1 on
// error. Commands report failures by returning them from RunE; cobra
// prints the returned error before Execute exits.
func Execute() {
	if err := config.Initialize(); err != nil {
		fmt.Fprintf(os.Stderr, "catalogctl: %v\n", err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveExperimentalHint returns the --experimental flag as a hint
// pointer when the flag was explicitly set. Otherwise it returns a
// pointer to true when the "experimental" config value is true, and nil
// when it is false. The settings store treats an absent hint differently from a hint of false,
// so the distinction must survive flag parsing.
func resolveExperimentalHint(cmd *cobra.Command) *bool {
	v, _ := cmd.Flags().GetBool("experimental")
	if !cmd.Flags().Changed("experimental") {
		v = config.GetBool("experimental")
		if !v {
			return nil
		}
	}
	return &v
}

// withHandle wraps a RunE body that needs an open Handle over args[0],
// opening it before the body runs and closing it after, regardless of how
// the body returns.
func withHandle(fn func(h *catalogstore.Handle, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		h, err := catalogstore.Open(args[0], resolveExperimentalHint(cmd), catalogstore.NewMemoryStash())
		if err != nil {
			return fmt.Errorf("opening catalog: %w", err)
		}
		defer h.Close()
		return fn(h, cmd, args)
	}
}
