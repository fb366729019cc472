package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coralstream/catalogstore/internal/catalogstore"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Inspect the catalog store's schema migration state",
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status <data-dir>",
	Short: "Print the last-applied migration index",
	Args:  cobra.ExactArgs(1),
	RunE:  runMigrateStatus,
}

func init() {
	migrateCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(migrateCmd)
}

func runMigrateStatus(cmd *cobra.Command, args []string) error {
	h, err := catalogstore.Open(args[0], resolveExperimentalHint(cmd), catalogstore.NewMemoryStash())
	if err != nil {
		return fmt.Errorf("opening catalog: %w", err)
	}
	defer h.Close()

	version, err := h.SchemaVersion()
	if err != nil {
		return err
	}
	fmt.Println(version)
	return nil
}
