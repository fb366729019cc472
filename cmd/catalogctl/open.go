package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"

	"github.com/coralstream/catalogstore/internal/catalogstore"
)

// toolVersion is the catalog release this build of catalogctl ships with,
// compared against the store's recorded content version on open.
const toolVersion = "v0.26.0"

var openCmd = &cobra.Command{
	Use:   "open <data-dir>",
	Short: "Open (creating if necessary) a catalog store and print its resolved state",
	Args:  cobra.ExactArgs(1),
	RunE:  runOpen,
}

func init() {
	rootCmd.AddCommand(openCmd)
}

func runOpen(cmd *cobra.Command, args []string) error {
	hint := resolveExperimentalHint(cmd)
	h, err := catalogstore.Open(args[0], hint, catalogstore.NewMemoryStash())
	if err != nil {
		return fmt.Errorf("opening catalog: %w", err)
	}
	defer h.Close()

	version, err := h.SchemaVersion()
	if err != nil {
		return err
	}
	contentVersion, err := h.CatalogContentVersion()
	if err != nil {
		return err
	}
	if semver.IsValid(contentVersion) && semver.Compare(contentVersion, toolVersion) > 0 {
		fmt.Fprintf(os.Stderr, "warning: catalog was last written by %s, which is newer than this tool (%s)\n",
			contentVersion, toolVersion)
	}

	fmt.Printf("schema_version:    %d\n", version)
	fmt.Printf("content_version:   %s\n", contentVersion)
	fmt.Printf("cluster_id:        %s\n", h.ClusterID())
	fmt.Printf("experimental_mode: %v\n", h.ExperimentalMode())
	return nil
}
