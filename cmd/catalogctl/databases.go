package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coralstream/catalogstore/internal/catalogstore"
)

var databasesCmd = &cobra.Command{
	Use:   "databases",
	Short: "Inspect catalog databases",
}

var databasesListCmd = &cobra.Command{
	Use:   "list <data-dir>",
	Short: "List every database",
	Args:  cobra.ExactArgs(1),
	RunE: withHandle(func(h *catalogstore.Handle, cmd *cobra.Command, args []string) error {
		dbs, err := h.LoadDatabases()
		if err != nil {
			return err
		}
		printHeader("ID\tNAME")
		for _, d := range dbs {
			fmt.Printf("%d\t%s\n", d.ID, d.Name)
		}
		return nil
	}),
}

func init() {
	databasesCmd.AddCommand(databasesListCmd)
	rootCmd.AddCommand(databasesCmd)
}
