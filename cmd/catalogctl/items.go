package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coralstream/catalogstore/internal/catalogstore"
)

var itemsCmd = &cobra.Command{
	Use:   "items",
	Short: "Inspect catalog items",
}

var itemsListCmd = &cobra.Command{
	Use:   "list <data-dir>",
	Short: "List every item, user items ordered by their numeric suffix",
	Args:  cobra.ExactArgs(1),
	RunE: withHandle(func(h *catalogstore.Handle, cmd *cobra.Command, args []string) error {
		items, err := h.LoadItems()
		if err != nil {
			return err
		}
		printHeader("GID\tSCHEMA\tNAME")
		for _, it := range items {
			fmt.Printf("%s\t%d\t%s\n", it.GID, it.SchemaID, it.Name)
		}
		return nil
	}),
}

func init() {
	itemsCmd.AddCommand(itemsListCmd)
	rootCmd.AddCommand(itemsCmd)
}
