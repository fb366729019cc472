package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coralstream/catalogstore/internal/catalogstore"
)

var schemasCmd = &cobra.Command{
	Use:   "schemas",
	Short: "Inspect catalog schemas",
}

var schemasListCmd = &cobra.Command{
	Use:   "list <data-dir>",
	Short: "List every schema",
	Args:  cobra.ExactArgs(1),
	RunE: withHandle(func(h *catalogstore.Handle, cmd *cobra.Command, args []string) error {
		schemas, err := h.LoadSchemas()
		if err != nil {
			return err
		}
		printHeader("ID\tDATABASE\tNAME")
		for _, s := range schemas {
			db := "-"
			if s.DatabaseID != nil {
				db = fmt.Sprintf("%d", *s.DatabaseID)
			}
			fmt.Printf("%d\t%s\t%s\n", s.ID, db, s.Name)
		}
		return nil
	}),
}

func init() {
	schemasCmd.AddCommand(schemasListCmd)
	rootCmd.AddCommand(schemasCmd)
}
