package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coralstream/catalogstore/internal/catalogstore"
)

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "Inspect catalog roles",
}

var rolesListCmd = &cobra.Command{
	Use:   "list <data-dir>",
	Short: "List every role",
	Args:  cobra.ExactArgs(1),
	RunE: withHandle(func(h *catalogstore.Handle, cmd *cobra.Command, args []string) error {
		roles, err := h.LoadRoles()
		if err != nil {
			return err
		}
		printHeader("ID\tNAME")
		for _, r := range roles {
			fmt.Printf("%d\t%s\n", r.ID, r.Name)
		}
		return nil
	}),
}

func init() {
	rolesCmd.AddCommand(rolesListCmd)
	rootCmd.AddCommand(rolesCmd)
}
