package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coralstream/catalogstore/internal/catalogstore"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Get or set named catalog settings",
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <data-dir> <key>",
	Short: "Print a setting's value, or 'unset' if it has never been set",
	Args:  cobra.ExactArgs(2),
	RunE: withHandle(func(h *catalogstore.Handle, cmd *cobra.Command, args []string) error {
		value, ok, err := h.GetSetting(args[1])
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("unset")
			return nil
		}
		fmt.Println(value)
		return nil
	}),
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <data-dir> <key> <value>",
	Short: "Set a setting's value, refusing the one-way experimental_mode/cluster_id latches",
	Args:  cobra.ExactArgs(3),
	RunE: withHandle(func(h *catalogstore.Handle, cmd *cobra.Command, args []string) error {
		return h.SetSetting(args[1], args[2])
	}),
}

func init() {
	settingsCmd.AddCommand(settingsGetCmd, settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}
