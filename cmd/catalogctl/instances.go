package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/coralstream/catalogstore/internal/catalogstore"
)

var instancesCmd = &cobra.Command{
	Use:   "instances",
	Short: "Inspect compute instances",
}

var instancesListCmd = &cobra.Command{
	Use:   "list <data-dir>",
	Short: "List every compute instance",
	Args:  cobra.ExactArgs(1),
	RunE: withHandle(func(h *catalogstore.Handle, cmd *cobra.Command, args []string) error {
		instances, err := h.LoadComputeInstances()
		if err != nil {
			return err
		}
		printHeader("ID\tNAME\tCONFIG")
		for _, c := range instances {
			config := "local"
			if c.Config != nil {
				config = *c.Config
			}
			fmt.Printf("%d\t%s\t%s\n", c.ID, c.Name, config)
		}
		return nil
	}),
}

var instancesCreateCmd = &cobra.Command{
	Use:   "create <data-dir> <name>",
	Short: "Create a compute instance, optionally from a YAML or JSON config file",
	Args:  cobra.ExactArgs(2),
	RunE: withHandle(func(h *catalogstore.Handle, cmd *cobra.Command, args []string) error {
		var config *string
		if path, _ := cmd.Flags().GetString("config"); path != "" {
			raw, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading config file: %w", err)
			}
			var parsed map[string]interface{}
			if err := yaml.Unmarshal(raw, &parsed); err != nil {
				return fmt.Errorf("parsing config file: %w", err)
			}
			// The catalog stores instance configuration as JSON regardless
			// of the format the operator wrote it in.
			encoded, err := json.Marshal(parsed)
			if err != nil {
				return fmt.Errorf("encoding config: %w", err)
			}
			s := string(encoded)
			config = &s
		}
		id, err := h.InsertComputeInstance(args[1], config, nil)
		if err != nil {
			return err
		}
		fmt.Println(id)
		return nil
	}),
}

func init() {
	instancesCreateCmd.Flags().String("config", "", "path to a YAML or JSON instance configuration file")
	instancesCmd.AddCommand(instancesListCmd, instancesCreateCmd)
	rootCmd.AddCommand(instancesCmd)
}
