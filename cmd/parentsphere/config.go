package main

import (
	"github.com/spf13/cobra"
	"github.com/terraincognita07/parentsphere/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration helpers",
}

var configExampleCmd = &cobra.Command{
	Use:   "example",
	Short: "Print an example parentsphere.yml",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return config.WriteExample(cmd.OutOrStdout())
	},
}

func init() {
	configCmd.AddCommand(configExampleCmd)
}
