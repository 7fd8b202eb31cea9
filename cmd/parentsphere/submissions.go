package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/parentsphere/internal/cli"
	"github.com/terraincognita07/parentsphere/internal/db"
	"github.com/terraincognita07/parentsphere/internal/services"
	"go.uber.org/zap"
)

var submissionsFlags struct {
	limit  int
	format string
}

var submissionsCmd = &cobra.Command{
	Use:   "submissions",
	Short: "Inspect stored onboarding submissions",
}

var submissionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the most recent submissions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		submissions, err := openSubmissionService()
		if err != nil {
			return err
		}
		return cli.RunListSubmissionsCommand(cmd.OutOrStdout(), submissions, submissionsFlags.limit, submissionsFlags.format)
	},
}

var submissionsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print one submission",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		submissions, err := openSubmissionService()
		if err != nil {
			return err
		}
		return cli.RunShowSubmissionCommand(cmd.OutOrStdout(), submissions, args[0], submissionsFlags.format)
	},
}

func init() {
	submissionsCmd.PersistentFlags().StringVarP(&submissionsFlags.format, "format", "f", cli.FormatTable, "output format: table, json or yaml")
	submissionsListCmd.Flags().IntVarP(&submissionsFlags.limit, "limit", "n", 20, "maximum number of submissions to show")

	submissionsCmd.AddCommand(submissionsListCmd)
	submissionsCmd.AddCommand(submissionsShowCmd)
}

func openSubmissionService() (*services.SubmissionService, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}
	return services.NewSubmissionService(db.NewSubmissionRepository(database), zap.NewNop()), nil
}
