package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/parentsphere/internal/cli"
	"github.com/terraincognita07/parentsphere/internal/db"
	"github.com/terraincognita07/parentsphere/internal/i18n"
	"github.com/terraincognita07/parentsphere/internal/onboarding"
	"github.com/terraincognita07/parentsphere/internal/services"
	"github.com/terraincognita07/parentsphere/internal/tui"
	"go.uber.org/zap"
)

var errNotTerminal = errors.New("onboard needs an interactive terminal")

var onboardFlags struct {
	language string
	logFile  string
}

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Walk through the onboarding wizard in the terminal",
	RunE:  runOnboard,
}

func init() {
	onboardCmd.Flags().StringVarP(&onboardFlags.language, "lang", "l", "", "wizard language (en or es)")
	onboardCmd.Flags().StringVar(&onboardFlags.logFile, "log-file", "", "write logs to this file while the wizard runs")
}

func runOnboard(cmd *cobra.Command, args []string) error {
	if !cli.IsTerminal(os.Stdin) || !cli.IsTerminal(os.Stdout) {
		return errNotTerminal
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// The wizard owns the screen, so logs only go to an explicit file.
	log := zap.NewNop()
	if onboardFlags.logFile != "" {
		log, err = newLogger(cfg.LogLevel, rootFlags.verbose, onboardFlags.logFile)
		if err != nil {
			return err
		}
	}
	defer func() { _ = log.Sync() }()

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	i18nManager, err := i18n.NewEmbeddedManager(cfg.DefaultLanguage)
	if err != nil {
		return fmt.Errorf("i18n init failed: %w", err)
	}

	language := i18nManager.NormalizeLanguage(onboardFlags.language)

	submissions := services.NewSubmissionService(db.NewSubmissionRepository(database), log)
	result, err := tui.Run(cmd.Context(), tui.Options{
		I18n:     i18nManager,
		Language: language,
		Submit:   submitRecord(submissions, language),
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case result.Cancelled:
		fmt.Fprintln(out, "Onboarding cancelled.")
	case result.Completed && result.SubmissionID != "":
		fmt.Fprintf(out, "Saved submission %s for %s.\n", result.SubmissionID, result.Record.FullName)
	case result.Err != nil:
		return fmt.Errorf("onboarding not saved: %w", result.Err)
	}
	return nil
}

func submitRecord(submissions *services.SubmissionService, language string) tui.SubmitFunc {
	return func(record onboarding.Record) (string, error) {
		submission, err := submissions.Submit(record, language)
		if err != nil {
			return "", err
		}
		return submission.PublicID, nil
	}
}
