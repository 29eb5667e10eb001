package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/workwithprnv-stack/survey/internal/responses"
	"github.com/workwithprnv-stack/survey/internal/submit"
	"github.com/workwithprnv-stack/survey/internal/wizard"
)

func runSurvey(cmd *cobra.Command, args []string) error {
	questions, err := loadCatalog()
	if err != nil {
		return err
	}
	sessionID, err := responses.SessionID(db)
	if err != nil {
		return err
	}
	logger.Info("Starting survey", zap.String("session", sessionID), zap.Int("questions", len(questions)))

	workingDirectory, err := os.Getwd()
	if err != nil {
		workingDirectory = applicationDirectory
	}

	flow := wizard.NewFlow(questions, responses.Open(db, sessionID, logger), logger)
	model := wizard.New(flow, submit.NewClient(serverURL, logger), workingDirectory)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("survey interface failed: %w", err)
	}
	return nil
}

func exportResponses(cmd *cobra.Command, args []string) error {
	sessionID, err := responses.SessionID(db)
	if err != nil {
		return err
	}
	store := responses.Open(db, sessionID, logger)

	if exportOut == "-" {
		return store.Export(cmd.OutOrStdout())
	}
	path := exportOut
	if path == "" {
		path = responses.ExportFileName(sessionID)
	}
	if err := responses.WriteFile(path, store.Stamped()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Survey data exported to %s\n", path)
	return nil
}

func showSession(cmd *cobra.Command, args []string) error {
	sessionID, err := responses.SessionID(db)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), sessionID)
	return nil
}

func resetSession(cmd *cobra.Command, args []string) error {
	if err := responses.Forget(db); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Session forgotten; the next survey starts fresh.")
	return nil
}
