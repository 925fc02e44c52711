package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Earnest-Williams/roomlife/internal/content"
	"github.com/Earnest-Williams/roomlife/internal/engine"
)

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Run integrity checks against the content directory",
		Args:  cobra.NoArgs,
		RunE:  runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	dir := cfg.Content.Dir
	actions, err := content.LoadActions(dir + "/actions.yaml")
	if err != nil {
		return err
	}
	items, err := content.LoadItemMeta(dir + "/items_meta.yaml")
	if err != nil {
		return err
	}
	spaces, err := content.LoadSpaces(dir + "/spaces.yaml")
	if err != nil {
		return err
	}

	report := content.CheckIntegrity(actions, items)

	var errorIssues, warnIssues []content.Issue
	for _, issue := range report.Issues {
		switch issue.Severity {
		case content.SeverityError:
			errorIssues = append(errorIssues, issue)
		case content.SeverityWarn:
			warnIssues = append(warnIssues, issue)
		}
	}

	findings := engine.AuditContent(actions, items, spaces)

	if len(errorIssues) == 0 && len(warnIssues) == 0 && len(findings) == 0 {
		fmt.Fprintf(os.Stdout, "No issues found across %d actions and %d item types.\n", len(actions), len(items))
		return nil
	}

	if len(errorIssues) > 0 {
		fmt.Fprintf(os.Stdout, "Errors (%d):\n", len(errorIssues))
		printIssues(errorIssues)
	}
	if len(warnIssues) > 0 {
		if len(errorIssues) > 0 {
			fmt.Fprintln(os.Stdout, "")
		}
		fmt.Fprintf(os.Stdout, "Warnings (%d):\n", len(warnIssues))
		printIssues(warnIssues)
	}
	if len(findings) > 0 {
		if len(errorIssues) > 0 || len(warnIssues) > 0 {
			fmt.Fprintln(os.Stdout, "")
		}
		fmt.Fprintf(os.Stdout, "Playability (%d):\n", len(findings))
		for _, f := range findings {
			fmt.Fprintf(os.Stdout, "  - %s: %s (%s)\n", f.ActionID, f.Detail, f.Kind)
		}
	}

	if len(errorIssues) > 0 {
		return fmt.Errorf("validation found errors")
	}
	return nil
}

func printIssues(issues []content.Issue) {
	for _, issue := range issues {
		fmt.Fprintf(os.Stdout, "  - %s (%s)\n", issue.Message, issue.Code)
	}
}
