package main

import (
	"github.com/spf13/cobra"
)

// SetupCommands builds the formsctl command tree around a
func SetupCommands(a *App) *cobra.Command {
	// root command
	rootCmd := &cobra.Command{
		Use:           "formsctl",
		Short:         "Submit and export travel forms from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.Close()
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", a.configPath, "path to the YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&a.envFile, "env-file", a.envFile, "path to an optional .env file")

	// single-step forms
	submitCmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a single-step form read from a JSON file",
	}
	submitCmd.AddCommand(
		&cobra.Command{
			Use:   "notification [file]",
			Short: "Submit a travel notification",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.SubmitNotification(cmd.Context(), args[0])
			},
		},
		&cobra.Command{
			Use:   "approval [file]",
			Short: "Submit an approval decision",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.SubmitApproval(cmd.Context(), args[0])
			},
		},
		&cobra.Command{
			Use:     "invoice [file]",
			Aliases: []string{"invoice-request"},
			Short:   "Submit an invoice request",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.SubmitInvoiceRequest(cmd.Context(), args[0])
			},
		},
	)

	// expense reports
	expenseCmd := &cobra.Command{
		Use:   "expense",
		Short: "Work with travel expense reports",
	}
	expenseCmd.AddCommand(
		&cobra.Command{
			Use:   "submit [file]",
			Short: "Submit an expense report with its receipts",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.SubmitExpenseReport(cmd.Context(), args[0])
			},
		},
		&cobra.Command{
			Use:   "export [file] [out.xlsx]",
			Short: "Export an expense report to a workbook",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.ExportExpenseReport(cmd.Context(), args[0], args[1])
			},
		},
	)

	durationCmd := &cobra.Command{
		Use:   "duration [start] [end]",
		Short: "Print the inclusive number of travel days between two dates",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			a.Duration(args[0], args[1])
		},
	}

	// add commands
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(expenseCmd)
	rootCmd.AddCommand(durationCmd)

	return rootCmd
}
