/*-------------------------------------------------------------------------
 *
 * root.go
 *    Root command and global flags for hr-support-cli
 *
 * Copyright (c) 2024-2026, Botivate, Inc. <support@botivate.in>
 *
 * IDENTIFICATION
 *    HR-Support/cli/cmd/root.go
 *
 *-------------------------------------------------------------------------
 */

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	apiURL       string
	apiToken     string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "hr-support-cli",
	Short: "HR-Support CLI - approval queue and notification management",
	Long: `HR-Support CLI provides commands for reviewing the approval queue,
recording decisions, running the reminder/escalation sweep, and reading
notifications.

Examples:
  # Log in and print a session token
  hr-support-cli login --employee EMP-1042

  # List pending approval requests
  hr-support-cli approvals list

  # Approve a request
  hr-support-cli approvals decide <id> --status approved --note "Enjoy your leave"

  # Run the reminder/escalation sweep now
  hr-support-cli sweep

  # List notifications
  hr-support-cli notifications list
`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "url", getEnvOrDefault("HRSUPPORT_URL", "http://localhost:8080"), "HR-Support API URL")
	rootCmd.PersistentFlags().StringVar(&apiToken, "token", getEnvOrDefault("HRSUPPORT_TOKEN", ""), "Session token (from login)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "text", "Output format (text, json)")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(approvalsCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(notificationsCmd)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
