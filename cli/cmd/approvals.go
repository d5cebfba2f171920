/*-------------------------------------------------------------------------
 *
 * approvals.go
 *    Approval queue commands for hr-support-cli
 *
 * Copyright (c) 2024-2026, Botivate, Inc. <support@botivate.in>
 *
 * IDENTIFICATION
 *    HR-Support/cli/cmd/approvals.go
 *
 *-------------------------------------------------------------------------
 */

package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teamai-botivate/HR-Support/cli/pkg/client"
)

var (
	decisionStatus string
	decisionNote   string
)

var approvalsCmd = &cobra.Command{
	Use:   "approvals",
	Short: "Review and decide approval requests",
}

var approvalsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List pending approval requests visible to your role",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.NewClient(apiURL, apiToken)
		approvals, err := c.ListPendingApprovals()
		if err != nil {
			return err
		}

		if outputFormat == "json" {
			return json.NewEncoder(os.Stdout).Encode(approvals)
		}

		if len(approvals) == 0 {
			fmt.Println("No pending approval requests.")
			return nil
		}
		for i := range approvals {
			a := &approvals[i]
			flags := ""
			if a.ReminderSent {
				flags += " [reminded]"
			}
			if a.Escalated {
				flags += " [escalated]"
			}
			fmt.Printf("%s  %-14s %-12s %-8s %s%s\n",
				a.ID, a.RequestType, a.EmployeeID, a.Priority, a.CreatedAt, flags)
			if a.Summary != nil && *a.Summary != "" {
				fmt.Printf("    %s\n", *a.Summary)
			}
		}
		return nil
	},
}

var approvalsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one approval request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.NewClient(apiURL, apiToken)
		approval, err := c.GetApproval(args[0])
		if err != nil {
			return err
		}
		return json.NewEncoder(os.Stdout).Encode(approval)
	},
}

var approvalsDecideCmd = &cobra.Command{
	Use:   "decide <id>",
	Short: "Approve or reject a request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if decisionStatus != "approved" && decisionStatus != "rejected" {
			return fmt.Errorf("--status must be 'approved' or 'rejected'")
		}

		c := client.NewClient(apiURL, apiToken)
		approval, err := c.DecideApproval(args[0], decisionStatus, decisionNote)
		if err != nil {
			return err
		}

		if outputFormat == "json" {
			return json.NewEncoder(os.Stdout).Encode(approval)
		}
		fmt.Printf("Request %s is now %s.\n", approval.ID, approval.Status)
		return nil
	},
}

func init() {
	approvalsDecideCmd.Flags().StringVar(&decisionStatus, "status", "", "Decision status (approved, rejected)")
	approvalsDecideCmd.Flags().StringVar(&decisionNote, "note", "", "Optional decision note")
	_ = approvalsDecideCmd.MarkFlagRequired("status")

	approvalsCmd.AddCommand(approvalsListCmd)
	approvalsCmd.AddCommand(approvalsShowCmd)
	approvalsCmd.AddCommand(approvalsDecideCmd)
}
