/*-------------------------------------------------------------------------
 *
 * sweep.go
 *    Manual sweep command for hr-support-cli
 *
 * Copyright (c) 2024-2026, Botivate, Inc. <support@botivate.in>
 *
 * IDENTIFICATION
 *    HR-Support/cli/cmd/sweep.go
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

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run the reminder/escalation sweep now (admin only)",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.NewClient(apiURL, apiToken)
		result, err := c.RunSweep()
		if err != nil {
			return err
		}

		if outputFormat == "json" {
			return json.NewEncoder(os.Stdout).Encode(result)
		}
		fmt.Printf("Scanned %d pending request(s): %d reminder(s), %d escalation(s), %d failure(s).\n",
			result.Scanned, result.RemindersSent, result.Escalations, result.Failures)
		return nil
	},
}
