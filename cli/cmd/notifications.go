/*-------------------------------------------------------------------------
 *
 * notifications.go
 *    Notification commands for hr-support-cli
 *
 * Copyright (c) 2024-2026, Botivate, Inc. <support@botivate.in>
 *
 * IDENTIFICATION
 *    HR-Support/cli/cmd/notifications.go
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

var notificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "Read and manage notifications",
}

var notificationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your notifications",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.NewClient(apiURL, apiToken)
		notifications, err := c.ListNotifications()
		if err != nil {
			return err
		}

		if outputFormat == "json" {
			return json.NewEncoder(os.Stdout).Encode(notifications)
		}

		if len(notifications) == 0 {
			fmt.Println("No notifications.")
			return nil
		}
		for i := range notifications {
			n := &notifications[i]
			marker := " "
			if !n.IsRead {
				marker = "*"
			}
			fmt.Printf("%s %s  [%s] %s\n", marker, n.ID, n.NotificationType, n.Title)
			fmt.Printf("    %s\n", n.Message)
		}
		return nil
	},
}

var notificationsReadCmd = &cobra.Command{
	Use:   "read <id>",
	Short: "Mark a notification as read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.NewClient(apiURL, apiToken)
		if err := c.MarkNotificationRead(args[0]); err != nil {
			return err
		}
		fmt.Println("Marked as read.")
		return nil
	},
}

func init() {
	notificationsCmd.AddCommand(notificationsListCmd)
	notificationsCmd.AddCommand(notificationsReadCmd)
}
