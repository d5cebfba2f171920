/*-------------------------------------------------------------------------
 *
 * login.go
 *    Login command for hr-support-cli
 *
 * Copyright (c) 2024-2026, Botivate, Inc. <support@botivate.in>
 *
 * IDENTIFICATION
 *    HR-Support/cli/cmd/login.go
 *
 *-------------------------------------------------------------------------
 */

package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teamai-botivate/HR-Support/cli/pkg/client"
)

var loginEmployeeID string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate and print a session token",
	Long: `Authenticates against the HR-Support server and prints a session
token. Export it as HRSUPPORT_TOKEN for the other commands.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if loginEmployeeID == "" {
			return fmt.Errorf("--employee is required")
		}

		fmt.Fprint(os.Stderr, "Password: ")
		reader := bufio.NewReader(os.Stdin)
		password, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		password = strings.TrimRight(password, "\r\n")

		c := client.NewClient(apiURL, "")
		result, err := c.Login(loginEmployeeID, password)
		if err != nil {
			return err
		}

		fmt.Fprintf(os.Stderr, "Logged in as %s (%s), token valid for %ds.\n",
			result.EmployeeID, result.Role, result.ExpiresIn)
		fmt.Println(result.Token)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmployeeID, "employee", "", "Employee ID")
}
