/*-------------------------------------------------------------------------
 *
 * main.go
 *    Main entry point for hr-support-cli
 *
 * Copyright (c) 2024-2026, Botivate, Inc. <support@botivate.in>
 *
 * IDENTIFICATION
 *    HR-Support/cli/main.go
 *
 *-------------------------------------------------------------------------
 */

package main

import (
	"github.com/teamai-botivate/HR-Support/cli/cmd"
)

func main() {
	cmd.Execute()
}
