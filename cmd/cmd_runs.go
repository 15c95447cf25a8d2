// Copyright 2025 The Dashtrack Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List the stored extraction runs",
	RunE: func(_ *cobra.Command, _ []string) error {
		db, repo, err := openRepo()
		if err != nil {
			return err
		}
		defer db.Close()

		runs, err := repo.ListRuns()
		if err != nil {
			return err
		}

		a, b, c, d := strings.Repeat("─", 30), strings.Repeat("─", 19),
			strings.Repeat("─", 26), strings.Repeat("─", 6)
		fmt.Println("Stored runs:")
		fmt.Printf("╭─%-30s─┬─%-19s─┬─%-26s─┬─%-6s─╮\n", a, b, c, d)
		fmt.Printf("│ %-30s │ %-19s │ %-26s │ %-6s │\n",
			"Video", "Start", "Kept/Raw (corr, skip)", "Cells")
		fmt.Printf("├─%-30s─┼─%-19s─┼─%-26s─┼─%-6s─┤\n", a, b, c, d)

		for _, run := range runs {
			fmt.Printf("│ %-30s │ %-19s │ %-26s │ %6d │\n",
				run.VideoSource,
				run.StartTime.Format("2006-01-02 15:04:05"),
				fmt.Sprintf("%d/%d (%d, %d)",
					run.Kept, run.RawReadings, run.Corrections, run.Skipped),
				run.Cells,
			)
		}

		fmt.Printf("╰─%-30s─┴─%-19s─┴─%-26s─┴─%-6s─╯\n", a, b, c, d)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(runsCmd)
}
