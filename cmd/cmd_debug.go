// Copyright 2025 The Dashtrack Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MarcoCot1982/dashtrack/track"
)

// reports whether f is attached to a terminal; on a stat error
// we say that it isn't.
func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}

	return (info.Mode() & os.ModeCharDevice) != 0
}

var debugCmd = &cobra.Command{
	Use:   "debug",
	Short: "Dev tools",
}

var debugParseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Run the coordinate parser over OCR text",
	Long: `Reads one line of OCR text per line, and prints the coordinates found in it.

$ echo "43.5N 79.2W" | dashtrack debug parse
43.5N 79.2W		POINT(-79.200000 43.500000)
	`,
	Run: func(_ *cobra.Command, _ []string) {
		input := os.Stdin
		if isTerminal(input) {
			fmt.Fprintln(os.Stderr, "Enter overlay text to parse, one line each…")
		}
		scanner := bufio.NewScanner(input)
		for scanner.Scan() {
			text := scanner.Text()
			point, ok := track.ParseCoordinates(text)
			if !ok {
				fmt.Printf("%s\t\t<no coordinates>\n", text)
			} else {
				fmt.Printf("%s\t\t%s\n", text, point.String())
			}
		}
		if err := scanner.Err(); err != nil {
			fmt.Fprintf(os.Stderr, "Error reading input: %s\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(debugCmd)
	debugCmd.AddCommand(debugParseCmd)
	debugCmd.AddCommand(debugFrameCmd)
}
