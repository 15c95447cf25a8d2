// Copyright 2025 The Dashtrack Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/MarcoCot1982/dashtrack/web"
)

var serveListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Browse the stored runs on a map",
	RunE: func(_ *cobra.Command, _ []string) error {
		db, repo, err := openRepo()
		if err != nil {
			return err
		}
		defer db.Close()

		log.Printf("Serving runs on http://%s", serveListen)

		return web.NewServer(repo).Run(serveListen)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(
		&serveListen,
		"listen",
		"localhost:8080",
		"Address to listen on",
	)
}
