// Copyright 2025 The Dashtrack Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"database/sql"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "github.com/duckdb/duckdb-go/v2" // register duckdb driver
	"github.com/spf13/cobra"

	"github.com/MarcoCot1982/dashtrack/track"
)

type logWriter struct {
	writer io.Writer
}

func (w *logWriter) Write(bytes []byte) (int, error) {
	return fmt.Fprintf(w.writer, "%s %s", time.Now().Format("2006-01-02 15:04:05"), string(bytes))
}

func init() {
	log.SetFlags(0)
	log.SetOutput(&logWriter{writer: os.Stderr})
}

var rootCmd = &cobra.Command{
	Use:   "dashtrack",
	Short: "GPS tracks out of dashcam footage",
	Long: `
dashtrack reads the GPS overlay burned into dashcam recordings, cleans the
readings into a plausible trajectory, and exports it as GPX. Runs are kept
in a local database so a track can be re-exported or browsed on a map
without re-reading the video.
`,
}

var workDir string

// openRepo opens the run database under the work directory and returns a
// ready repository.
func openRepo() (*sql.DB, track.RunRepository, error) {
	if err := os.MkdirAll(workDir, 0o700); err != nil {
		return nil, nil, fmt.Errorf("setting up work directory: %w", err)
	}

	db, err := sql.Open("duckdb", filepath.Join(workDir, "dashtrack.duckdb"))
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}

	repo, err := track.NewSQLRunRepository(db)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing repository: %w", err)
	}

	if err := repo.CreateSchema(); err != nil {
		return nil, nil, fmt.Errorf("creating schema: %w", err)
	}

	return db, repo, nil
}

var Version = "dev"

func Execute(version string) {
	Version = version

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&workDir,
		"work-dir",
		"db",
		"Directory holding the run database and cached frames",
	)
}
