// Copyright 2025 The Dashtrack Authors
// SPDX-License-Identifier: Apache-2.0

package track

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarcoCot1982/dashtrack/spatial"
)

func setupTestRepo(t *testing.T) (RunRepository, *sql.DB) {
	t.Helper()

	db, err := sql.Open("duckdb", "")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo, err := NewSQLRunRepository(db)
	require.NoError(t, err)
	require.NoError(t, repo.CreateSchema())

	return repo, db
}

func testRun(source string) (*Run, []StoredReading) {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	run := &Run{
		VideoSource: source,
		CreatedAt:   start.Add(time.Hour),
		StartTime:   start,
		Signs:       Signs{Lat: -1, Lng: -1},
		RawReadings: 3,
		Corrections: 1,
		Skipped:     1,
		Kept:        2,
		Cells:       1,
	}

	readings := []StoredReading{
		{
			Seq:       0,
			Time:      start,
			Raw:       spatial.Point{Lat: 34.9011, Lng: -56.1645},
			Clean:     spatial.Point{Lat: -34.9011, Lng: -56.1645},
			Kept:      true,
			Corrected: true,
			Cell:      0x88a90199b1fffff,
		},
		{
			Seq:   1,
			Time:  start.Add(time.Second),
			Raw:   spatial.Point{Lat: -12.0, Lng: -56.1646},
			Clean: spatial.Point{Lat: -12.0, Lng: -56.1646},
		},
		{
			Seq:       2,
			Time:      start.Add(2 * time.Second),
			Raw:       spatial.Point{Lat: -34.9012, Lng: -56.1647},
			Clean:     spatial.Point{Lat: -34.9012, Lng: -56.1647},
			Kept:      true,
			Corrected: false,
			Cell:      0x88a90199b1fffff,
		},
	}

	return run, readings
}

func TestSQLRunRepository_SaveAndGet(t *testing.T) {
	repo, _ := setupTestRepo(t)

	run, readings := testRun("dashcam_0001.mp4")
	require.NoError(t, repo.SaveRun(run, readings))

	got, err := repo.GetRun("dashcam_0001.mp4")
	require.NoError(t, err)

	assert.Equal(t, run.VideoSource, got.VideoSource)
	assert.Equal(t, run.Signs, got.Signs)
	assert.Equal(t, run.RawReadings, got.RawReadings)
	assert.Equal(t, run.Corrections, got.Corrections)
	assert.Equal(t, run.Skipped, got.Skipped)
	assert.Equal(t, run.Kept, got.Kept)
	assert.Equal(t, run.Cells, got.Cells)
	assert.True(t, run.StartTime.Equal(got.StartTime))
}

func TestSQLRunRepository_GetMissing(t *testing.T) {
	repo, _ := setupTestRepo(t)

	_, err := repo.GetRun("nope.mp4")
	require.ErrorIs(t, err, ErrRunNotFound)
}

func TestSQLRunRepository_SaveReplacesPreviousRun(t *testing.T) {
	repo, db := setupTestRepo(t)

	run, readings := testRun("dashcam_0001.mp4")
	require.NoError(t, repo.SaveRun(run, readings))

	// Second run for the same source with fewer readings.
	run2, readings2 := testRun("dashcam_0001.mp4")
	run2.RawReadings = 1
	readings2 = readings2[:1]
	require.NoError(t, repo.SaveRun(run2, readings2))

	got, err := repo.GetRun("dashcam_0001.mp4")
	require.NoError(t, err)
	assert.Equal(t, 1, got.RawReadings)

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM readings WHERE video_source = ?",
		"dashcam_0001.mp4").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSQLRunRepository_ListRunsNewestFirst(t *testing.T) {
	repo, _ := setupTestRepo(t)

	older, readings := testRun("older.mp4")
	require.NoError(t, repo.SaveRun(older, readings))

	newer, readings := testRun("newer.mp4")
	newer.CreatedAt = older.CreatedAt.Add(time.Hour)
	require.NoError(t, repo.SaveRun(newer, readings))

	runs, err := repo.ListRuns()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "newer.mp4", runs[0].VideoSource)
	assert.Equal(t, "older.mp4", runs[1].VideoSource)
}

func TestSQLRunRepository_Readings(t *testing.T) {
	repo, _ := setupTestRepo(t)

	run, stored := testRun("dashcam_0001.mp4")
	require.NoError(t, repo.SaveRun(run, stored))

	raw, err := repo.RawReadings("dashcam_0001.mp4")
	require.NoError(t, err)
	require.Len(t, raw, 3)
	assert.Equal(t, spatial.Point{Lat: 34.9011, Lng: -56.1645}, raw[0].Point)
	assert.Equal(t, spatial.Point{Lat: -12.0, Lng: -56.1646}, raw[1].Point)

	clean, err := repo.CleanReadings("dashcam_0001.mp4")
	require.NoError(t, err)
	require.Len(t, clean, 2)
	assert.Equal(t, spatial.Point{Lat: -34.9011, Lng: -56.1645}, clean[0].Point)
	assert.Equal(t, spatial.Point{Lat: -34.9012, Lng: -56.1647}, clean[1].Point)
	assert.True(t, clean[1].Time.After(clean[0].Time))
}
