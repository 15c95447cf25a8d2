// Copyright 2025 The Dashtrack Authors
// SPDX-License-Identifier: Apache-2.0

// Package web serves stored runs over HTTP with a small Leaflet viewer.
package web

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MarcoCot1982/dashtrack/track"
)

type Server struct {
	repo track.RunRepository
}

func NewServer(repo track.RunRepository) *Server {
	return &Server{repo: repo}
}

func (s *Server) Router() *gin.Engine {
	r := gin.Default()
	r.SetHTMLTemplate(template.Must(template.New("map.html").Parse(mapHTML)))

	r.GET("/", s.mapView)
	r.GET("/api/runs", s.listRuns)
	r.GET("/api/runs/track", s.getTrack)
	r.GET("/api/runs/stats", s.getStats)

	return r
}

func (s *Server) Run(addr string) error {
	return s.Router().Run(addr)
}

func (s *Server) mapView(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "map.html", nil)
}

func (s *Server) listRuns(ctx *gin.Context) {
	runs, err := s.repo.ListRuns()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

		return
	}

	if runs == nil {
		runs = []*track.Run{}
	}

	ctx.JSON(http.StatusOK, runs)
}

// getTrack returns one run's trajectory as a GeoJSON LineString. The
// "readings" query parameter selects the clean (default) or raw points.
func (s *Server) getTrack(ctx *gin.Context) {
	source := ctx.Query("source")
	if source == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "source query parameter is required"})

		return
	}

	var (
		readings []track.Reading
		err      error
	)

	switch ctx.DefaultQuery("readings", "clean") {
	case "clean":
		readings, err = s.repo.CleanReadings(source)
	case "raw":
		readings, err = s.repo.RawReadings(source)
	default:
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "readings must be clean or raw"})

		return
	}

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

		return
	}

	coordinates := make([][2]float64, 0, len(readings))
	for _, r := range readings {
		coordinates = append(coordinates, [2]float64{r.Point.Lng, r.Point.Lat})
	}

	ctx.JSON(http.StatusOK, gin.H{
		"type": "Feature",
		"geometry": gin.H{
			"type":        "LineString",
			"coordinates": coordinates,
		},
		"properties": gin.H{
			"source": source,
			"points": len(coordinates),
		},
	})
}

func (s *Server) getStats(ctx *gin.Context) {
	source := ctx.Query("source")
	if source == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "source query parameter is required"})

		return
	}

	run, err := s.repo.GetRun(source)
	if errors.Is(err, track.ErrRunNotFound) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

		return
	} else if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

		return
	}

	ctx.JSON(http.StatusOK, run)
}
