// Copyright 2025 The Dashtrack Authors
// SPDX-License-Identifier: Apache-2.0

package track

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
)

const (
	gpxNamespace = "http://www.topografix.com/GPX/1/1"
	gpxCreator   = "dashtrack"

	// Overlay coordinates carry four to six decimals; six (~0.1 m) loses
	// nothing while keeping files byte-stable.
	gpxCoordDecimals = 6

	// Timestamps are written as entered by the user, with a literal UTC
	// marker, mirroring what dashcam viewers expect.
	gpxTimeLayout = "2006-01-02T15:04:05"
)

type gpxCoord float64

func (c gpxCoord) MarshalXMLAttr(name xml.Name) (xml.Attr, error) {
	return xml.Attr{
		Name:  name,
		Value: strconv.FormatFloat(float64(c), 'f', gpxCoordDecimals, 64),
	}, nil
}

type gpxTrackPoint struct {
	XMLName xml.Name `xml:"trkpt"`
	Lat     gpxCoord `xml:"lat,attr"`
	Lon     gpxCoord `xml:"lon,attr"`
	Time    string   `xml:"time"`
}

type gpxDocument struct {
	XMLName xml.Name `xml:"gpx"`
	Version string   `xml:"version,attr"`
	Creator string   `xml:"creator,attr"`
	Xmlns   string   `xml:"xmlns,attr"`
	Track   struct {
		Name    string `xml:"name,omitempty"`
		Segment struct {
			Points []gpxTrackPoint `xml:"trkpt"`
		} `xml:"trkseg"`
	} `xml:"trk"`
}

// WriteGPX serializes a cleaned trajectory as a GPX 1.1 document with one
// track containing one track segment.
func WriteGPX(w io.Writer, name string, readings []Reading) error {
	doc := gpxDocument{
		Version: "1.1",
		Creator: gpxCreator,
		Xmlns:   gpxNamespace,
	}
	doc.Track.Name = name
	doc.Track.Segment.Points = make([]gpxTrackPoint, 0, len(readings))

	for _, r := range readings {
		doc.Track.Segment.Points = append(doc.Track.Segment.Points, gpxTrackPoint{
			Lat:  gpxCoord(r.Point.Lat),
			Lon:  gpxCoord(r.Point.Lng),
			Time: r.Time.Format(gpxTimeLayout) + "Z",
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("writing gpx header: %w", err)
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")

	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding gpx: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("closing gpx encoder: %w", err)
	}

	_, err := io.WriteString(w, "\n")

	return err
}
