package domain

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidBBox is returned when a bounding box cannot be parsed or is degenerate
var ErrInvalidBBox = errors.New("invalid bounding box")

type Point struct {
	Lat float64 `json:"lat" db:"lat"`
	Lon float64 `json:"lon" db:"lon"`
}

type BoundingBox struct {
	MinLon float64 `json:"min_lon"`
	MinLat float64 `json:"min_lat"`
	MaxLon float64 `json:"max_lon"`
	MaxLat float64 `json:"max_lat"`
}

// ParseBBox parses "minLon,minLat,maxLon,maxLat"
func ParseBBox(s string) (*BoundingBox, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, ErrInvalidBBox
	}

	values := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, ErrInvalidBBox
		}
		values[i] = v
	}

	bbox := &BoundingBox{MinLon: values[0], MinLat: values[1], MaxLon: values[2], MaxLat: values[3]}
	if err := bbox.Validate(); err != nil {
		return nil, err
	}
	return bbox, nil
}

func (b BoundingBox) Validate() error {
	for _, v := range []float64{b.MinLon, b.MinLat, b.MaxLon, b.MaxLat} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrInvalidBBox
		}
	}
	if b.MinLon < -180 || b.MaxLon > 180 || b.MinLat < -90 || b.MaxLat > 90 {
		return ErrInvalidBBox
	}
	if b.MinLon > b.MaxLon || b.MinLat > b.MaxLat {
		return ErrInvalidBBox
	}
	return nil
}

// Contains reports whether the point lies inside the box, edges included
func (b BoundingBox) Contains(lon, lat float64) bool {
	return lon >= b.MinLon && lon <= b.MaxLon && lat >= b.MinLat && lat <= b.MaxLat
}

// String returns the box in the same format ParseBBox accepts
func (b BoundingBox) String() string {
	return strconv.FormatFloat(b.MinLon, 'f', -1, 64) + "," +
		strconv.FormatFloat(b.MinLat, 'f', -1, 64) + "," +
		strconv.FormatFloat(b.MaxLon, 'f', -1, 64) + "," +
		strconv.FormatFloat(b.MaxLat, 'f', -1, 64)
}
