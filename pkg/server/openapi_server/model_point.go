// SPDX-License-Identifier: MIT

package openapi_server

import "github.com/paulmach/orb"

type Point struct {
	Lat float32 `json:"lat"`
	Lon float32 `json:"lon"`
}

// AssertPointRequired checks if the required fields are not zero-ed
func AssertPointRequired(obj Point) error {
	return nil
}

func pointFromOrb(p orb.Point) Point {
	return Point{Lat: float32(p.Lat()), Lon: float32(p.Lon())}
}

func (p Point) toOrb() orb.Point {
	return orb.Point{float64(p.Lon), float64(p.Lat)}
}
