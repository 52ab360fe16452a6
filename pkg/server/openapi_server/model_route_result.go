// SPDX-License-Identifier: MIT

package openapi_server

type Path struct {
	Length    int32   `json:"length"` // meters
	Hops      int32   `json:"hops"`
	Waypoints []Point `json:"waypoints"`
}

type RouteResult struct {
	Origin      Point `json:"origin"`
	Destination Point `json:"destination"`
	Reachable   bool  `json:"reachable"`
	Path        Path  `json:"path,omitempty"`
}
