// SPDX-License-Identifier: MIT

package openapi_server

type PuzzleRequest struct {
	Degree    int    `json:"degree"`
	Tiles     []int  `json:"tiles"`               // row order, 0 is the blank
	Navigator string `json:"navigator,omitempty"` // defaults to the configured puzzle navigator
	Queue     string `json:"queue,omitempty"`     // defaults to the configured queue
}

func AssertPuzzleRequestRequired(obj PuzzleRequest) error {
	return assertRequired(map[string]interface{}{
		"degree": obj.Degree,
		"tiles":  obj.Tiles,
	})
}

type PuzzleResult struct {
	Solvable  bool    `json:"solvable"`
	Moves     int     `json:"moves"`
	States    [][]int `json:"states,omitempty"` // from the request state to the goal
	Navigator string  `json:"navigator"`
}
