package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/natevvv/graph-search/pkg/graph/path"
	"github.com/natevvv/graph-search/pkg/queue"
	"github.com/natevvv/graph-search/pkg/slice"
	"github.com/paulmach/orb"
	"github.com/spf13/cobra"
)

var errInvalidPoint = errors.New("point must be given as lat,lon")

// parsePoint reads "lat,lon" into an orb point, which is ordered lon, lat
func parsePoint(s string) (orb.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return orb.Point{}, fmt.Errorf("%w: %q", errInvalidPoint, s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return orb.Point{}, fmt.Errorf("%w: %q", errInvalidPoint, s)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return orb.Point{}, fmt.Errorf("%w: %q", errInvalidPoint, s)
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return orb.Point{}, fmt.Errorf("%w: %q is out of range", errInvalidPoint, s)
	}
	return orb.Point{lon, lat}, nil
}

// queuePrototype creates the queue selected by name and degree
func queuePrototype[N comparable](name string, degree int) (queue.IndexedMinPriorityQueue[N], error) {
	kind, err := queue.ParseKind(name)
	if err != nil {
		return nil, err
	}
	return queue.New[N](kind, degree)
}

// stringFlag returns the flag value if it was set, the configured value otherwise
func stringFlag(cmd *cobra.Command, name, configured string) string {
	if cmd.Flags().Changed(name) {
		value, _ := cmd.Flags().GetString(name)
		return value
	}
	return configured
}

// intFlag returns the flag value if it was set, the configured value otherwise
func intFlag(cmd *cobra.Command, name string, configured int) int {
	if cmd.Flags().Changed(name) {
		value, _ := cmd.Flags().GetInt(name)
		return value
	}
	return configured
}

func validateNavigator(name string) error {
	if !slice.Contains(path.FinderNames(), name) {
		return fmt.Errorf("%w: %q", path.ErrUnknownFinder, name)
	}
	return nil
}
