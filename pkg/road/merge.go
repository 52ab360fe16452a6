package road

import (
	"github.com/paulmach/orb"
)

// Merger joins consecutive segments with equal attributes
type Merger struct {
	roads           []*Segment
	mergeCount      int
	unmergableCount int
}

func NewMerger(roads []*Segment) *Merger {
	return &Merger{
		roads: roads,
	}
}

func (m *Merger) Merge() {
	// index the segments by their first point
	startToSegments := make(map[orb.Point][]*Segment)
	for _, seg := range m.roads {
		if len(seg.Points) < 2 {
			m.unmergableCount++
			continue
		}
		startToSegments[seg.Points[0]] = append(startToSegments[seg.Points[0]], seg)
	}

	merged := make(map[*Segment]bool)
	newRoads := make([]*Segment, 0, len(m.roads))

	for _, seg := range m.roads {
		if merged[seg] || len(seg.Points) < 2 {
			continue
		}
		merged[seg] = true

		current := seg
		for {
			end := current.Points[len(current.Points)-1]

			foundNext := false
			for _, next := range startToSegments[end] {
				if merged[next] || !canMerge(current, next) {
					continue
				}
				current = mergeTwoSegments(current, next)
				merged[next] = true
				m.mergeCount++
				foundNext = true
				break
			}

			if !foundNext {
				break
			}
		}

		newRoads = append(newRoads, current)
	}

	m.roads = newRoads
}

func canMerge(s1, s2 *Segment) bool {
	return s1.Type == s2.Type &&
		s1.OneWay == s2.OneWay &&
		s1.MaxSpeed == s2.MaxSpeed
}

func mergeTwoSegments(s1, s2 *Segment) *Segment {
	merged := &Segment{
		ID:       s1.ID,
		Type:     s1.Type,
		OneWay:   s1.OneWay,
		MaxSpeed: s1.MaxSpeed,
		Tags:     s1.Tags,
	}

	merged.Points = make(orb.LineString, 0, len(s1.Points)+len(s2.Points)-1)
	merged.Points = append(merged.Points, s1.Points...)
	merged.Points = append(merged.Points, s2.Points[1:]...) // the first point of s2 is the last one of s1

	return merged
}

func (m *Merger) Roads() []*Segment {
	return m.roads
}

func (m *Merger) MergeCount() int {
	return m.mergeCount
}

func (m *Merger) UnmergableRoadCount() int {
	return m.unmergableCount
}
