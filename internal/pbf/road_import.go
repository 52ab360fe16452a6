package pbf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/natevvv/graph-search/pkg/road"
	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmxml"
	"github.com/qedus/osmpbf"
)

var ErrUnsupportedFormat = errors.New("unsupported osm file format")

// RoadImporter reads the highways of an osm extract, either .osm.pbf or .osm xml
type RoadImporter struct {
	filename string
	roads    []*road.Segment
	nodes    map[osm.NodeID]orb.Point
}

func NewRoadImporter(filename string) *RoadImporter {
	return &RoadImporter{
		filename: filename,
		roads:    make([]*road.Segment, 0),
		nodes:    make(map[osm.NodeID]orb.Point),
	}
}

// Import reads the file, the format is chosen by the file extension
func (ri *RoadImporter) Import(ctx context.Context) error {
	switch {
	case strings.HasSuffix(ri.filename, ".pbf"):
		return ri.importPbf()
	case strings.HasSuffix(ri.filename, ".osm"), strings.HasSuffix(ri.filename, ".xml"):
		return ri.importXml(ctx)
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedFormat, ri.filename)
}

func (ri *RoadImporter) Roads() []*road.Segment {
	return ri.roads
}

// create the segment of a way if it is a supported highway. Unknown nodes are skipped
func (ri *RoadImporter) makeSegment(id osm.WayID, tags map[string]string, nodeIds []osm.NodeID) (*road.Segment, bool) {
	highway, ok := tags["highway"]
	if !ok {
		return nil, false
	}
	roadType := road.ParseRoadType(highway)
	if roadType == road.Unknown {
		return nil, false
	}
	segment := &road.Segment{
		ID:     id,
		Type:   roadType,
		Tags:   tags,
		OneWay: road.IsOneWay(tags),
		Points: make(orb.LineString, 0, len(nodeIds)),
	}
	for _, nodeId := range nodeIds {
		if point, ok := ri.nodes[nodeId]; ok {
			segment.Points = append(segment.Points, point)
		}
	}
	if len(segment.Points) < 2 {
		return nil, false
	}
	return segment, true
}

func (ri *RoadImporter) importPbf() error {
	if err := ri.collectNodes(); err != nil {
		return err
	}

	decoder, file, err := ri.startDecoder()
	if err != nil {
		return err
	}
	defer file.Close()

	var wg sync.WaitGroup
	roadsChan := make(chan *road.Segment, 1000)

	wg.Add(1)
	go func() {
		defer wg.Done()
		for segment := range roadsChan {
			ri.roads = append(ri.roads, segment)
		}
	}()

	for {
		v, err := decoder.Decode()
		if err == io.EOF {
			break
		} else if err != nil {
			close(roadsChan)
			wg.Wait()
			return err
		}
		if way, ok := v.(*osmpbf.Way); ok {
			nodeIds := make([]osm.NodeID, len(way.NodeIDs))
			for i, id := range way.NodeIDs {
				nodeIds[i] = osm.NodeID(id)
			}
			if segment, ok := ri.makeSegment(osm.WayID(way.ID), way.Tags, nodeIds); ok {
				roadsChan <- segment
			}
		}
	}

	close(roadsChan)
	wg.Wait()
	return nil
}

func (ri *RoadImporter) startDecoder() (*osmpbf.Decoder, *os.File, error) {
	file, err := os.Open(ri.filename)
	if err != nil {
		return nil, nil, err
	}

	decoder := osmpbf.NewDecoder(file)
	decoder.SetBufferSize(osmpbf.MaxBlobSize)

	if err := decoder.Start(runtime.GOMAXPROCS(-1)); err != nil {
		file.Close()
		return nil, nil, err
	}
	return decoder, file, nil
}

// the ways of a pbf file can only be resolved after all nodes are known
func (ri *RoadImporter) collectNodes() error {
	decoder, file, err := ri.startDecoder()
	if err != nil {
		return err
	}
	defer file.Close()

	for {
		v, err := decoder.Decode()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		if node, ok := v.(*osmpbf.Node); ok {
			ri.nodes[osm.NodeID(node.ID)] = orb.Point{node.Lon, node.Lat}
		}
	}
}

// xml extracts list all nodes before the ways, so a single pass is enough
func (ri *RoadImporter) importXml(ctx context.Context) error {
	file, err := os.Open(ri.filename)
	if err != nil {
		return err
	}
	defer file.Close()
	return ri.scanXml(ctx, file)
}

func (ri *RoadImporter) scanXml(ctx context.Context, r io.Reader) error {
	scanner := osmxml.New(ctx, r)
	defer scanner.Close()

	for scanner.Scan() {
		switch o := scanner.Object().(type) {
		case *osm.Node:
			ri.nodes[o.ID] = orb.Point{o.Lon, o.Lat}
		case *osm.Way:
			nodeIds := make([]osm.NodeID, len(o.Nodes))
			for i, wayNode := range o.Nodes {
				nodeIds[i] = wayNode.ID
			}
			tags := make(map[string]string, len(o.Tags))
			for _, tag := range o.Tags {
				tags[tag.Key] = tag.Value
			}
			if segment, ok := ri.makeSegment(o.ID, tags, nodeIds); ok {
				ri.roads = append(ri.roads, segment)
			}
		}
	}
	return scanner.Err()
}
