package graph

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

var ErrInvalidFmi = errors.New("invalid fmi graph")

// fmi parse states
const (
	PARSE_NODE_COUNT = iota
	PARSE_EDGE_COUNT = iota
	PARSE_NODES      = iota
	PARSE_EDGES      = iota
)

// WriteFmi stores the graph in the given file
func WriteFmi(g Graph, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	if _, err := writer.WriteString(g.AsString()); err != nil {
		return err
	}
	return writer.Flush()
}

// ParseFmi reads a graph in fmi format.
// Lines starting with '#' are comments, node ids get remapped to their position in the file.
func ParseFmi(r io.Reader) (*AdjacencyListGraph, error) {
	scanner := bufio.NewScanner(r)

	numNodes := 0
	numParsedNodes := 0
	lineNumber := 0

	alg := NewAdjacencyListGraph()
	id2index := make(map[int]int)

	parseState := PARSE_NODE_COUNT
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if len(line) < 1 {
			// skip empty lines
			continue
		} else if line[0] == '#' {
			// skip comments
			continue
		}

		switch parseState {
		case PARSE_NODE_COUNT:
			val, err := strconv.Atoi(line)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: node count: %v", ErrInvalidFmi, lineNumber, err)
			}
			numNodes = val
			parseState = PARSE_EDGE_COUNT
		case PARSE_EDGE_COUNT:
			if _, err := strconv.Atoi(line); err != nil {
				return nil, fmt.Errorf("%w: line %d: arc count: %v", ErrInvalidFmi, lineNumber, err)
			}
			parseState = PARSE_NODES
			if numNodes == 0 {
				parseState = PARSE_EDGES
			}
		case PARSE_NODES:
			var id int
			var lat, lon float64
			if _, err := fmt.Sscanf(line, "%d %f %f", &id, &lat, &lon); err != nil {
				return nil, fmt.Errorf("%w: line %d: node: %v", ErrInvalidFmi, lineNumber, err)
			}
			id2index[id] = alg.NodeCount()
			alg.AddNode(orb.Point{lon, lat})
			numParsedNodes++
			if numParsedNodes == numNodes {
				parseState = PARSE_EDGES
			}
		case PARSE_EDGES:
			var from, to, distance int
			if _, err := fmt.Sscanf(line, "%d %d %d", &from, &to, &distance); err != nil {
				return nil, fmt.Errorf("%w: line %d: arc: %v", ErrInvalidFmi, lineNumber, err)
			}
			fromIndex, okFrom := id2index[from]
			toIndex, okTo := id2index[to]
			if !okFrom || !okTo {
				return nil, fmt.Errorf("%w: line %d: arc %v -> %v references unknown node", ErrInvalidFmi, lineNumber, from, to)
			}
			alg.AddArc(fromIndex, toIndex, distance)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if alg.NodeCount() != numNodes {
		// cannot check edge count because duplicates are removed during import
		return nil, fmt.Errorf("%w: parsed %d nodes, expected %d", ErrInvalidFmi, alg.NodeCount(), numNodes)
	}

	return alg, nil
}

func NewAdjacencyListFromFmiString(fmi string) (*AdjacencyListGraph, error) {
	return ParseFmi(strings.NewReader(fmi))
}

func NewAdjacencyListFromFmiFile(filename string) (*AdjacencyListGraph, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ParseFmi(file)
}

func NewAdjacencyArrayFromFmiString(fmi string) (*AdjacencyArrayGraph, error) {
	alg, err := NewAdjacencyListFromFmiString(fmi)
	if err != nil {
		return nil, err
	}
	return NewAdjacencyArrayFromGraph(alg), nil
}

func NewAdjacencyArrayFromFmiFile(filename string) (*AdjacencyArrayGraph, error) {
	alg, err := NewAdjacencyListFromFmiFile(filename)
	if err != nil {
		return nil, err
	}
	return NewAdjacencyArrayFromGraph(alg), nil
}
