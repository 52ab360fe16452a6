package puzzle

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/natevvv/graph-search/pkg/graph"
)

const (
	MINIMUM_DEGREE = 2
	MAXIMUM_DEGREE = 16 // tiles are stored as bytes

	BLANK = 0
)

var (
	ErrInvalidDegree = fmt.Errorf("puzzle degree must be between %d and %d", MINIMUM_DEGREE, MAXIMUM_DEGREE)
	ErrInvalidTiles  = errors.New("tiles are not a permutation of 0..degree*degree-1")
)

// Node is a state of the sliding puzzle with degree*degree cells.
// The tile of cell (x, y) is stored at byte y*degree+x, 0 is the blank.
// Node is a comparable value, every move creates a new node.
// Implements graph.Node.
type Node struct {
	degree int
	tiles  string
}

var _ = graph.IsValidPath[Node]

func checkDegree(degree int) error {
	if degree < MINIMUM_DEGREE || degree > MAXIMUM_DEGREE {
		return fmt.Errorf("%w: got %d", ErrInvalidDegree, degree)
	}
	return nil
}

// NewGoal returns the solved puzzle: tiles 1..n in row order, the blank in the bottom right corner
func NewGoal(degree int) (Node, error) {
	if err := checkDegree(degree); err != nil {
		return Node{}, err
	}
	cells := degree * degree
	tiles := make([]byte, cells)
	for i := 0; i < cells-1; i++ {
		tiles[i] = byte(i + 1)
	}
	tiles[cells-1] = BLANK
	return Node{degree: degree, tiles: string(tiles)}, nil
}

// FromTiles creates a puzzle from the tiles in row order
func FromTiles(degree int, tiles []int) (Node, error) {
	if err := checkDegree(degree); err != nil {
		return Node{}, err
	}
	cells := degree * degree
	if len(tiles) != cells {
		return Node{}, fmt.Errorf("%w: got %d tiles, expected %d", ErrInvalidTiles, len(tiles), cells)
	}
	seen := make([]bool, cells)
	encoded := make([]byte, cells)
	for i, tile := range tiles {
		if tile < 0 || tile >= cells || seen[tile] {
			return Node{}, fmt.Errorf("%w: invalid or duplicate tile %d", ErrInvalidTiles, tile)
		}
		seen[tile] = true
		encoded[i] = byte(tile)
	}
	return Node{degree: degree, tiles: string(encoded)}, nil
}

func (n Node) Degree() int { return n.degree }

// Get returns the tile at column x and row y
func (n Node) Get(x, y int) int {
	return int(n.tiles[y*n.degree+x])
}

// Tiles returns the tiles in row order
func (n Node) Tiles() []int {
	tiles := make([]int, len(n.tiles))
	for i := 0; i < len(n.tiles); i++ {
		tiles[i] = int(n.tiles[i])
	}
	return tiles
}

// EmptySlot returns the column and row of the blank
func (n Node) EmptySlot() (int, int) {
	index := strings.IndexByte(n.tiles, BLANK)
	return index % n.degree, index / n.degree
}

// returns a copy with the blank at (x, y) moved to (toX, toY)
func (n Node) moveBlank(x, y, toX, toY int) Node {
	tiles := []byte(n.tiles)
	from, to := y*n.degree+x, toY*n.degree+toX
	tiles[from], tiles[to] = tiles[to], BLANK
	return Node{degree: n.degree, tiles: string(tiles)}
}

// MoveUp moves the blank one row up. Returns false if the blank is in the top row
func (n Node) MoveUp() (Node, bool) {
	x, y := n.EmptySlot()
	if y == 0 {
		return Node{}, false
	}
	return n.moveBlank(x, y, x, y-1), true
}

// MoveRight moves the blank one column right. Returns false if the blank is in the last column
func (n Node) MoveRight() (Node, bool) {
	x, y := n.EmptySlot()
	if x == n.degree-1 {
		return Node{}, false
	}
	return n.moveBlank(x, y, x+1, y), true
}

// MoveDown moves the blank one row down. Returns false if the blank is in the bottom row
func (n Node) MoveDown() (Node, bool) {
	x, y := n.EmptySlot()
	if y == n.degree-1 {
		return Node{}, false
	}
	return n.moveBlank(x, y, x, y+1), true
}

// MoveLeft moves the blank one column left. Returns false if the blank is in the first column
func (n Node) MoveLeft() (Node, bool) {
	x, y := n.EmptySlot()
	if x == 0 {
		return Node{}, false
	}
	return n.moveBlank(x, y, x-1, y), true
}

// Children returns all states reachable with a single move, in the order up, right, down, left
func (n Node) Children() []Node {
	children := make([]Node, 0, 4)
	for _, move := range []func() (Node, bool){n.MoveUp, n.MoveRight, n.MoveDown, n.MoveLeft} {
		if child, ok := move(); ok {
			children = append(children, child)
		}
	}
	return children
}

// Parents is identical to Children since every move can be undone
func (n Node) Parents() []Node {
	return n.Children()
}

// HasChild reports whether other is reachable with a single move
func (n Node) HasChild(other Node) bool {
	if n.degree != other.degree {
		return false
	}
	for _, child := range n.Children() {
		if child == other {
			return true
		}
	}
	return false
}

// RandomSwap swaps a random non-blank tile with a random non-blank neighbour.
// Every swap flips the solvability of the puzzle.
func (n Node) RandomSwap(rng *rand.Rand) Node {
	cells := len(n.tiles)
	source := rng.IntN(cells)
	for n.tiles[source] == BLANK {
		source = rng.IntN(cells)
	}
	x, y := source%n.degree, source/n.degree

	for {
		targetX, targetY := x, y
		switch rng.IntN(4) {
		case 0:
			targetX--
		case 1:
			targetX++
		case 2:
			targetY--
		case 3:
			targetY++
		}
		if targetX < 0 || targetY < 0 || targetX >= n.degree || targetY >= n.degree {
			continue
		}
		target := targetY*n.degree + targetX
		if n.tiles[target] == BLANK {
			continue
		}
		tiles := []byte(n.tiles)
		tiles[source], tiles[target] = tiles[target], tiles[source]
		return Node{degree: n.degree, tiles: string(tiles)}
	}
}

// Scramble moves the blank steps times in a random direction. The result is always solvable
func (n Node) Scramble(rng *rand.Rand, steps int) Node {
	node := n
	for i := 0; i < steps; i++ {
		children := node.Children()
		node = children[rng.IntN(len(children))]
	}
	return node
}

// SwapScramble applies an even number of random swaps (steps is rounded up), which keeps the solvability.
// For degree 2 the single non-blank pair may be swapped back, so the result can equal n.
func (n Node) SwapScramble(rng *rand.Rand, steps int) Node {
	steps += steps % 2
	node := n
	for ; steps > 0; steps-- {
		node = node.RandomSwap(rng)
	}
	return node
}

// IsSolvable checks whether the goal of the same degree can be reached, using the inversion parity
func (n Node) IsSolvable() bool {
	inversions := 0
	for i := 0; i < len(n.tiles); i++ {
		if n.tiles[i] == BLANK {
			continue
		}
		for j := i + 1; j < len(n.tiles); j++ {
			if n.tiles[j] != BLANK && n.tiles[j] < n.tiles[i] {
				inversions++
			}
		}
	}
	if n.degree%2 == 1 {
		return inversions%2 == 0
	}
	_, y := n.EmptySlot()
	rowFromBottom := n.degree - y
	return (inversions+rowFromBottom)%2 == 1
}

// String prints the puzzle as a left aligned grid, one row per line
func (n Node) String() string {
	width := len(fmt.Sprintf("%d", len(n.tiles)-1))
	var sb strings.Builder
	for y := 0; y < n.degree; y++ {
		for x := 0; x < n.degree; x++ {
			sb.WriteString(fmt.Sprintf("%-*d ", width, n.Get(x, y)))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
