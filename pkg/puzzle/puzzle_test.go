package puzzle

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/natevvv/graph-search/pkg/graph"
)

func mustGoal(t *testing.T, degree int) Node {
	t.Helper()
	goal, err := NewGoal(degree)
	if err != nil {
		t.Fatalf("failed to create goal: %v", err)
	}
	return goal
}

func TestNewGoal(t *testing.T) {
	goal := mustGoal(t, 3)
	expected := []int{1, 2, 3, 4, 5, 6, 7, 8, 0}
	for i, tile := range goal.Tiles() {
		if tile != expected[i] {
			t.Errorf("tile at position %v is %v, should be %v", i, tile, expected[i])
		}
	}
	if x, y := goal.EmptySlot(); x != 2 || y != 2 {
		t.Errorf("empty slot is (%v, %v), should be (2, 2)", x, y)
	}
	if !goal.IsSolvable() {
		t.Errorf("goal should be solvable")
	}

	for _, degree := range []int{-1, 0, 1, MAXIMUM_DEGREE + 1} {
		if _, err := NewGoal(degree); !errors.Is(err, ErrInvalidDegree) {
			t.Errorf("degree %v: expected ErrInvalidDegree, got %v", degree, err)
		}
	}
}

func TestFromTiles(t *testing.T) {
	node, err := FromTiles(2, []int{0, 1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}
	if node.Get(1, 1) != 3 || node.Get(0, 0) != BLANK {
		t.Errorf("wrong tiles:\n%v", node)
	}

	invalid := [][]int{{0, 1, 2}, {0, 1, 2, 2}, {0, 1, 2, 4}, {-1, 1, 2, 3}}
	for _, tiles := range invalid {
		if _, err := FromTiles(2, tiles); !errors.Is(err, ErrInvalidTiles) {
			t.Errorf("%v: expected ErrInvalidTiles, got %v", tiles, err)
		}
	}
}

func TestMoves(t *testing.T) {
	goal := mustGoal(t, 3)
	if _, ok := goal.MoveDown(); ok {
		t.Errorf("blank in the bottom row cannot move down")
	}
	if _, ok := goal.MoveRight(); ok {
		t.Errorf("blank in the last column cannot move right")
	}

	up, ok := goal.MoveUp()
	if !ok {
		t.Fatalf("blank should move up")
	}
	if up.Get(2, 1) != BLANK || up.Get(2, 2) != 6 {
		t.Errorf("wrong state after moving up:\n%v", up)
	}
	if back, _ := up.MoveDown(); back != goal {
		t.Errorf("moving down again should give the goal, got\n%v", back)
	}

	left, _ := goal.MoveLeft()
	if left.Get(1, 2) != BLANK || left.Get(2, 2) != 8 {
		t.Errorf("wrong state after moving left:\n%v", left)
	}
}

func TestChildren(t *testing.T) {
	goal := mustGoal(t, 3)
	if len(goal.Children()) != 2 {
		t.Errorf("corner blank should have 2 children, has %v", len(goal.Children()))
	}
	center, _ := FromTiles(3, []int{1, 2, 3, 4, 0, 5, 6, 7, 8})
	children := center.Children()
	if len(children) != 4 {
		t.Fatalf("center blank should have 4 children, has %v", len(children))
	}
	for _, child := range children {
		if !center.HasChild(child) || !child.HasChild(center) {
			t.Errorf("moves must be reversible:\n%v", child)
		}
		if !graph.HasChild(center, child) {
			t.Errorf("graph.HasChild disagrees for\n%v", child)
		}
	}
	if center.HasChild(goal) {
		t.Errorf("goal is two moves away from the center state")
	}
	if len(center.Parents()) != len(children) {
		t.Errorf("parents and children differ")
	}
}

func TestSolvability(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for _, degree := range []int{2, 3, 4} {
		goal := mustGoal(t, degree)
		for i := 0; i < 20; i++ {
			if scrambled := goal.Scramble(rng, 50); !scrambled.IsSolvable() {
				t.Errorf("scrambled puzzle should be solvable:\n%v", scrambled)
			}
			if swapped := goal.RandomSwap(rng); swapped.IsSolvable() {
				t.Errorf("single swap should be unsolvable:\n%v", swapped)
			}
			if swapped := goal.SwapScramble(rng, 5); !swapped.IsSolvable() {
				t.Errorf("even number of swaps should be solvable:\n%v", swapped)
			}
		}
	}
}

func TestString(t *testing.T) {
	node, _ := FromTiles(4, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 0, 15})
	expected := "1  2  3  4  \n5  6  7  8  \n9  10 11 12 \n13 14 0  15 \n"
	if node.String() != expected {
		t.Errorf("wrong string representation:\n%q\nshould be\n%q", node.String(), expected)
	}
}

// exhaustive breadth first distances from the goal
func goalDistances(goal Node) map[Node]int {
	distances := map[Node]int{goal: 0}
	fifo := []Node{goal}
	for len(fifo) > 0 {
		current := fifo[0]
		fifo = fifo[1:]
		for _, child := range current.Children() {
			if _, ok := distances[child]; !ok {
				distances[child] = distances[current] + 1
				fifo = append(fifo, child)
			}
		}
	}
	return distances
}

func TestManhattanHeuristicIsAdmissible(t *testing.T) {
	goal := mustGoal(t, 3)
	h := NewManhattanHeuristic()
	h.SetTarget(goal)

	distances := goalDistances(goal)
	if len(distances) != 181440 {
		t.Fatalf("3x3 puzzle has %v reachable states, should be 181440", len(distances))
	}
	for node, distance := range distances {
		estimate := h.Estimate(node)
		if estimate > distance {
			t.Fatalf("estimate %v exceeds distance %v for\n%v", estimate, distance, node)
		}
		for _, child := range node.Children() {
			if diff := estimate - h.Estimate(child); diff > 1 || diff < -1 {
				t.Fatalf("estimate is not consistent between\n%v\nand\n%v", node, child)
			}
		}
	}
}

func TestManhattanHeuristicSpawn(t *testing.T) {
	goal := mustGoal(t, 3)
	h := NewManhattanHeuristic()
	h.SetTarget(goal)
	up, _ := goal.MoveUp()
	if h.Estimate(up) != 1 {
		t.Errorf("estimate is %v, should be 1", h.Estimate(up))
	}

	spawned := h.Spawn()
	if spawned.Estimate(up) != 0 {
		t.Errorf("untargeted spawn should estimate 0")
	}
	spawned.SetTarget(up)
	if spawned.Estimate(up) != 0 || h.Estimate(up) != 1 {
		t.Errorf("spawned heuristic must not share its target")
	}
	if h.Estimate(mustGoal(t, 4)) != 0 {
		t.Errorf("different degree should estimate 0")
	}
}

func TestMovesFormValidPath(t *testing.T) {
	goal := mustGoal(t, 3)
	left, _ := goal.MoveLeft()
	up, _ := left.MoveUp()

	if !graph.IsValidPath(up, goal, []Node{up, left, goal}) {
		t.Errorf("Reversed moves should be a valid path to the goal")
	}
	if graph.IsValidPath(up, goal, []Node{up, goal}) {
		t.Errorf("Path skipping a move should be invalid")
	}
}
