package path

import (
	"fmt"

	"github.com/natevvv/graph-search/pkg/slice"
)

// The parent maps record the origin of a search direction as its own parent.

// Traceback returns the path from the origin of the parent map to node
func Traceback[N comparable](node N, parents map[N]N) []N {
	path := make([]N, 0)
	for {
		path = append(path, node)
		parent := parentOf(node, parents)
		if parent == node {
			break
		}
		node = parent
	}
	slice.ReverseInPlace(path)
	return path
}

// TracebackBidirectional joins the forward path to the touch node with the backward path from the touch node.
// The touch node is contained only once.
func TracebackBidirectional[N comparable](touch N, forwardParents, backwardParents map[N]N) []N {
	path := Traceback(touch, forwardParents)
	for node := touch; ; {
		successor := parentOf(node, backwardParents)
		if successor == node {
			break
		}
		path = append(path, successor)
		node = successor
	}
	return path
}

func parentOf[N comparable](node N, parents map[N]N) N {
	parent, ok := parents[node]
	if !ok {
		panic(fmt.Sprintf("node %v has no parent entry", node))
	}
	return parent
}
