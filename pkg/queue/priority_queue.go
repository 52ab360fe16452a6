package queue

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyQueue       = errors.New("priority queue is empty")
	ErrInvalidDegree    = errors.New("heap degree must be at least 2")
	ErrNegativePriority = errors.New("bucket queue priorities must be non-negative")
	ErrUnknownKind      = errors.New("unknown priority queue kind")
)

// IndexedMinPriorityQueue is a mutable min priority queue with integer priorities.
// Every element is stored at most once. Lookup by element makes DecreasePriority cheap.
type IndexedMinPriorityQueue[E comparable] interface {
	// Insert adds the element with the given priority. No-op if the element is already present.
	Insert(element E, priority int)
	// DecreasePriority lowers the priority of the element.
	// No-op if the element is absent or the new priority is not lower than the current one.
	DecreasePriority(element E, priority int)
	// ExtractMinimum removes and returns the element with the lowest priority.
	// Panics with ErrEmptyQueue if the queue is empty.
	ExtractMinimum() E
	// Min returns the element with the lowest priority without removing it.
	Min() E
	// MinPriority returns the lowest priority without removing anything.
	MinPriority() int
	Contains(element E) bool
	Size() int
	IsEmpty() bool
	Clear()
	// Spawn returns a new empty queue configured the same way as this one.
	Spawn() IndexedMinPriorityQueue[E]
}

// Kind selects a queue implementation
type Kind string

const (
	DARY   Kind = "dary"
	BUCKET Kind = "bucket"
	BINARY Kind = "binary"
)

func (k Kind) String() string { return string(k) }

// Kinds lists all supported queue kinds
func Kinds() []Kind { return []Kind{DARY, BUCKET, BINARY} }

// ParseKind resolves a kind name (case insensitive)
func ParseKind(name string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(name))) {
	case DARY, "d-ary", "heap":
		return DARY, nil
	case BUCKET, "dial":
		return BUCKET, nil
	case BINARY, "container":
		return BINARY, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// New creates an empty queue of the given kind.
// The degree is only used for DARY queues.
func New[E comparable](kind Kind, degree int) (IndexedMinPriorityQueue[E], error) {
	switch kind {
	case DARY:
		h, err := NewDaryHeap[E](degree)
		if err != nil {
			return nil, err
		}
		return h, nil
	case BUCKET:
		return NewBucketQueue[E](), nil
	case BINARY:
		return NewBinaryHeap[E](), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, string(kind))
}
