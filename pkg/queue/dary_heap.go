package queue

import (
	"fmt"
	"strings"
)

const (
	DEFAULT_DEGREE   = 2
	DEFAULT_CAPACITY = 1024
	MINIMUM_CAPACITY = 128

	noChild = -1
)

// heap record of a stored element
type daryNode[E comparable] struct {
	element  E
	index    int // position in the storage slice
	priority int
}

// DaryHeap is an array backed min heap where every node has up to degree children.
// Implements IndexedMinPriorityQueue.
type DaryHeap[E comparable] struct {
	degree   int
	capacity int // initial capacity, reused by Spawn
	storage  []*daryNode[E]
	size     int
	nodes    map[E]*daryNode[E] // element -> heap record, keeps DecreasePriority logarithmic
}

// Create a new heap with the given degree and the default capacity
func NewDaryHeap[E comparable](degree int) (*DaryHeap[E], error) {
	return NewDaryHeapWithCapacity[E](degree, DEFAULT_CAPACITY)
}

// Create a new heap with the given degree and initial capacity.
// The capacity is raised to MINIMUM_CAPACITY if it is smaller.
func NewDaryHeapWithCapacity[E comparable](degree, capacity int) (*DaryHeap[E], error) {
	if degree < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDegree, degree)
	}
	if capacity < MINIMUM_CAPACITY {
		capacity = MINIMUM_CAPACITY
	}
	return &DaryHeap[E]{
		degree:   degree,
		capacity: capacity,
		storage:  make([]*daryNode[E], capacity),
		nodes:    make(map[E]*daryNode[E], capacity),
	}, nil
}

// MustNewDaryHeap is like NewDaryHeap but panics on an invalid degree
func MustNewDaryHeap[E comparable](degree int) *DaryHeap[E] {
	h, err := NewDaryHeap[E](degree)
	if err != nil {
		panic(err)
	}
	return h
}

func (h *DaryHeap[E]) Degree() int { return h.degree }

func (h *DaryHeap[E]) Insert(element E, priority int) {
	if _, ok := h.nodes[element]; ok {
		return
	}
	h.ensureCapacity(h.size + 1)

	node := &daryNode[E]{element: element, index: h.size, priority: priority}
	h.storage[h.size] = node
	h.nodes[element] = node
	h.size++
	h.siftUp(node.index)
}

func (h *DaryHeap[E]) DecreasePriority(element E, priority int) {
	node, ok := h.nodes[element]
	if !ok || node.priority <= priority {
		return
	}
	node.priority = priority
	h.siftUp(node.index)
}

func (h *DaryHeap[E]) ExtractMinimum() E {
	h.checkNotEmpty()
	top := h.storage[0]
	delete(h.nodes, top.element)

	h.size--
	last := h.storage[h.size]
	h.storage[h.size] = nil

	if h.size != 0 {
		h.storage[0] = last
		last.index = 0
		h.siftDown(0)
	}
	top.index = -1 // for safety
	return top.element
}

func (h *DaryHeap[E]) Min() E {
	h.checkNotEmpty()
	return h.storage[0].element
}

func (h *DaryHeap[E]) MinPriority() int {
	h.checkNotEmpty()
	return h.storage[0].priority
}

func (h *DaryHeap[E]) Contains(element E) bool {
	_, ok := h.nodes[element]
	return ok
}

func (h *DaryHeap[E]) Size() int     { return h.size }
func (h *DaryHeap[E]) IsEmpty() bool { return h.size == 0 }

func (h *DaryHeap[E]) Clear() {
	for i := 0; i < h.size; i++ {
		h.storage[i] = nil
	}
	h.size = 0
	clear(h.nodes)
}

// Spawn returns an empty heap with the same degree and initial capacity
func (h *DaryHeap[E]) Spawn() IndexedMinPriorityQueue[E] {
	spawned, _ := NewDaryHeapWithCapacity[E](h.degree, h.capacity)
	return spawned
}

func (h *DaryHeap[E]) String() string {
	var sb strings.Builder
	for i := 0; i < h.size; i++ {
		node := h.storage[i]
		sb.WriteString(fmt.Sprintf("%v: %v, %v\n", node.index, node.element, node.priority))
	}
	return sb.String()
}

func (h *DaryHeap[E]) checkNotEmpty() {
	if h.size == 0 {
		panic(ErrEmptyQueue)
	}
}

// double the storage if it cannot hold requested elements
func (h *DaryHeap[E]) ensureCapacity(requested int) {
	if len(h.storage) >= requested {
		return
	}
	newCapacity := 2 * len(h.storage)
	if newCapacity < requested {
		newCapacity = requested
	}
	storage := make([]*daryNode[E], newCapacity)
	copy(storage, h.storage[:h.size])
	h.storage = storage
}

func (h *DaryHeap[E]) parentIndex(index int) int {
	return (index - 1) / h.degree
}

func (h *DaryHeap[E]) siftUp(index int) {
	target := h.storage[index]

	for index != 0 {
		parentIndex := h.parentIndex(index)
		parent := h.storage[parentIndex]
		if parent.priority <= target.priority {
			break
		}
		h.storage[index] = parent
		parent.index = index
		index = parentIndex
	}

	h.storage[index] = target
	target.index = index
}

func (h *DaryHeap[E]) siftDown(index int) {
	target := h.storage[index]

	for {
		minChildPriority := target.priority
		minChildIndex := noChild

		firstChild := h.degree*index + 1
		for i := firstChild; i < firstChild+h.degree && i < h.size; i++ {
			if priority := h.storage[i].priority; priority < minChildPriority {
				minChildPriority = priority
				minChildIndex = i
			}
		}

		if minChildIndex == noChild {
			h.storage[index] = target
			target.index = index
			return
		}

		h.storage[index] = h.storage[minChildIndex]
		h.storage[index].index = index
		index = minChildIndex
	}
}
