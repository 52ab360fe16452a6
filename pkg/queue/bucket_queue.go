package queue

import (
	"fmt"
	"math"
	"strings"
)

const (
	DEFAULT_BUCKET_CAPACITY = 256

	noPriority = math.MaxInt
)

// list node inside a bucket
type bucketNode[E comparable] struct {
	element  E
	priority int
	prev     *bucketNode[E]
	next     *bucketNode[E]
}

// BucketQueue implements Dial's algorithm: the bucket index is the priority and every
// bucket is a doubly linked list of the elements sharing it.
// Only valid for small non-negative priorities, which is the case for path lengths in unit graphs.
// Implements IndexedMinPriorityQueue.
type BucketQueue[E comparable] struct {
	buckets     []*bucketNode[E]
	nodes       map[E]*bucketNode[E]
	size        int
	minPriority int // smallest non-empty bucket, noPriority if the queue is empty
}

func NewBucketQueue[E comparable]() *BucketQueue[E] {
	return &BucketQueue[E]{
		buckets:     make([]*bucketNode[E], DEFAULT_BUCKET_CAPACITY),
		nodes:       make(map[E]*bucketNode[E]),
		minPriority: noPriority,
	}
}

func (q *BucketQueue[E]) Insert(element E, priority int) {
	if _, ok := q.nodes[element]; ok {
		return
	}
	checkPriority(priority)
	q.ensurePriority(priority)

	node := &bucketNode[E]{element: element, priority: priority}
	q.nodes[element] = node
	q.size++
	q.link(node)
}

func (q *BucketQueue[E]) DecreasePriority(element E, priority int) {
	node, ok := q.nodes[element]
	if !ok || node.priority <= priority {
		return
	}
	checkPriority(priority)
	q.unlink(node)
	node.priority = priority
	q.link(node)
}

func (q *BucketQueue[E]) ExtractMinimum() E {
	q.checkNotEmpty()

	node := q.buckets[q.minPriority]
	delete(q.nodes, node.element)
	q.size--

	if node.next != nil {
		node.next.prev = nil
		q.buckets[q.minPriority] = node.next
		node.next = nil
		return node.element
	}

	q.buckets[q.minPriority] = nil
	for i := q.minPriority + 1; i < len(q.buckets); i++ {
		if q.buckets[i] != nil {
			q.minPriority = i
			return node.element
		}
	}
	q.minPriority = noPriority
	return node.element
}

func (q *BucketQueue[E]) Min() E {
	q.checkNotEmpty()
	return q.buckets[q.minPriority].element
}

func (q *BucketQueue[E]) MinPriority() int {
	q.checkNotEmpty()
	return q.minPriority
}

func (q *BucketQueue[E]) Contains(element E) bool {
	_, ok := q.nodes[element]
	return ok
}

func (q *BucketQueue[E]) Size() int     { return q.size }
func (q *BucketQueue[E]) IsEmpty() bool { return q.size == 0 }

func (q *BucketQueue[E]) Clear() {
	if q.minPriority != noPriority {
		for i := q.minPriority; i < len(q.buckets); i++ {
			q.buckets[i] = nil
		}
	}
	clear(q.nodes)
	q.size = 0
	q.minPriority = noPriority
}

func (q *BucketQueue[E]) Spawn() IndexedMinPriorityQueue[E] {
	return NewBucketQueue[E]()
}

func (q *BucketQueue[E]) String() string {
	var sb strings.Builder
	if q.minPriority == noPriority {
		return ""
	}
	for i := q.minPriority; i < len(q.buckets); i++ {
		for node := q.buckets[i]; node != nil; node = node.next {
			sb.WriteString(fmt.Sprintf("%v: %v\n", node.priority, node.element))
		}
	}
	return sb.String()
}

// push the node at the head of its bucket
func (q *BucketQueue[E]) link(node *bucketNode[E]) {
	head := q.buckets[node.priority]
	node.prev = nil
	node.next = head
	if head != nil {
		head.prev = node
	}
	q.buckets[node.priority] = node

	if node.priority < q.minPriority {
		q.minPriority = node.priority
	}
}

// remove the node from its bucket. The minimum is not touched, callers relink to a lower bucket
func (q *BucketQueue[E]) unlink(node *bucketNode[E]) {
	if node.prev != nil {
		node.prev.next = node.next
	}
	if node.next != nil {
		node.next.prev = node.prev
	}
	if q.buckets[node.priority] == node {
		q.buckets[node.priority] = node.next
	}
	node.prev = nil
	node.next = nil
}

func (q *BucketQueue[E]) checkNotEmpty() {
	if q.size == 0 {
		panic(ErrEmptyQueue)
	}
}

func (q *BucketQueue[E]) ensurePriority(priority int) {
	if priority < len(q.buckets) {
		return
	}
	newLength := 2 * len(q.buckets)
	if newLength < priority+1 {
		newLength = priority + 1
	}
	buckets := make([]*bucketNode[E], newLength)
	copy(buckets, q.buckets)
	q.buckets = buckets
}

func checkPriority(priority int) {
	if priority < 0 {
		panic(fmt.Errorf("%w: got %d", ErrNegativePriority, priority))
	}
}
