package queue

import (
	"container/heap"
	"fmt"
	"strings"
)

type Item[E comparable] struct {
	Element  E   // the stored element
	Priority int // priority of the element
	Index    int // index of the item in the heap
}

// Items implements heap.Interface and holds the heap items
type Items[E comparable] []*Item[E]

func (h Items[E]) Len() int { return len(h) }

func (h Items[E]) Less(i, j int) bool {
	// MinHeap implementation
	return h[i].Priority < h[j].Priority
}

func (h Items[E]) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].Index, h[j].Index = i, j
}

func (h *Items[E]) Push(item any) {
	n := len(*h)
	pqItem := item.(*Item[E])
	pqItem.Index = n
	*h = append(*h, pqItem)
}

func (h *Items[E]) Pop() any {
	old := *h
	n := len(old)
	pqItem := old[n-1]
	old[n-1] = nil
	pqItem.Index = -1 // for safety
	*h = old[0 : n-1]
	return pqItem
}

// BinaryHeap is an IndexedMinPriorityQueue on top of container/heap
type BinaryHeap[E comparable] struct {
	items Items[E]
	index map[E]*Item[E]
}

func NewBinaryHeap[E comparable]() *BinaryHeap[E] {
	h := &BinaryHeap[E]{items: make(Items[E], 0), index: make(map[E]*Item[E])}
	heap.Init(&h.items)
	return h
}

func (h *BinaryHeap[E]) Insert(element E, priority int) {
	if _, ok := h.index[element]; ok {
		return
	}
	item := &Item[E]{Element: element, Priority: priority, Index: -1}
	h.index[element] = item
	heap.Push(&h.items, item)
}

func (h *BinaryHeap[E]) DecreasePriority(element E, priority int) {
	item, ok := h.index[element]
	if !ok || item.Priority <= priority {
		return
	}
	item.Priority = priority
	heap.Fix(&h.items, item.Index)
}

func (h *BinaryHeap[E]) ExtractMinimum() E {
	h.checkNotEmpty()
	item := heap.Pop(&h.items).(*Item[E])
	delete(h.index, item.Element)
	return item.Element
}

func (h *BinaryHeap[E]) Min() E {
	h.checkNotEmpty()
	return h.items[0].Element
}

func (h *BinaryHeap[E]) MinPriority() int {
	h.checkNotEmpty()
	return h.items[0].Priority
}

func (h *BinaryHeap[E]) Contains(element E) bool {
	_, ok := h.index[element]
	return ok
}

func (h *BinaryHeap[E]) Size() int     { return h.items.Len() }
func (h *BinaryHeap[E]) IsEmpty() bool { return h.items.Len() == 0 }

func (h *BinaryHeap[E]) Clear() {
	for i := range h.items {
		h.items[i] = nil
	}
	h.items = h.items[:0]
	clear(h.index)
}

func (h *BinaryHeap[E]) Spawn() IndexedMinPriorityQueue[E] { return NewBinaryHeap[E]() }

func (h *BinaryHeap[E]) String() string {
	var sb strings.Builder
	for _, item := range h.items {
		sb.WriteString(fmt.Sprintf("%v: %v, %v\n", item.Index, item.Element, item.Priority))
	}
	return sb.String()
}

func (h *BinaryHeap[E]) checkNotEmpty() {
	if h.items.Len() == 0 {
		panic(ErrEmptyQueue)
	}
}
