package datastructure

import "errors"

var ErrPriorityQueueEmpty = errors.New("priority queue is empty")

// PriorityQueueNode is a generic (rank, item) pair for MinHeap, generalizing
// PriorityQueueNodeRtree2 to any item type.
type PriorityQueueNode[T any] struct {
	Rank float64
	Item T
}

// MinHeap is a binary array min-heap ordered by Rank, generalizing
// rtreeMinHeap (pq_rtree.go) with Go generics.
type MinHeap[T any] struct {
	heap []PriorityQueueNode[T]
}

func NewMinHeap[T any]() *MinHeap[T] {
	return &MinHeap[T]{
		heap: make([]PriorityQueueNode[T], 0),
	}
}

func (h *MinHeap[T]) isEmpty() bool {
	return len(h.heap) == 0
}

func (h *MinHeap[T]) Size() int {
	return len(h.heap)
}

func (h *MinHeap[T]) GetMin() (PriorityQueueNode[T], error) {
	if h.isEmpty() {
		var zero PriorityQueueNode[T]
		return zero, ErrPriorityQueueEmpty
	}
	return h.heap[0], nil
}

func (h *MinHeap[T]) Insert(key PriorityQueueNode[T]) {
	h.heap = append(h.heap, key)
	index := h.Size() - 1

	parent := (index - 1) / 2
	for index != 0 && h.heap[parent].Rank > h.heap[index].Rank {
		h.heap[parent], h.heap[index] = h.heap[index], h.heap[parent]
		index = parent
		parent = (index - 1) / 2
	}
}

func (h *MinHeap[T]) ExtractMin() (PriorityQueueNode[T], error) {
	if h.isEmpty() {
		var zero PriorityQueueNode[T]
		return zero, ErrPriorityQueueEmpty
	}
	root := h.heap[0]
	h.heap[0] = h.heap[h.Size()-1]
	h.heap = h.heap[:h.Size()-1]
	index := 0

	for {
		smallest := index
		left := index*2 + 1
		right := index*2 + 2
		if left < len(h.heap) && h.heap[left].Rank <= h.heap[smallest].Rank {
			smallest = left
		}
		if right < len(h.heap) && h.heap[right].Rank <= h.heap[smallest].Rank {
			smallest = right
		}
		if smallest == index {
			break
		}
		h.heap[smallest], h.heap[index] = h.heap[index], h.heap[smallest]
		index = smallest
	}

	return root, nil
}
