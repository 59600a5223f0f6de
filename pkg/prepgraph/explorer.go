package prepgraph

// EdgeExplorer is a reusable cursor factory: SetBaseNode rewinds it to walk
// the (shortcut-inclusive) adjacency list of a single node. Callers reuse
// one explorer across many nodes instead of allocating a fresh iterator
// each time, matching the teacher's stateful-cursor style used throughout
// the pack (e.g. datastructure explorers, kv batch cursors).
type EdgeExplorer interface {
	SetBaseNode(node int32) EdgeIterator
}

// EdgeIterator walks the edges (base and shortcut) incident to the node an
// EdgeExplorer was last rewound to, projecting each record's fields onto
// whichever of its two directions is relevant for that node.
type EdgeIterator interface {
	Next() bool
	BaseNode() int32
	AdjNode() int32
	PrepareEdge() int32
	IsShortcut() bool
	OrigEdgeKeyFirst() int32
	OrigEdgeKeyLast() int32
	Skipped1() int32
	Skipped2() int32
	Weight() float64
	OrigEdgeCount() int32
	SetSkippedEdges(skipped1, skipped2 int32)
	SetWeight(weight float64)
	SetOrigEdgeCount(count int32)
}

// OrigEdgeExplorer is EdgeExplorer's counterpart over the original
// (non-shortcut) edges only, available for edge-based graphs.
type OrigEdgeExplorer interface {
	SetBaseNode(node int32) OrigEdgeIterator
}

type OrigEdgeIterator interface {
	Next() bool
	BaseNode() int32
	AdjNode() int32
	OrigEdgeKeyFirst() int32
	OrigEdgeKeyLast() int32
}

// edgeExplorerImpl is the EdgeExplorer/EdgeIterator over a Graph's
// prepareEdges store, shared by the out- and in-edge explorers (reverse
// picks which).
type edgeExplorerImpl struct {
	prepareEdges *array2D[edgeRecord]
	reverse      bool
	node         int32
	index        int32
	curr         edgeRecord
}

func (e *edgeExplorerImpl) SetBaseNode(node int32) EdgeIterator {
	e.node = node
	e.index = -1
	return e
}

func (e *edgeExplorerImpl) Next() bool {
	for {
		e.index++
		if e.index >= e.prepareEdges.size(e.node) {
			e.curr = nil
			return false
		}
		e.curr = e.prepareEdges.get(e.node, e.index)
		if !e.curr.isShortcut() {
			return true
		}
		if (!e.reverse && e.nodeAIsBase()) || (e.reverse && e.curr.nodeB() == e.node) {
			return true
		}
	}
}

func (e *edgeExplorerImpl) nodeAIsBase() bool { return e.curr.nodeA() == e.node }

func (e *edgeExplorerImpl) BaseNode() int32 { return e.node }

func (e *edgeExplorerImpl) AdjNode() int32 {
	if e.nodeAIsBase() {
		return e.curr.nodeB()
	}
	return e.curr.nodeA()
}

func (e *edgeExplorerImpl) PrepareEdge() int32 { return e.curr.prepareEdgeID() }
func (e *edgeExplorerImpl) IsShortcut() bool   { return e.curr.isShortcut() }

func (e *edgeExplorerImpl) OrigEdgeKeyFirst() int32 {
	if e.nodeAIsBase() {
		return e.curr.origEdgeKeyFirstAB()
	}
	return e.curr.origEdgeKeyFirstBA()
}

func (e *edgeExplorerImpl) OrigEdgeKeyLast() int32 {
	if e.nodeAIsBase() {
		return e.curr.origEdgeKeyLastAB()
	}
	return e.curr.origEdgeKeyLastBA()
}

func (e *edgeExplorerImpl) Skipped1() int32 { return e.curr.skipped1() }
func (e *edgeExplorerImpl) Skipped2() int32 { return e.curr.skipped2() }

func (e *edgeExplorerImpl) Weight() float64 {
	switch {
	case !e.reverse && e.nodeAIsBase():
		return e.curr.weightAB()
	case !e.reverse:
		return e.curr.weightBA()
	case e.nodeAIsBase():
		return e.curr.weightBA()
	default:
		return e.curr.weightAB()
	}
}

func (e *edgeExplorerImpl) OrigEdgeCount() int32 { return e.curr.origEdgeCount() }

func (e *edgeExplorerImpl) SetSkippedEdges(skipped1, skipped2 int32) {
	e.curr.setSkipped1(skipped1)
	e.curr.setSkipped2(skipped2)
}

func (e *edgeExplorerImpl) SetWeight(weight float64) {
	if !isFiniteWeight(weight) {
		panic("edge weight must be finite")
	}
	e.curr.setWeight(weight)
}

func (e *edgeExplorerImpl) SetOrigEdgeCount(count int32) { e.curr.setOrigEdgeCount(count) }
