package prepgraph

import "math"

// NoEdge marks an invalid/absent edge id, mirroring EdgeIterator.Edge.NO_EDGE.
const NoEdge int32 = -1

// edgeRecord is the capability interface shared by base edges and both
// shortcut variants stored in a Graph's adjacency lists. Base edges are
// immutable; shortcuts expose mutable weight/skip/orig-edge-count fields
// that contraction updates in place.
type edgeRecord interface {
	isShortcut() bool
	prepareEdgeID() int32
	nodeA() int32
	nodeB() int32
	weightAB() float64
	weightBA() float64
	origEdgeKeyFirstAB() int32
	origEdgeKeyFirstBA() int32
	origEdgeKeyLastAB() int32
	origEdgeKeyLastBA() int32
	skipped1() int32
	skipped2() int32
	origEdgeCount() int32
	setSkipped1(int32)
	setSkipped2(int32)
	setWeight(float64)
	setOrigEdgeCount(int32)
}

// baseEdge is a non-shortcut edge added directly via Graph.AddEdge. Its
// weights are narrowed to float32 on construction (spec-level tradeoff:
// base edge weights don't grow through repeated contraction updates the
// way shortcut weights do, so the precision loss is bounded and one-time).
type baseEdge struct {
	edge        int32
	a, b        int32
	weightABVal float32
	weightBAVal float32
}

// newBaseEdge narrows weightAB/weightBA to float32. Either may legitimately
// be +Inf, meaning that direction is inaccessible; callers filter out the
// case where both directions are infinite before ever reaching here. It
// panics if a finite weight does not stay finite after narrowing.
func newBaseEdge(edge, a, b int32, weightAB, weightBA float64) *baseEdge {
	e := &baseEdge{
		edge:        edge,
		a:           a,
		b:           b,
		weightABVal: float32(weightAB),
		weightBAVal: float32(weightBA),
	}
	if (isFiniteWeight(weightAB) && !isFiniteWeight(float64(e.weightABVal))) ||
		(isFiniteWeight(weightBA) && !isFiniteWeight(float64(e.weightBAVal))) {
		panic("base edge weight is not finite after narrowing to float32")
	}
	return e
}

func (e *baseEdge) isShortcut() bool     { return false }
func (e *baseEdge) prepareEdgeID() int32 { return e.edge }
func (e *baseEdge) nodeA() int32         { return e.a }
func (e *baseEdge) nodeB() int32         { return e.b }
func (e *baseEdge) weightAB() float64    { return float64(e.weightABVal) }
func (e *baseEdge) weightBA() float64    { return float64(e.weightBAVal) }

func (e *baseEdge) origEdgeKeyFirstAB() int32 {
	key := e.edge << 1
	if e.a > e.b {
		key++
	}
	return key
}

func (e *baseEdge) origEdgeKeyFirstBA() int32 {
	key := e.edge << 1
	if e.b > e.a {
		key++
	}
	return key
}

func (e *baseEdge) origEdgeKeyLastAB() int32 { return e.origEdgeKeyFirstAB() }
func (e *baseEdge) origEdgeKeyLastBA() int32 { return e.origEdgeKeyFirstBA() }

func (e *baseEdge) skipped1() int32 { panic("skipped edges are not defined for a base edge") }
func (e *baseEdge) skipped2() int32 { panic("skipped edges are not defined for a base edge") }
func (e *baseEdge) origEdgeCount() int32 { return 1 }

func (e *baseEdge) setSkipped1(int32)      { panic("cannot modify a base edge") }
func (e *baseEdge) setSkipped2(int32)      { panic("cannot modify a base edge") }
func (e *baseEdge) setWeight(float64)      { panic("cannot modify a base edge") }
func (e *baseEdge) setOrigEdgeCount(int32) { panic("cannot modify a base edge") }

// nodeShortcut is a node-based contraction shortcut: it stands in for a
// path through a contracted node and its weight/skip/orig-edge-count are
// updated as contraction refines it.
type nodeShortcut struct {
	edge                    int32
	from, to                int32
	weight                  float64
	skip1, skip2            int32
	origCount               int32
}

func newNodeShortcut(edge, from, to int32, weight float64, skip1, skip2, origCount int32) *nodeShortcut {
	if !isFiniteWeight(weight) {
		panic("shortcut weight must be finite")
	}
	return &nodeShortcut{edge: edge, from: from, to: to, weight: weight, skip1: skip1, skip2: skip2, origCount: origCount}
}

func (e *nodeShortcut) isShortcut() bool     { return true }
func (e *nodeShortcut) prepareEdgeID() int32 { return e.edge }
func (e *nodeShortcut) nodeA() int32         { return e.from }
func (e *nodeShortcut) nodeB() int32         { return e.to }
func (e *nodeShortcut) weightAB() float64    { return e.weight }
func (e *nodeShortcut) weightBA() float64    { return e.weight }

func (e *nodeShortcut) origEdgeKeyFirstAB() int32 {
	panic("orig edge keys are not defined for node-based shortcuts")
}
func (e *nodeShortcut) origEdgeKeyFirstBA() int32 {
	panic("orig edge keys are not defined for node-based shortcuts")
}
func (e *nodeShortcut) origEdgeKeyLastAB() int32 {
	panic("orig edge keys are not defined for node-based shortcuts")
}
func (e *nodeShortcut) origEdgeKeyLastBA() int32 {
	panic("orig edge keys are not defined for node-based shortcuts")
}

func (e *nodeShortcut) skipped1() int32       { return e.skip1 }
func (e *nodeShortcut) skipped2() int32       { return e.skip2 }
func (e *nodeShortcut) origEdgeCount() int32  { return e.origCount }
func (e *nodeShortcut) setSkipped1(v int32)   { e.skip1 = v }
func (e *nodeShortcut) setSkipped2(v int32)   { e.skip2 = v }
func (e *nodeShortcut) setWeight(w float64) {
	if !isFiniteWeight(w) {
		panic("shortcut weight must be finite")
	}
	e.weight = w
}
func (e *nodeShortcut) setOrigEdgeCount(v int32) { e.origCount = v }

// edgeShortcut is an edge-based contraction shortcut: on top of
// nodeShortcut's mutable fields it fixes the first/last original edge keys
// it represents, needed to look up turn costs at either end of the path it
// summarizes.
type edgeShortcut struct {
	nodeShortcut
	origEdgeKeyFirst int32
	origEdgeKeyLast  int32
}

func newEdgeShortcut(edge, from, to, origEdgeKeyFirst, origEdgeKeyLast int32, weight float64, skip1, skip2, origCount int32) *edgeShortcut {
	if !isFiniteWeight(weight) {
		panic("shortcut weight must be finite")
	}
	return &edgeShortcut{
		nodeShortcut:     nodeShortcut{edge: edge, from: from, to: to, weight: weight, skip1: skip1, skip2: skip2, origCount: origCount},
		origEdgeKeyFirst: origEdgeKeyFirst,
		origEdgeKeyLast:  origEdgeKeyLast,
	}
}

func (e *edgeShortcut) origEdgeKeyFirstAB() int32 { return e.origEdgeKeyFirst }
func (e *edgeShortcut) origEdgeKeyFirstBA() int32 { return e.origEdgeKeyFirst }
func (e *edgeShortcut) origEdgeKeyLastAB() int32  { return e.origEdgeKeyLast }
func (e *edgeShortcut) origEdgeKeyLastBA() int32  { return e.origEdgeKeyLast }

func isFiniteWeight(w float64) bool {
	return !math.IsInf(w, 0) && !math.IsNaN(w)
}
