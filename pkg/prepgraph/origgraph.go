package prepgraph

import "sort"

// origEdgeFlags packs a base edge id together with per-direction access
// flags into a single int32: bits [2:] hold the edge id, bit 1 is the
// forward-access flag, bit 0 is the backward-access flag. Only 30 bits are
// available for the edge id.
const maxOrigEdgeID = int32(1)<<30 - 1

func packOrigEdge(edge int32, fwd, bwd bool) int32 {
	if edge > maxOrigEdgeID {
		panic("maximum original edge id exceeded")
	}
	packed := edge << 1
	if fwd {
		packed++
	}
	packed <<= 1
	if bwd {
		packed++
	}
	return packed
}

func origEdgeIDOf(packed int32) int32 { return packed >> 2 }
func origEdgeHasFwd(packed int32) bool { return packed&0b10 != 0 }
func origEdgeHasBwd(packed int32) bool { return packed&0b01 != 0 }

// origGraph is a compressed-sparse-row view of the original (non-shortcut)
// edges, built once from origGraphBuilder when the graph transitions to
// Ready. It exists only for edge-based graphs, where contraction needs to
// walk a node's original incident edges (to look up turn costs) separately
// from its current shortcut-inclusive adjacency list.
type origGraph struct {
	firstEdgesByNode []int32
	adjNodes         []int32
	edgesAndFlags    []int32
}

type origGraphBuilder struct {
	fromNodes     []int32
	adjNodes      []int32
	edgesAndFlags []int32
	maxFrom       int32
}

func newOrigGraphBuilder() *origGraphBuilder {
	return &origGraphBuilder{maxFrom: -1}
}

// addEdge records both directed halves of edge (from,to): (from,to) with
// its own fwd/bwd flags, and (to,from) with the flags swapped, so a lookup
// rooted at either endpoint finds the edge.
func (b *origGraphBuilder) addEdge(from, to, edge int32, fwd, bwd bool) {
	b.fromNodes = append(b.fromNodes, from)
	b.adjNodes = append(b.adjNodes, to)
	b.edgesAndFlags = append(b.edgesAndFlags, packOrigEdge(edge, fwd, bwd))
	if from > b.maxFrom {
		b.maxFrom = from
	}

	b.fromNodes = append(b.fromNodes, to)
	b.adjNodes = append(b.adjNodes, from)
	b.edgesAndFlags = append(b.edgesAndFlags, packOrigEdge(edge, bwd, fwd))
	if to > b.maxFrom {
		b.maxFrom = to
	}
}

func (b *origGraphBuilder) build() *origGraph {
	order := make([]int32, len(b.fromNodes))
	for i := range order {
		order[i] = int32(i)
	}
	sort.SliceStable(order, func(i, j int) bool {
		return b.fromNodes[order[i]] < b.fromNodes[order[j]]
	})

	adjNodes := applySortOrder32(order, b.adjNodes)
	edgesAndFlags := applySortOrder32(order, b.edgesAndFlags)
	sortedFromNodes := applySortOrder32(order, b.fromNodes)

	return &origGraph{
		firstEdgesByNode: buildFirstEdgesByNode(sortedFromNodes, b.maxFrom),
		adjNodes:         adjNodes,
		edgesAndFlags:    edgesAndFlags,
	}
}

func applySortOrder32(order, arr []int32) []int32 {
	out := make([]int32, len(order))
	for i, idx := range order {
		out[i] = arr[idx]
	}
	return out
}

func buildFirstEdgesByNode(sortedFromNodes []int32, maxFrom int32) []int32 {
	numFroms := maxFrom + 1
	numEdges := int32(len(sortedFromNodes))
	firstEdgesByNode := make([]int32, numFroms+1)
	if numFroms == 0 {
		firstEdgesByNode[0] = numEdges
		return firstEdgesByNode
	}
	edgeIndex := int32(0)
	for from := int32(0); from < numFroms; from++ {
		for edgeIndex < numEdges && sortedFromNodes[edgeIndex] < from {
			edgeIndex++
		}
		firstEdgesByNode[from] = edgeIndex
	}
	firstEdgesByNode[numFroms] = numEdges
	return firstEdgesByNode
}

func (g *origGraph) createOutOrigEdgeExplorer() OrigEdgeExplorer {
	return &origEdgeExplorer{graph: g, reverse: false}
}

func (g *origGraph) createInOrigEdgeExplorer() OrigEdgeExplorer {
	return &origEdgeExplorer{graph: g, reverse: true}
}

// origEdgeExplorer walks the original (non-shortcut) edges incident to a
// node, filtered to the direction (forward or backward) it was built for.
type origEdgeExplorer struct {
	graph   *origGraph
	reverse bool
	node    int32
	index   int32
	endEdge int32
}

func (e *origEdgeExplorer) SetBaseNode(node int32) OrigEdgeIterator {
	e.node = node
	e.index = e.graph.firstEdgesByNode[node] - 1
	e.endEdge = e.graph.firstEdgesByNode[node+1]
	return e
}

func (e *origEdgeExplorer) Next() bool {
	for {
		e.index++
		if e.index >= e.endEdge {
			return false
		}
		if e.hasAccess() {
			return true
		}
	}
}

func (e *origEdgeExplorer) hasAccess() bool {
	packed := e.graph.edgesAndFlags[e.index]
	if e.reverse {
		return origEdgeHasBwd(packed)
	}
	return origEdgeHasFwd(packed)
}

func (e *origEdgeExplorer) BaseNode() int32 { return e.node }
func (e *origEdgeExplorer) AdjNode() int32  { return e.graph.adjNodes[e.index] }

func (e *origEdgeExplorer) OrigEdgeKeyFirst() int32 {
	edge := origEdgeIDOf(e.graph.edgesAndFlags[e.index])
	return createEdgeKey(e.node, e.AdjNode(), edge)
}

func (e *origEdgeExplorer) OrigEdgeKeyLast() int32 { return e.OrigEdgeKeyFirst() }

// createEdgeKey follows the same (edge id, direction) packing convention
// used by baseEdge's AB/BA orig-edge-key accessors, so a key computed from
// either side agrees on which physical traversal direction it names.
func createEdgeKey(from, to, edge int32) int32 {
	key := edge << 1
	if from > to {
		key++
	}
	return key
}
