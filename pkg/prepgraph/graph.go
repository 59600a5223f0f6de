// Package prepgraph implements the working graph used while building a
// contraction hierarchy: a mutable adjacency structure that starts out
// holding only the original road-network edges, accumulates shortcut edges
// as nodes are contracted, and lets a fully contracted node's edges be
// dropped from the rest of the graph.
package prepgraph

// Phase tracks where a Graph is in its Building -> Ready -> Closed
// lifecycle. Most operations are legal in exactly one phase; calling one
// out of phase panics rather than silently doing the wrong thing, since
// there is never a legitimate caller for that mistake.
type Phase int

const (
	PhaseBuilding Phase = iota
	PhaseReady
	PhaseClosed
)

// Graph is the preparation-time adjacency structure. It is not safe for
// concurrent use: exactly one goroutine drives contraction against a given
// Graph from AddEdge through Close.
type Graph struct {
	nodes     int32
	edges     int32
	edgeBased bool

	turnCostFunction TurnCostFunction

	prepareEdges *array2D[edgeRecord]

	origGraph        *origGraph
	origGraphBuilder *origGraphBuilder

	nextShortcutID int32
	phase          Phase
}

// NewNodeBased builds a Graph for node-based contraction, where turns are
// never penalized. nodes is the fixed node count; edges is the number of
// original (non-shortcut) edges that will be added via AddEdge, with ids
// 0..edges-1; shortcut ids start at edges. AddEdge does not check an edge
// id against this count.
func NewNodeBased(nodes, edges int32) *Graph {
	return newGraph(nodes, edges, false, NoTurnCosts)
}

// NewEdgeBased builds a Graph for edge-based contraction, where
// turnCostFunction penalizes transitions between edges at a shared node.
func NewEdgeBased(nodes, edges int32, turnCostFunction TurnCostFunction) *Graph {
	return newGraph(nodes, edges, true, turnCostFunction)
}

func newGraph(nodes, edges int32, edgeBased bool, turnCostFunction TurnCostFunction) *Graph {
	g := &Graph{
		nodes:            nodes,
		edges:            edges,
		edgeBased:        edgeBased,
		turnCostFunction: turnCostFunction,
		prepareEdges:     newArray2D[edgeRecord](nodes, 2),
		nextShortcutID:   edges,
	}
	if edgeBased {
		g.origGraphBuilder = newOrigGraphBuilder()
	}
	return g
}

func (g *Graph) Nodes() int32         { return g.nodes }
func (g *Graph) OriginalEdges() int32 { return g.edges }
func (g *Graph) EdgeBased() bool      { return g.edgeBased }

// Degree returns the number of edge records (base and shortcut) currently
// stored at node, i.e. its adjacency list length.
func (g *Graph) Degree(node int32) int32 {
	return g.prepareEdges.size(node)
}

// AddEdge adds a base edge between from and to with the given per-direction
// weights. A non-finite weight means that direction is inaccessible; if
// both directions are inaccessible the edge is dropped entirely (it can
// never appear on any path). Must be called before PrepareForContraction.
func (g *Graph) AddEdge(from, to, edge int32, weightFwd, weightBwd float64) {
	g.checkBuilding()
	fwd := isFiniteWeight(weightFwd)
	bwd := isFiniteWeight(weightBwd)
	if !fwd && !bwd {
		return
	}
	be := newBaseEdge(edge, from, to, weightFwd, weightBwd)
	g.prepareEdges.add(from, be)
	if from != to {
		g.prepareEdges.add(to, be)
	}
	if g.edgeBased {
		g.origGraphBuilder.addEdge(from, to, edge, fwd, bwd)
	}
}

// AddShortcut adds a shortcut edge summarizing a path through skipped1 (and,
// for a path of length > 2, skipped2), returning the new shortcut's id.
// Must be called after PrepareForContraction. origEdgeKeyFirst/Last are
// only meaningful for edge-based graphs and are ignored for node-based
// ones.
func (g *Graph) AddShortcut(from, to, origEdgeKeyFirst, origEdgeKeyLast, skipped1, skipped2 int32, weight float64, origEdgeCount int32) int32 {
	g.checkReady()
	var rec edgeRecord
	if g.edgeBased {
		rec = newEdgeShortcut(g.nextShortcutID, from, to, origEdgeKeyFirst, origEdgeKeyLast, weight, skipped1, skipped2, origEdgeCount)
	} else {
		rec = newNodeShortcut(g.nextShortcutID, from, to, weight, skipped1, skipped2, origEdgeCount)
	}
	g.prepareEdges.add(from, rec)
	if from != to {
		g.prepareEdges.add(to, rec)
	}
	id := g.nextShortcutID
	g.nextShortcutID++
	return id
}

// PrepareForContraction freezes the set of original edges and builds the
// original-edge CSR side structure (for edge-based graphs). No further
// AddEdge calls are allowed afterward.
func (g *Graph) PrepareForContraction() {
	g.checkBuilding()
	if g.edgeBased {
		g.origGraph = g.origGraphBuilder.build()
		g.origGraphBuilder = nil
	}
	g.phase = PhaseReady
}

func (g *Graph) CreateOutEdgeExplorer() EdgeExplorer {
	g.checkReady()
	return &edgeExplorerImpl{prepareEdges: g.prepareEdges, reverse: false}
}

func (g *Graph) CreateInEdgeExplorer() EdgeExplorer {
	g.checkReady()
	return &edgeExplorerImpl{prepareEdges: g.prepareEdges, reverse: true}
}

func (g *Graph) CreateOutOrigEdgeExplorer() OrigEdgeExplorer {
	g.checkReady()
	if !g.edgeBased {
		panic("orig out explorer is not available for a node-based graph")
	}
	return g.origGraph.createOutOrigEdgeExplorer()
}

func (g *Graph) CreateInOrigEdgeExplorer() OrigEdgeExplorer {
	g.checkReady()
	if !g.edgeBased {
		panic("orig in explorer is not available for a node-based graph")
	}
	return g.origGraph.createInOrigEdgeExplorer()
}

func (g *Graph) TurnWeight(inEdge, viaNode, outEdge int32) float64 {
	g.checkReady()
	return g.turnCostFunction(inEdge, viaNode, outEdge)
}

// Disconnect removes all edges incident to node from every one of its
// neighbors' adjacency lists (but not node's own list, which is cleared
// wholesale) and returns node's distinct former neighbors in a
// deterministic order. Called once a node has been fully contracted, since
// its edges are no longer relevant to further contraction.
func (g *Graph) Disconnect(node int32) []int32 {
	g.checkReady()
	seen := make(map[int32]struct{}, g.Degree(node))
	neighbors := make([]int32, 0, g.Degree(node))
	for i := int32(0); i < g.prepareEdges.size(node); i++ {
		edge := g.prepareEdges.get(node, i)
		adjNode := edge.nodeB()
		if adjNode == node {
			adjNode = edge.nodeA()
		}
		if adjNode == node {
			continue // loop edge, nothing to disconnect on the other side
		}
		g.prepareEdges.remove(adjNode, edge)
		if _, ok := seen[adjNode]; !ok {
			seen[adjNode] = struct{}{}
			neighbors = append(neighbors, adjNode)
		}
	}
	g.prepareEdges.clear(node)
	return neighbors
}

// Close releases the graph's storage. Must be called after
// PrepareForContraction; no further operations are allowed afterward.
func (g *Graph) Close() {
	g.checkReady()
	g.prepareEdges = nil
	if g.edgeBased {
		g.origGraph = nil
	}
	g.phase = PhaseClosed
}

func (g *Graph) checkReady() {
	if g.phase != PhaseReady {
		panic("you need to call PrepareForContraction() before calling this method")
	}
}

func (g *Graph) checkBuilding() {
	if g.phase != PhaseBuilding {
		panic("this method cannot be called after PrepareForContraction()")
	}
}
