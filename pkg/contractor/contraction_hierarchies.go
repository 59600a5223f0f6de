package contractor

import (
	"log"
	"runtime"
	"time"

	"chprep/pkg/datastructure"
	"chprep/pkg/prepgraph"
	"chprep/pkg/server"
)

// Metadata tracks running statistics about the contraction, used both to
// scale the witness-search node budget and for progress logging.
type Metadata struct {
	MeanDegree     float64
	ShortcutsCount int64
}

// Contractor drives contraction of a prepgraph.Graph: it repeatedly picks
// the least-important remaining node, finds and inserts the shortcuts that
// preserve shortest paths through it, and disconnects it from the rest of
// the graph.
type Contractor struct {
	Graph    *prepgraph.Graph
	Metadata Metadata

	// OrderPos[v] is the position at which node v was contracted, filled in
	// as Contract() runs; useful to a later query-time up/down-graph split.
	OrderPos []int32

	scc *stronglyConnectedComponents
}

var maxPollFactorHeuristic = 5
var maxPollFactorContraction = 200

func NewContractor(g *prepgraph.Graph) *Contractor {
	return &Contractor{
		Graph:    g,
		OrderPos: make([]int32, g.Nodes()),
	}
}

// Contract runs contraction to completion over every node of the
// underlying graph, using a priority-queue-driven lazy-update loop: a
// polled node's priority is recomputed against the current graph state,
// and if it grew past the rank the node was queued with, the node is
// reinserted with the fresh value instead of being contracted immediately.
func (c *Contractor) Contract() error {
	st := time.Now()
	nq := datastructure.NewMinHeap[int32]()

	c.scc = computeStronglyConnectedComponents(c.Graph)
	componentCountGauge.Set(float64(len(c.scc.componentSize)))
	largestComponentSizeGauge.Set(float64(c.scc.largestComponentSize()))
	if largest := c.scc.largestComponentSize(); c.Graph.Nodes() > 0 && largest < c.Graph.Nodes() {
		log.Printf("largest strongly connected component covers %d/%d nodes across %d components",
			largest, c.Graph.Nodes(), len(c.scc.componentSize))
	}

	c.Metadata.MeanDegree = c.averageDegree()
	c.updatePrioritiesOfRemainingNodes(nq)

	log.Printf("total nodes: %d", c.Graph.Nodes())

	contracted := make([]bool, c.Graph.Nodes())
	orderNum := int32(0)

	for nq.Size() != 0 {
		smallestItem, err := nq.GetMin()
		if err != nil {
			return server.WrapErrorf(err, server.ErrInternalServerError, "contraction priority queue")
		}

		polledItem, err := nq.ExtractMin()
		if err != nil {
			return server.WrapErrorf(err, server.ErrInternalServerError, "contraction priority queue")
		}

		priority := c.calculatePriority(polledItem.Item, contracted)
		if nq.Size() > 0 && priority > smallestItem.Rank {
			// this node's importance grew since it was queued (a neighbor
			// was contracted in the meantime); requeue with the fresh value
			// instead of contracting it now.
			nq.Insert(datastructure.PriorityQueueNode[int32]{Item: polledItem.Item, Rank: priority})
			continue
		}

		c.OrderPos[polledItem.Item] = orderNum
		shortcutsBefore := c.Metadata.ShortcutsCount
		c.contractNode(polledItem.Item, contracted)
		contracted[polledItem.Item] = true
		orderNum++
		nodesContractedTotal.Inc()
		shortcutsAddedTotal.Add(float64(c.Metadata.ShortcutsCount - shortcutsBefore))

		if (orderNum+1)%10000 == 0 {
			log.Printf("contracting node: %d...", orderNum+1)
		}
	}

	log.Printf("total shortcuts: %d", c.Metadata.ShortcutsCount)
	runtime.GC()
	contractionDurationSeconds.Observe(time.Since(st).Seconds())
	log.Printf("time for contraction hierarchies preparation: %v min", time.Since(st).Minutes())
	return nil
}

// Nodes and OriginalEdges expose the underlying graph's size, so a status
// endpoint can report on a Contractor without reaching into its Graph.
func (c *Contractor) Nodes() int32         { return c.Graph.Nodes() }
func (c *Contractor) OriginalEdges() int32 { return c.Graph.OriginalEdges() }

// ComponentCount reports how many strongly connected components Contract
// found in the original graph. Only meaningful after Contract has run.
func (c *Contractor) ComponentCount() int {
	if c.scc == nil {
		return 0
	}
	return len(c.scc.componentSize)
}

// LargestComponentSize reports the node count of the largest strongly
// connected component Contract found. Only meaningful after Contract has
// run.
func (c *Contractor) LargestComponentSize() int32 {
	if c.scc == nil {
		return 0
	}
	return c.scc.largestComponentSize()
}

func (c *Contractor) averageDegree() float64 {
	if c.Graph.Nodes() == 0 {
		return 0
	}
	var total int64
	for nodeID := int32(0); nodeID < c.Graph.Nodes(); nodeID++ {
		total += int64(c.Graph.Degree(nodeID))
	}
	return float64(total) / float64(c.Graph.Nodes())
}

func (c *Contractor) contractNode(nodeID int32, contracted []bool) {
	degree, _, _ := c.findAndHandleShortcuts(nodeID, c.addOrUpdateShortcut,
		int(c.Metadata.MeanDegree*float64(maxPollFactorContraction)), contracted)
	c.Metadata.MeanDegree = (c.Metadata.MeanDegree*2 + float64(degree)) / 3
	c.Graph.Disconnect(nodeID)
}

// candidateEdge is a snapshot of one edge incident to the node currently
// being examined, taken up front so both the in- and out-adjacency can be
// walked in a nested loop without two explorers racing over the same
// underlying cursor.
type candidateEdge struct {
	adjNode          int32
	prepareEdge      int32
	weight           float64
	origEdgeKeyFirst int32
	origEdgeKeyLast  int32
	origEdgeCount    int32
}

// snapshotEdges materializes an iterator into a slice. Orig-edge keys are
// only defined for base edges and edge-based shortcuts (a node-based
// shortcut panics if asked for them, since node-based contraction has no
// use for them); edgeBased tells us whether it's safe to read them here.
func snapshotEdges(it prepgraph.EdgeIterator, edgeBased bool) []candidateEdge {
	var edges []candidateEdge
	for it.Next() {
		ce := candidateEdge{
			adjNode:       it.AdjNode(),
			prepareEdge:   it.PrepareEdge(),
			weight:        it.Weight(),
			origEdgeCount: it.OrigEdgeCount(),
		}
		if edgeBased {
			ce.origEdgeKeyFirst = it.OrigEdgeKeyFirst()
			ce.origEdgeKeyLast = it.OrigEdgeKeyLast()
		} else {
			ce.origEdgeKeyFirst = prepgraph.NoEdge
			ce.origEdgeKeyLast = prepgraph.NoEdge
		}
		edges = append(edges, ce)
	}
	return edges
}

type shortcutHandlerFunc func(fromNode, toNode, viaNode int32, weight float64, skipped1, skipped2 candidateEdge)

// findAndHandleShortcuts inspects every (inEdge, outEdge) pair around
// nodeID and, for each pair whose direct path can't be matched by a
// witness path avoiding nodeID, calls shortcutHandler. It returns the
// node's current degree, the number of shortcuts that would be/were added,
// and the total original-edge count they represent (edgeDifference =
// shortcuts - degree is the priority heuristic's first term).
func (c *Contractor) findAndHandleShortcuts(nodeID int32, shortcutHandler shortcutHandlerFunc,
	maxVisitedNodes int, contracted []bool) (degree, shortcutCount, originalEdgesCount int) {

	edgeBased := c.Graph.EdgeBased()
	inEdges := snapshotEdges(c.Graph.CreateInEdgeExplorer().SetBaseNode(nodeID), edgeBased)
	outEdges := snapshotEdges(c.Graph.CreateOutEdgeExplorer().SetBaseNode(nodeID), edgeBased)

	pInMax, pOutMax := 0.0, 0.0
	for _, e := range inEdges {
		if contracted[e.adjNode] {
			continue
		}
		if e.weight > pInMax {
			pInMax = e.weight
		}
	}
	for _, e := range outEdges {
		if contracted[e.adjNode] {
			continue
		}
		if e.weight > pOutMax {
			pOutMax = e.weight
		}
	}
	pMax := pInMax + pOutMax

	for _, inEdge := range inEdges {
		fromNode := inEdge.adjNode
		if contracted[fromNode] {
			continue
		}
		degree++

		for _, outEdge := range outEdges {
			toNode := outEdge.adjNode
			if contracted[toNode] || toNode == fromNode {
				continue
			}

			turnCost := c.Graph.TurnWeight(inEdge.origEdgeKeyLast, nodeID, outEdge.origEdgeKeyFirst)
			directWeight := inEdge.weight + turnCost + outEdge.weight

			witnessWeight := c.dijkstraWitnessSearch(fromNode, toNode, nodeID, directWeight, maxVisitedNodes, pMax, contracted)
			if witnessWeight <= directWeight {
				// a witness path exists; no shortcut needed.
				continue
			}

			shortcutCount++
			originalEdgesCount += int(inEdge.origEdgeCount) + int(outEdge.origEdgeCount)
			shortcutHandler(fromNode, toNode, nodeID, directWeight, inEdge, outEdge)
		}
	}
	return
}

func countShortcut(fromNode, toNode, viaNode int32, weight float64, skipped1, skipped2 candidateEdge) {}

// addOrUpdateShortcut inserts the shortcut fromNode->toNode discovered
// while contracting viaNode, or lowers an existing shortcut's weight if
// contracting a different node already produced one between the same pair.
func (c *Contractor) addOrUpdateShortcut(fromNode, toNode, viaNode int32, weight float64, skipped1, skipped2 candidateEdge) {
	out := c.Graph.CreateOutEdgeExplorer().SetBaseNode(fromNode)
	for out.Next() {
		if out.AdjNode() == toNode && out.IsShortcut() && weight < out.Weight() {
			out.SetWeight(weight)
			return
		}
	}

	origEdgeCount := skipped1.origEdgeCount + skipped2.origEdgeCount
	c.Graph.AddShortcut(fromNode, toNode, skipped1.origEdgeKeyFirst, skipped2.origEdgeKeyLast,
		skipped1.prepareEdge, skipped2.prepareEdge, weight, origEdgeCount)
	c.Metadata.ShortcutsCount++
}

// calculatePriority is the classic edge-difference heuristic: nodes whose
// contraction would add few shortcuts relative to the edges they remove,
// and which don't represent many original edges, are contracted first.
func (c *Contractor) calculatePriority(nodeID int32, contracted []bool) float64 {
	_, shortcutsCount, originalEdgesCount := c.findAndHandleShortcuts(nodeID, countShortcut,
		int(c.Metadata.MeanDegree*float64(maxPollFactorHeuristic)), contracted)

	edgeDifference := shortcutsCount - int(c.Graph.Degree(nodeID))
	return float64(10*edgeDifference + originalEdgesCount)
}

func (c *Contractor) updatePrioritiesOfRemainingNodes(nq *datastructure.MinHeap[int32]) {
	contracted := make([]bool, c.Graph.Nodes())
	for nodeID := int32(0); nodeID < c.Graph.Nodes(); nodeID++ {
		priority := c.calculatePriority(nodeID, contracted)
		nq.Insert(datastructure.PriorityQueueNode[int32]{Item: nodeID, Rank: priority})

		if (nodeID+1)%10000 == 0 {
			log.Printf("updating priority of node: %d...", nodeID+1)
		}
	}
}
