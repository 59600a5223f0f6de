package contractor

import (
	"math"

	"chprep/pkg/datastructure"
	"chprep/pkg/prepgraph"
)

// dijkstraState is a Dijkstra queue entry: which node the search has
// reached, and the original-edge key it arrived on. The in-edge key only
// matters for edge-based graphs, where TurnWeight needs it to price the
// next transition; a node-based graph's turn-cost function always returns
// zero, so inEdge is carried but never changes the result there.
type dijkstraState struct {
	node   int32
	inEdge int32
}

func packState(node, inEdge int32) int64 {
	return int64(node)<<32 | (int64(inEdge) + 1)
}

// dijkstraWitnessSearch looks for a path fromNode -> targetNode, avoiding
// ignoreNode (the node currently being contracted), that costs no more
// than acceptedWeight — the weight of going fromNode -> ignoreNode ->
// targetNode directly. If one exists, that direct connection is redundant
// and no shortcut is needed.
//
// The search is bounded two ways to keep it cheap: it gives up after
// maxSettledNodes settled nodes, and it prunes any queue entry whose
// weight already exceeds pMax, the largest weight a two-hop path through
// ignoreNode could have — nothing heavier than that could possibly beat
// acceptedWeight regardless of how the search continues.
func (c *Contractor) dijkstraWitnessSearch(fromNode, targetNode, ignoreNode int32, acceptedWeight float64,
	maxSettledNodes int, pMax float64, contracted []bool) float64 {

	if fromNode == targetNode {
		return 0
	}

	cost := make(map[int64]float64)
	entryMap := make(map[int64]*datastructure.Entry[dijkstraState])

	pq := datastructure.NewFibonacciHeap[dijkstraState]()
	start := dijkstraState{node: fromNode, inEdge: prepgraph.NoEdge}
	startKey := packState(start.node, start.inEdge)
	entryMap[startKey] = pq.Insert(start, 0.0)
	cost[startKey] = 0.0

	out := c.Graph.CreateOutEdgeExplorer()
	edgeBased := c.Graph.EdgeBased()

	settledNodes := 0
	for settledNodes < maxSettledNodes {
		smallest := pq.GetMin()
		if pq.Size() == 0 || smallest.GetPriority() > acceptedWeight {
			return math.MaxFloat64
		}

		curr := pq.ExtractMin()
		state := curr.GetElem()
		currCost := curr.GetPriority()

		if state.node == targetNode {
			return currCost
		}

		if currCost > pMax {
			// nothing left in the queue can beat acceptedWeight from here.
			return math.MaxFloat64
		}

		it := out.SetBaseNode(state.node)
		for it.Next() {
			adj := it.AdjNode()
			if adj == ignoreNode || contracted[adj] {
				continue
			}

			nextInEdge := prepgraph.NoEdge
			if edgeBased {
				nextInEdge = it.OrigEdgeKeyFirst()
			}
			turnCost := c.Graph.TurnWeight(state.inEdge, state.node, nextInEdge)
			newCost := currCost + turnCost + it.Weight()

			nextState := dijkstraState{node: adj, inEdge: nextInEdge}
			key := packState(nextState.node, nextState.inEdge)

			existingCost, ok := cost[key]
			if !ok {
				cost[key] = newCost
				entryMap[key] = pq.Insert(nextState, newCost)
			} else if newCost < existingCost {
				cost[key] = newCost
				pq.DecreaseKey(entryMap[key], newCost)
			}
		}

		settledNodes++
	}
	return math.MaxFloat64
}
