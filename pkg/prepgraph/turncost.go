package prepgraph

// TurnCostFunction reports the extra cost of transitioning from inEdge to
// outEdge via viaNode. It returns 0 for an invalid inEdge or outEdge
// (NoEdge), and the compiled U-turn cost when inEdge == outEdge.
type TurnCostFunction func(inEdge, viaNode, outEdge int32) float64

// NoTurnCosts is the TurnCostFunction used by node-based graphs, where
// turns are never penalized.
func NoTurnCosts(inEdge, viaNode, outEdge int32) float64 { return 0 }

// TurnRestriction is one (fromEdge, viaNode, toEdge) -> cost entry sourced
// from turn-restriction data (e.g. OSM restriction relations). CompileTurnCostFunction
// requires the input slice sorted ascending by ViaNode; entries that share a
// ViaNode may appear in any order relative to each other.
type TurnRestriction struct {
	FromEdge int32
	ViaNode  int32
	ToEdge   int32
	Cost     float64
}

// CompileTurnCostFunction packs restrictions into a flat table indexed by a
// per-node prefix array, so a lookup at query time is a linear scan over
// only the handful of entries at one node instead of a map lookup per
// query. numNodes is the total node count of the graph the turn-cost
// function will be used with; uTurnCost is the fixed cost of reusing the
// same edge as both inEdge and outEdge.
//
// restrictions must be sorted ascending by ViaNode; CompileTurnCostFunction
// panics otherwise, since the prefix table is built in one linear pass.
func CompileTurnCostFunction(numNodes int32, uTurnCost float64, restrictions []TurnRestriction) TurnCostFunction {
	edgePairsFrom := make([]int32, len(restrictions))
	edgePairsTo := make([]int32, len(restrictions))
	costs := make([]float64, len(restrictions))
	turnCostNodes := make([]int32, numNodes+1)

	lastNode := int32(-1)
	for i, r := range restrictions {
		if r.ViaNode < lastNode {
			panic("turn restrictions must be sorted ascending by via node")
		}
		edgePairsFrom[i] = r.FromEdge
		edgePairsTo[i] = r.ToEdge
		costs[i] = r.Cost
		if r.ViaNode != lastNode {
			for n := lastNode + 1; n <= r.ViaNode; n++ {
				turnCostNodes[n] = int32(i)
			}
		}
		lastNode = r.ViaNode
	}
	for n := lastNode + 1; n <= numNodes; n++ {
		turnCostNodes[n] = int32(len(restrictions))
	}

	return func(inEdge, viaNode, outEdge int32) float64 {
		if inEdge == NoEdge || outEdge == NoEdge {
			return 0
		}
		if inEdge == outEdge {
			return uTurnCost
		}
		for i := turnCostNodes[viaNode]; i < turnCostNodes[viaNode+1]; i++ {
			if edgePairsFrom[i] == inEdge && edgePairsTo[i] == outEdge {
				return costs[i]
			}
		}
		return 0
	}
}
