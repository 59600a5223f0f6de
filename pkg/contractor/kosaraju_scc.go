package contractor

import (
	"log"
	"math"

	"chprep/pkg/prepgraph"
	"chprep/pkg/util"
)

// stronglyConnectedComponents is the result of a Kosaraju scan over a
// Graph's original edges, run once before contraction starts. Contraction
// itself doesn't require a strongly connected graph, but an OSM extract
// that clips a road network at its boundary routinely leaves behind small
// islands; logging their sizes up front surfaces a bad extract before the
// run pays the cost of contracting it.
type stronglyConnectedComponents struct {
	componentOf   []int32
	componentSize []int32
}

func (s *stronglyConnectedComponents) largestComponentSize() int32 {
	var max int32
	for _, size := range s.componentSize {
		if size > max {
			max = size
		}
	}
	return max
}

// computeStronglyConnectedComponents runs Kosaraju's algorithm over g: a
// first DFS pass over the out-adjacency records a finishing order, then a
// second DFS pass over the in-adjacency, visited in reverse finishing
// order, peels off one component per root.
func computeStronglyConnectedComponents(g *prepgraph.Graph) *stronglyConnectedComponents {
	n := g.Nodes()
	visited := make([]bool, n)
	order := make([]int32, 0, n)

	for v := int32(0); v < n; v++ {
		if !visited[v] {
			sccDFS(g, v, &order, visited, false)
		}
	}
	order = util.ReverseG[int32](order)

	visited = make([]bool, n)
	componentOf := make([]int32, n)
	var sizes []int32

	for _, v := range order {
		if !visited[v] {
			var component []int32
			sccDFS(g, v, &component, visited, true)
			id := int32(len(sizes))
			for _, node := range component {
				componentOf[node] = id
			}
			sizes = append(sizes, int32(len(component)))
		}
	}

	log.Printf("kosaraju scc: %d components over %d nodes", len(sizes), n)
	return &stronglyConnectedComponents{componentOf: componentOf, componentSize: sizes}
}

// sccDFS walks node v's out-adjacency (reversed=false, for the finishing-
// order pass) or in-adjacency (reversed=true, for the component-collection
// pass), appending every node it visits to output in post-order. A fresh
// explorer is created for each recursive call rather than shared across
// the recursion, since EdgeExplorer is a rewindable cursor and calling
// SetBaseNode on a shared one from a nested call would corrupt the
// caller's iteration.
func sccDFS(g *prepgraph.Graph, v int32, output *[]int32, visited []bool, reversed bool) {
	visited[v] = true

	var it prepgraph.EdgeIterator
	if reversed {
		it = g.CreateInEdgeExplorer().SetBaseNode(v)
	} else {
		it = g.CreateOutEdgeExplorer().SetBaseNode(v)
	}
	for it.Next() {
		if math.IsInf(it.Weight(), 1) {
			// a base edge whose direction is inaccessible (spec invariant
			// E1); not a real adjacency for reachability purposes.
			continue
		}
		adj := it.AdjNode()
		if !visited[adj] {
			sccDFS(g, adj, output, visited, reversed)
		}
	}

	*output = append(*output, v)
}
