package datastructure

// KVEdge is the record pkg/kv stores per H3 cell: enough to identify an
// edge (by its endpoint node ids) and to re-sort candidates around a query
// point by their rough center location, without carrying the full edge
// weight/geometry the prepgraph.Graph already holds.
type KVEdge struct {
	CenterLoc  [2]float64
	ToNodeID   int32
	FromNodeID int32
}
