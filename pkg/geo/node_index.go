package geo

import "github.com/dhconnelly/rtreego"

// nodeIndexEpsilon gives every indexed node's bounding rectangle a tiny
// but positive extent; rtreego panics on a degenerate (zero-length) rect.
const nodeIndexEpsilon = 1e-9

// IndexedNode is one entry in a NodeIndex: a graph node id at a fixed
// lat/lon.
type IndexedNode struct {
	NodeID int32
	Lat    float64
	Lon    float64
}

func (n *IndexedNode) Bounds() rtreego.Rect {
	rect, err := rtreego.NewRect(rtreego.Point{n.Lon, n.Lat}, []float64{nodeIndexEpsilon, nodeIndexEpsilon})
	if err != nil {
		panic(err)
	}
	return rect
}

// NodeIndex is an R-tree over every node ingested from an OSM extract,
// used to resolve a raw GPS fix to the nearest graph node without a
// linear scan over every node in the extract.
type NodeIndex struct {
	tree *rtreego.Rtree
}

// NewNodeIndex builds an empty index. 25/50 are rtreego's usual
// min/max-children defaults for a 2-dimensional tree.
func NewNodeIndex() *NodeIndex {
	return &NodeIndex{tree: rtreego.NewTree(2, 25, 50)}
}

func (idx *NodeIndex) Insert(nodeID int32, lat, lon float64) {
	idx.tree.Insert(&IndexedNode{NodeID: nodeID, Lat: lat, Lon: lon})
}

func (idx *NodeIndex) Size() int {
	return idx.tree.Size()
}

// Nearest returns the node id closest to (lat, lon) and the great-circle
// distance to it in kilometers, or ok=false if the index is empty.
func (idx *NodeIndex) Nearest(lat, lon float64) (nodeID int32, distKM float64, ok bool) {
	for _, result := range idx.tree.NearestNeighbors(1, rtreego.Point{lon, lat}) {
		node, isNode := result.(*IndexedNode)
		if !isNode || node == nil {
			continue
		}
		return node.NodeID, CalculateHaversineDistance(lat, lon, node.Lat, node.Lon), true
	}
	return 0, 0, false
}
