package osmparser

// NodeType classifies a way-referenced OSM node by its role while a way is
// split into edge segments: an END_NODE closes off a way, a JUNCTION_NODE
// is shared by more than one way and forces a split, and a BETWEEN_NODE is
// an ordinary interior shape point.
type NodeType int

const (
	BETWEEN_NODE NodeType = iota
	END_NODE
	JUNCTION_NODE
)

const TRAFFIC_LIGHT = "traffic_signals"
