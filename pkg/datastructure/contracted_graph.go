package datastructure

import (
	"encoding/binary"
	"math"
)

// contracted graph
type CHNode struct {
	Lat          float64
	Lon          float64
	OrderPos     int32
	ID           int32
	TrafficLight bool
}

func NewCHNode(lat, lon float64, orderPos int32, idx int32, trafficLight bool) CHNode {
	return CHNode{
		Lat:          lat,
		Lon:          lon,
		OrderPos:     orderPos,
		ID:           idx,
		TrafficLight: trafficLight,
	}
}

type NodeInfo struct {
	TrafficLight map[int32]bool
}

func NewNodeInfo() *NodeInfo {
	return &NodeInfo{
		TrafficLight: make(map[int32]bool),
	}
}

func (ni *NodeInfo) SetTrafficLight(nodeID int32) {
	ni.TrafficLight[nodeID] = true
}

func NewCHNodePlain(lat, lon float64, idx int32) CHNode {
	return CHNode{
		Lat: lat,
		Lon: lon,
		ID:  idx,
	}
}

type EdgeCH struct {
	EdgeID     int32
	Weight     float64 // minute
	Dist       float64 // meter
	ToNodeID   int32
	FromNodeID int32

	ViaNodeID int32
}

func NewEdgeCH(edgeID int32, weight, dist float64, toNodeID, fromNodeID int32, viaNodeID int32) EdgeCH {
	return EdgeCH{
		EdgeID:     edgeID,
		Weight:     weight,
		Dist:       dist,
		ToNodeID:   toNodeID,
		FromNodeID: fromNodeID,
		ViaNodeID:  viaNodeID,
	}
}

func NewEdgeCHPlain(edgeID int32, weight, dist float64, toNodeID, fromNodeID int32,
) EdgeCH {
	return EdgeCH{
		EdgeID:     edgeID,
		Weight:     weight,
		Dist:       dist,
		ToNodeID:   toNodeID,
		FromNodeID: fromNodeID,
		ViaNodeID:  -1,
	}
}

func (e *EdgeCH) Serialize() []byte {
	// 4byte*4 + 8byte*2 = 32byte written into a 36byte buffer (last 4 bytes unused)

	buf := make([]byte, 36)

	// edgeID
	binary.LittleEndian.PutUint32(buf[0:4], uint32(e.EdgeID))
	// weight
	binary.LittleEndian.PutUint64(buf[4:12], math.Float64bits(e.Weight))
	// dist
	binary.LittleEndian.PutUint64(buf[12:20], math.Float64bits(e.Dist))
	// toNodeID
	binary.LittleEndian.PutUint32(buf[20:24], uint32(e.ToNodeID))
	// fromNodeID
	binary.LittleEndian.PutUint32(buf[24:28], uint32(e.FromNodeID))

	binary.LittleEndian.PutUint32(buf[28:32], uint32(e.ViaNodeID))

	return buf
}

func DeserializeEdgeCH(buf []byte) EdgeCH {
	// 4byte*4 + 8byte*2 = 32byte read from the front of the buffer

	edgeID := int32(binary.LittleEndian.Uint32(buf[0:4]))
	weight := math.Float64frombits(binary.LittleEndian.Uint64(buf[4:12]))
	dist := math.Float64frombits(binary.LittleEndian.Uint64(buf[12:20]))
	toNodeID := int32(binary.LittleEndian.Uint32(buf[20:24]))
	fromNodeID := int32(binary.LittleEndian.Uint32(buf[24:28]))

	viaNodeID := int32(binary.LittleEndian.Uint32(buf[28:32]))

	return NewEdgeCH(edgeID, weight, dist, toNodeID, fromNodeID, viaNodeID)
}

