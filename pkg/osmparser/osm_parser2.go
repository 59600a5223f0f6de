// Package osmparser turns an OSM PBF extract into the plain (node, edge)
// arrays a prepgraph.Graph is built from: a two-pass scan over the extract
// classifies way-referenced nodes and then resolves their coordinates and
// walks each accepted way, splitting it into edge segments at junctions
// and barrier nodes.
package osmparser

import (
	"context"
	"io"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	"chprep/pkg/datastructure"
	"chprep/pkg/geo"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
)

// PhysicalEdge is one road segment carrying both direction weights, in the
// shape prepgraph.Graph.AddEdge expects: a non-finite weight means that
// direction is not traversable.
type PhysicalEdge struct {
	EdgeID     int32
	FromNodeID int32
	ToNodeID   int32
	WeightFwd  float64
	WeightBwd  float64
	Dist       float64
}

type node struct {
	id    int64
	coord nodeCoord
}

type nodeCoord struct {
	lat float64
	lon float64
}

// OsmParser holds the scratch state accumulated across the two scan
// passes of Parse. It is not safe for concurrent or repeated use: create
// a fresh one per extract.
type OsmParser struct {
	wayNodeMap    map[int64]NodeType
	coords        *nodeCoordStore
	barrierNodes  map[int64]bool
	trafficLights map[int64]bool
	nodeIDMap     map[int64]int32
}

// NewOSMParser stages a fresh pebble instance for this parser's coordinate
// resolution; call Close when Parse is done with it.
func NewOSMParser() (*OsmParser, error) {
	coords, err := newNodeCoordStore()
	if err != nil {
		return nil, err
	}
	return &OsmParser{
		wayNodeMap:    make(map[int64]NodeType),
		coords:        coords,
		barrierNodes:  make(map[int64]bool),
		trafficLights: make(map[int64]bool),
		nodeIDMap:     make(map[int64]int32),
	}, nil
}

// Close releases the parser's coordinate staging store. Safe to call once
// Parse has returned, whether it succeeded or failed.
func (p *OsmParser) Close() error {
	return p.coords.close()
}

var skipHighway = map[string]struct{}{
	"footway":                {},
	"construction":           {},
	"cycleway":               {},
	"path":                   {},
	"pedestrian":             {},
	"busway":                 {},
	"steps":                  {},
	"bridleway":              {},
	"corridor":               {},
	"street_lamp":            {},
	"bus_stop":               {},
	"crossing":               {},
	"cyclist_waiting_aid":    {},
	"elevator":               {},
	"emergency_bay":          {},
	"emergency_access_point": {},
	"give_way":               {},
	"phone":                  {},
	"ladder":                 {},
	"milestone":              {},
	"passing_place":          {},
	"platform":               {},
	"speed_camera":           {},
	"track":                  {},
	"bus_guideway":           {},
	"speed_display":          {},
	"stop":                   {},
	"toll_gantry":            {},
	"traffic_mirror":         {},
	"traffic_signals":        {},
	"trailhead":              {},
}

// Parse scans mapFile twice: the first pass classifies every way-
// referenced node as an end, junction, or interior point; the second
// resolves accepted node coordinates and walks each accepted way's
// segments into edges. It returns the resolved nodes indexed by the
// contiguous id space Parse assigns them, the edges built between those
// ids, and the per-street one-way direction table keyed by street name.
func (p *OsmParser) Parse(mapFile string) ([]datastructure.CHNode, []datastructure.EdgeCH, []PhysicalEdge, map[string][2]bool, error) {
	f, err := os.Open(mapFile)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	defer f.Close()

	scanner := osmpbf.New(context.Background(), f, 0)
	countWays := 0
	for scanner.Scan() {
		o := scanner.Object()
		way, ok := o.(*osm.Way)
		if !ok {
			continue
		}
		if len(way.Nodes) < 2 || !acceptOsmWay(way) {
			continue
		}
		if (countWays+1)%50000 == 0 {
			log.Printf("reading openstreetmap ways: %d...", countWays+1)
		}
		countWays++

		for i, wayNode := range way.Nodes {
			if _, ok := p.wayNodeMap[int64(wayNode.ID)]; !ok {
				if i == 0 || i == len(way.Nodes)-1 {
					p.wayNodeMap[int64(wayNode.ID)] = END_NODE
				} else {
					p.wayNodeMap[int64(wayNode.ID)] = BETWEEN_NODE
				}
			} else {
				p.wayNodeMap[int64(wayNode.ID)] = JUNCTION_NODE
			}
		}
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, nil, nil, nil, err
	}
	scanner.Close()

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, nil, nil, nil, err
	}

	edges := make([]datastructure.EdgeCH, 0)
	physicalEdges := make([]PhysicalEdge, 0)
	streetDirection := make(map[string][2]bool)

	scanner = osmpbf.New(context.Background(), f, 0)
	defer scanner.Close()
	countWays = 0
	countNodes := 0
	for scanner.Scan() {
		o := scanner.Object()
		switch v := o.(type) {
		case *osm.Way:
			if len(v.Nodes) < 2 || !acceptOsmWay(v) {
				continue
			}
			if (countWays+1)%50000 == 0 {
				log.Printf("processing openstreetmap ways: %d...", countWays+1)
			}
			countWays++
			if err := p.processWay(v, &edges, &physicalEdges, streetDirection); err != nil {
				return nil, nil, nil, nil, err
			}
		case *osm.Node:
			if (countNodes+1)%50000 == 0 {
				log.Printf("processing openstreetmap nodes: %d...", countNodes+1)
			}
			countNodes++
			if _, ok := p.wayNodeMap[int64(v.ID)]; ok {
				if err := p.coords.put(int64(v.ID), nodeCoord{lat: v.Lat, lon: v.Lon}); err != nil {
					return nil, nil, nil, nil, err
				}
			}
			if v.Tags.Find("barrier") != "" || v.Tags.Find("ford") != "" {
				p.barrierNodes[int64(v.ID)] = true
			}
			if strings.Contains(v.Tags.Find("highway"), TRAFFIC_LIGHT) {
				p.trafficLights[int64(v.ID)] = true
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, nil, nil, err
	}

	processedNodes := make([]datastructure.CHNode, len(p.nodeIDMap))
	for nodeID, idx := range p.nodeIDMap {
		coord := p.coords.get(nodeID)
		processedNodes[idx] = datastructure.NewCHNode(coord.lat, coord.lon, 0, idx, p.trafficLights[nodeID])
	}

	log.Printf("total nodes: %d", len(processedNodes))
	log.Printf("total edges: %d (%d physical)", len(edges), len(physicalEdges))

	return processedNodes, edges, physicalEdges, streetDirection, nil
}

type wayExtraInfo struct {
	oneWay  bool
	forward bool
}

func (p *OsmParser) processWay(way *osm.Way, edges *[]datastructure.EdgeCH, physicalEdges *[]PhysicalEdge, streetDirection map[string][2]bool) error {
	name := way.Tags.Find("name")

	speed := 0.0
	highwayTypeSpeed := 0.0

	wayExtraInfoData := wayExtraInfo{}
	okvf, okmvf, okvb, okmvb := getReversedOneWay(way)
	if val := way.Tags.Find("oneway"); val != "" || okvf || okmvf || okvb || okmvb {
		wayExtraInfoData.oneWay = true
	}
	if way.Tags.Find("oneway") == "-1" || okvf || okmvf {
		wayExtraInfoData.forward = false
	} else if way.Tags.Find("oneway") != "-1" && !okvf && !okmvf {
		wayExtraInfoData.forward = true
	}

	if wayExtraInfoData.oneWay {
		if wayExtraInfoData.forward {
			streetDirection[name] = [2]bool{true, false}
		} else {
			streetDirection[name] = [2]bool{false, true}
		}
	} else {
		streetDirection[name] = [2]bool{true, true}
	}

	maxSpeed := 0.0
	for _, tag := range way.Tags {
		switch tag.Key {
		case "highway":
			highwayTypeSpeed = RoadTypeMaxSpeed2(tag.Value)
		case "maxspeed":
			parsed, err := parseMaxSpeed(tag.Value)
			if err != nil {
				return err
			}
			maxSpeed = parsed
		}
	}
	if maxSpeed != 0 {
		speed = maxSpeed
	} else {
		speed = highwayTypeSpeed
	}
	if speed == 0 {
		speed = 35.0
	}

	waySegment := make([]node, 0, len(way.Nodes))
	for _, wayNode := range way.Nodes {
		coord := p.coords.get(int64(wayNode.ID))
		nodeData := node{id: int64(wayNode.ID), coord: coord}

		if p.isJunctionNode(nodeData.id) {
			if len(waySegment) > 1 {
				waySegment = append(waySegment, nodeData)
				p.processSegment(waySegment, speed, edges, physicalEdges, wayExtraInfoData)
				waySegment = waySegment[:0]
			}
			waySegment = append(waySegment, nodeData)
		} else {
			waySegment = append(waySegment, nodeData)
		}
	}
	if len(waySegment) > 1 {
		p.processSegment(waySegment, speed, edges, physicalEdges, wayExtraInfoData)
	}
	return nil
}

func parseMaxSpeed(value string) (float64, error) {
	switch {
	case strings.Contains(value, "mph"):
		v, err := strconv.ParseFloat(strings.Replace(value, " mph", "", -1), 64)
		return v * 1.60934, err
	case strings.Contains(value, "km/h"):
		v, err := strconv.ParseFloat(strings.Replace(value, " km/h", "", -1), 64)
		return v, err
	case strings.Contains(value, "knots"):
		v, err := strconv.ParseFloat(strings.Replace(value, " knots", "", -1), 64)
		return v * 1.852, err
	default:
		return strconv.ParseFloat(value, 64)
	}
}

func isRestricted(value string) bool {
	switch value {
	case "no", "restricted", "military", "emergency", "private", "permit":
		return true
	default:
		return false
	}
}

func getReversedOneWay(way *osm.Way) (vehicleFwd, motorFwd, vehicleBwd, motorBwd bool) {
	return isRestricted(way.Tags.Find("vehicle:forward")),
		isRestricted(way.Tags.Find("motor_vehicle:forward")),
		isRestricted(way.Tags.Find("vehicle:backward")),
		isRestricted(way.Tags.Find("motor_vehicle:backward"))
}

// processSegment splits a raw way segment into the pieces addEdge should
// see: a segment that loops back to its own start is split at its
// second-to-last node (everything up to that node, then the closing hop
// back to the start) so no edge spans a zero-length loop.
func (p *OsmParser) processSegment(segment []node, speed float64, edges *[]datastructure.EdgeCH, physicalEdges *[]PhysicalEdge, info wayExtraInfo) {
	switch {
	case len(segment) == 2 && segment[0].id == segment[1].id:
		return
	case segment[0].id == segment[len(segment)-1].id:
		p.processSegment2(segment[:len(segment)-1], speed, edges, physicalEdges, info)
		p.processSegment2(segment[len(segment)-2:], speed, edges, physicalEdges, info)
	default:
		p.processSegment2(segment, speed, edges, physicalEdges, info)
	}
}

// processSegment2 further splits a segment at any barrier node, since a
// barrier blocks through traffic and must sit at an edge boundary rather
// than in the middle of an edge's geometry.
func (p *OsmParser) processSegment2(segment []node, speed float64, edges *[]datastructure.EdgeCH, physicalEdges *[]PhysicalEdge, info wayExtraInfo) {
	waySegment := make([]node, 0, len(segment))
	for _, nodeData := range segment {
		if p.barrierNodes[nodeData.id] {
			p.barrierNodes[nodeData.id] = false
			if len(waySegment) != 0 {
				waySegment = append(waySegment, nodeData)
				p.addEdge(waySegment, speed, edges, physicalEdges, info)
				waySegment = waySegment[:0]
			}
			waySegment = append(waySegment, nodeData)
		} else {
			waySegment = append(waySegment, nodeData)
		}
	}
	if len(waySegment) > 1 {
		p.addEdge(waySegment, speed, edges, physicalEdges, info)
	}
}

// addEdge assigns contiguous node ids on first sight, appends one EdgeCH
// per accessible direction of segment (both for a two-way street, only the
// accessible one for a one-way street), and appends the single
// PhysicalEdge prepgraph.Graph.AddEdge needs to add this segment once,
// with a non-finite weight on whichever direction is inaccessible.
func (p *OsmParser) addEdge(segment []node, speed float64, edges *[]datastructure.EdgeCH, physicalEdges *[]PhysicalEdge, info wayExtraInfo) {
	from := segment[0]
	if _, ok := p.nodeIDMap[from.id]; !ok {
		p.nodeIDMap[from.id] = int32(len(p.nodeIDMap))
	}
	to := segment[len(segment)-1]
	if _, ok := p.nodeIDMap[to.id]; !ok {
		p.nodeIDMap[to.id] = int32(len(p.nodeIDMap))
	}

	distance := 0.0
	for i := 1; i < len(segment); i++ {
		distance += geo.CalculateHaversineDistance(segment[i-1].coord.lat, segment[i-1].coord.lon, segment[i].coord.lat, segment[i].coord.lon)
	}
	distanceInMeter := distance * 1000
	etaWeight := distanceInMeter / (speed * 1000 / 60) // minutes

	fromID, toID := p.nodeIDMap[from.id], p.nodeIDMap[to.id]
	physicalID := int32(len(*physicalEdges))

	if info.oneWay {
		if info.forward {
			*edges = append(*edges, datastructure.NewEdgeCH(int32(len(*edges)), etaWeight, distanceInMeter, toID, fromID, -1))
			*physicalEdges = append(*physicalEdges, PhysicalEdge{
				EdgeID: physicalID, FromNodeID: fromID, ToNodeID: toID,
				WeightFwd: etaWeight, WeightBwd: math.Inf(1), Dist: distanceInMeter,
			})
		} else {
			*edges = append(*edges, datastructure.NewEdgeCH(int32(len(*edges)), etaWeight, distanceInMeter, fromID, toID, -1))
			*physicalEdges = append(*physicalEdges, PhysicalEdge{
				EdgeID: physicalID, FromNodeID: fromID, ToNodeID: toID,
				WeightFwd: math.Inf(1), WeightBwd: etaWeight, Dist: distanceInMeter,
			})
		}
		return
	}
	*edges = append(*edges, datastructure.NewEdgeCH(int32(len(*edges)), etaWeight, distanceInMeter, toID, fromID, -1))
	*edges = append(*edges, datastructure.NewEdgeCH(int32(len(*edges)), etaWeight, distanceInMeter, fromID, toID, -1))
	*physicalEdges = append(*physicalEdges, PhysicalEdge{
		EdgeID: physicalID, FromNodeID: fromID, ToNodeID: toID,
		WeightFwd: etaWeight, WeightBwd: etaWeight, Dist: distanceInMeter,
	})
}

func RoadTypeMaxSpeed2(roadType string) float64 {
	switch roadType {
	case "motorway":
		return 100
	case "trunk":
		return 70
	case "primary":
		return 65
	case "secondary":
		return 60
	case "tertiary":
		return 50
	case "unclassified":
		return 30
	case "residential":
		return 30
	case "service":
		return 20
	case "motorway_link":
		return 70
	case "trunk_link":
		return 65
	case "primary_link":
		return 60
	case "secondary_link":
		return 50
	case "tertiary_link":
		return 40
	case "living_street":
		return 10
	case "road":
		return 20
	case "track":
		return 15
	default:
		return 40
	}
}

func (p *OsmParser) isJunctionNode(nodeID int64) bool {
	return p.wayNodeMap[nodeID] == JUNCTION_NODE
}

func acceptOsmWay(way *osm.Way) bool {
	highway := way.Tags.Find("highway")
	junction := way.Tags.Find("junction")
	switch {
	case highway != "":
		_, skip := skipHighway[highway]
		return !skip
	case way.Tags.Find("route") == "road":
		return true
	case junction != "":
		return true
	default:
		return false
	}
}
