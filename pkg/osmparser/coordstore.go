package osmparser

import (
	"encoding/binary"
	"math"
	"os"

	"github.com/cockroachdb/pebble"
)

// nodeCoordStore resolves an OSM node id to the coordinate pass 2 read for
// it (pass 1 only records which node ids accepted ways reference; pass 2
// stores those nodes' coordinates as it meets them and reads them back for
// the ways that follow). Parse stages coordinates in a pebble instance rather than a plain
// map so a pass-1/pass-2 scan over a large extract doesn't have to hold
// every accepted node's coordinate in memory at once; pebble's LSM tree
// keeps that working set on disk instead.
type nodeCoordStore struct {
	db  *pebble.DB
	dir string
}

func newNodeCoordStore() (*nodeCoordStore, error) {
	dir, err := os.MkdirTemp("", "chprep-osmparser-coords-*")
	if err != nil {
		return nil, err
	}
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		os.RemoveAll(dir)
		return nil, err
	}
	return &nodeCoordStore{db: db, dir: dir}, nil
}

func (s *nodeCoordStore) put(nodeID int64, c nodeCoord) error {
	val := make([]byte, 16)
	binary.LittleEndian.PutUint64(val[0:8], math.Float64bits(c.lat))
	binary.LittleEndian.PutUint64(val[8:16], math.Float64bits(c.lon))
	return s.db.Set(encodeNodeID(nodeID), val, pebble.NoSync)
}

func (s *nodeCoordStore) get(nodeID int64) nodeCoord {
	val, closer, err := s.db.Get(encodeNodeID(nodeID))
	if err != nil {
		return nodeCoord{}
	}
	defer closer.Close()
	return nodeCoord{
		lat: math.Float64frombits(binary.LittleEndian.Uint64(val[0:8])),
		lon: math.Float64frombits(binary.LittleEndian.Uint64(val[8:16])),
	}
}

// close releases the staging store and removes its backing directory: the
// staged coordinates are only useful for the Parse call that produced
// them, never across runs.
func (s *nodeCoordStore) close() error {
	err := s.db.Close()
	os.RemoveAll(s.dir)
	return err
}

func encodeNodeID(nodeID int64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(nodeID))
	return key
}
