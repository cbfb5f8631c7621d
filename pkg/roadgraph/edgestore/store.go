// Package edgestore is the I/O-backed CompressedEdgeContainer
// implementation: edge polylines live in a pebble key-value store,
// zstd-compressed and binary-encoded into a typed
// EdgeID -> []FloatCoordinate store.
package edgestore

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/klauspost/compress/zstd"

	kbinary "github.com/kelindar/binary"

	"github.com/arimbawa-w/roadisect/pkg/datastructure"
)

type Store struct {
	db      *pebble.DB
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// Open creates or opens a pebble database at path, read-write (used by the
// ingestion tool). Use OpenReadOnly for the query-path process.
func Open(path string) (*Store, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("edgestore: open %s: %w", path, err)
	}
	return newStore(db)
}

// OpenReadOnly opens an existing pebble database without allowing writes,
// matching the purity guarantee the query path makes once ingestion has
// finished.
func OpenReadOnly(path string) (*Store, error) {
	db, err := pebble.Open(path, &pebble.Options{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("edgestore: open %s read-only: %w", path, err)
	}
	return newStore(db)
}

func newStore(db *pebble.DB) (*Store, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("edgestore: new zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("edgestore: new zstd decoder: %w", err)
	}
	return &Store{db: db, encoder: enc, decoder: dec}, nil
}

func edgeKey(edge datastructure.EdgeID) []byte {
	key := make([]byte, 4)
	binary.BigEndian.PutUint32(key, uint32(edge))
	return key
}

// Put stores the polyline geometry recorded along edge, overwriting any
// prior value. Called only by ingestion.
func (s *Store) Put(edge datastructure.EdgeID, coords []datastructure.FloatCoordinate) error {
	encoded, err := kbinary.Marshal(coords)
	if err != nil {
		return fmt.Errorf("edgestore: marshal edge %d: %w", edge, err)
	}
	compressed := s.encoder.EncodeAll(encoded, nil)
	if err := s.db.Set(edgeKey(edge), compressed, pebble.Sync); err != nil {
		return fmt.Errorf("edgestore: put edge %d: %w", edge, err)
	}
	return nil
}

// GetCoordinatesAlongRoad implements roadgraph.CompressedEdgeContainer.
func (s *Store) GetCoordinatesAlongRoad(ctx context.Context, edge datastructure.EdgeID) ([]datastructure.FloatCoordinate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	compressed, closer, err := s.db.Get(edgeKey(edge))
	if err != nil {
		return nil, fmt.Errorf("edgestore: get edge %d: %w", edge, err)
	}
	defer closer.Close()

	decoded, err := s.decoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("edgestore: decompress edge %d: %w", edge, err)
	}

	var coords []datastructure.FloatCoordinate
	if err := kbinary.Unmarshal(decoded, &coords); err != nil {
		return nil, fmt.Errorf("edgestore: unmarshal edge %d: %w", edge, err)
	}
	return coords, nil
}

func (s *Store) Close() error {
	s.decoder.Close()
	return s.db.Close()
}
