// Package restriction is the I/O-backed RestrictionIndex implementation,
// backed by badger as a point-lookup store, built from OSM restriction
// relations the way LdDl-osm2ch's osm_raw.go parses from/via/to relation
// members.
package restriction

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/arimbawa-w/roadisect/pkg/datastructure"
)

type Index struct {
	db *badger.DB
}

func Open(path string) (*Index, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("restriction: open %s: %w", path, err)
	}
	return &Index{db: db}, nil
}

func OpenReadOnly(path string) (*Index, error) {
	opts := badger.DefaultOptions(path).WithReadOnly(true)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("restriction: open %s read-only: %w", path, err)
	}
	return &Index{db: db}, nil
}

func (idx *Index) Close() error {
	return idx.db.Close()
}

// banKey / onlyKey both scope by (from edge, via node) since that pair is
// exactly the emanating-turn context OSRM's GetOnlyAllowedTurnIfExistent and
// the legality check in TransformIntersectionShapeIntoView query by.
func banKey(from datastructure.EdgeID, via datastructure.NodeID, to datastructure.EdgeID) []byte {
	key := make([]byte, 13)
	key[0] = 'n'
	binary.BigEndian.PutUint32(key[1:5], uint32(from))
	binary.BigEndian.PutUint32(key[5:9], uint32(via))
	binary.BigEndian.PutUint32(key[9:13], uint32(to))
	return key
}

func onlyKey(from datastructure.EdgeID, via datastructure.NodeID) []byte {
	key := make([]byte, 9)
	key[0] = 'o'
	binary.BigEndian.PutUint32(key[1:5], uint32(from))
	binary.BigEndian.PutUint32(key[5:9], uint32(via))
	return key
}

// PutRestricted records a no_* restriction. Called only by ingestion.
func (idx *Index) PutRestricted(from datastructure.EdgeID, via datastructure.NodeID, to datastructure.EdgeID) error {
	return idx.db.Update(func(txn *badger.Txn) error {
		return txn.Set(banKey(from, via, to), nil)
	})
}

// PutOnlyTurn records an only_* restriction. Called only by ingestion.
func (idx *Index) PutOnlyTurn(from datastructure.EdgeID, via datastructure.NodeID, to datastructure.EdgeID) error {
	value := make([]byte, 4)
	binary.BigEndian.PutUint32(value, uint32(to))
	return idx.db.Update(func(txn *badger.Txn) error {
		return txn.Set(onlyKey(from, via), value)
	})
}

// IsRestricted implements roadgraph.RestrictionIndex.
func (idx *Index) IsRestricted(ctx context.Context, from datastructure.EdgeID, via datastructure.NodeID, to datastructure.EdgeID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	found := false
	err := idx.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(banKey(from, via, to))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("restriction: is restricted %d/%d/%d: %w", from, via, to, err)
	}
	return found, nil
}

// OnlyAllowedTurn implements roadgraph.RestrictionIndex. It degrades
// gracefully the same way OSRM's GetOnlyAllowedTurnIfExistent does: a
// missing record just means no restriction, never an error.
func (idx *Index) OnlyAllowedTurn(ctx context.Context, from datastructure.EdgeID, via datastructure.NodeID) (datastructure.EdgeID, bool, error) {
	if err := ctx.Err(); err != nil {
		return datastructure.InvalidEdgeID, false, err
	}

	var to datastructure.EdgeID
	found := false
	err := idx.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(onlyKey(from, via))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if len(val) != 4 {
				return fmt.Errorf("malformed only-turn record for %d/%d", from, via)
			}
			to = datastructure.EdgeID(binary.BigEndian.Uint32(val))
			found = true
			return nil
		})
	})
	if err != nil {
		return datastructure.InvalidEdgeID, false, fmt.Errorf("restriction: only allowed turn %d/%d: %w", from, via, err)
	}
	if !found {
		return datastructure.InvalidEdgeID, false, nil
	}
	return to, true, nil
}
