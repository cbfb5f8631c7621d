package edgestore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arimbawa-w/roadisect/pkg/datastructure"
)

func TestStorePutAndGetRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir)
	require.NoError(t, err)
	defer store.Close()

	coords := []datastructure.FloatCoordinate{
		{Lat: -7.565837, Lon: 110.831586},
		{Lat: -7.566063, Lon: 110.832379},
	}

	require.NoError(t, store.Put(datastructure.EdgeID(1), coords))

	got, err := store.GetCoordinatesAlongRoad(context.Background(), datastructure.EdgeID(1))
	require.NoError(t, err)
	assert.Equal(t, coords, got)
}

func TestStoreGetMissingEdgeErrors(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir)
	require.NoError(t, err)
	defer store.Close()

	_, err = store.GetCoordinatesAlongRoad(context.Background(), datastructure.EdgeID(404))
	assert.Error(t, err)
}

func TestStoreGetRespectsCancelledContext(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir)
	require.NoError(t, err)
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = store.GetCoordinatesAlongRoad(ctx, datastructure.EdgeID(1))
	assert.Error(t, err)
}
