package engine_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

// TestSnapshotGolden pins the full post-deal snapshot shape. With the fixed
// shuffler, clock, and token generator the view is fully deterministic, so
// any drift in the projection surfaces as a golden diff.
//
// Regenerate with: go test ./internal/engine -run TestSnapshotGolden -update
func TestSnapshotGolden(t *testing.T) {
	e := newTestEngine(t)
	seatFour(t, e)

	snap, err := e.Snapshot(context.Background(), "alice")
	require.NoError(t, err)
	require.NotNil(t, snap)

	out, err := json.MarshalIndent(snap, "", "  ")
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "snapshot_post_deal", out)
}
