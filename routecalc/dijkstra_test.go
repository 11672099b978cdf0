// vi: sw=4 ts=4:

package routecalc_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dresnet/gizmos"
	"dresnet/routecalc"
)

// TestShortestPath_TrivialTwoSwitch is the simplest possible case: one
// link, src and dst at either end.
func TestShortestPath_TrivialTwoSwitch(t *testing.T) {
	topo := gizmos.NewTopology()
	topo.AddSwitch("n1")
	topo.AddSwitch("n2")
	topo.AddLink(gizmos.Link{Switch1: "n1", Switch2: "n2", BandwidthMbps: 10, FailAtSec: gizmos.UnknownFailTime})

	path, err := routecalc.ShortestPath(topo, "n1", "n2")
	require.NoError(t, err)
	require.Equal(t, 1, path.Len())
	assert.Equal(t, "n1", path.Links[0].From)
	assert.Equal(t, "n2", path.Links[0].To)
}

// TestShortestPath_Unreachable checks that an unreachable destination
// comes back as "no path" (empty path, no error), not a configuration
// error -- errors are reserved for unknown switches and invalid
// parameters.
func TestShortestPath_Unreachable(t *testing.T) {
	topo := gizmos.NewTopology()
	topo.AddSwitch("n1")
	topo.AddSwitch("n2")
	topo.AddSwitch("n3")
	topo.AddLink(gizmos.Link{Switch1: "n1", Switch2: "n2", BandwidthMbps: 10, FailAtSec: gizmos.UnknownFailTime})

	path, err := routecalc.ShortestPath(topo, "n1", "n3")
	require.NoError(t, err)
	assert.Equal(t, 0, path.Len())
}

func TestShortestPath_UnknownSwitchIsError(t *testing.T) {
	topo := gizmos.NewTopology()
	topo.AddSwitch("n1")

	_, err := routecalc.ShortestPath(topo, "n1", "nope")
	assert.Error(t, err)
}

// buildGridTopology builds a 16-node grid, named n1..n16, with known
// per-edge weights for exercising shortest-path selection against a
// topology too large to eyeball. Link weight w is reproduced exactly
// as the Dijkstra cost by setting bandwidth = 10/w, since Cost()
// computes floor(10/bandwidth).
func buildGridTopology(t *testing.T) (*gizmos.Topology, map[[2]string]gizmos.Link) {
	t.Helper()
	topo := gizmos.NewTopology()
	for i := 1; i <= 16; i++ {
		topo.AddSwitch(fmt.Sprintf("n%d", i))
	}

	type edge struct {
		a, b int
		w    float64
	}
	edges := []edge{
		{1, 2, 2}, {1, 5, 3}, {2, 3, 3}, {2, 5, 1}, {2, 6, 1},
		{3, 4, 1}, {3, 6, 2}, {3, 7, 2}, {4, 7, 3}, {4, 8, 2},
		{5, 6, 5}, {5, 9, 2}, {6, 7, 3}, {6, 9, 2}, {6, 10, 1},
		{6, 11, 1}, {7, 8, 2}, {7, 11, 2}, {8, 11, 5}, {8, 12, 1},
		{9, 10, 6}, {9, 13, 1}, {9, 14, 1}, {10, 11, 1}, {10, 14, 3},
		{11, 12, 1}, {11, 14, 1}, {11, 15, 2}, {12, 15, 5}, {12, 16, 2},
		{13, 14, 3}, {14, 15, 2}, {15, 16, 4},
	}

	byEndpoints := make(map[[2]string]gizmos.Link, len(edges))
	for _, e := range edges {
		s1 := fmt.Sprintf("n%d", e.a)
		s2 := fmt.Sprintf("n%d", e.b)
		l := gizmos.Link{Switch1: s1, Switch2: s2, BandwidthMbps: 10.0 / e.w, FailAtSec: gizmos.UnknownFailTime}
		topo.AddLink(l)
		byEndpoints[[2]string{s1, s2}] = l
		byEndpoints[[2]string{s2, s1}] = l
	}
	return topo, byEndpoints
}

func pathPairs(p gizmos.Path) [][2]string {
	out := make([][2]string, len(p.Links))
	for i, l := range p.Links {
		out[i] = [2]string{l.Switch1, l.Switch2}
	}
	return out
}

// TestShortestPath_GridToN4 is literal scenario S6's first case.
func TestShortestPath_GridToN4(t *testing.T) {
	topo, _ := buildGridTopology(t)

	path, err := routecalc.ShortestPath(topo, "n13", "n4")
	require.NoError(t, err)
	require.True(t, path.Valid())

	start, end := path.Endpoints()
	assert.Equal(t, "n13", start)
	assert.Equal(t, "n4", end)

	want := [][2]string{{"n9", "n13"}, {"n6", "n9"}, {"n3", "n6"}, {"n3", "n4"}}
	assert.ElementsMatch(t, want, pathPairs(path))
	assert.Equal(t, len(want), path.Len())
}

// TestShortestPath_GridToN16 is literal scenario S6's second case:
// changing dst to n16 with the same source and topology.
func TestShortestPath_GridToN16(t *testing.T) {
	topo, _ := buildGridTopology(t)

	path, err := routecalc.ShortestPath(topo, "n13", "n16")
	require.NoError(t, err)
	require.True(t, path.Valid())

	start, end := path.Endpoints()
	assert.Equal(t, "n13", start)
	assert.Equal(t, "n16", end)

	want := [][2]string{{"n9", "n13"}, {"n9", "n14"}, {"n11", "n14"}, {"n11", "n12"}, {"n12", "n16"}}
	assert.ElementsMatch(t, want, pathPairs(path))
	assert.Equal(t, len(want), path.Len())
}
