// vi: sw=4 ts=4:

/*

	Mnemonic:	planner
	Abstract:	The disaster-aware "time-windowed widest-path greedy"
				planner. For each backup pair, in descending demand order,
				computes an all-switch-pairs widest-path closure
				(Floyd-Warshall style) over the expected bandwidth for the
				current time window, assigns the pair its widest path, and
				deducts the assigned bottleneck from the shared
				expected-bandwidth pool before moving to the next pair.
				Matrices are plain value-returning maps rather than
				mutated in place, so a closure run never leaks state into
				the next one.
	Date:		31 Jul 2026
*/

package routecalc

import (
	"fmt"
	"sort"

	"dresnet/gizmos"
)

// Assignment is one planned backup flow: a client/server pair and the
// path chosen for it. Path is the zero value (no hops) when the pair is
// unreachable, or when client and server share a neighbour switch.
type Assignment struct {
	Client gizmos.HostClient
	Server gizmos.HostServer
	Path   gizmos.Path
}

// DisasterAwarePlan computes the plan for the nth update tick.
func DisasterAwarePlan(topo *gizmos.Topology, nthUpdate int, updateIntervalSec int64) ([]Assignment, error) {
	if nthUpdate < 0 {
		return nil, fmt.Errorf("routecalc: nth_update must be >= 0, got %d", nthUpdate)
	}
	if updateIntervalSec <= 0 {
		return nil, fmt.Errorf("routecalc: update_interval_sec must be > 0, got %d", updateIntervalSec)
	}

	t0 := int64(nthUpdate) * updateIntervalSec
	t1 := t0 + updateIntervalSec

	switches := topo.Switches()
	links := topo.Links()

	expectedBW := make(map[string]float64, len(links)) // link.Key() -> current expected bandwidth, mutated as pairs are assigned
	for _, l := range links {
		expectedBW[l.Key()] = expectedBandwidth(l, t0, t1, updateIntervalSec)
	}

	pairs := topo.HostPairs()
	order := make([]int, len(pairs))
	for i := range order {
		order[i] = i
	}
	// stable sort descending by requested throughput; ties keep input order
	sort.SliceStable(order, func(a, b int) bool {
		return pairs[order[a]].RequestedThroughput() > pairs[order[b]].RequestedThroughput()
	})

	result := make([]Assignment, 0, len(pairs))
	for _, idx := range order {
		pair := pairs[idx]

		_, paths := widestPathClosure(switches, links, expectedBW)

		path := paths[pair.Client.NeighborSwitch][pair.Server.NeighborSwitch]
		result = append(result, Assignment{Client: pair.Client, Server: pair.Server, Path: path})

		if path.Len() == 0 {
			continue // unreachable (or client/server share a switch): nothing to deduct
		}

		bn := path.BottleneckBandwidth()
		for _, l := range path.Links {
			expectedBW[l.Key()] -= bn // negative values are allowed; they mark the link overcommitted for later pairs
		}
	}

	return result, nil
}

// expectedBandwidth projects a link's nominal bandwidth forward across the
// current window, scaled by the fraction of the window the link is
// expected to stay up before its predicted failure time.
func expectedBandwidth(l gizmos.Link, t0, t1, updateIntervalSec int64) float64 {
	var ratio float64
	switch {
	case l.FailAtSec == gizmos.UnknownFailTime || t1 <= l.FailAtSec:
		ratio = 1
	case t0 <= l.FailAtSec && l.FailAtSec < t1:
		ratio = float64(l.FailAtSec-t0) / float64(updateIntervalSec)
	default: // l.FailAtSec < t0
		ratio = 0
	}
	return ratio * l.BandwidthMbps
}

// widestPathClosure runs the Floyd-Warshall-style widest-path closure
// over the current expected bandwidths and returns the full bandwidth
// and path matrices indexed by switch name.
func widestPathClosure(
	switches []gizmos.Switch,
	links []gizmos.Link,
	expectedBW map[string]float64,
) (map[string]map[string]float64, map[string]map[string]gizmos.Path) {
	bw := make(map[string]map[string]float64, len(switches))
	paths := make(map[string]map[string]gizmos.Path, len(switches))

	for _, s1 := range switches {
		bw[s1.Name] = make(map[string]float64, len(switches))
		paths[s1.Name] = make(map[string]gizmos.Path, len(switches))
		for _, s2 := range switches {
			if s1.Name == s2.Name {
				bw[s1.Name][s2.Name] = gizmos.BandwidthInf
			} else {
				bw[s1.Name][s2.Name] = -gizmos.BandwidthInf
			}
			paths[s1.Name][s2.Name] = gizmos.EmptyPath
		}
	}

	for _, l := range links {
		cur := expectedBW[l.Key()]
		bw[l.Switch1][l.Switch2] = cur
		bw[l.Switch2][l.Switch1] = cur
		paths[l.Switch1][l.Switch2] = gizmos.Path{Links: []gizmos.DirectedLink{gizmos.NewDirectedLink(l, l.Switch1, l.Switch2)}}
		paths[l.Switch2][l.Switch1] = gizmos.Path{Links: []gizmos.DirectedLink{gizmos.NewDirectedLink(l, l.Switch2, l.Switch1)}}
	}

	for _, s2 := range switches {
		for _, s1 := range switches {
			for _, s3 := range switches {
				direct := bw[s1.Name][s3.Name]
				viaS2 := min64(bw[s1.Name][s2.Name], bw[s2.Name][s3.Name])
				if viaS2 > direct {
					bw[s1.Name][s3.Name] = viaS2
					bw[s3.Name][s1.Name] = viaS2
					paths[s1.Name][s3.Name] = gizmos.Merge(paths[s1.Name][s2.Name], paths[s2.Name][s3.Name])
					paths[s3.Name][s1.Name] = gizmos.Merge(paths[s3.Name][s2.Name], paths[s2.Name][s1.Name])
				}
			}
		}
	}

	return bw, paths
}

func min64(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
