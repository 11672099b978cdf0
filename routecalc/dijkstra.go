// vi: sw=4 ts=4:

/*

	Mnemonic:	dijkstra
	Abstract:	The classical shortest-path baseline, independent per pair: a
				lazy-fixing search that repeatedly picks the unfixed switch
				of lowest cost and relaxes its neighbours, rather than a
				heap-based Dijkstra. Simpler to keep correct at the switch
				counts this controller plans over, and ties resolve by
				registration order so results stay reproducible run to run.
	Date:		31 Jul 2026
*/

package routecalc

import (
	"fmt"

	"dresnet/gizmos"
)

const costInf = 1 << 60

// ShortestPath computes the Dijkstra-cost shortest path between two
// switches in topo.
//
// Tie-breaking among switches of equal cost follows the order switches
// were registered in (gizmos.Topology.Switches), which keeps the result
// deterministic for a given sequence of AddSwitch calls.
func ShortestPath(topo *gizmos.Topology, src, dst string) (gizmos.Path, error) {
	if !topo.HasSwitch(src) {
		return gizmos.EmptyPath, fmt.Errorf("routecalc: unknown source switch %q", src)
	}
	if !topo.HasSwitch(dst) {
		return gizmos.EmptyPath, fmt.Errorf("routecalc: unknown destination switch %q", dst)
	}
	if src == dst {
		return gizmos.EmptyPath, nil
	}

	switches := topo.Switches()
	cost := make(map[string]int64, len(switches))
	fixed := make(map[string]bool, len(switches))
	viaLink := make(map[string]gizmos.DirectedLink) // switch -> link used to reach it from its predecessor

	for _, s := range switches {
		cost[s.Name] = costInf
	}
	cost[src] = 0

	for len(fixed) < len(switches) {
		cur, ok := pickMinUnfixed(switches, cost, fixed)
		if !ok {
			break // remaining switches are all unreachable
		}
		fixed[cur] = true

		if cur == dst {
			break
		}

		for _, l := range topo.LinksOf(cur) {
			neighbor := l.Other(cur)
			if fixed[neighbor] {
				continue
			}
			alt := cost[cur] + l.Cost()
			if alt < cost[neighbor] {
				cost[neighbor] = alt
				viaLink[neighbor] = gizmos.NewDirectedLink(l, cur, neighbor)
			}
		}
	}

	if _, ok := viaLink[dst]; !ok && src != dst {
		return gizmos.EmptyPath, nil // unreachable destination is a legitimate outcome, not an error
	}

	return reconstructPath(viaLink, src, dst), nil
}

// pickMinUnfixed returns the not-yet-fixed switch with the lowest current
// cost, scanning switches in registration order so ties resolve
// deterministically. Returns ok=false once every reachable switch has
// been fixed.
func pickMinUnfixed(switches []gizmos.Switch, cost map[string]int64, fixed map[string]bool) (string, bool) {
	best := ""
	bestCost := int64(costInf + 1)
	for _, s := range switches {
		if fixed[s.Name] {
			continue
		}
		if cost[s.Name] < bestCost {
			bestCost = cost[s.Name]
			best = s.Name
		}
	}
	if best == "" || bestCost >= costInf {
		return "", false
	}
	return best, true
}

func reconstructPath(viaLink map[string]gizmos.DirectedLink, src, dst string) gizmos.Path {
	var hops []gizmos.DirectedLink
	cur := dst
	for cur != src {
		l, ok := viaLink[cur]
		if !ok {
			return gizmos.EmptyPath
		}
		hops = append(hops, l)
		cur = l.From
	}
	// hops were collected dst -> src; reverse to src -> dst
	for i, j := 0, len(hops)-1; i < j; i, j = i+1, j-1 {
		hops[i], hops[j] = hops[j], hops[i]
	}
	return gizmos.Path{Links: hops}
}
