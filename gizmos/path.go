// vi: sw=4 ts=4:

/*

	Mnemonic:	path
	Abstract:	The Path value type: an ordered sequence of directed links,
				with the merge operation the widest-path closure in
				routecalc uses to compose two sub-paths through a shared
				intermediate switch. Paths are plain values -- Merge always
				returns a fresh Path and never mutates either argument, the
				same way Switch and Link carry no owning back-reference.
	Date:		31 Jul 2026
*/

package gizmos

// BandwidthInf is the sentinel "infinite" bandwidth used as the identity
// element when reducing bottleneck bandwidth over an empty path, and as
// the diagonal value of the widest-path bandwidth matrix in routecalc.
const BandwidthInf = 1e10

// Path is an ordered sequence of directed links. Consecutive links must
// share an endpoint (To of one == From of the next); this is an invariant
// maintained by whoever builds the path (routecalc), not enforced here.
type Path struct {
	Links []DirectedLink
}

// EmptyPath is the zero-value path, used for switches with no route
// between them (diagonal-adjacent or genuinely unreachable).
var EmptyPath = Path{}

// Len reports the number of hops in the path.
func (p Path) Len() int {
	return len(p.Links)
}

// BottleneckBandwidth returns the minimum bandwidth across all links on
// the path, or BandwidthInf for an empty path (the reduction identity).
func (p Path) BottleneckBandwidth() float64 {
	bw := BandwidthInf
	for _, l := range p.Links {
		if l.BandwidthMbps < bw {
			bw = l.BandwidthMbps
		}
	}
	return bw
}

// Reverse returns the path traversed in the opposite direction: hops in
// reverse order, each hop itself reversed.
func (p Path) Reverse() Path {
	out := make([]DirectedLink, len(p.Links))
	for i, l := range p.Links {
		out[len(p.Links)-1-i] = l.Reverse()
	}
	return Path{Links: out}
}

// Merge concatenates two paths while cancelling immediate U-turns: any
// directed link in one path whose reverse appears in the other is removed
// from both before concatenation, and identical links appearing in both
// are deduplicated to one occurrence.
//
// The longer path is treated as the base and walked first; which copy of
// a duplicate link survives depends on that walk order.
func Merge(p1, p2 Path) Path {
	longer, shorter := p1.Links, p2.Links
	if len(p2.Links) > len(p1.Links) {
		longer, shorter = p2.Links, p1.Links
	}

	shorterWork := append([]DirectedLink(nil), shorter...)
	kept := make([]DirectedLink, 0, len(longer))

	for _, l := range longer {
		if idx := indexOfEqualLink(shorterWork, l); idx >= 0 {
			shorterWork = removeLinkAt(shorterWork, idx)
		}
		if idx := indexOfReverseLink(shorterWork, l); idx >= 0 {
			shorterWork = removeLinkAt(shorterWork, idx)
			continue // l and its reverse cancel: neither survives
		}
		kept = append(kept, l)
	}

	return Path{Links: append(kept, shorterWork...)}
}

func indexOfEqualLink(links []DirectedLink, target DirectedLink) int {
	for i, l := range links {
		if l.Equal(target) {
			return i
		}
	}
	return -1
}

func indexOfReverseLink(links []DirectedLink, target DirectedLink) int {
	for i, l := range links {
		if l.IsReverseOf(target) {
			return i
		}
	}
	return -1
}

func removeLinkAt(links []DirectedLink, idx int) []DirectedLink {
	out := make([]DirectedLink, 0, len(links)-1)
	out = append(out, links[:idx]...)
	out = append(out, links[idx+1:]...)
	return out
}

// Endpoints returns the path's start and end switch names, or ("","")
// for an empty path.
func (p Path) Endpoints() (start, end string) {
	if len(p.Links) == 0 {
		return "", ""
	}
	return p.Links[0].From, p.Links[len(p.Links)-1].To
}

// Valid reports whether consecutive links share an endpoint and no
// directed link and its reverse both appear.
func (p Path) Valid() bool {
	for i := 1; i < len(p.Links); i++ {
		if p.Links[i-1].To != p.Links[i].From {
			return false
		}
	}
	for i := range p.Links {
		for j := range p.Links {
			if i != j && p.Links[i].IsReverseOf(p.Links[j]) {
				return false
			}
		}
	}
	return true
}
