// vi: sw=4 ts=4:

/*

	Mnemonic:	link
	Abstract:	Link and DirectedLink value types. A Link is an unordered
				pair of switch names with a bandwidth and an optional
				predicted failure time; a DirectedLink pins an orientation
				onto one so that a Path can be expressed as a sequence of
				hops. These are pure values -- no pointers to the switches
				they connect -- which keeps the topology acyclic and easy
				to copy and compare.
	Date:		31 Jul 2026
*/

package gizmos

import "fmt"

// UnknownFailTime marks a link or client whose predicted failure time has
// not been determined.
const UnknownFailTime int64 = -1

// dijkstraCostNumerator is the constant C in cost = floor(C / bandwidth);
// larger bandwidth yields lower cost.
const dijkstraCostNumerator = 10

// Link is an unordered connection between two switches.
type Link struct {
	Switch1       string
	Switch2       string
	BandwidthMbps float64
	FailAtSec     int64 // UnknownFailTime ("-1") if not predicted
}

// Key returns a canonical, order-independent identity for the unordered
// pair this link connects -- used by Topology to dedupe links.
func (l Link) Key() string {
	a, b := l.Switch1, l.Switch2
	if a > b {
		a, b = b, a
	}
	return a + "\x00" + b
}

// Other returns the switch name at the far end of this link from sw, or ""
// if sw is not one of the link's endpoints.
func (l Link) Other(sw string) string {
	switch sw {
	case l.Switch1:
		return l.Switch2
	case l.Switch2:
		return l.Switch1
	default:
		return ""
	}
}

// HasEndpoint reports whether sw is one of the link's two endpoints.
func (l Link) HasEndpoint(sw string) bool {
	return sw == l.Switch1 || sw == l.Switch2
}

// Cost is the Dijkstra edge weight derived from bandwidth: faster links
// cost less.
func (l Link) Cost() int64 {
	if l.BandwidthMbps <= 0 {
		return dijkstraCostNumerator // degenerate; avoids div-by-zero, treated as worst case
	}
	// the tiny epsilon absorbs floating-point noise from bandwidths that
	// are themselves derived by dividing the numerator (e.g. 10/3), so a
	// value that should floor to 3 doesn't land at 2.999999999996.
	return int64(dijkstraCostNumerator/l.BandwidthMbps + 1e-9)
}

func (l Link) String() string {
	return fmt.Sprintf("%s---%s (%.3fMbps fail=%d)", l.Switch1, l.Switch2, l.BandwidthMbps, l.FailAtSec)
}

// DirectedLink is a Link with an orientation: From -> To.
type DirectedLink struct {
	Link
	From string
	To   string
}

// NewDirectedLink orients the underlying link from -> to. Both names must
// be the link's endpoints (in either order); the caller is trusted here,
// not validated at runtime.
func NewDirectedLink(l Link, from, to string) DirectedLink {
	return DirectedLink{Link: l, From: from, To: to}
}

// Reverse returns the same underlying link oriented the other way.
func (d DirectedLink) Reverse() DirectedLink {
	return DirectedLink{Link: d.Link, From: d.To, To: d.From}
}

// Equal reports whether two directed links connect the same pair of
// switches with the same orientation.
func (d DirectedLink) Equal(o DirectedLink) bool {
	return d.From == o.From && d.To == o.To
}

// IsReverseOf reports whether o traverses the same underlying link as d
// but in the opposite direction -- the "U-turn" pairing that Path.Merge
// cancels.
func (d DirectedLink) IsReverseOf(o DirectedLink) bool {
	return d.From == o.To && d.To == o.From
}

func (d DirectedLink) String() string {
	return fmt.Sprintf("%s->%s", d.From, d.To)
}
