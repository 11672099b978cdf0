// vi: sw=4 ts=4:

/*

	Mnemonic:	topology
	Abstract:	The Topology aggregate: the set of switches, links and host
				pairs the route calculator plans over. This type is a bare
				value -- no locking -- on the assumption that whoever owns
				it (routecalc.Calculator) serializes access with its own
				mutex around every mutation and plan computation.
	Date:		31 Jul 2026
*/

package gizmos

// Topology holds switches, links and host pairs. Host-pair order is
// significant (it is the tie-break order the disaster-aware planner falls
// back to for equal-demand pairs); UpdateHostClient re-appends the
// updated pair at the end of that order.
type Topology struct {
	switches    map[string]Switch
	switchOrder []string // registration order; planner output determinism depends on iterating switches in a fixed order, not map order
	links       []Link
	hostPairs   []HostPair
}

// NewTopology returns an empty topology.
func NewTopology() *Topology {
	return &Topology{
		switches: make(map[string]Switch),
	}
}

// AddSwitch registers a switch. Idempotent: re-adding an existing switch
// is a no-op.
func (t *Topology) AddSwitch(name string) {
	if _, ok := t.switches[name]; ok {
		log.Debug().Str("switch", name).Msg("addSwitch: already registered, ignoring")
		return
	}
	t.switches[name] = NewSwitch(name)
	t.switchOrder = append(t.switchOrder, name)
}

// RemoveSwitch deregisters a switch and cascades to any incident links.
// Idempotent: removing a switch that isn't registered is a no-op.
func (t *Topology) RemoveSwitch(name string) {
	if _, ok := t.switches[name]; !ok {
		log.Debug().Str("switch", name).Msg("removeSwitch: not registered, ignoring")
		return
	}
	delete(t.switches, name)

	for i, n := range t.switchOrder {
		if n == name {
			t.switchOrder = append(t.switchOrder[:i:i], t.switchOrder[i+1:]...)
			break
		}
	}

	kept := t.links[:0]
	dropped := 0
	for _, l := range t.links {
		if !l.HasEndpoint(name) {
			kept = append(kept, l)
		} else {
			dropped++
		}
	}
	t.links = kept
	if dropped > 0 {
		log.Debug().Str("switch", name).Int("links_dropped", dropped).Msg("removeSwitch: cascaded to incident links")
	}
}

// HasSwitch reports whether a switch is registered.
func (t *Topology) HasSwitch(name string) bool {
	_, ok := t.switches[name]
	return ok
}

// Switches returns the registered switches in registration order.
func (t *Topology) Switches() []Switch {
	out := make([]Switch, 0, len(t.switchOrder))
	for _, n := range t.switchOrder {
		out = append(out, t.switches[n])
	}
	return out
}

// AddLink adds a link between two registered switches, deduplicating on
// the unordered endpoint pair. Idempotent: adding a link that already
// exists (by endpoint pair, in either order) is a no-op.
func (t *Topology) AddLink(l Link) {
	if t.findLinkIndex(l.Switch1, l.Switch2) >= 0 {
		return
	}
	t.links = append(t.links, l)
}

// RemoveLink removes the link between two switches, if any. Idempotent.
func (t *Topology) RemoveLink(switch1, switch2 string) {
	idx := t.findLinkIndex(switch1, switch2)
	if idx < 0 {
		return
	}
	t.links = append(t.links[:idx], t.links[idx+1:]...)
}

// RegisterLinkFailTime replaces the link between switch1 and switch2 with
// one carrying the given predicted failure time. Returns false if no such
// link exists.
func (t *Topology) RegisterLinkFailTime(switch1, switch2 string, failAtSec int64) bool {
	idx := t.findLinkIndex(switch1, switch2)
	if idx < 0 {
		log.Warn().Str("switch1", switch1).Str("switch2", switch2).Msg("registerLinkFailTime: no such link")
		return false
	}
	t.links[idx].FailAtSec = failAtSec
	return true
}

// FindLink returns the link connecting switch1 and switch2, if any.
func (t *Topology) FindLink(switch1, switch2 string) (Link, bool) {
	idx := t.findLinkIndex(switch1, switch2)
	if idx < 0 {
		log.Debug().Str("switch1", switch1).Str("switch2", switch2).Msg("findLink: no such link")
		return Link{}, false
	}
	return t.links[idx], true
}

func (t *Topology) findLinkIndex(switch1, switch2 string) int {
	want := Link{Switch1: switch1, Switch2: switch2}.Key()
	for i, l := range t.links {
		if l.Key() == want {
			return i
		}
	}
	return -1
}

// Links returns all links, in insertion order.
func (t *Topology) Links() []Link {
	out := make([]Link, len(t.links))
	copy(out, t.links)
	return out
}

// LinksOf returns the links incident to sw.
func (t *Topology) LinksOf(sw string) []Link {
	var out []Link
	for _, l := range t.links {
		if l.HasEndpoint(sw) {
			out = append(out, l)
		}
	}
	return out
}

// AddHostPair registers a new backup pair. Appended to the end, so input
// order (the deterministic tie-break for equal-demand pairs) is
// preserved.
func (t *Topology) AddHostPair(p HostPair) {
	t.hostPairs = append(t.hostPairs, p)
}

// UpdateHostClient mutates the client half of a pair in place by popping
// and re-appending it, so repeated updates move a pair to the back of
// tie-break order. Unknown client names are a no-op.
func (t *Topology) UpdateHostClient(clientName string, failAtSec int64, dataSizeGB float64) {
	idx := -1
	for i, p := range t.hostPairs {
		if p.Client.Name == clientName {
			idx = i
			break
		}
	}
	if idx < 0 {
		log.Debug().Str("client", clientName).Msg("updateHostClient: unknown client, ignoring")
		return
	}

	pair := t.hostPairs[idx]
	pair.Client.FailAtSec = failAtSec
	pair.Client.DataSizeGB = dataSizeGB

	t.hostPairs = append(t.hostPairs[:idx:idx], t.hostPairs[idx+1:]...)
	t.hostPairs = append(t.hostPairs, pair)
}

// HostPairs returns all registered pairs in tie-break order.
func (t *Topology) HostPairs() []HostPair {
	out := make([]HostPair, len(t.hostPairs))
	copy(out, t.hostPairs)
	return out
}

// Reset discards all switches, links and host pairs.
func (t *Topology) Reset() {
	t.switches = make(map[string]Switch)
	t.switchOrder = nil
	t.links = nil
	t.hostPairs = nil
}
