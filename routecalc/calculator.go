// vi: sw=4 ts=4:

/*

	Mnemonic:	calculator
	Abstract:	Calculator owns the topology aggregate and selects between
				the two routing strategies, dijkstra and disaster-aware,
				via a small enum rather than a run-time name lookup. One
				mutex guards the topology for the duration of any
				mutation or plan computation, so a plan always sees a
				topology that isn't changing underneath it.
	Date:		31 Jul 2026
*/

package routecalc

import (
	"fmt"
	"sync"

	"dresnet/gizmos"
)

// Strategy selects which routing algorithm Calculator.Plan uses.
type Strategy int

const (
	// StrategyDijkstra computes an independent shortest path per pair,
	// ignoring fail-time predictions.
	StrategyDijkstra Strategy = iota
	// StrategyDisasterAware runs the time-windowed widest-path greedy
	// planner.
	StrategyDisasterAware
)

func (s Strategy) String() string {
	switch s {
	case StrategyDijkstra:
		return "dijkstra"
	case StrategyDisasterAware:
		return "disaster-aware"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// Calculator is the route calculator: topology ownership plus strategy
// selection, safe for concurrent use.
type Calculator struct {
	mu       sync.Mutex
	topo     *gizmos.Topology
	strategy Strategy
}

// NewCalculator returns a Calculator running the given strategy over an
// empty topology.
func NewCalculator(strategy Strategy) *Calculator {
	return &Calculator{
		topo:     gizmos.NewTopology(),
		strategy: strategy,
	}
}

// AddSwitch registers a switch.
func (c *Calculator) AddSwitch(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.topo.AddSwitch(name)
}

// RemoveSwitch deregisters a switch and its incident links.
func (c *Calculator) RemoveSwitch(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.topo.RemoveSwitch(name)
}

// AddLink adds a link, deduplicating on endpoint pair.
func (c *Calculator) AddLink(l gizmos.Link) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.topo.AddLink(l)
}

// RemoveLink removes the link between two switches, if any.
func (c *Calculator) RemoveLink(switch1, switch2 string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.topo.RemoveLink(switch1, switch2)
}

// HasSwitch reports whether a switch is registered.
func (c *Calculator) HasSwitch(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.topo.HasSwitch(name)
}

// HasLink reports whether a link exists between switch1 and switch2.
func (c *Calculator) HasLink(switch1, switch2 string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.topo.FindLink(switch1, switch2)
	return ok
}

// RegisterLinkFailTime updates a link's predicted failure time. Returns
// false if no such link is registered; the caller surfaces that as a
// configuration error.
func (c *Calculator) RegisterLinkFailTime(switch1, switch2 string, failAtSec int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.topo.RegisterLinkFailTime(switch1, switch2, failAtSec)
}

// AddHostPair registers a new backup pair.
func (c *Calculator) AddHostPair(p gizmos.HostPair) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.topo.AddHostPair(p)
}

// UpdateHostClient mutates a client's fail-time/data-size, re-inserting
// the pair at the back of tie-break order.
func (c *Calculator) UpdateHostClient(clientName string, failAtSec int64, dataSizeGB float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.topo.UpdateHostClient(clientName, failAtSec, dataSizeGB)
}

// Reset discards all topology state.
func (c *Calculator) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.topo.Reset()
}

// Switches, Links and HostPairs expose read-only snapshots for the admin
// surface. Each copies under the lock and returns a value the caller may
// read without further synchronization.
func (c *Calculator) Switches() []gizmos.Switch {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.topo.Switches()
}

func (c *Calculator) Links() []gizmos.Link {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.topo.Links()
}

func (c *Calculator) HostPairs() []gizmos.HostPair {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.topo.HostPairs()
}

// Plan computes the forwarding plan for update tick nthUpdate under the
// configured strategy. For StrategyDijkstra, updateIntervalSec is
// ignored and each pair gets its own independent shortest path. For
// StrategyDisasterAware, see DisasterAwarePlan.
func (c *Calculator) Plan(nthUpdate int, updateIntervalSec int64) ([]Assignment, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.strategy {
	case StrategyDijkstra:
		return c.planDijkstra()
	case StrategyDisasterAware:
		return DisasterAwarePlan(c.topo, nthUpdate, updateIntervalSec)
	default:
		return nil, fmt.Errorf("routecalc: unknown strategy %v", c.strategy)
	}
}

func (c *Calculator) planDijkstra() ([]Assignment, error) {
	pairs := c.topo.HostPairs()
	out := make([]Assignment, 0, len(pairs))
	for _, p := range pairs {
		path, err := ShortestPath(c.topo, p.Client.NeighborSwitch, p.Server.NeighborSwitch)
		if err != nil {
			return nil, err
		}
		out = append(out, Assignment{Client: p.Client, Server: p.Server, Path: path})
	}
	return out, nil
}
