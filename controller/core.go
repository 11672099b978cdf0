// vi: sw=4 ts=4:

/*

	Mnemonic:	core
	Abstract:	Core is the controller: it owns the port map and IP
				bindings (the route calculator owns only the topology
				itself), wires the route calculator to the flow
				installer, and serializes switch events, admin operations
				and update-loop ticks onto one goroutine so nothing reads
				the topology while another event is mutating it.
	Date:		31 Jul 2026
*/

package controller

import (
	"fmt"

	"github.com/rs/zerolog"

	"dresnet/flowinstall"
	"dresnet/gizmos"
	"dresnet/routecalc"
)

// Core is the controller core. Exported methods are safe for concurrent
// use by any number of callers: each hands its work to the owning
// goroutine via call and blocks for the result. PortTo and IPOf are the
// exception: they read the port and IP maps directly, without call, and
// are used by the flow installer from inside a tick on the owning
// goroutine.
type Core struct {
	calc      *routecalc.Calculator
	installer *flowinstall.Installer
	transport flowinstall.Transport

	updateIntervalSec int64

	requests chan request
	done     chan struct{}

	// portTo/portAt together form the bidirectional port map the
	// controller keeps: portTo[sw][neighbor] = port, portAt[sw][port] =
	// neighbor. "neighbor" is either another switch's name or a host
	// name -- the map doesn't distinguish, the way a real port table
	// doesn't care what's attached to a port.
	portTo map[string]map[string]int
	portAt map[string]map[int]string

	ips map[string]string // host name -> IPv4 address

	learned map[string]map[string]int // switch name -> eth addr -> in_port, for the learning bridge

	updating    bool
	updateCount int
	loopStop    chan struct{} // closed by stopLocked to end the running ticker goroutine, if any

	log zerolog.Logger
}

// NewCore wires a Core around the given route strategy and OpenFlow
// transport, and starts its owning goroutine.
func NewCore(strategy routecalc.Strategy, updateIntervalSec int64, transport flowinstall.Transport, log zerolog.Logger) *Core {
	log = log.With().Str("component", "controller").Logger()
	c := &Core{
		calc:              routecalc.NewCalculator(strategy),
		transport:         transport,
		updateIntervalSec: updateIntervalSec,
		requests:          make(chan request),
		done:              make(chan struct{}),
		portTo:            make(map[string]map[string]int),
		portAt:            make(map[string]map[int]string),
		ips:               make(map[string]string),
		learned:           make(map[string]map[string]int),
		log:               log,
	}
	c.installer = flowinstall.NewInstaller(transport, log)
	go c.run()
	return c
}

// Close stops the owning goroutine and any running update loop. Not part
// of the spec's operation set; provided for clean process shutdown.
func (c *Core) Close() {
	_, _ = c.call(func() (interface{}, error) {
		c.stopLocked()
		return nil, nil
	})
	close(c.done)
}

// PortTo answers flowinstall.PortResolver: which port on sw faces
// neighbor (a switch or a host name).
func (c *Core) PortTo(sw, neighbor string) (int, bool) {
	m, ok := c.portTo[sw]
	if !ok {
		return 0, false
	}
	p, ok := m[neighbor]
	return p, ok
}

// IPOf answers flowinstall.IPResolver: the IPv4 address bound to a host
// name, if any.
func (c *Core) IPOf(hostName string) (string, bool) {
	ip, ok := c.ips[hostName]
	return ip, ok
}

func (c *Core) bindPort(sw, neighbor string, port int) {
	if c.portTo[sw] == nil {
		c.portTo[sw] = make(map[string]int)
	}
	c.portTo[sw][neighbor] = port
	if c.portAt[sw] == nil {
		c.portAt[sw] = make(map[int]string)
	}
	c.portAt[sw][port] = neighbor
}

func (c *Core) unbindPort(sw string, port int) {
	neighbor, ok := c.portAt[sw][port]
	if !ok {
		return
	}
	delete(c.portAt[sw], port)
	if m := c.portTo[sw]; m != nil {
		delete(m, neighbor)
	}
}

// PortStatusReason mirrors the three OpenFlow port-status reasons the
// core cares about.
type PortStatusReason int

const (
	PortAdd PortStatusReason = iota
	PortDelete
	PortModify
)

// OnSwitchFeatures registers a newly-connected switch and installs its
// table-miss rule: send every unmatched frame to the controller, at
// priority 0, the lowest priority reserved for this purpose.
func (c *Core) OnSwitchFeatures(dpid int64) error {
	name := gizmos.SwitchNameFromDatapathID(dpid)
	_, err := c.call(func() (interface{}, error) {
		return nil, c.addSwitchLocked(name)
	})
	return err
}

// addSwitchLocked registers a switch (no-op if already known) and
// installs its table-miss rule. Runs on the owning goroutine.
func (c *Core) addSwitchLocked(name string) error {
	if c.calc.HasSwitch(name) {
		return nil
	}
	c.calc.AddSwitch(name)
	dpid, err := gizmos.NewSwitch(name).DatapathID()
	if err != nil {
		return fmt.Errorf("controller: %w", err)
	}
	miss := flowinstall.OutputToController(true)
	if err := c.transport.InstallFlow(dpid, flowinstall.PriorityTableMiss, flowinstall.Match{}, []flowinstall.Action{miss}, nil); err != nil {
		return fmt.Errorf("controller: table-miss install on %s: %w", name, err)
	}
	return nil
}

// OnPortStatus reacts to a port leaving service by tearing down the link
// it carried, if any: a link is destroyed on port-delete for either
// endpoint. Adds and modifies are observed but otherwise ignored --
// links are created explicitly via AddLink.
func (c *Core) OnPortStatus(dpid int64, port int, reason PortStatusReason) {
	_, _ = c.call(func() (interface{}, error) {
		if reason != PortDelete {
			return nil, nil
		}
		sw := gizmos.SwitchNameFromDatapathID(dpid)
		neighbor, ok := c.portAt[sw][port]
		if !ok {
			return nil, nil
		}
		if c.calc.HasLink(sw, neighbor) {
			c.calc.RemoveLink(sw, neighbor)
		}
		c.unbindPort(sw, port)
		return nil, nil
	})
}
