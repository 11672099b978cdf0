// vi: sw=4 ts=4:

/*

	Mnemonic:	admin
	Abstract:	The declared-topology and operational admin surface, as
				Core methods. The HTTP/JSON transport is an external
				caller; each of these methods does nothing but validate
				and hand the work to the owning goroutine via call.
	Date:		31 Jul 2026
*/

package controller

import (
	"fmt"

	"dresnet/flowinstall"
	"dresnet/gizmos"
)

// ClientSpec names everything AddHostPair needs to know about the client
// half of a pair: IP and access port for flow installation, plus the
// fail time and data size a HostClient carries for route planning.
type ClientSpec struct {
	Name       string
	Switch     string
	Port       int
	IP         string
	FailAtSec  int64
	DataSizeGB float64
}

// ServerSpec is the server half of a pair.
type ServerSpec struct {
	Name   string
	Switch string
	Port   int
	IP     string
}

// AddSwitch registers a switch ahead of any switch-features event and
// installs its table-miss rule -- the seam a declared (non-discovered)
// topology config uses to pre-populate switches, per the "topology is
// declared" non-goal. Idempotent.
func (c *Core) AddSwitch(name string) error {
	_, err := c.call(func() (interface{}, error) {
		return nil, c.addSwitchLocked(name)
	})
	return err
}

// AddLink adds a link and its port bindings both ways. A link already
// registered between u and v is a no-op.
func (c *Core) AddLink(u string, uPort int, v string, vPort int, bwMbps float64) error {
	_, err := c.call(func() (interface{}, error) {
		if c.calc.HasLink(u, v) {
			return nil, nil
		}
		c.calc.AddLink(gizmos.Link{Switch1: u, Switch2: v, BandwidthMbps: bwMbps, FailAtSec: gizmos.UnknownFailTime})
		c.bindPort(u, v, uPort)
		c.bindPort(v, u, vPort)
		return nil, nil
	})
	return err
}

// RegisterLinkFailTime updates the predicted fail time on the link
// between u and v. Errors if no such link is registered.
func (c *Core) RegisterLinkFailTime(u, v string, failAtSec int64) error {
	_, err := c.call(func() (interface{}, error) {
		if !c.calc.RegisterLinkFailTime(u, v, failAtSec) {
			return nil, fmt.Errorf("controller: no link between %s and %s", u, v)
		}
		return nil, nil
	})
	return err
}

// AddHostPair registers a backup pair, binds both hosts' IPs and access
// ports, and installs their host-edge flow entries at priority 50. Errors
// if either neighbor switch is unregistered.
func (c *Core) AddHostPair(client ClientSpec, server ServerSpec) error {
	_, err := c.call(func() (interface{}, error) {
		if !c.calc.HasSwitch(client.Switch) {
			return nil, fmt.Errorf("controller: unknown neighbor switch %s for client %s", client.Switch, client.Name)
		}
		if !c.calc.HasSwitch(server.Switch) {
			return nil, fmt.Errorf("controller: unknown neighbor switch %s for server %s", server.Switch, server.Name)
		}

		c.calc.AddHostPair(gizmos.HostPair{
			Client: gizmos.HostClient{
				Name:           client.Name,
				NeighborSwitch: client.Switch,
				FailAtSec:      client.FailAtSec,
				DataSizeGB:     client.DataSizeGB,
			},
			Server: gizmos.HostServer{Name: server.Name, NeighborSwitch: server.Switch},
		})

		c.bindPort(client.Switch, client.Name, client.Port)
		c.bindPort(server.Switch, server.Name, server.Port)
		c.ips[client.Name] = client.IP
		c.ips[server.Name] = server.IP

		c.installHostEdge(client.Switch, client.Name, client.IP)
		c.installHostEdge(server.Switch, server.Name, server.IP)
		return nil, nil
	})
	return err
}

// UpdateHostClient mutates a client's fail time and data size in place.
// Unknown client names are a no-op.
func (c *Core) UpdateHostClient(name string, failAtSec int64, dataSizeGB float64) error {
	_, err := c.call(func() (interface{}, error) {
		c.calc.UpdateHostClient(name, failAtSec, dataSizeGB)
		return nil, nil
	})
	return err
}

// StartUpdatePath triggers the update loop's start().
func (c *Core) StartUpdatePath() {
	_, _ = c.call(func() (interface{}, error) {
		c.startLocked()
		return nil, nil
	})
}

// Init stops the update loop, clears the topology and port/IP/learning
// tables, and resets the route-priority counter back to a clean slate.
func (c *Core) Init() {
	_, _ = c.call(func() (interface{}, error) {
		c.stopLocked()
		c.calc.Reset()
		c.installer.Reset()
		c.portTo = make(map[string]map[string]int)
		c.portAt = make(map[string]map[int]string)
		c.ips = make(map[string]string)
		c.learned = make(map[string]map[string]int)
		return nil, nil
	})
}

// Switches, Links and HostPairs give the admin surface a read-only
// snapshot of topology state for its GET endpoints.
func (c *Core) Switches() []gizmos.Switch {
	v, _ := c.call(func() (interface{}, error) { return c.calc.Switches(), nil })
	return v.([]gizmos.Switch)
}

func (c *Core) Links() []gizmos.Link {
	v, _ := c.call(func() (interface{}, error) { return c.calc.Links(), nil })
	return v.([]gizmos.Link)
}

func (c *Core) HostPairs() []gizmos.HostPair {
	v, _ := c.call(func() (interface{}, error) { return c.calc.HostPairs(), nil })
	return v.([]gizmos.HostPair)
}

// PortMapping returns a snapshot of the port map, keyed by switch name
// then neighbor name, for the admin surface's GET /port-to-switch.
func (c *Core) PortMapping() map[string]map[string]int {
	v, _ := c.call(func() (interface{}, error) {
		out := make(map[string]map[string]int, len(c.portTo))
		for sw, m := range c.portTo {
			cp := make(map[string]int, len(m))
			for neighbor, port := range m {
				cp[neighbor] = port
			}
			out[sw] = cp
		}
		return out, nil
	})
	return v.(map[string]map[string]int)
}

func (c *Core) installHostEdge(sw, hostName, ip string) {
	dpid, err := gizmos.NewSwitch(sw).DatapathID()
	if err != nil {
		c.log.Warn().Err(err).Str("switch", sw).Msg("host-edge install: bad switch name")
		return
	}
	port, ok := c.portTo[sw][hostName]
	if !ok {
		c.log.Warn().Str("switch", sw).Str("host", hostName).Msg("host-edge install: no bound port")
		return
	}
	actions := []flowinstall.Action{flowinstall.OutputTo(port)}
	matches := []flowinstall.Match{
		{EthType: flowinstall.EtherTypeIPv4, Ipv4Dst: ip},
		{EthType: flowinstall.EtherTypeARP, ArpTpa: ip},
	}
	for _, match := range matches {
		if err := c.transport.InstallFlow(dpid, flowinstall.PriorityHostEdge, match, actions, nil); err != nil {
			c.log.Warn().Err(err).Str("switch", sw).Str("host", hostName).Msg("host-edge flow install failed")
		}
	}
}
