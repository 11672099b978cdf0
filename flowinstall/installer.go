// vi: sw=4 ts=4:

/*

	Mnemonic:	installer
	Abstract:	Translates a planned (client, server, path) triple into
				symmetric per-hop flow entries and pushes them through the
				Transport at a monotonically increasing priority, one pass
				per hop.
	Date:		31 Jul 2026
*/

package flowinstall

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"dresnet/gizmos"
	"dresnet/routecalc"
)

// Priorities reserved below the route-planning range.
const (
	PriorityTableMiss      int64 = 0
	PriorityLearningBridge int64 = 10
	PriorityHostEdge       int64 = 50
	// InitialRoutePriority is the first priority assigned to planner
	// output; it increases by one on every InstallPlan call so each
	// batch shadows the last.
	InitialRoutePriority int64 = 100
)

// PortResolver answers "which port on sw faces neighbor" -- the port
// map the controller, not the route calculator, owns.
type PortResolver interface {
	PortTo(sw, neighbor string) (port int, ok bool)
}

// IPResolver answers "what IPv4 address is bound to this host name" --
// the IP bindings the controller owns.
type IPResolver interface {
	IPOf(hostName string) (ip string, ok bool)
}

var installsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "dresnet_flow_installs_total",
	Help: "Flow entries installed, by switch.",
}, []string{"switch"})

func init() {
	prometheus.MustRegister(installsTotal)
}

// Installer pushes route-planner output to switches via a Transport, at
// an increasing priority. Safe for a single goroutine's use; it does not
// lock its own state because the caller (the controller's update loop,
// which runs every tick on the core's owning goroutine) already
// serializes ticks.
type Installer struct {
	transport Transport
	priority  int64
	log       zerolog.Logger
}

// NewInstaller wires an Installer to its transport, starting at
// InitialRoutePriority.
func NewInstaller(transport Transport, log zerolog.Logger) *Installer {
	return &Installer{
		transport: transport,
		priority:  InitialRoutePriority,
		log:       log.With().Str("component", "flowinstall").Logger(),
	}
}

// RoutePriority returns the priority the next InstallPlan call will use.
func (in *Installer) RoutePriority() int64 {
	return in.priority
}

// Reset restores the priority counter to its initial value. Called by
// the admin surface's init() operation.
func (in *Installer) Reset() {
	in.priority = InitialRoutePriority
}

// InstallPlan pushes every assignment's path as symmetric flow entries,
// then advances the priority counter by one. Transport errors for one
// hop are logged and do not abort the remaining hops or pairs; the next
// tick retries.
func (in *Installer) InstallPlan(assignments []routecalc.Assignment, ports PortResolver, ips IPResolver) error {
	for _, a := range assignments {
		if a.Path.Len() == 0 {
			in.log.Info().Str("client", a.Client.Name).Str("server", a.Server.Name).Msg("no path available; skipping pair for this tick")
			continue
		}

		clientIP, ok := ips.IPOf(a.Client.Name)
		if !ok {
			in.log.Warn().Str("client", a.Client.Name).Msg("no IP bound for client; skipping pair")
			continue
		}
		serverIP, ok := ips.IPOf(a.Server.Name)
		if !ok {
			in.log.Warn().Str("server", a.Server.Name).Msg("no IP bound for server; skipping pair")
			continue
		}

		for _, hop := range a.Path.Links {
			in.installHop(hop, clientIP, serverIP, ports)
		}
	}

	in.priority++
	return nil
}

func (in *Installer) installHop(hop gizmos.DirectedLink, clientIP, serverIP string, ports PortResolver) {
	// forward direction: client -> server traffic, installed on hop.From
	if err := in.installDirectedHop(hop.From, hop.To, serverIP, ports); err != nil {
		in.log.Warn().Err(err).Str("switch", hop.From).Msg("flow install failed")
	}
	// reverse direction: server -> client traffic, installed on hop.To
	if err := in.installDirectedHop(hop.To, hop.From, clientIP, ports); err != nil {
		in.log.Warn().Err(err).Str("switch", hop.To).Msg("flow install failed")
	}
}

func (in *Installer) installDirectedHop(onSwitch, towards, destIP string, ports PortResolver) error {
	dpid, err := gizmos.NewSwitch(onSwitch).DatapathID()
	if err != nil {
		return err
	}

	// the port lookup happens twice (ipv4+arp) against the same answer;
	// kept as two lookups rather than one cached value so a
	// PortResolver backed by live port-status events always sees the
	// freshest mapping.
	var firstErr error
	for _, match := range []Match{
		{EthType: EtherTypeIPv4, Ipv4Dst: destIP},
		{EthType: EtherTypeARP, ArpTpa: destIP},
	} {
		if err := in.installOneMatch(dpid, onSwitch, towards, match, ports); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (in *Installer) installOneMatch(dpid int64, onSwitch, towards string, match Match, ports PortResolver) error {
	port, ok := ports.PortTo(onSwitch, towards)
	if !ok {
		return fmt.Errorf("flowinstall: no port on %s facing %s", onSwitch, towards)
	}
	actions := []Action{OutputTo(port)}
	if err := in.transport.InstallFlow(dpid, in.priority, match, actions, nil); err != nil {
		return err
	}
	installsTotal.WithLabelValues(onSwitch).Inc()
	return nil
}
