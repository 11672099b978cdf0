// vi: sw=4 ts=4:

/*

	Mnemonic:	metrics
	Abstract:	Prometheus instrumentation for the update loop and planner:
				how far the route-priority counter has climbed, how many
				ticks completed, and how many backup pairs came back
				unreachable.
	Date:		31 Jul 2026
*/

package controller

import "github.com/prometheus/client_golang/prometheus"

var (
	routePriorityGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "dresnet_route_priority",
		Help: "Current route-planning priority counter.",
	})
	updateTicksTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dresnet_update_tick_total",
		Help: "Update-loop ticks that ran a plan to completion.",
	})
	unreachablePairsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dresnet_unreachable_pairs_total",
		Help: "Backup pairs for which the planner returned an empty path, summed across ticks.",
	})
)

func init() {
	prometheus.MustRegister(routePriorityGauge, updateTicksTotal, unreachablePairsTotal)
}
