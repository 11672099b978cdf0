// vi: sw=4 ts=4:

/*

	Mnemonic:	host
	Abstract:	HostClient, HostServer and HostPair value types -- the
				backup-flow endpoints the route calculator plans paths
				between.
	Date:		31 Jul 2026
*/

package gizmos

// HostClient is the data-source side of a backup pair: a host that is
// predicted to fail at FailAtSec (seconds from experiment start) and
// needs DataSizeGB of data pushed to its HostServer before then.
type HostClient struct {
	Name           string
	NeighborSwitch string
	FailAtSec      int64 // > 0, or UnknownFailTime
	DataSizeGB     float64
}

// HostServer is the data-sink side of a backup pair.
type HostServer struct {
	Name           string
	NeighborSwitch string
}

// HostPair binds one client to the server it is backing up to.
type HostPair struct {
	Client HostClient
	Server HostServer
}

// RequestedThroughput is the demand figure the disaster-aware planner
// sorts pairs by: data size divided by time-to-failure. The denominator
// is clamped to a minimum of 1 second, so a FailAtSec of zero or
// UnknownFailTime yields a finite request rather than a division by zero
// or a negative value; a positive FailAtSec is used as-is, even when it
// has already elapsed by the start of the current window. No pair is
// skipped, so every registered pair still gets a path attempt.
func (p HostPair) RequestedThroughput() float64 {
	denom := p.Client.FailAtSec
	if denom < 1 {
		denom = 1
	}
	return p.Client.DataSizeGB / float64(denom)
}
