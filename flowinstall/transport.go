// vi: sw=4 ts=4:

/*

	Mnemonic:	transport
	Abstract:	The OpenFlow-side contract the flow installer and learning
				bridge consume. Wire framing, the echo/hello handshake and
				barrier replies are the transport driver's own concern;
				this file only names the operations and events the core
				needs from it, treating the actual switch connection as
				an external collaborator reached through a narrow request
				surface rather than a socket this package touches
				directly.
	Date:		31 Jul 2026
*/

package flowinstall

// EtherType values used in Match -- the only two the core ever matches on.
const (
	EtherTypeIPv4 uint16 = 0x0800
	EtherTypeARP  uint16 = 0x0806
)

// NoBuffer marks a PacketOut action as carrying no buffered payload
// (OFPCML_NO_BUFFER in OpenFlow terms).
const NoBuffer uint32 = 0xffffffff

// Match selects which frames a flow entry applies to. The zero value (no
// fields set) is the table-miss catch-all match.
type Match struct {
	EthDst  string // exact match, used by the learning bridge
	EthType uint16 // 0 means "don't care"
	Ipv4Dst string // set only when EthType == EtherTypeIPv4
	ArpTpa  string // set only when EthType == EtherTypeARP
	InPort  int    // 0 means "don't care"; ports are 1-based on real switches
}

// Action is one OpenFlow action: output to a concrete port, flood, or
// output to the controller (optionally with the no-buffer cap). An entry
// with no actions drops the matched traffic.
type Action struct {
	OutputPort     int  // 0 if this is a ToController or Flood action
	ToController   bool
	NoBufferOnSend bool // only meaningful when ToController is true
	Flood          bool // OFPP_FLOOD: all ports but the one the packet arrived on
}

// OutputTo builds an action that forwards matched traffic out a port.
func OutputTo(port int) Action {
	return Action{OutputPort: port}
}

// OutputToController builds an action that sends matched traffic up to
// the controller, used only for the table-miss rule.
func OutputToController(noBuffer bool) Action {
	return Action{ToController: true, NoBufferOnSend: noBuffer}
}

// OutputFlood builds the learning bridge's fallback action for a
// destination with no learned port.
func OutputFlood() Action {
	return Action{Flood: true}
}

// Transport is the narrow surface the core needs from the OpenFlow
// driver: install a flow entry, or emit a packet out a port. Everything
// else (the handshake, barrier replies, the wire codec) lives in the
// driver and never reaches this package.
type Transport interface {
	// InstallFlow pushes a (priority, match, actions) entry to the
	// switch identified by dpid. bufferID, if non-nil, asks the switch
	// to emit the buffered packet that triggered this install rather
	// than the controller re-sending it via PacketOut.
	InstallFlow(dpid int64, priority int64, match Match, actions []Action, bufferID *uint32) error

	// SendPacketOut asks the switch to emit data (or its already-buffered
	// packet, when bufferID != NoBuffer and data is nil) out the given
	// actions.
	SendPacketOut(dpid int64, inPort int, bufferID uint32, actions []Action, data []byte) error
}
