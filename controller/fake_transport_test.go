// vi: sw=4 ts=4:

package controller_test

import (
	"os"
	"sync"

	"github.com/rs/zerolog"

	"dresnet/flowinstall"
)

type installCall struct {
	dpid     int64
	priority int64
	match    flowinstall.Match
	actions  []flowinstall.Action
}

type packetOutCall struct {
	dpid     int64
	inPort   int
	bufferID uint32
	actions  []flowinstall.Action
	data     []byte
}

// fakeTransport records every call it receives so tests can assert on
// exactly what the controller pushed, without a real OpenFlow driver.
type fakeTransport struct {
	mu         sync.Mutex
	installs   []installCall
	packetOuts []packetOutCall
}

func (f *fakeTransport) InstallFlow(dpid int64, priority int64, match flowinstall.Match, actions []flowinstall.Action, bufferID *uint32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.installs = append(f.installs, installCall{dpid: dpid, priority: priority, match: match, actions: actions})
	return nil
}

func (f *fakeTransport) SendPacketOut(dpid int64, inPort int, bufferID uint32, actions []flowinstall.Action, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.packetOuts = append(f.packetOuts, packetOutCall{dpid: dpid, inPort: inPort, bufferID: bufferID, actions: actions, data: data})
	return nil
}

func (f *fakeTransport) snapshotInstalls() []installCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]installCall, len(f.installs))
	copy(out, f.installs)
	return out
}

func (f *fakeTransport) snapshotPacketOuts() []packetOutCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]packetOutCall, len(f.packetOuts))
	copy(out, f.packetOuts)
	return out
}

func testLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.Disabled)
}

// ethernetFrame builds a minimal 14-byte header followed by padding, with
// the given destination/source MACs (six raw bytes each) and ether type.
func ethernetFrame(dst, src [6]byte, etherType uint16) []byte {
	raw := make([]byte, 14)
	copy(raw[0:6], dst[:])
	copy(raw[6:12], src[:])
	raw[12] = byte(etherType >> 8)
	raw[13] = byte(etherType)
	return raw
}
