// vi: sw=4 ts=4:

package controller_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dresnet/controller"
	"dresnet/flowinstall"
	"dresnet/routecalc"
)

var (
	macA = [6]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x01}
	macB = [6]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x02}
)

func TestLearningBridge_FloodsOnUnknownDestination(t *testing.T) {
	transport := &fakeTransport{}
	c := controller.NewCore(routecalc.StrategyDijkstra, 30, transport, testLogger())
	defer c.Close()
	require.NoError(t, c.OnSwitchFeatures(1))

	c.OnPacketIn(controller.PacketIn{
		Dpid:     1,
		InPort:   2,
		BufferID: flowinstall.NoBuffer,
		Raw:      ethernetFrame(macB, macA, 0x0800),
	})

	outs := transport.snapshotPacketOuts()
	require.Len(t, outs, 1)
	require.Len(t, outs[0].actions, 1)
	assert.True(t, outs[0].actions[0].Flood)
}

func TestLearningBridge_InstallsFlowOnceDestinationLearned(t *testing.T) {
	transport := &fakeTransport{}
	c := controller.NewCore(routecalc.StrategyDijkstra, 30, transport, testLogger())
	defer c.Close()
	require.NoError(t, c.OnSwitchFeatures(1))

	// A speaks first, learning its MAC at port 2.
	c.OnPacketIn(controller.PacketIn{Dpid: 1, InPort: 2, BufferID: flowinstall.NoBuffer, Raw: ethernetFrame(macB, macA, 0x0800)})
	// B replies to A; A is now a known destination at port 2.
	c.OnPacketIn(controller.PacketIn{Dpid: 1, InPort: 5, BufferID: flowinstall.NoBuffer, Raw: ethernetFrame(macA, macB, 0x0800)})

	installs := transport.snapshotInstalls()
	require.Len(t, installs, 2, "table-miss at registration plus the learned flow")
	learned := installs[len(installs)-1]
	assert.Equal(t, flowinstall.PriorityLearningBridge, learned.priority)
	require.Len(t, learned.actions, 1)
	assert.Equal(t, 2, learned.actions[0].OutputPort)
}

func TestLearningBridge_BufferedInstallSkipsPacketOutEcho(t *testing.T) {
	transport := &fakeTransport{}
	c := controller.NewCore(routecalc.StrategyDijkstra, 30, transport, testLogger())
	defer c.Close()
	require.NoError(t, c.OnSwitchFeatures(1))

	c.OnPacketIn(controller.PacketIn{Dpid: 1, InPort: 2, BufferID: flowinstall.NoBuffer, Raw: ethernetFrame(macB, macA, 0x0800)})

	before := len(transport.snapshotPacketOuts())
	c.OnPacketIn(controller.PacketIn{Dpid: 1, InPort: 5, BufferID: 7, Raw: ethernetFrame(macA, macB, 0x0800)})

	assert.Len(t, transport.snapshotPacketOuts(), before, "a buffered install asks the switch to emit the buffer, not a controller echo")
}

func TestLearningBridge_UnbufferedInstallEchoesPacketOut(t *testing.T) {
	transport := &fakeTransport{}
	c := controller.NewCore(routecalc.StrategyDijkstra, 30, transport, testLogger())
	defer c.Close()
	require.NoError(t, c.OnSwitchFeatures(1))

	c.OnPacketIn(controller.PacketIn{Dpid: 1, InPort: 2, BufferID: flowinstall.NoBuffer, Raw: ethernetFrame(macB, macA, 0x0800)})

	before := len(transport.snapshotPacketOuts())
	c.OnPacketIn(controller.PacketIn{Dpid: 1, InPort: 5, BufferID: flowinstall.NoBuffer, Raw: ethernetFrame(macA, macB, 0x0800)})

	assert.Len(t, transport.snapshotPacketOuts(), before+1)
}

func TestLearningBridge_IPv6FrameIsSilentlyDropped(t *testing.T) {
	transport := &fakeTransport{}
	c := controller.NewCore(routecalc.StrategyDijkstra, 30, transport, testLogger())
	defer c.Close()
	require.NoError(t, c.OnSwitchFeatures(1))

	c.OnPacketIn(controller.PacketIn{Dpid: 1, InPort: 2, BufferID: flowinstall.NoBuffer, Raw: ethernetFrame(macB, macA, 0x86dd)})

	assert.Empty(t, transport.snapshotPacketOuts())
	assert.Len(t, transport.snapshotInstalls(), 1, "only the table-miss install from registration")
}

func TestLearningBridge_TooShortFrameIsDropped(t *testing.T) {
	transport := &fakeTransport{}
	c := controller.NewCore(routecalc.StrategyDijkstra, 30, transport, testLogger())
	defer c.Close()
	require.NoError(t, c.OnSwitchFeatures(1))

	c.OnPacketIn(controller.PacketIn{Dpid: 1, InPort: 2, BufferID: flowinstall.NoBuffer, Raw: []byte{1, 2, 3}})

	assert.Empty(t, transport.snapshotPacketOuts())
	assert.Len(t, transport.snapshotInstalls(), 1)
}
