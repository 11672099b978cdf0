// vi: sw=4 ts=4:

package controller_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dresnet/controller"
	"dresnet/routecalc"
)

func TestUpdateLoop_StartRunsAnImmediateTick(t *testing.T) {
	transport := &fakeTransport{}
	c := controller.NewCore(routecalc.StrategyDisasterAware, 1, transport, testLogger())
	defer c.Close()

	require.NoError(t, c.AddSwitch("s1"))
	require.NoError(t, c.AddSwitch("s2"))
	require.NoError(t, c.AddLink("s1", 1, "s2", 2, 1))
	require.NoError(t, c.AddHostPair(
		controller.ClientSpec{Name: "c1", Switch: "s2", Port: 3, IP: "10.0.0.1", FailAtSec: 100, DataSizeGB: 20},
		controller.ServerSpec{Name: "srv", Switch: "s1", Port: 4, IP: "10.0.0.2"},
	))
	before := len(transport.snapshotInstalls())

	c.StartUpdatePath()

	assert.Eventually(t, func() bool {
		return len(transport.snapshotInstalls()) > before
	}, 2*time.Second, 20*time.Millisecond, "the first tick must run without waiting a full interval")
}

func TestUpdateLoop_EmptyPlanStopsTheLoop(t *testing.T) {
	transport := &fakeTransport{}
	c := controller.NewCore(routecalc.StrategyDisasterAware, 1, transport, testLogger())
	defer c.Close()

	// No switches, no host pairs at all: Plan returns an empty assignment
	// list, so the loop must stop itself after the first tick.
	c.StartUpdatePath()

	time.Sleep(150 * time.Millisecond)
	after := len(transport.snapshotInstalls())
	time.Sleep(1200 * time.Millisecond)
	assert.Equal(t, after, len(transport.snapshotInstalls()), "an empty plan must stop the loop, not keep ticking")
}

func TestUpdateLoop_InitStopsAnInFlightLoop(t *testing.T) {
	transport := &fakeTransport{}
	c := controller.NewCore(routecalc.StrategyDisasterAware, 1, transport, testLogger())
	defer c.Close()

	require.NoError(t, c.AddSwitch("s1"))
	require.NoError(t, c.AddSwitch("s2"))
	require.NoError(t, c.AddLink("s1", 1, "s2", 2, 1))
	require.NoError(t, c.AddHostPair(
		controller.ClientSpec{Name: "c1", Switch: "s2", Port: 3, IP: "10.0.0.1", FailAtSec: 100, DataSizeGB: 20},
		controller.ServerSpec{Name: "srv", Switch: "s1", Port: 4, IP: "10.0.0.2"},
	))
	c.StartUpdatePath()

	c.Init()
	after := len(transport.snapshotInstalls())
	time.Sleep(1200 * time.Millisecond)
	assert.Equal(t, after, len(transport.snapshotInstalls()), "init must end the running loop")
}

func TestUpdateLoop_RestartIsIdempotent(t *testing.T) {
	transport := &fakeTransport{}
	c := controller.NewCore(routecalc.StrategyDisasterAware, 1, transport, testLogger())
	defer c.Close()

	require.NoError(t, c.AddSwitch("s1"))
	require.NoError(t, c.AddSwitch("s2"))
	require.NoError(t, c.AddLink("s1", 1, "s2", 2, 1))
	require.NoError(t, c.AddHostPair(
		controller.ClientSpec{Name: "c1", Switch: "s2", Port: 3, IP: "10.0.0.1", FailAtSec: 100, DataSizeGB: 20},
		controller.ServerSpec{Name: "srv", Switch: "s1", Port: 4, IP: "10.0.0.2"},
	))

	c.StartUpdatePath()
	c.StartUpdatePath() // a second start must supersede the first, not run two loops

	time.Sleep(150 * time.Millisecond)
	// no assertion beyond "this does not hang or double the controller's
	// owning goroutine" -- Close() below would deadlock if a stray loop
	// goroutine held the requests channel open.
}
