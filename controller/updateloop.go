// vi: sw=4 ts=4:

/*

	Mnemonic:	updateloop
	Abstract:	The periodic update loop: a single goroutine that
				observes the updating flag on every iteration and computes
				and installs one plan per tick. init()/stop() flip that
				flag and close the loop's stop channel, which ends the
				ticker goroutine -- there is no hard cancellation of an
				in-flight tick, so a tick already underway always runs to
				completion before the loop notices it should stop.
	Date:		31 Jul 2026
*/

package controller

import "time"

// startLocked begins the update loop: sets updating, resets updateCount,
// and starts a new goroutine that runs one tick immediately and then
// schedules the rest.
// Called only from within the owning goroutine (via call).
func (c *Core) startLocked() {
	c.stopLocked() // idempotent: a second start() supersedes any loop already running
	c.updating = true
	c.updateCount = 0

	stop := make(chan struct{})
	c.loopStop = stop
	go c.runLoop(stop)
}

// stopLocked flips updating false and releases the running loop
// goroutine, if any. It does not wait for an in-flight tick to return;
// the tick observes the flag on its own next iteration and exits.
func (c *Core) stopLocked() {
	c.updating = false
	if c.loopStop != nil {
		close(c.loopStop)
		c.loopStop = nil
	}
}

// runLoop drives ticks at updateIntervalSec, stopping either when a tick
// reports it's done (empty plan, or updating went false) or when stop is
// closed out from under it by a later init()/stop()/start().
func (c *Core) runLoop(stop chan struct{}) {
	if !c.doTick(stop) {
		return
	}
	interval := time.Duration(c.updateIntervalSec) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if !c.doTick(stop) {
				return
			}
		}
	}
}

// doTick hands one tick to the owning goroutine and reports whether the
// loop should keep running.
func (c *Core) doTick(stop chan struct{}) bool {
	cont, _ := c.call(func() (interface{}, error) {
		return c.tickLocked(), nil
	})
	select {
	case <-stop:
		return false // superseded by a later start()/stop() while this tick ran
	default:
	}
	return cont.(bool)
}

// tickLocked computes and installs one tick's plan. Runs on the owning
// goroutine.
func (c *Core) tickLocked() bool {
	if !c.updating {
		return false
	}

	assignments, err := c.calc.Plan(c.updateCount, c.updateIntervalSec)
	if err != nil {
		c.log.Error().Err(err).Int("tick", c.updateCount).Msg("plan computation failed; stopping update loop")
		c.updating = false
		return false
	}
	if len(assignments) == 0 {
		c.log.Info().Int("tick", c.updateCount).Msg("empty plan; stopping update loop")
		c.updating = false
		return false
	}

	unreachable := 0
	for _, a := range assignments {
		if a.Path.Len() == 0 {
			unreachable++
		}
	}
	if unreachable > 0 {
		unreachablePairsTotal.Add(float64(unreachable))
		c.log.Info().Int("tick", c.updateCount).Int("unreachable", unreachable).Msg("some pairs have no path this tick")
	}

	if err := c.installer.InstallPlan(assignments, c, c); err != nil {
		c.log.Warn().Err(err).Int("tick", c.updateCount).Msg("install plan reported an error")
	}

	updateTicksTotal.Inc()
	routePriorityGauge.Set(float64(c.installer.RoutePriority()))
	c.updateCount++
	return true
}
