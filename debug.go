package pixelcafe

import "time"

// debugStats accumulates per-tick timings between reports.
// Only populated when Config.Debug is true.
type debugStats struct {
	updateTime  time.Duration
	renderTime  time.Duration
	presentTime time.Duration
	maxTick     time.Duration
	ticks       int
}

func (s *debugStats) add(update, render, present time.Duration) {
	s.updateTime += update
	s.renderTime += render
	s.presentTime += present
	s.maxTick = max(s.maxTick, update+render+present)
	s.ticks++
}

// debugLog reports average tick timings roughly once per second of ticks
// and resets the accumulator.
func (l *RenderLoop) debugLog() {
	s := &l.stats
	if !l.cfg.Debug || s.ticks < max(1, l.cfg.FPSLimit) {
		return
	}
	n := time.Duration(s.ticks)
	l.log.Debug("tick stats",
		"ticks", s.ticks,
		"update", s.updateTime/n,
		"render", s.renderTime/n,
		"present", s.presentTime/n,
		"max", s.maxTick,
		"state", l.machine.State(),
		"progress", l.machine.Progress(),
	)
	*s = debugStats{}
}
