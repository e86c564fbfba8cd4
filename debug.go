package dotswarm

import "time"

// debugStats holds per-frame timing and phase counts.
// Only populated when the engine is in debug mode.
type debugStats struct {
	frame      int
	updateTime time.Duration
	pending    int
	animating  int
	settled    int
}

// debugLog writes the stats at debug level.
func (s debugStats) debugLog() {
	Logger().Debug("frame",
		"frame", s.frame,
		"update", s.updateTime,
		"pending", s.pending,
		"animating", s.animating,
		"settled", s.settled)
}
