package lumen

import (
	"time"

	"go.uber.org/zap"
)

// frameStats holds per-frame timing metrics.
// Only populated when the scheduler's debug mode is on.
type frameStats struct {
	tick      uint64
	oneShots  int
	callbacks int
	faults    int
	duration  time.Duration
}

// slowFrame is the tick duration above which debug mode warns.
const slowFrame = 8 * time.Millisecond

// debugLog prints timing stats for one tick.
func (f *FrameScheduler) debugLog(stats frameStats) {
	if !f.debug {
		return
	}
	fields := []zap.Field{
		zap.Uint64("tick", stats.tick),
		zap.Int("one_shots", stats.oneShots),
		zap.Int("callbacks", stats.callbacks),
		zap.Int("faults", stats.faults),
		zap.Duration("took", stats.duration),
	}
	if stats.duration > slowFrame {
		logger.Warn("slow frame", fields...)
		return
	}
	logger.Debug("frame", fields...)
}

// debugCheckSelector logs selectors that matched nothing. Missing elements
// are not an error: the effect is simply skipped.
func debugCheckSelector(what, selector string, matched int) {
	if matched == 0 {
		logger.Debug("selector matched no elements",
			zap.String("effect", what),
			zap.String("selector", selector),
		)
	}
}
