package lumen

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// FrameFunc is a per-frame update. now is the frame timestamp, measured from
// an arbitrary origin and never decreasing across calls. Callbacks must not
// assume a fixed frame interval.
type FrameFunc func(now time.Duration)

type frameCallback struct {
	id   uint32
	name string
	fn   FrameFunc
}

// FrameScheduler is the single driver for every continuous animation. The
// host calls Tick once per display refresh; each tick runs the one-shot
// requests queued before it, then the persistent callbacks in registration
// order.
//
// There is no global scheduler; the host owns one and calls Tick itself.
type FrameScheduler struct {
	callbacks []frameCallback
	requests  []frameCallback
	running   []frameCallback // reused buffer for the requests being run
	nextID    uint32

	now     time.Duration
	ticks   uint64
	faults  uint64
	started bool
	debug   bool

	ticking bool // inside the persistent callback pass
	removed bool // a callback was removed during the pass
}

// NewFrameScheduler creates an idle scheduler.
func NewFrameScheduler() *FrameScheduler {
	return &FrameScheduler{}
}

// Start registers the ordered callback set run on every tick. It may be
// called once; later calls append.
func (f *FrameScheduler) Start(callbacks ...FrameFunc) {
	for _, fn := range callbacks {
		f.Add("", fn)
	}
	f.started = true
}

// Add registers one persistent callback after the existing ones. name is
// used in fault logs.
func (f *FrameScheduler) Add(name string, fn FrameFunc) CallbackHandle {
	f.nextID++
	id := f.nextID
	if name == "" {
		name = fmt.Sprintf("frame#%d", id)
	}
	f.callbacks = append(f.callbacks, frameCallback{id: id, name: name, fn: fn})
	return CallbackHandle{remove: func() { f.remove(id) }}
}

// RequestFrame schedules fn to run once on the next tick. Requests made
// while a tick is running land on the following tick.
func (f *FrameScheduler) RequestFrame(name string, fn FrameFunc) {
	f.nextID++
	f.requests = append(f.requests, frameCallback{id: f.nextID, name: name, fn: fn})
}

// After runs fn once, on the first tick at least delay past the current
// frame. Before the first tick the delay counts from that tick instead.
func (f *FrameScheduler) After(name string, delay time.Duration, fn FrameFunc) {
	anchored := f.ticks > 0
	at := f.now + delay
	var wait FrameFunc
	wait = func(now time.Duration) {
		if !anchored {
			anchored = true
			at = now + delay
		}
		if now < at {
			f.RequestFrame(name, wait)
			return
		}
		fn(now)
	}
	f.RequestFrame(name, wait)
}

func (f *FrameScheduler) remove(id uint32) {
	for i := range f.callbacks {
		if f.callbacks[i].id == id {
			if f.ticking {
				// Leave a hole; Tick compacts once the pass is over.
				f.callbacks[i].fn = nil
				f.removed = true
				return
			}
			copy(f.callbacks[i:], f.callbacks[i+1:])
			f.callbacks[len(f.callbacks)-1] = frameCallback{}
			f.callbacks = f.callbacks[:len(f.callbacks)-1]
			return
		}
	}
}

func (f *FrameScheduler) compact() {
	live := f.callbacks[:0]
	for _, cb := range f.callbacks {
		if cb.fn != nil {
			live = append(live, cb)
		}
	}
	clear(f.callbacks[len(live):])
	f.callbacks = live
	f.removed = false
}

// Tick runs one frame. A timestamp earlier than the previous one is clamped
// so callbacks always observe non-decreasing time.
func (f *FrameScheduler) Tick(now time.Duration) {
	if now < f.now {
		now = f.now
	}
	f.now = now
	f.ticks++

	var t0 time.Time
	if f.debug {
		t0 = time.Now()
	}
	faultsBefore := f.faults

	// Swap out the queue so requests made during this tick wait for the next.
	f.running, f.requests = f.requests, f.running[:0]
	oneShots := len(f.running)
	for i := range f.running {
		f.invoke(f.running[i], now)
		f.running[i] = frameCallback{}
	}
	f.running = f.running[:0]

	n := len(f.callbacks)
	f.ticking = true
	for i := 0; i < len(f.callbacks); i++ {
		if f.callbacks[i].fn == nil {
			continue
		}
		f.invoke(f.callbacks[i], now)
	}
	f.ticking = false
	if f.removed {
		f.compact()
	}

	if f.debug {
		f.debugLog(frameStats{
			tick:      f.ticks,
			oneShots:  oneShots,
			callbacks: n,
			faults:    int(f.faults - faultsBefore),
			duration:  time.Since(t0),
		})
	}
}

// invoke runs one callback, recovering and logging a panic so the rest of
// the frame and later frames still run.
func (f *FrameScheduler) invoke(cb frameCallback, now time.Duration) {
	defer func() {
		if r := recover(); r != nil {
			f.faults++
			logger.Error("frame callback panicked",
				zap.String("callback", cb.name),
				zap.Any("panic", r),
				zap.Duration("now", now),
			)
		}
	}()
	cb.fn(now)
}

// Now returns the timestamp of the most recent tick.
func (f *FrameScheduler) Now() time.Duration {
	return f.now
}

// Ticks returns the number of frames run so far.
func (f *FrameScheduler) Ticks() uint64 {
	return f.ticks
}

// Faults returns how many callback invocations panicked.
func (f *FrameScheduler) Faults() uint64 {
	return f.faults
}

// Pending returns the number of one-shot requests waiting for the next tick.
func (f *FrameScheduler) Pending() int {
	return len(f.requests)
}

// Len returns the number of persistent callbacks.
func (f *FrameScheduler) Len() int {
	return len(f.callbacks)
}

// Started reports whether Start has been called.
func (f *FrameScheduler) Started() bool {
	return f.started
}

// SetDebugMode enables per-frame timing stats at debug log level.
func (f *FrameScheduler) SetDebugMode(enabled bool) {
	f.debug = enabled
}
