package lumen

import "time"

// EventStore is the interface for optional event integration (analytics,
// ECS worlds). When set on a Landing, effect milestones are forwarded.
type EventStore interface {
	EmitEvent(event EffectEvent)
}

// EffectKind identifies an effect milestone.
type EffectKind uint8

const (
	EffectRevealed       EffectKind = iota // a reveal target entered the viewport
	EffectCounterStarted                   // a counter began its ramp
	EffectCounterDone                      // a counter reached its target
	EffectNavHidden                        // the navigation bar slid out
	EffectNavShown                         // the navigation bar slid back in
	EffectThemeChanged                     // the theme flag flipped
	EffectEntered                          // an entrance element slid in
)

// String returns the kind name.
func (k EffectKind) String() string {
	switch k {
	case EffectRevealed:
		return "revealed"
	case EffectCounterStarted:
		return "counter_started"
	case EffectCounterDone:
		return "counter_done"
	case EffectNavHidden:
		return "nav_hidden"
	case EffectNavShown:
		return "nav_shown"
	case EffectThemeChanged:
		return "theme_changed"
	case EffectEntered:
		return "entered"
	default:
		return "unknown"
	}
}

// EffectEvent carries one milestone.
type EffectEvent struct {
	Kind      EffectKind
	ElementID uint32
	Name      string
	Value     float64
	Offset    float64 // scroll offset at the time of the event
	At        time.Duration
}

// eventSink is shared by the components of one Landing so the store can be
// swapped after construction. A nil sink, or one without a store, drops
// events.
type eventSink struct {
	store EventStore
}

func (s *eventSink) emit(e EffectEvent) {
	if s == nil || s.store == nil {
		return
	}
	s.store.EmitEvent(e)
}

func elementEvent(kind EffectKind, el *Element, at time.Duration) EffectEvent {
	e := EffectEvent{Kind: kind, At: at}
	if el != nil {
		e.ElementID = el.ID
		e.Name = el.Name
	}
	return e
}
