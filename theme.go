package lumen

import (
	"errors"

	"go.uber.org/zap"
)

// ErrNoThemePreference is returned by a ThemeStore that has nothing saved.
var ErrNoThemePreference = errors.New("lumen: no theme preference saved")

// ThemeStore persists the theme preference. It is owned by the host; lumen
// only reads it once and writes on toggle.
type ThemeStore interface {
	// LoadDark returns ErrNoThemePreference when nothing was saved.
	LoadDark() (bool, error)
	SaveDark(dark bool) error
}

// ThemeFlag is the page-wide dark-mode flag. Listeners run synchronously on
// every change. Until a preference is loaded or set, the flag follows the
// system appearance reported through SetSystemDark.
type ThemeFlag struct {
	dark      bool
	explicit  bool
	store     ThemeStore
	listeners []themeListener
	nextID    uint32
}

type themeListener struct {
	id uint32
	fn func(dark bool)
}

// NewThemeFlag creates a flag seeded from store. A nil store, an empty
// store or a failed load starts light and follows the system appearance.
func NewThemeFlag(store ThemeStore) *ThemeFlag {
	t := &ThemeFlag{store: store}
	if store != nil {
		dark, err := store.LoadDark()
		switch {
		case errors.Is(err, ErrNoThemePreference):
		case err != nil:
			logger.Warn("load theme preference", zap.Error(err))
		default:
			t.dark = dark
			t.explicit = true
		}
	}
	return t
}

// FollowsSystem reports whether the flag tracks the system appearance.
func (t *ThemeFlag) FollowsSystem() bool {
	return !t.explicit
}

// SetSystemDark reports the system appearance. It changes the flag, without
// saving, only while no preference has been loaded or set.
func (t *ThemeFlag) SetSystemDark(dark bool) {
	if t.explicit {
		return
	}
	t.apply(dark)
}

// Dark reports whether dark mode is on. A nil flag is light.
func (t *ThemeFlag) Dark() bool {
	return t != nil && t.dark
}

// Set records an explicit preference: the flag stops following the system,
// and a change is saved and sent to listeners. No-op when unchanged.
func (t *ThemeFlag) Set(dark bool) {
	t.explicit = true
	if t.dark == dark {
		return
	}
	if t.store != nil {
		if err := t.store.SaveDark(dark); err != nil {
			logger.Warn("save theme preference", zap.Error(err))
		}
	}
	t.apply(dark)
}

func (t *ThemeFlag) apply(dark bool) {
	if t.dark == dark {
		return
	}
	t.dark = dark
	for _, l := range t.listeners {
		l.fn(dark)
	}
}

// Toggle flips the flag.
func (t *ThemeFlag) Toggle() {
	t.Set(!t.dark)
}

// OnChange registers a listener.
func (t *ThemeFlag) OnChange(fn func(dark bool)) CallbackHandle {
	t.nextID++
	id := t.nextID
	t.listeners = append(t.listeners, themeListener{id: id, fn: fn})
	return CallbackHandle{remove: func() {
		for i := range t.listeners {
			if t.listeners[i].id == id {
				t.listeners = append(t.listeners[:i], t.listeners[i+1:]...)
				return
			}
		}
	}}
}
