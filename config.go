package lumen

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the declarative list of effects for a page. Selectors that
// match nothing are skipped.
type Config struct {
	Nav          NavConfig          `yaml:"nav"`
	Hero         HeroConfig         `yaml:"hero"`
	Parallax     []ParallaxConfig   `yaml:"parallax"`
	Reveal       RevealConfig       `yaml:"reveal"`
	Entrance     EntranceConfig     `yaml:"entrance"`
	Counters     CounterConfig      `yaml:"counters"`
	Magnetic     MagneticConfig     `yaml:"magnetic"`
	Glow         GlowConfig         `yaml:"glow"`
	SmoothScroll SmoothScrollConfig `yaml:"smooth_scroll"`
}

// NavConfig configures the scroll-aware navigation bar.
type NavConfig struct {
	Selector      string  `yaml:"selector"`
	HideAfter     float64 `yaml:"hide_after"`
	ScrolledAfter float64 `yaml:"scrolled_after"`
}

// HeroConfig names the hero content that fades out on scroll.
type HeroConfig struct {
	Selector     string  `yaml:"selector"`
	FadeDistance float64 `yaml:"fade_distance"`
}

// ParallaxConfig registers every match of Selector. The i-th match moves
// at Speed + i*SpeedStep.
type ParallaxConfig struct {
	Selector  string  `yaml:"selector"`
	Speed     float64 `yaml:"speed"`
	SpeedStep float64 `yaml:"speed_step"`
	Kind      string  `yaml:"kind"` // "fixed", "viewport" or "hero"
}

// RevealConfig configures scroll-triggered reveals. Targets marked
// Immediate are revealed ImmediateMs after start even if never scrolled to.
type RevealConfig struct {
	Threshold   float64              `yaml:"threshold"`
	MarginPx    float64              `yaml:"margin_px"`
	OffsetY     float64              `yaml:"offset_y"`
	ImmediateMs float64              `yaml:"immediate_ms"`
	Targets     []RevealTargetConfig `yaml:"targets"`
}

// RevealTargetConfig reveals every match of Selector. The i-th match waits
// DelayMs + i*StaggerMs.
type RevealTargetConfig struct {
	Selector  string  `yaml:"selector"`
	DelayMs   float64 `yaml:"delay_ms"`
	StaggerMs float64 `yaml:"stagger_ms"`
	Immediate bool    `yaml:"immediate"`
}

// EntranceConfig slides every match of Selector in from OffsetX after
// load. The i-th match enters DelayMs + i*StaggerMs after start.
type EntranceConfig struct {
	Selector  string  `yaml:"selector"`
	DelayMs   float64 `yaml:"delay_ms"`
	StaggerMs float64 `yaml:"stagger_ms"`
	OffsetX   float64 `yaml:"offset_x"`
}

// CounterConfig configures the stat counters.
type CounterConfig struct {
	Selector  string  `yaml:"selector"`
	Threshold float64 `yaml:"threshold"`
}

// MagneticConfig lists the magnetic buttons.
type MagneticConfig struct {
	Selector string `yaml:"selector"`
}

// GlowConfig names the cursor glow element.
type GlowConfig struct {
	Selector string `yaml:"selector"`
}

// SmoothScrollConfig configures anchor and wheel gliding. A zero
// duration jumps instead.
type SmoothScrollConfig struct {
	DurationMs      float64 `yaml:"duration_ms"`
	WheelDurationMs float64 `yaml:"wheel_duration_ms"`
	Offset          float64 `yaml:"offset"`
}

// DefaultConfig mirrors the stock landing page.
func DefaultConfig() Config {
	return Config{
		Nav: NavConfig{
			Selector:      "#navbar",
			HideAfter:     DefaultNavPolicy.HideAfter,
			ScrolledAfter: DefaultNavPolicy.ScrolledAfter,
		},
		Hero: HeroConfig{Selector: ".hero-content", FadeDistance: DefaultHeroFade},
		Parallax: []ParallaxConfig{
			{Selector: ".hero-visual", Speed: 0.15, Kind: "hero"},
			{Selector: ".hero-content", Speed: 0.08, Kind: "hero"},
			{Selector: ".ambient-orb", Speed: 0.05, SpeedStep: 0.02, Kind: "fixed"},
			{Selector: "[data-speed]", Speed: 0.1, Kind: "viewport"},
		},
		Reveal: RevealConfig{
			Threshold:   0.1,
			MarginPx:    -50,
			OffsetY:     30,
			ImmediateMs: 100,
			Targets: []RevealTargetConfig{
				{Selector: ".hero-badge", Immediate: true},
				{Selector: ".hero-title", DelayMs: 100, Immediate: true},
				{Selector: ".hero-subtitle", DelayMs: 200, Immediate: true},
				{Selector: ".hero-cta", DelayMs: 300, Immediate: true},
				{Selector: ".visual-card", DelayMs: 400, Immediate: true},
				{Selector: ".section-header"},
				{Selector: ".feature-card", StaggerMs: 100},
				{Selector: ".proof-stat", StaggerMs: 150},
				{Selector: ".waitlist-wrapper"},
			},
		},
		Entrance: EntranceConfig{
			Selector:  ".visual-notification",
			DelayMs:   800,
			StaggerMs: 200,
			OffsetX:   -30,
		},
		Counters: CounterConfig{Selector: ".stat-number", Threshold: 0.5},
		Magnetic: MagneticConfig{Selector: ".btn-primary, .btn-magnetic"},
		Glow:     GlowConfig{Selector: "#cursor-glow"},
		SmoothScroll: SmoothScrollConfig{
			DurationMs:      800,
			WheelDurationMs: 1200,
			Offset:          80,
		},
	}
}

// ParseConfig decodes YAML over DefaultConfig: omitted keys keep their
// defaults, lists given in YAML replace the default lists.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a YAML file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

// Validate rejects values no effect can work with.
func (c Config) Validate() error {
	if c.Reveal.Threshold < 0 || c.Reveal.Threshold > 1 {
		return fmt.Errorf("reveal threshold %v out of range [0,1]", c.Reveal.Threshold)
	}
	if c.Counters.Threshold < 0 || c.Counters.Threshold > 1 {
		return fmt.Errorf("counter threshold %v out of range [0,1]", c.Counters.Threshold)
	}
	for _, p := range c.Parallax {
		if p.Kind != "" && p.Kind != "fixed" && p.Kind != "viewport" && p.Kind != "hero" {
			return fmt.Errorf("parallax %q: unknown kind %q", p.Selector, p.Kind)
		}
	}
	if c.SmoothScroll.DurationMs < 0 || c.SmoothScroll.WheelDurationMs < 0 {
		return fmt.Errorf("smooth scroll duration %v/%v is negative",
			c.SmoothScroll.DurationMs, c.SmoothScroll.WheelDurationMs)
	}
	if c.Reveal.ImmediateMs < 0 || c.Entrance.DelayMs < 0 || c.Entrance.StaggerMs < 0 {
		return errors.New("reveal and entrance delays must not be negative")
	}
	return nil
}
