package lumen

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// RunOptions are the host settings read from the environment.
type RunOptions struct {
	Title         string `env:"LUMEN_TITLE" envDefault:"lumen"`
	Width         int    `env:"LUMEN_WIDTH" envDefault:"1280"`
	Height        int    `env:"LUMEN_HEIGHT" envDefault:"720"`
	ShowFPS       bool   `env:"LUMEN_SHOW_FPS" envDefault:"true"`
	Debug         bool   `env:"LUMEN_DEBUG" envDefault:"false"`
	TouchPrimary  bool   `env:"LUMEN_TOUCH" envDefault:"false"`
	PrefersDark   bool   `env:"LUMEN_PREFERS_DARK" envDefault:"false"`
	LogLevel      string `env:"LUMEN_LOG_LEVEL" envDefault:"info"`
	ConfigPath    string `env:"LUMEN_CONFIG"`
	ScriptPath    string `env:"LUMEN_SCRIPT"`
	ScreenshotDir string `env:"LUMEN_SCREENSHOT_DIR" envDefault:"screenshots"`
}

// LoadRunOptions parses RunOptions from the environment.
func LoadRunOptions() (RunOptions, error) {
	var o RunOptions
	if err := env.Parse(&o); err != nil {
		return RunOptions{}, fmt.Errorf("parse run options: %w", err)
	}
	if o.Width <= 0 || o.Height <= 0 {
		return RunOptions{}, fmt.Errorf("window size %dx%d must be positive", o.Width, o.Height)
	}
	return o, nil
}

// RunConfig returns the window settings for Run.
func (o RunOptions) RunConfig() RunConfig {
	return RunConfig{
		Title:   o.Title,
		Width:   o.Width,
		Height:  o.Height,
		ShowFPS: o.ShowFPS,
	}
}
