package lumen

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrEmptyScript is returned for a script with no steps.
var ErrEmptyScript = errors.New("no steps")

// scriptStep represents a single action in an input script.
type scriptStep struct {
	Action string  `json:"action"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Label  string  `json:"label,omitempty"`
}

// script is the top-level JSON structure for an input script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner sequences injected scroll and pointer events across frames
// for automated runs. Attach to a Page via SetScriptRunner.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON input script:
//
//	{"steps": [
//	  {"action": "scroll", "y": 400},
//	  {"action": "scrollBy", "y": -50},
//	  {"action": "move", "x": 100, "y": 200},
//	  {"action": "sweep", "x": 0, "y": 0, "toX": 300, "toY": 200, "frames": 10},
//	  {"action": "leave"},
//	  {"action": "wait", "frames": 30},
//	  {"action": "screenshot", "label": "after-scroll"}
//	]}
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var s script
	if err := json.Unmarshal(jsonData, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("parse script: %w", ErrEmptyScript)
	}
	for i, st := range s.Steps {
		switch st.Action {
		case "scroll", "scrollBy", "move", "sweep", "leave", "wait", "screenshot":
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: s.Steps}, nil
}

// SetScriptRunner attaches a runner to the page. The host calls its Step
// method before ProcessInjected each frame.
func (p *Page) SetScriptRunner(runner *ScriptRunner) {
	p.testRunner = runner
}

// ScriptRunner returns the attached runner, or nil.
func (p *Page) ScriptRunner() *ScriptRunner {
	return p.testRunner
}

// Done reports whether all steps have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Step advances the runner by one frame.
func (r *ScriptRunner) Step(p *Page) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(p.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "scroll":
		p.InjectScroll(st.Y)
	case "scrollBy":
		p.InjectScrollBy(st.Y)
	case "move":
		p.InjectMove(st.X, st.Y)
	case "sweep":
		p.InjectSweep(st.X, st.Y, st.ToX, st.ToY, st.Frames)
	case "leave":
		p.InjectLeave()
	case "screenshot":
		p.Screenshot(st.Label)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(p.injectQueue) == 0 {
		r.done = true
	}
}
