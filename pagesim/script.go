package pagesim

import (
	"encoding/json"
	"fmt"
	"time"
)

// Step is a single action in a scenario script.
type Step struct {
	Action   string  `json:"action"`
	Label    string  `json:"label,omitempty"`
	Selector string  `json:"selector,omitempty"`
	Y        float64 `json:"y,omitempty"`
	Width    float64 `json:"width,omitempty"`
	Height   float64 `json:"height,omitempty"`
	Smooth   bool    `json:"smooth,omitempty"`
	Frames   int     `json:"frames,omitempty"`
	Ms       int     `json:"ms,omitempty"`
	State    string  `json:"state,omitempty"`
}

// Script is a parsed scenario: a list of user actions and clock advances
// replayed against a Page.
//
//	{"steps": [
//	  {"action": "ready", "state": "complete"},
//	  {"action": "scroll", "y": 400},
//	  {"action": "frames", "frames": 30},
//	  {"action": "click", "selector": "[data-scroll-to]"},
//	  {"action": "wait", "ms": 500},
//	  {"action": "mark", "label": "after-jump"}
//	]}
type Script struct {
	Steps []Step `json:"steps"`
}

// LoadScript parses a JSON scenario script.
func LoadScript(data []byte) (*Script, error) {
	var s Script
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range s.Steps {
		if !knownAction(st.Action) {
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &s, nil
}

func knownAction(a string) bool {
	switch a {
	case "scroll", "scrollBy", "scrollTo", "resize", "frames", "wait", "click", "ready", "mark":
		return true
	}
	return false
}

// Run replays every step against p. mark, when non-nil, is called with the
// label of each "mark" step.
func (s *Script) Run(p *Page, mark func(label string)) error {
	for i, st := range s.Steps {
		if err := apply(p, st, mark); err != nil {
			return fmt.Errorf("step %d (%s): %w", i, st.Action, err)
		}
		switch st.Action {
		case "frames":
			p.Frames(st.Frames)
		case "wait":
			p.Advance(time.Duration(st.Ms) * time.Millisecond)
		}
	}
	return nil
}

// apply performs the immediate part of a step. Clock steps are no-ops here.
func apply(p *Page, st Step, mark func(string)) error {
	switch st.Action {
	case "scroll":
		p.Scroll(st.Y)
	case "scrollBy":
		p.ScrollBy(st.Y)
	case "scrollTo":
		p.ScrollTo(st.Y, st.Smooth)
	case "resize":
		p.Resize(st.Width, st.Height)
	case "ready":
		p.SetReadyState(st.State)
	case "click":
		el, err := p.QueryElement(st.Selector)
		if err != nil {
			return err
		}
		if el == nil {
			return fmt.Errorf("no element matches %q", st.Selector)
		}
		el.Click()
	case "mark":
		if mark != nil {
			mark(st.Label)
		}
	}
	return nil
}

// Runner replays a script one frame at a time, for hosts that own the frame
// loop. Clock steps become frame waits.
type Runner struct {
	script    *Script
	cursor    int
	waitCount int
	done      bool
	err       error
	interval  time.Duration

	// Mark receives the label of each "mark" step.
	Mark func(label string)
}

// NewRunner returns a runner for s. interval converts "wait" durations to
// frame counts.
func NewRunner(s *Script, interval time.Duration) *Runner {
	if interval <= 0 {
		interval = 16 * time.Millisecond
	}
	return &Runner{script: s, interval: interval}
}

// Done reports whether every step has run, or a step failed.
func (r *Runner) Done() bool {
	return r.done
}

// Err returns the error that stopped the runner, if any.
func (r *Runner) Err() error {
	return r.err
}

// Step advances the runner by one frame. The caller advances the page clock.
func (r *Runner) Step(p *Page) {
	if r.done {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.script.Steps) {
		r.done = true
		return
	}

	st := r.script.Steps[r.cursor]
	r.cursor++
	if err := apply(p, st, r.Mark); err != nil {
		r.err = fmt.Errorf("step %d (%s): %w", r.cursor-1, st.Action, err)
		r.done = true
		return
	}
	switch st.Action {
	case "frames":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "wait":
		if n := int(time.Duration(st.Ms) * time.Millisecond / r.interval); n > 0 {
			r.waitCount = n - 1
		}
	}

	if r.cursor >= len(r.script.Steps) && r.waitCount == 0 {
		r.done = true
	}
}
