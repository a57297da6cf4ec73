package launch

import (
	"context"
	"sync"
)

// Call is one side effect captured by a Recorder.
type Call struct {
	Action string
	Target string
}

// Recorder is a Launcher that records calls instead of performing them.
// Fail, when set, is returned from every call after recording it.
type Recorder struct {
	mu    sync.Mutex
	Calls []Call
	Fail  error
}

func (r *Recorder) record(action, target string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls = append(r.Calls, Call{Action: action, Target: target})
	return r.Fail
}

// OpenURL implements Launcher.
func (r *Recorder) OpenURL(_ context.Context, url string) error { return r.record("url", url) }

// OpenTerminal implements Launcher.
func (r *Recorder) OpenTerminal(_ context.Context, path string) error {
	return r.record("terminal", path)
}

// RaiseWindow implements Launcher.
func (r *Recorder) RaiseWindow(_ context.Context, pattern string) error {
	return r.record("window", pattern)
}

// Edit implements Launcher.
func (r *Recorder) Edit(_ context.Context, path string) error { return r.record("edit", path) }

// Targets returns the recorded targets for action, in call order.
func (r *Recorder) Targets(action string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, c := range r.Calls {
		if c.Action == action {
			out = append(out, c.Target)
		}
	}
	return out
}
