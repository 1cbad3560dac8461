package action

import (
	"context"
	"fmt"
)

// CountNone is the previous-count sentinel used before any frame has
// been classified. It is distinct from every valid count.
const CountNone = -1

// State carries the dispatcher's per-loop state. It is passed in and
// returned explicitly; the package holds no mutable state of its own.
type State struct {
	// Last is the handle of the last launched application, nil when
	// none is tracked.
	Last *Handle

	// PrevCount is the finger count observed on the previous frame,
	// CountNone before the first.
	PrevCount int
}

// NewState returns the initial state: no tracked application, no count
// seen yet.
func NewState() State {
	return State{PrevCount: CountNone}
}

// Result describes what a dispatch did, for logging and history.
type Result struct {
	Count  int
	Action Action
	// Fired reports whether an external call was attempted this frame.
	Fired bool
	// Handle is set when a launch succeeded.
	Handle *Handle
}

// Dispatcher executes the action bound to a finger count.
type Dispatcher struct {
	table    Table
	launcher Launcher
}

// NewDispatcher creates a Dispatcher over the given table and launcher.
func NewDispatcher(table Table, launcher Launcher) *Dispatcher {
	return &Dispatcher{
		table:    table,
		launcher: launcher,
	}
}

// Dispatch applies the action bound to count and returns the updated
// state.
//
// Actions fire on edges only: a count equal to the previous frame's
// count does nothing. PrevCount always tracks the observed count, even
// when the action fails.
//
// A successful launch overwrites the tracked handle; the previously
// launched application keeps running. Close-last terminates the tracked
// application and clears the handle on confirmed close only; with no
// handle tracked it is a no-op. Failures are returned for reporting and
// leave the tracked handle unchanged.
func (d *Dispatcher) Dispatch(ctx context.Context, count int, st State) (State, Result, error) {
	res := Result{Count: count}

	if count == st.PrevCount {
		return st, res, nil
	}
	st.PrevCount = count

	act := d.table.Lookup(count)
	res.Action = act

	switch act.Kind {
	case KindLaunch:
		res.Fired = true
		h, err := d.launcher.Launch(ctx, act.Target)
		if err != nil {
			return st, res, fmt.Errorf("launch %s: %w", act.Target, err)
		}
		res.Handle = h
		st.Last = h

	case KindOpenURL:
		res.Fired = true
		if err := d.launcher.OpenURL(ctx, act.Target); err != nil {
			return st, res, fmt.Errorf("open %s: %w", act.Target, err)
		}

	case KindCloseLast:
		if st.Last == nil {
			return st, res, nil
		}
		res.Fired = true
		if err := d.launcher.Terminate(st.Last); err != nil {
			return st, res, fmt.Errorf("close %s: %w", st.Last.App, err)
		}
		st.Last = nil
	}

	return st, res, nil
}
