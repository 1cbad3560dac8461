package action

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

// fakeLauncher records calls and returns configurable errors.
type fakeLauncher struct {
	launched   []string
	opened     []string
	terminated []*Handle

	launchErr    error
	openErr      error
	terminateErr error
}

func (f *fakeLauncher) Launch(ctx context.Context, target string) (*Handle, error) {
	if f.launchErr != nil {
		return nil, f.launchErr
	}
	f.launched = append(f.launched, target)
	return &Handle{
		ID:  fmt.Sprintf("handle-%d", len(f.launched)),
		App: target,
		PID: 1000 + len(f.launched),
	}, nil
}

func (f *fakeLauncher) OpenURL(ctx context.Context, url string) error {
	if f.openErr != nil {
		return f.openErr
	}
	f.opened = append(f.opened, url)
	return nil
}

func (f *fakeLauncher) Terminate(h *Handle) error {
	if f.terminateErr != nil {
		return f.terminateErr
	}
	f.terminated = append(f.terminated, h)
	return nil
}

// testTable binds counts 1-5 to distinct app launches and 0 to
// close-last, so scenarios can tell the launches apart.
func testTable() Table {
	return Table{
		0: {Kind: KindCloseLast},
		1: {Kind: KindLaunch, Target: "app1"},
		2: {Kind: KindLaunch, Target: "app2"},
		3: {Kind: KindLaunch, Target: "app3"},
		4: {Kind: KindLaunch, Target: "app4"},
		5: {Kind: KindLaunch, Target: "app5"},
	}
}

func TestDispatcher_Dispatch(t *testing.T) {
	ctx := context.Background()

	t.Run("repeated count does not re-trigger", func(t *testing.T) {
		launcher := &fakeLauncher{}
		d := NewDispatcher(testTable(), launcher)
		st := NewState()

		var err error
		for i := 0; i < 3; i++ {
			st, _, err = d.Dispatch(ctx, 2, st)
			if err != nil {
				t.Fatalf("dispatch %d: unexpected error: %v", i, err)
			}
		}

		if len(launcher.launched) != 1 {
			t.Errorf("expected exactly 1 launch for 3 identical counts, got %d", len(launcher.launched))
		}
	})

	t.Run("launch close scenario", func(t *testing.T) {
		// Count sequence 0,0,1,1,1,0: app1 launches on the edge to 1
		// and closes on the edge back to 0. Nothing fires on repeats,
		// and the leading zeros are no-ops with no tracked handle.
		launcher := &fakeLauncher{}
		d := NewDispatcher(testTable(), launcher)
		st := NewState()

		var err error
		for _, count := range []int{0, 0, 1, 1, 1, 0} {
			st, _, err = d.Dispatch(ctx, count, st)
			if err != nil {
				t.Fatalf("count %d: unexpected error: %v", count, err)
			}
		}

		if len(launcher.launched) != 1 || launcher.launched[0] != "app1" {
			t.Errorf("expected single launch of app1, got %v", launcher.launched)
		}
		if len(launcher.terminated) != 1 || launcher.terminated[0].App != "app1" {
			t.Fatalf("expected single close of app1, got %d closes", len(launcher.terminated))
		}
		if st.Last != nil {
			t.Error("expected tracked handle cleared after close")
		}
	})

	t.Run("relaunch overwrites without closing", func(t *testing.T) {
		// Count sequence 2,3 with no intervening 0: both apps launch
		// and only app3 stays tracked; app2 is never closed.
		launcher := &fakeLauncher{}
		d := NewDispatcher(testTable(), launcher)
		st := NewState()

		var err error
		for _, count := range []int{2, 3} {
			st, _, err = d.Dispatch(ctx, count, st)
			if err != nil {
				t.Fatalf("count %d: unexpected error: %v", count, err)
			}
		}

		if len(launcher.launched) != 2 {
			t.Fatalf("expected 2 launches, got %d", len(launcher.launched))
		}
		if len(launcher.terminated) != 0 {
			t.Errorf("expected no closes, got %d", len(launcher.terminated))
		}
		if st.Last == nil || st.Last.App != "app3" {
			t.Errorf("expected app3 tracked, got %+v", st.Last)
		}
	})

	t.Run("close with no handle is a no-op", func(t *testing.T) {
		launcher := &fakeLauncher{}
		d := NewDispatcher(testTable(), launcher)

		st, res, err := d.Dispatch(ctx, 0, NewState())

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Fired {
			t.Error("expected no call for close with no tracked handle")
		}
		if st.PrevCount != 0 {
			t.Errorf("expected PrevCount 0, got %d", st.PrevCount)
		}
	})

	t.Run("launch failure leaves handle unchanged", func(t *testing.T) {
		launcher := &fakeLauncher{}
		d := NewDispatcher(testTable(), launcher)
		st := NewState()

		st, _, err := d.Dispatch(ctx, 2, st)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		tracked := st.Last

		launcher.launchErr = errors.New("no such app")
		st, _, err = d.Dispatch(ctx, 3, st)

		if err == nil {
			t.Fatal("expected launch error")
		}
		if st.Last != tracked {
			t.Error("expected tracked handle unchanged on launch failure")
		}
		if st.PrevCount != 3 {
			t.Errorf("expected PrevCount to track the observed count, got %d", st.PrevCount)
		}
	})

	t.Run("close failure keeps handle", func(t *testing.T) {
		launcher := &fakeLauncher{}
		d := NewDispatcher(testTable(), launcher)
		st := NewState()

		st, _, err := d.Dispatch(ctx, 1, st)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		launcher.terminateErr = errors.New("permission denied")
		st, _, err = d.Dispatch(ctx, 0, st)

		if err == nil {
			t.Fatal("expected close error")
		}
		if st.Last == nil {
			t.Error("expected handle kept on close failure")
		}
	})

	t.Run("url action opens browser", func(t *testing.T) {
		table := DefaultTable()
		launcher := &fakeLauncher{}
		d := NewDispatcher(table, launcher)

		_, res, err := d.Dispatch(ctx, 1, NewState())

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.Fired || len(launcher.opened) != 1 {
			t.Fatalf("expected one URL open, got %v", launcher.opened)
		}
	})

	t.Run("none action does nothing", func(t *testing.T) {
		launcher := &fakeLauncher{}
		d := NewDispatcher(DefaultTable(), launcher)

		st, res, err := d.Dispatch(ctx, 5, NewState())

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Fired {
			t.Error("expected nothing fired for a none binding")
		}
		if st.PrevCount != 5 {
			t.Errorf("expected PrevCount 5, got %d", st.PrevCount)
		}
	})
}

func TestTable_Lookup(t *testing.T) {
	table := DefaultTable()

	t.Run("zero closes last", func(t *testing.T) {
		if got := table.Lookup(0).Kind; got != KindCloseLast {
			t.Errorf("expected close_last for count 0, got %s", got)
		}
	})

	t.Run("out of range is none", func(t *testing.T) {
		for _, count := range []int{-1, 6, 42, CountNone} {
			if got := table.Lookup(count).Kind; got != KindNone {
				t.Errorf("count %d: expected none, got %s", count, got)
			}
		}
	})
}
