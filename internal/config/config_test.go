package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ayusman/mudra/internal/action"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.StableFrames != DefaultStableFrames {
		t.Errorf("StableFrames = %d, want %d", cfg.StableFrames, DefaultStableFrames)
	}
	if cfg.Cooldown() != 3*time.Second {
		t.Errorf("Cooldown = %v, want 3s", cfg.Cooldown())
	}
	if !cfg.MirrorEnabled() {
		t.Error("mirror should default to enabled")
	}
	if !cfg.HistoryEnabled() {
		t.Error("history should default to enabled")
	}
	if cfg.Headless {
		t.Error("headless should default to off")
	}
}

func TestLoad(t *testing.T) {
	t.Run("fills defaults for unset fields", func(t *testing.T) {
		path := writeConfig(t, "camera_id: 1\n")

		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.CameraID != 1 {
			t.Errorf("CameraID = %d, want 1", cfg.CameraID)
		}
		if cfg.StableFrames != DefaultStableFrames {
			t.Errorf("StableFrames = %d, want default %d", cfg.StableFrames, DefaultStableFrames)
		}
		if cfg.CooldownMs != DefaultCooldownMs {
			t.Errorf("CooldownMs = %d, want default %d", cfg.CooldownMs, DefaultCooldownMs)
		}
	})

	t.Run("mirror can be disabled", func(t *testing.T) {
		path := writeConfig(t, "mirror: false\n")

		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.MirrorEnabled() {
			t.Error("expected mirror disabled")
		}
	})

	t.Run("rejects negative camera id", func(t *testing.T) {
		path := writeConfig(t, "camera_id: -1\n")

		if _, err := Load(path); err == nil {
			t.Error("expected error for negative camera_id")
		}
	})

	t.Run("rejects out-of-range action count", func(t *testing.T) {
		path := writeConfig(t, "actions:\n  6:\n    launch: gimp\n")

		if _, err := Load(path); err == nil {
			t.Error("expected error for actions key 6")
		}
	})

	t.Run("rejects conflicting action fields", func(t *testing.T) {
		path := writeConfig(t, "actions:\n  2:\n    launch: gimp\n    close_last: true\n")

		if _, err := Load(path); err == nil {
			t.Error("expected error for conflicting action entry")
		}
	})

	t.Run("missing file errors", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("expected error for missing file")
		}
	})
}

func TestConfig_Table(t *testing.T) {
	t.Run("no overrides keeps default binding", func(t *testing.T) {
		table := Default().Table()

		if table.Lookup(0).Kind != action.KindCloseLast {
			t.Error("expected close_last on count 0")
		}
		if table.Lookup(2).Kind != action.KindLaunch {
			t.Error("expected launch on count 2")
		}
	})

	t.Run("overrides replace entries", func(t *testing.T) {
		path := writeConfig(t, `
actions:
  2:
    launch: gimp
  3:
    url: https://example.com/
  5:
    close_last: true
`)
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		table := cfg.Table()

		if got := table.Lookup(2); got.Kind != action.KindLaunch || got.Target != "gimp" {
			t.Errorf("count 2: got %+v", got)
		}
		if got := table.Lookup(3); got.Kind != action.KindOpenURL || got.Target != "https://example.com/" {
			t.Errorf("count 3: got %+v", got)
		}
		if got := table.Lookup(5); got.Kind != action.KindCloseLast {
			t.Errorf("count 5: got %+v", got)
		}
	})

	t.Run("empty override disables a count", func(t *testing.T) {
		path := writeConfig(t, "actions:\n  1: {}\n")

		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got := cfg.Table().Lookup(1).Kind; got != action.KindNone {
			t.Errorf("count 1: expected none, got %s", got)
		}
	})
}
