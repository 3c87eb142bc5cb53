package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phanxgames/pose"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "pose.yaml"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if cfg != Default() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadFile(t *testing.T) {
	dir := writeConfig(t, `
animation:
  name: walk
  begin_frame: 1
  end_frame: 24
  fps: 12
  loop: true
editor:
  debug: true
  history_limit: 50
player:
  workers: 3
log:
  level: debug
`)
	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	want := pose.AnimationSettings{Name: "walk", BeginFrame: 1, EndFrame: 24, FPS: 12, Loop: true}
	if cfg.Animation != want {
		t.Errorf("Animation = %+v", cfg.Animation)
	}
	if !cfg.Editor.Debug || cfg.Editor.HistoryLimit != 50 || cfg.Player.Workers != 3 {
		t.Errorf("Editor = %+v Player = %+v", cfg.Editor, cfg.Player)
	}
	if cfg.Log.Level != slog.LevelDebug {
		t.Errorf("Level = %v", cfg.Log.Level)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := writeConfig(t, "animation:\n  fps: 12\n")
	t.Setenv("POSE_ANIMATION_FPS", "48")
	t.Setenv("POSE_EDITOR_HISTORY_LIMIT", "7")
	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Animation.FPS != 48 || cfg.Editor.HistoryLimit != 7 {
		t.Errorf("fps %v limit %d", cfg.Animation.FPS, cfg.Editor.HistoryLimit)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"reversed frames": "animation:\n  begin_frame: 10\n  end_frame: 2\n",
		"zero fps":        "animation:\n  fps: 0\n",
		"bad level":       "log:\n  level: loud\n",
		"no workers":      "player:\n  workers: 0\n",
		"malformed":       "animation: [\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, body)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestDocumentOptions(t *testing.T) {
	cfg := Default()
	cfg.Animation = pose.AnimationSettings{Name: "run", BeginFrame: 2, EndFrame: 9, FPS: 8}
	cfg.Editor.HistoryLimit = 1

	ed := pose.NewEditor(cfg.DocumentOptions()...)
	if got := ed.Document().CurrentAnimation().Settings(); got != cfg.Animation {
		t.Errorf("animation = %+v", got)
	}
	_, _ = ed.AddNode(pose.NodeTypeBone, "a", 0)
	_, _ = ed.AddNode(pose.NodeTypeBone, "b", 0)
	if ed.History().Count() != 1 {
		t.Errorf("history limit not applied: %d units", ed.History().Count())
	}
}

func TestLogger(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = slog.LevelWarn
	var buf bytes.Buffer
	l := cfg.Logger(&buf)
	l.Info("hidden")
	l.Warn("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("output = %q", buf.String())
	}
}
