// Package config loads pose settings from a pose.yaml file and POSE_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strings"

	"github.com/phanxgames/pose"
	"github.com/phanxgames/pose/curve"
	"github.com/spf13/viper"
)

// Config holds every configurable setting.
type Config struct {
	Animation pose.AnimationSettings
	Editor    EditorConfig
	Player    PlayerConfig
	Log       LogConfig
}

// EditorConfig configures documents and their history.
type EditorConfig struct {
	Debug           bool
	HistoryLimit    int
	SolverTolerance float64
}

// PlayerConfig configures runtime playback.
type PlayerConfig struct {
	Workers int
}

// LogConfig configures the logger built by Config.Logger.
type LogConfig struct {
	Level slog.Level
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Animation: pose.AnimationSettings{
			Name:       "Animation",
			BeginFrame: 0,
			EndFrame:   60,
			FPS:        30,
		},
		Editor: EditorConfig{SolverTolerance: curve.DefaultTolerance},
		Player: PlayerConfig{Workers: runtime.GOMAXPROCS(0)},
		Log:    LogConfig{Level: slog.LevelInfo},
	}
}

var keys = []string{
	"animation.name",
	"animation.begin_frame",
	"animation.end_frame",
	"animation.fps",
	"animation.loop",
	"editor.debug",
	"editor.history_limit",
	"editor.solver_tolerance",
	"player.workers",
	"log.level",
}

// Load reads pose.yaml from dir on top of Default. Environment variables
// such as POSE_ANIMATION_FPS override the file. A missing file is not an
// error.
func Load(dir string) (Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigName("pose")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.SetEnvPrefix("POSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return cfg, fmt.Errorf("config: bind %s: %w", k, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return cfg, fmt.Errorf("config: read %s: %w", dir, err)
		}
		pose.Logger().Debug("config: no pose.yaml, using defaults and environment", "dir", dir)
	} else {
		pose.Logger().Debug("config: loaded", "file", v.ConfigFileUsed())
	}

	if v.IsSet("animation.name") {
		cfg.Animation.Name = v.GetString("animation.name")
	}
	if v.IsSet("animation.begin_frame") {
		cfg.Animation.BeginFrame = v.GetInt("animation.begin_frame")
	}
	if v.IsSet("animation.end_frame") {
		cfg.Animation.EndFrame = v.GetInt("animation.end_frame")
	}
	if v.IsSet("animation.fps") {
		cfg.Animation.FPS = v.GetFloat64("animation.fps")
	}
	if v.IsSet("animation.loop") {
		cfg.Animation.Loop = v.GetBool("animation.loop")
	}
	if v.IsSet("editor.debug") {
		cfg.Editor.Debug = v.GetBool("editor.debug")
	}
	if v.IsSet("editor.history_limit") {
		cfg.Editor.HistoryLimit = v.GetInt("editor.history_limit")
	}
	if v.IsSet("editor.solver_tolerance") {
		cfg.Editor.SolverTolerance = v.GetFloat64("editor.solver_tolerance")
	}
	if v.IsSet("player.workers") {
		cfg.Player.Workers = v.GetInt("player.workers")
	}
	if v.IsSet("log.level") {
		if err := cfg.Log.Level.UnmarshalText([]byte(v.GetString("log.level"))); err != nil {
			return cfg, fmt.Errorf("config: log.level: %w", err)
		}
	}

	return cfg, cfg.Validate()
}

// Validate reports settings no document could be built from.
func (c Config) Validate() error {
	var errs []error
	if !c.Animation.Valid() {
		errs = append(errs, fmt.Errorf("config: animation frames [%d, %d] at %v fps",
			c.Animation.BeginFrame, c.Animation.EndFrame, c.Animation.FPS))
	}
	if c.Editor.HistoryLimit < 0 {
		errs = append(errs, fmt.Errorf("config: negative history limit %d", c.Editor.HistoryLimit))
	}
	if !(c.Editor.SolverTolerance > 0) {
		errs = append(errs, fmt.Errorf("config: solver tolerance %v must be positive", c.Editor.SolverTolerance))
	}
	if c.Player.Workers < 1 {
		errs = append(errs, fmt.Errorf("config: player workers %d must be at least 1", c.Player.Workers))
	}
	return errors.Join(errs...)
}

// DocumentOptions converts the settings into document options.
func (c Config) DocumentOptions(extra ...pose.Option) []pose.Option {
	opts := []pose.Option{
		pose.WithDefaultAnimation(c.Animation),
		pose.WithDebug(c.Editor.Debug),
		pose.WithHistoryLimit(c.Editor.HistoryLimit),
		pose.WithSolverTolerance(c.Editor.SolverTolerance),
	}
	return append(opts, extra...)
}

// Logger builds a text logger writing to w at the configured level.
func (c Config) Logger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.Log.Level}))
}
