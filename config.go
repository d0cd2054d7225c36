package pixelcafe

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment override read by LoadConfig.
const EnvPrefix = "PIXELCAFE_"

// TransitionStyle selects how the inside scene hands over to the focused scene.
type TransitionStyle string

const (
	StyleCrossfade TransitionStyle = "crossfade"
	StyleTear      TransitionStyle = "tear"
)

// CursorMode selects the overlay cursor drawn by the display.
type CursorMode string

const (
	CursorLeaf      CursorMode = "leaf"
	CursorCrosshair CursorMode = "crosshair"
	CursorSystem    CursorMode = "system"
)

// Config is the single immutable configuration value built at startup and
// passed to every component. Components copy what they need; nothing reads
// configuration from package state.
type Config struct {
	Title         string           `yaml:"title" env:"TITLE" validate:"required"`
	Assets        AssetConfig      `yaml:"assets" envPrefix:"ASSETS_"`
	Scale         ScaleConfig      `yaml:"scale" envPrefix:"SCALE_"`
	Fit           FitMode          `yaml:"fit" env:"FIT" validate:"oneof=stretch letterbox fill"`
	Transition    TransitionConfig `yaml:"transition" envPrefix:"TRANSITION_"`
	Loop          bool             `yaml:"loop" env:"LOOP"`
	FPSLimit      int              `yaml:"fps_limit" env:"FPS_LIMIT" validate:"min=1,max=1000"`
	DefaultWidth  int              `yaml:"default_width" env:"DEFAULT_WIDTH" validate:"min=1"`
	DefaultHeight int              `yaml:"default_height" env:"DEFAULT_HEIGHT" validate:"min=1"`
	Input         InputConfig      `yaml:"input" envPrefix:"INPUT_"`
	Cursor        CursorConfig     `yaml:"cursor" envPrefix:"CURSOR_"`
	Overlay       OverlayConfig    `yaml:"overlay" envPrefix:"OVERLAY_"`
	Audio         AudioConfig      `yaml:"audio" envPrefix:"AUDIO_"`
	ScreenshotDir string           `yaml:"screenshot_dir" env:"SCREENSHOT_DIR" validate:"required"`
	Debug         bool             `yaml:"debug" env:"DEBUG"`
}

// AssetConfig lists the files the core and its collaborators load. Missing
// files are not errors; scenes fall back to placeholders and cues go silent.
type AssetConfig struct {
	Outside        string `yaml:"outside" env:"OUTSIDE"`
	Inside         string `yaml:"inside" env:"INSIDE"`
	InsideFallback string `yaml:"inside_fallback" env:"INSIDE_FALLBACK"`
	Focused        string `yaml:"focused" env:"FOCUSED"`
	Bell           string `yaml:"bell" env:"BELL"`
	Tear           string `yaml:"tear" env:"TEAR"`
	Leaf           string `yaml:"leaf" env:"LEAF"`
}

// TransitionConfig holds the tick-counted transition timings and the tear
// geometry parameters.
type TransitionConfig struct {
	Style           TransitionStyle `yaml:"style" env:"STYLE" validate:"oneof=crossfade tear"`
	CrossfadeFrames int             `yaml:"crossfade_frames" env:"CROSSFADE_FRAMES" validate:"min=1"`
	TearFrames      int             `yaml:"tear_frames" env:"TEAR_FRAMES" validate:"min=1"`
	TearSegments    int             `yaml:"tear_segments" env:"TEAR_SEGMENTS" validate:"min=0"`
	TearWobble      int             `yaml:"tear_wobble" env:"TEAR_WOBBLE" validate:"min=0"`
	TearDebris      int             `yaml:"tear_debris" env:"TEAR_DEBRIS" validate:"min=0"`
	// Seed feeds the tear generator. Zero picks a time-based seed.
	Seed int64 `yaml:"seed" env:"SEED"`
}

// InputConfig holds the logical hotspots the default router knows about.
type InputConfig struct {
	ClickAnywhereOutside bool   `yaml:"click_anywhere_outside" env:"CLICK_ANYWHERE_OUTSIDE"`
	Door                 Hitbox `yaml:"door"`
	Book                 Hitbox `yaml:"book"`
	Calendar             Hitbox `yaml:"calendar"`
	// HotspotSize enlarges focused-scene hotspots to a centered square.
	// Zero keeps the authored boxes.
	HotspotSize int `yaml:"hotspot_size" env:"HOTSPOT_SIZE" validate:"min=0"`
}

// BookBox returns the book hotspot after enlargement.
func (c InputConfig) BookBox() Hitbox {
	if c.HotspotSize > 0 {
		return c.Book.Expand(c.HotspotSize)
	}
	return c.Book
}

// CalendarBox returns the calendar hotspot after enlargement.
func (c InputConfig) CalendarBox() Hitbox {
	if c.HotspotSize > 0 {
		return c.Calendar.Expand(c.HotspotSize)
	}
	return c.Calendar
}

// CursorConfig controls the overlay cursor. It is presentation only and never
// feeds hit-testing.
type CursorConfig struct {
	Mode         CursorMode `yaml:"mode" env:"MODE" validate:"oneof=leaf crosshair system"`
	LockToScreen bool       `yaml:"lock_to_screen" env:"LOCK_TO_SCREEN"`
	Offset       Point      `yaml:"offset"`
	// AutoMax shrinks large leaf sprites to fit this many device pixels.
	AutoMax int `yaml:"auto_max" env:"AUTO_MAX" validate:"min=0"`
}

// OverlayConfig toggles debug overlays drawn by the display.
type OverlayConfig struct {
	ShowCoords   bool `yaml:"show_coords" env:"SHOW_COORDS"`
	ShowFPS      bool `yaml:"show_fps" env:"SHOW_FPS"`
	ShowHitboxes bool `yaml:"show_hitboxes" env:"SHOW_HITBOXES"`
}

// AudioConfig controls the cue player.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled" env:"ENABLED"`
	SampleRate int     `yaml:"sample_rate" env:"SAMPLE_RATE" validate:"min=8000,max=192000"`
	Synthesize bool    `yaml:"synthesize" env:"SYNTHESIZE"` // generate tones for missing cue files
	BellVolume float64 `yaml:"bell_volume" env:"BELL_VOLUME" validate:"min=0,max=1"`
	TearVolume float64 `yaml:"tear_volume" env:"TEAR_VOLUME" validate:"min=0,max=1"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		Title: "Pixel Cafe",
		Assets: AssetConfig{
			Outside:        "assets/outside.gif",
			Inside:         "assets/original.gif",
			InsideFallback: "assets/inside.gif",
			Focused:        "assets/focused.gif",
			Bell:           "assets/bell.wav",
			Tear:           "assets/tear.wav",
			Leaf:           "assets/leaf.png",
		},
		Scale: ScaleConfig{
			Mode:             ScaleAuto,
			Fixed:            4,
			MaxDisplayWidth:  800,
			MaxDisplayHeight: 600,
		},
		Fit: FitFill,
		Transition: TransitionConfig{
			Style:           StyleCrossfade,
			CrossfadeFrames: 30,
			TearFrames:      50,
			TearSegments:    18,
			TearWobble:      24,
			TearDebris:      22,
		},
		Loop:          true,
		FPSLimit:      120,
		DefaultWidth:  128,
		DefaultHeight: 96,
		Input: InputConfig{
			ClickAnywhereOutside: true,
			Door:                 Hitbox{50, 40, 70, 90},
			Book:                 Hitbox{492, 680, 532, 720},
			Calendar:             Hitbox{1050, 130, 1090, 170},
			HotspotSize:          200,
		},
		Cursor: CursorConfig{
			Mode:         CursorLeaf,
			LockToScreen: true,
			AutoMax:      48,
		},
		Overlay: OverlayConfig{
			ShowCoords: true,
		},
		Audio: AudioConfig{
			Enabled:    true,
			SampleRate: 48000,
			Synthesize: true,
			BellVolume: 1,
			TearVolume: 0.6,
		},
		ScreenshotDir: "screenshots",
	}
}

// TickInterval is the delay between ticks derived from FPSLimit.
func (c Config) TickInterval() time.Duration {
	if c.FPSLimit <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.FPSLimit)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field ranges and enum values.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// LoadConfig builds a Config from defaults, an optional YAML file and
// PIXELCAFE_* environment overrides, in that order, then validates it.
// An empty path skips the file.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
