// Pixelcafe opens the scene engine in a window: the outside scene, a click
// to step inside, Enter to focus and Escape to step back.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/phanxgames/pixelcafe"
	"github.com/phanxgames/pixelcafe/audio"
	"github.com/phanxgames/pixelcafe/display"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	debug := flag.Bool("debug", false, "enable debug logging and tick stats")
	scriptPath := flag.String("script", "", "path to a JSON playback script")
	flag.Parse()

	cfg, err := pixelcafe.LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *debug {
		cfg.Debug = true
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	loader := pixelcafe.NewSequenceLoader(cfg.Loop, logger)
	scenes := pixelcafe.Scenes{
		Outside: loader.Load(cfg.Assets.Outside),
		Inside:  loader.LoadWithFallback(cfg.Assets.Inside, cfg.Assets.InsideFallback),
		Focused: loader.Load(cfg.Assets.Focused),
	}

	var opts []pixelcafe.LoopOption
	if cfg.Audio.Enabled {
		player := audio.NewFromConfig(cfg, logger)
		if err := player.Initialize(); err != nil {
			logger.Warn("audio unavailable, cues disabled", "err", err)
		} else {
			defer player.Cleanup()
			opts = append(opts, pixelcafe.WithCuePlayer(player))
		}
	}
	if *scriptPath != "" {
		runner, err := pixelcafe.LoadScriptFile(*scriptPath)
		if err != nil {
			log.Fatal(err)
		}
		opts = append(opts, pixelcafe.WithScript(runner))
	}

	game := display.New(cfg, scenes, logger, opts...)
	if err := game.Run(); err != nil {
		log.Fatal(err)
	}
}
