package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/zeusync/scenecore/internal/config"
	"github.com/zeusync/scenecore/internal/core/observability/log"
	"github.com/zeusync/scenecore/internal/engine"
	"github.com/zeusync/scenecore/internal/injector"
	"github.com/zeusync/scenecore/internal/inspect"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "scened:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to TOML config (default $"+config.EnvPath+")")
	scenePath := flag.String("scene", "", "scene document, overrides [scene] file")
	frames := flag.Uint64("frames", 0, "stop after N frames, overrides [engine] frames")
	printTree := flag.Bool("tree", true, "print the scene tree on exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *scenePath != "" {
		cfg.Scene.File = *scenePath
	}
	if *frames > 0 {
		cfg.Engine.Frames = *frames
	}

	rt, cleanup, err := injector.InitializeRuntime(cfg)
	if err != nil {
		return err
	}
	defer cleanup()
	defer func() { _ = rt.Log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sc, err := rt.Boot(ctx)
	if err != nil {
		return err
	}

	stats := engine.NewStatsRenderer()
	loop := engine.NewLoop(sc, stats, engine.Options{
		TickRate: cfg.Engine.TickRate,
		Frames:   cfg.Engine.Frames,
	}, rt.Log)
	if err := loop.Run(ctx); err != nil {
		return err
	}

	totals := stats.Totals()
	rt.Log.Info("run finished",
		log.Uint64("frames", loop.Frames()),
		log.Uint64("meshes", totals.Meshes),
		log.Uint64("lights", totals.Lights),
	)
	if *printTree {
		return inspect.WriteTree(os.Stdout, sc.Root())
	}
	return nil
}
