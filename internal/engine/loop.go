// Package engine drives a scene with a fixed-step frame loop.
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/zeusync/scenecore/internal/core/observability/log"
	"github.com/zeusync/scenecore/internal/core/scene"
)

const DefaultTickRate = 16 * time.Millisecond

// FrameRenderer is notified around each frame's draw traversal.
type FrameRenderer interface {
	scene.Renderer
	BeginFrame()
	EndFrame()
}

type Options struct {
	TickRate time.Duration
	// Frames stops the loop after that many frames. Zero runs until cancelled.
	Frames uint64
}

// Loop updates then draws the scene once per tick. Every frame uses the
// same delta, the tick rate in seconds.
type Loop struct {
	scene    *scene.Scene
	renderer scene.Renderer
	opts     Options
	log      log.Log

	frames       uint64
	shutdownOnce sync.Once
}

func NewLoop(sc *scene.Scene, r scene.Renderer, opts Options, logger log.Log) *Loop {
	if opts.TickRate <= 0 {
		opts.TickRate = DefaultTickRate
	}
	if logger == nil {
		logger = log.NewNop()
	}
	return &Loop{scene: sc, renderer: r, opts: opts, log: logger.Named("loop")}
}

// Frames returns the number of completed frames.
func (l *Loop) Frames() uint64 { return l.frames }

// Step runs one frame with the given delta in seconds.
func (l *Loop) Step(dt float64) {
	l.scene.Update(dt)

	fr, framed := l.renderer.(FrameRenderer)
	if framed {
		fr.BeginFrame()
	}
	l.scene.Draw(l.renderer)
	if framed {
		fr.EndFrame()
	}
	l.frames++
}

// Run ticks until ctx is done or the frame budget is spent, then shuts the
// scene down. Cancellation is a normal stop and returns nil.
func (l *Loop) Run(ctx context.Context) error {
	defer l.Shutdown()

	ticker := time.NewTicker(l.opts.TickRate)
	defer ticker.Stop()

	dt := l.opts.TickRate.Seconds()
	l.log.Info("frame loop started",
		log.String("scene", l.scene.Name()),
		log.Duration("tick", l.opts.TickRate),
		log.Uint64("frames", l.opts.Frames),
	)
	for {
		if l.opts.Frames > 0 && l.frames >= l.opts.Frames {
			l.log.Info("frame budget reached", log.Uint64("frames", l.frames))
			return nil
		}
		select {
		case <-ctx.Done():
			l.log.Info("frame loop stopped", log.Uint64("frames", l.frames))
			return nil
		case <-ticker.C:
			l.Step(dt)
		}
	}
}

// Shutdown runs the scene's shutdown traversal once.
func (l *Loop) Shutdown() {
	l.shutdownOnce.Do(func() {
		l.scene.Shutdown()
	})
}
