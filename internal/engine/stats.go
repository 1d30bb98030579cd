package engine

import (
	"sync/atomic"

	"github.com/zeusync/scenecore/internal/core/scene"
)

// FrameStats counts the submissions of one frame.
type FrameStats struct {
	Meshes uint64
	Lights uint64
}

// StatsRenderer counts draw submissions instead of issuing draw calls.
type StatsRenderer struct {
	meshes atomic.Uint64
	lights atomic.Uint64

	current FrameStats
	last    FrameStats
}

var _ FrameRenderer = (*StatsRenderer)(nil)

func NewStatsRenderer() *StatsRenderer {
	return &StatsRenderer{}
}

func (r *StatsRenderer) DrawMesh(*scene.GameObject, scene.Component, scene.Component) {
	r.meshes.Add(1)
	r.current.Meshes++
}

func (r *StatsRenderer) DrawLight(*scene.GameObject, scene.Component) {
	r.lights.Add(1)
	r.current.Lights++
}

func (r *StatsRenderer) BeginFrame() {
	r.current = FrameStats{}
}

func (r *StatsRenderer) EndFrame() {
	r.last = r.current
}

// LastFrame returns the counts of the most recently completed frame.
func (r *StatsRenderer) LastFrame() FrameStats {
	return r.last
}

// Totals returns the counts since creation.
func (r *StatsRenderer) Totals() FrameStats {
	return FrameStats{Meshes: r.meshes.Load(), Lights: r.lights.Load()}
}
