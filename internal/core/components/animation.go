package components

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/zeusync/scenecore/internal/core/document"
	"github.com/zeusync/scenecore/internal/core/scene"
)

// Property is the transform value a track drives.
type Property uint8

const (
	PropertyPosition Property = iota
	PropertyScale
	PropertyRotation
)

func (p Property) String() string {
	switch p {
	case PropertyScale:
		return "Scale"
	case PropertyRotation:
		return "Rotation"
	default:
		return "Position"
	}
}

func parseProperty(s string) (Property, error) {
	switch strings.ToLower(s) {
	case "position":
		return PropertyPosition, nil
	case "scale":
		return PropertyScale, nil
	case "rotation":
		return PropertyRotation, nil
	}
	return 0, fmt.Errorf("%w: animation property %q", ErrInvalidValue, s)
}

var easings = map[string]ease.TweenFunc{
	"linear":       ease.Linear,
	"inquad":       ease.InQuad,
	"outquad":      ease.OutQuad,
	"inoutquad":    ease.InOutQuad,
	"incubic":      ease.InCubic,
	"outcubic":     ease.OutCubic,
	"inoutcubic":   ease.InOutCubic,
	"insine":       ease.InSine,
	"outsine":      ease.OutSine,
	"inoutsine":    ease.InOutSine,
	"inexpo":       ease.InExpo,
	"outexpo":      ease.OutExpo,
	"inoutexpo":    ease.InOutExpo,
	"inback":       ease.InBack,
	"outback":      ease.OutBack,
	"inoutback":    ease.InOutBack,
	"outbounce":    ease.OutBounce,
	"inoutbounce":  ease.InOutBounce,
	"outelastic":   ease.OutElastic,
	"inoutelastic": ease.InOutElastic,
}

// EaseNames lists the accepted easing names.
func EaseNames() []string {
	names := make([]string, 0, len(easings))
	for n := range easings {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Easing resolves an easing name, case-insensitively. Empty means linear.
func Easing(name string) (ease.TweenFunc, error) {
	if name == "" {
		return ease.Linear, nil
	}
	fn, ok := easings[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: easing %q", ErrInvalidValue, name)
	}
	return fn, nil
}

// Track tweens one transform property from its value at the first update
// towards To. Rotation targets are Euler degrees.
type Track struct {
	Property Property
	To       mgl64.Vec3
	Duration float32
	Ease     string
	Loop     bool
	Yoyo     bool

	fn       ease.TweenFunc
	tween    *gween.Tween
	started  bool
	done     bool
	reversed bool
	from     mgl64.Vec3
	fromRot  mgl64.Quat
	toRot    mgl64.Quat
}

func NewTrack(p Property, to mgl64.Vec3, duration float32, easing string) (*Track, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("%w: track duration must be positive", ErrInvalidValue)
	}
	fn, err := Easing(easing)
	if err != nil {
		return nil, err
	}
	return &Track{Property: p, To: to, Duration: duration, Ease: easing, fn: fn}, nil
}

func (tr *Track) Done() bool { return tr.done }

func (tr *Track) start(t *scene.Transform) {
	tr.started = true
	tr.tween = gween.New(0, 1, tr.Duration, tr.fn)
	switch tr.Property {
	case PropertyPosition:
		tr.from = t.Position
	case PropertyScale:
		tr.from = t.Scale
	case PropertyRotation:
		tr.fromRot = t.Rotation
		tr.toRot = scene.EulerToQuat(tr.To[0], tr.To[1], tr.To[2])
	}
}

func (tr *Track) update(t *scene.Transform, dt float64) {
	if tr.done {
		return
	}
	if !tr.started {
		tr.start(t)
	}
	progress, finished := tr.tween.Update(float32(dt))
	amount := float64(progress)
	if tr.reversed {
		amount = 1 - amount
	}
	tr.apply(t, amount)

	if !finished {
		return
	}
	switch {
	case tr.Yoyo:
		tr.reversed = !tr.reversed
		if !tr.reversed && !tr.Loop {
			tr.done = true
			return
		}
		tr.tween.Reset()
	case tr.Loop:
		tr.tween.Reset()
	default:
		tr.done = true
	}
}

func (tr *Track) apply(t *scene.Transform, amount float64) {
	switch tr.Property {
	case PropertyPosition:
		t.Position = lerp(tr.from, tr.To, amount)
	case PropertyScale:
		t.Scale = lerp(tr.from, tr.To, amount)
	case PropertyRotation:
		t.Rotation = mgl64.QuatSlerp(tr.fromRot, tr.toRot, amount)
	}
}

func (tr *Track) clone() *Track {
	return &Track{
		Property: tr.Property,
		To:       tr.To,
		Duration: tr.Duration,
		Ease:     tr.Ease,
		Loop:     tr.Loop,
		Yoyo:     tr.Yoyo,
		fn:       tr.fn,
	}
}

func lerp(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// Animation drives its tracks during the update traversal. It carries
// per-object progress, so prefab instances get their own copy.
type Animation struct {
	Tracks  []*Track
	Playing bool
}

func (*Animation) Kind() string { return KindAnimation }

func (a *Animation) Update(owner *scene.GameObject, dt float64) {
	if !a.Playing {
		return
	}
	t := owner.Transform()
	for _, tr := range a.Tracks {
		tr.update(t, dt)
	}
}

// Finished reports whether every track has completed. Looping tracks never do.
func (a *Animation) Finished() bool {
	for _, tr := range a.Tracks {
		if !tr.done {
			return false
		}
	}
	return true
}

func (a *Animation) Clone() scene.Component {
	cp := &Animation{Playing: a.Playing, Tracks: make([]*Track, len(a.Tracks))}
	for i, tr := range a.Tracks {
		cp.Tracks[i] = tr.clone()
	}
	return cp
}

func newAnimation(node document.Node, owner *scene.GameObject) (scene.Component, error) {
	var raw struct {
		Autoplay *bool `yaml:"Autoplay"`
		Tracks   []struct {
			Property string    `yaml:"Property"`
			To       []float64 `yaml:"To"`
			Duration float32   `yaml:"Duration"`
			Ease     string    `yaml:"Ease"`
			Loop     bool      `yaml:"Loop"`
			Yoyo     bool      `yaml:"Yoyo"`
		} `yaml:"Tracks"`
	}
	if err := decode(node, KindAnimation, &raw); err != nil {
		return nil, err
	}
	a := &Animation{Playing: raw.Autoplay == nil || *raw.Autoplay}
	for i, rt := range raw.Tracks {
		p, err := parseProperty(rt.Property)
		if err != nil {
			return nil, fmt.Errorf("track %d: %w", i, err)
		}
		if len(rt.To) != 3 {
			return nil, fmt.Errorf("track %d: %w: To needs 3 numbers", i, ErrInvalidValue)
		}
		tr, err := NewTrack(p, mgl64.Vec3{rt.To[0], rt.To[1], rt.To[2]}, rt.Duration, rt.Ease)
		if err != nil {
			return nil, fmt.Errorf("track %d: %w", i, err)
		}
		tr.Loop, tr.Yoyo = rt.Loop, rt.Yoyo
		a.Tracks = append(a.Tracks, tr)
	}
	owner.SetSlot(scene.SlotAnimation, a)
	return a, nil
}
