package scene

import (
	"strconv"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/zeusync/scenecore/internal/core/observability/log"
)

const eps = 1e-9

func assertMatEqual(t *testing.T, want, got mgl64.Mat4) {
	t.Helper()
	for i := range want {
		if !mgl64.FloatEqualThreshold(want[i], got[i], eps) {
			t.Fatalf("matrix mismatch at %d: want %v got %v\nwant=%v\ngot=%v", i, want[i], got[i], want, got)
		}
	}
}

func assertVecEqual(t *testing.T, want, got mgl64.Vec3) {
	t.Helper()
	for i := range want {
		if !mgl64.FloatEqualThreshold(want[i], got[i], eps) {
			t.Fatalf("vector mismatch: want %v got %v", want, got)
		}
	}
}

func observed() (log.Log, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return log.FromZap(zap.New(core)), logs
}

// recorder collects hook invocations in call order.
type recorder struct {
	calls []string
}

func (r *recorder) add(s string) { r.calls = append(r.calls, s) }

type recordingBehavior struct {
	rec  *recorder
	args any
}

func (b *recordingBehavior) Init(o *GameObject, args any) {
	b.args = args
	b.rec.add("init:" + o.Name())
}
func (b *recordingBehavior) Update(o *GameObject, _ float64) { b.rec.add("update:" + o.Name()) }
func (b *recordingBehavior) Draw(o *GameObject)              { b.rec.add("draw:" + o.Name()) }
func (b *recordingBehavior) Shutdown(o *GameObject)          { b.rec.add("shutdown:" + o.Name()) }

func recordingClass(name string, rec *recorder) *Class {
	return &Class{Name: name, New: func() Behavior { return &recordingBehavior{rec: rec} }}
}

type tagComponent struct {
	kind string
	rec  *recorder
}

func (c *tagComponent) Kind() string { return c.kind }

func (c *tagComponent) Update(o *GameObject, _ float64) {
	if c.rec != nil {
		c.rec.add("component:" + c.kind + ":" + o.Name())
	}
}

type statefulComponent struct {
	value int
}

func (c *statefulComponent) Kind() string { return "Stateful" }

func (c *statefulComponent) Clone() Component {
	cp := *c
	return &cp
}

// tagList is a component whose dynamic type cannot key a map.
type tagList []string

func (tagList) Kind() string { return "Tags" }

func idString(id ID) string {
	return strconv.FormatUint(uint64(id), 10)
}

func observerBool(key string, v bool) zapcore.Field {
	return zap.Bool(key, v)
}
