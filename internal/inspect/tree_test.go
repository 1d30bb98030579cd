package inspect

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/scenecore/internal/core/scene"
)

type kind string

func (k kind) Kind() string { return string(k) }

func TestTreeLayout(t *testing.T) {
	root := scene.NewObject("root")
	a := scene.NewObject("a")
	wide := scene.NewObject("箱子")
	leaf := scene.NewObject("leaf")
	require.NoError(t, root.AddChild(a))
	require.NoError(t, root.AddChild(wide))
	require.NoError(t, a.AddChild(leaf))
	a.Transform().Position = mgl64.Vec3{1, 2, 3}
	leaf.AddComponent(kind("Mesh"))
	leaf.AddComponent(kind("Light"))

	out := Tree(root)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)

	assert.True(t, strings.HasPrefix(lines[0], root.String()))
	assert.True(t, strings.HasPrefix(lines[1], "├─ "+a.String()))
	assert.True(t, strings.HasPrefix(lines[2], "│  └─ "+leaf.String()))
	assert.True(t, strings.HasPrefix(lines[3], "└─ "+wide.String()))

	assert.Contains(t, lines[1], "(1.00, 2.00, 3.00)")
	assert.Contains(t, lines[2], "(1.00, 2.00, 3.00)")
	assert.True(t, strings.HasSuffix(lines[2], "[Mesh Light]"))

	// the class column starts at the same display column on every line
	col := -1
	for _, l := range lines {
		idx := strings.Index(l, "  -  ")
		require.GreaterOrEqual(t, idx, 0, l)
		w := runewidth.StringWidth(l[:idx])
		if col == -1 {
			col = w
		}
		assert.Equal(t, col, w, l)
	}
}
