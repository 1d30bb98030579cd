package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/scenecore/internal/core/document"
	"github.com/zeusync/scenecore/internal/core/observability/log"
	"github.com/zeusync/scenecore/internal/core/scene"
)

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadPrefabsInFileOrder(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "10_wheel.yaml", "Name: Wheel\n")
	write(t, dir, "20_cart.yml", "Name: Cart\nChildren:\n  - {Name: FrontWheel, Prefab: Wheel}\n")
	write(t, dir, "30_crate.json", `{"Transform": {"Scale": [2, 2, 2]}}`)
	write(t, dir, "readme.md", "ignored")

	b := scene.NewBuilder(nil, nil, nil, log.NewNop())
	l := New(b, nil, 2)
	names, err := l.LoadPrefabs(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"Wheel", "Cart", "30_crate"}, names)
	assert.Equal(t, []string{"30_crate", "Cart", "Wheel"}, b.Prefabs.Names())

	cart, ok := b.Prefabs.Lookup("Cart")
	require.True(t, ok)
	require.Equal(t, 1, cart.Template().NumChildren())
	assert.Equal(t, "FrontWheel", cart.Template().ChildAt(0).Name())
}

func TestLoadPrefabsErrors(t *testing.T) {
	b := scene.NewBuilder(nil, nil, nil, log.NewNop())
	l := New(b, nil, 0)

	names, err := l.LoadPrefabs(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.NoError(t, err)
	assert.Empty(t, names)

	dir := t.TempDir()
	write(t, dir, "bad.yaml", "Name: [unclosed\n")
	_, err = l.LoadPrefabs(context.Background(), dir)
	assert.Error(t, err)

	dup := t.TempDir()
	write(t, dup, "a.yaml", "Name: Same\n")
	write(t, dup, "b.yaml", "Name: Same\n")
	_, err = l.LoadPrefabs(context.Background(), dup)
	assert.ErrorIs(t, err, scene.ErrDuplicateKey)
}

func TestLoadScene(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "door.yaml", "Name: Door\n")
	path := write(t, dir, "level.yaml", `
Objects:
  - Name: Entrance
    Prefab: Door
  - Name: Room
    Children:
      - Name: Table
  - not-an-object
`)
	b := scene.NewBuilder(nil, nil, nil, log.NewNop())
	_, err := b.RegisterPrefab("Door", document.MustParse("Name: Door"))
	require.NoError(t, err)

	sc, err := New(b, nil, 0).LoadScene(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "level", sc.Name())
	assert.Equal(t, 4, sc.Len())
	assert.Equal(t, 2, sc.Root().NumChildren())

	table, ok := sc.ObjectByName("Table")
	require.True(t, ok)
	assert.Equal(t, "Room", table.Parent().Name())
}

func TestLoadSceneErrors(t *testing.T) {
	dir := t.TempDir()
	l := New(scene.NewBuilder(nil, nil, nil, nil), nil, 0)

	_, err := l.LoadScene(context.Background(), filepath.Join(dir, "nope.yaml"))
	assert.Error(t, err)

	path := write(t, dir, "empty.yaml", "Name: Empty\n")
	_, err = l.LoadScene(context.Background(), path)
	assert.ErrorIs(t, err, ErrNoObjects)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = l.LoadScene(ctx, path)
	assert.ErrorIs(t, err, context.Canceled)
}
