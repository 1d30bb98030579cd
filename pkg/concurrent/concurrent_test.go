package concurrent

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapKeepsOrder(t *testing.T) {
	in := []int{5, 1, 4, 2, 3}
	out, err := Map(context.Background(), in, 2, func(_ context.Context, v int) (int, error) {
		time.Sleep(time.Duration(v) * time.Millisecond)
		return v * 10, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{50, 10, 40, 20, 30}, out)
}

func TestMapRespectsLimit(t *testing.T) {
	var running, peak atomic.Int32
	in := make([]int, 20)
	_, err := Map(context.Background(), in, 3, func(_ context.Context, _ int) (int, error) {
		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(time.Millisecond)
		running.Add(-1)
		return 0, nil
	})
	require.NoError(t, err)
	assert.LessOrEqual(t, peak.Load(), int32(3))
}

func TestEachReturnsFirstError(t *testing.T) {
	boom := errors.New("boom")
	err := Each(context.Background(), []int{1, 2, 3}, 0, func(_ context.Context, v int) error {
		if v == 2 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
}

func TestMapCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Map(ctx, []int{1}, 1, func(_ context.Context, v int) (int, error) { return v, nil })
	assert.ErrorIs(t, err, context.Canceled)
}
