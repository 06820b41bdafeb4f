package game

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestAsyncLoader_LoadsOnce(t *testing.T) {
	defer goleak.VerifyNone(t)

	var calls atomic.Int32
	release := make(chan struct{})
	l := NewAsyncLoader(t.Name(), func() (string, error) {
		calls.Add(1)
		<-release
		return "shapes", nil
	})

	assert.False(t, l.Available())
	for i := 0; i < 10; i++ {
		l.EnsureLoaded()
	}
	assert.False(t, l.Available(), "加载中不可用")

	close(release)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, l.Wait(ctx))

	assert.True(t, l.Available())
	v, ok := l.Value()
	assert.True(t, ok)
	assert.Equal(t, "shapes", v)
	assert.Equal(t, int32(1), calls.Load())

	// 已加载后不再启动 goroutine
	l.EnsureLoaded()
	assert.Equal(t, int32(1), calls.Load())
}

func TestAsyncLoader_SharedKeyMergesLoads(t *testing.T) {
	defer goleak.VerifyNone(t)

	var calls atomic.Int32
	release := make(chan struct{})
	var started sync.WaitGroup
	started.Add(1)
	load := func() (int, error) {
		if calls.Add(1) == 1 {
			started.Done()
		}
		<-release
		return 7, nil
	}

	a := NewAsyncLoader(t.Name(), load)
	b := NewAsyncLoader(t.Name(), load)
	a.EnsureLoaded()
	started.Wait()
	b.EnsureLoaded()

	// 给 b 的 goroutine 时间加入进行中的加载
	time.Sleep(20 * time.Millisecond)
	close(release)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, a.Wait(ctx))
	require.NoError(t, b.Wait(ctx))
	assert.True(t, a.Available())
	assert.True(t, b.Available())
	assert.Equal(t, int32(1), calls.Load())
}

func TestAsyncLoader_RetryAfterFailure(t *testing.T) {
	defer goleak.VerifyNone(t)

	boom := errors.New("boom")
	var calls atomic.Int32
	l := NewAsyncLoader(t.Name(), func() (int, error) {
		if calls.Add(1) == 1 {
			return 0, boom
		}
		return 1, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	l.EnsureLoaded()
	assert.ErrorIs(t, l.Wait(ctx), boom)
	assert.False(t, l.Available())

	l.EnsureLoaded()
	require.NoError(t, l.Wait(ctx))
	assert.True(t, l.Available())
}

func TestAsyncLoader_WaitWithoutLoad(t *testing.T) {
	l := NewAsyncLoader(t.Name(), func() (int, error) { return 0, nil })
	assert.NoError(t, l.Wait(context.Background()))
}
