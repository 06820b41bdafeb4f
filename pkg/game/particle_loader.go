package game

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/gonewx/giftbox/pkg/logger"
)

// 同名资源的并发加载在进程内合并为一次
var loadGroup singleflight.Group

// AsyncLoader 在后台加载一次共享资源（例如粒子贴图）
//
// EnsureLoaded 是 fire-and-forget 的：首次调用启动加载 goroutine，
// 加载进行中的重复调用被忽略。加载失败后再次调用会重试。
// Available 可在任意 goroutine 中调用。
type AsyncLoader[T any] struct {
	name string
	load func() (T, error)

	available atomic.Bool
	mu        sync.Mutex
	loading   bool
	value     T
	err       error
	done      chan struct{} // 最近一次加载结束时关闭
}

// NewAsyncLoader 创建加载器，name 同时作为合并加载的键
func NewAsyncLoader[T any](name string, load func() (T, error)) *AsyncLoader[T] {
	return &AsyncLoader[T]{name: name, load: load}
}

// EnsureLoaded 若尚未加载则在后台开始加载
func (l *AsyncLoader[T]) EnsureLoaded() {
	if l.available.Load() {
		return
	}

	l.mu.Lock()
	if l.loading {
		l.mu.Unlock()
		return
	}
	l.loading = true
	l.err = nil
	done := make(chan struct{})
	l.done = done
	l.mu.Unlock()

	go func() {
		v, err, shared := loadGroup.Do(l.name, func() (any, error) {
			logger.Debugf("[AsyncLoader] 开始加载 %s", l.name)
			return l.load()
		})

		l.mu.Lock()
		defer l.mu.Unlock()
		l.loading = false
		if err != nil {
			l.err = fmt.Errorf("load %s: %w", l.name, err)
			logger.Warnf("[AsyncLoader] %v", l.err)
		} else {
			l.value = v.(T)
			l.available.Store(true)
			logger.Infof("[AsyncLoader] %s 加载完成 (shared=%v)", l.name, shared)
		}
		close(done)
	}()
}

// Available 资源是否已加载
func (l *AsyncLoader[T]) Available() bool {
	return l.available.Load()
}

// Value 返回已加载的资源
func (l *AsyncLoader[T]) Value() (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.value, l.available.Load()
}

// Wait 等待最近一次加载结束，返回加载错误
// 从未调用过 EnsureLoaded 时立即返回 nil。
func (l *AsyncLoader[T]) Wait(ctx context.Context) error {
	l.mu.Lock()
	done := l.done
	l.mu.Unlock()
	if done == nil {
		return nil
	}
	select {
	case <-done:
		l.mu.Lock()
		defer l.mu.Unlock()
		return l.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
