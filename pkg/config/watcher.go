package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gonewx/giftbox/pkg/logger"
)

// ConfigWatcher 监听奖励序列配置文件并在修改后重新加载
//
// 监听的是文件所在目录（编辑器保存时常常先写临时文件再重命名），
// 连续的写事件会在 debounce 时间窗口内合并为一次加载。
// 正在播放的序列保留创建时的配置，新序列通过 Current() 获取最新配置。
type ConfigWatcher struct {
	path     string
	debounce time.Duration
	onChange func(*RewardSequenceConfig)

	current atomic.Pointer[RewardSequenceConfig]
	watcher *fsnotify.Watcher

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewConfigWatcher 加载一次配置并创建监听器（尚未开始监听）
// onChange 可为 nil
func NewConfigWatcher(path string, onChange func(*RewardSequenceConfig)) (*ConfigWatcher, error) {
	cfg, err := LoadRewardSequenceConfig(path)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create config watcher: %w", err)
	}

	cw := &ConfigWatcher{
		path:     filepath.Clean(path),
		debounce: 200 * time.Millisecond,
		onChange: onChange,
		watcher:  w,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	cw.current.Store(cfg)
	return cw, nil
}

// Current 返回最近一次成功加载的配置
func (cw *ConfigWatcher) Current() *RewardSequenceConfig {
	return cw.current.Load()
}

// Start 开始监听（非阻塞）
func (cw *ConfigWatcher) Start(ctx context.Context) error {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	if cw.running {
		return nil
	}

	if err := cw.watcher.Add(filepath.Dir(cw.path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", cw.path, err)
	}
	cw.running = true
	go cw.run(ctx)
	logger.Infof("[ConfigWatcher] watching %s", cw.path)
	return nil
}

// Stop 停止监听并等待后台 goroutine 退出
func (cw *ConfigWatcher) Stop() {
	cw.mu.Lock()
	if !cw.running {
		cw.mu.Unlock()
		_ = cw.watcher.Close()
		return
	}
	cw.running = false
	cw.mu.Unlock()

	close(cw.stopCh)
	<-cw.doneCh

	if err := cw.watcher.Close(); err != nil {
		logger.Warnf("[ConfigWatcher] error closing watcher: %v", err)
	}
}

func (cw *ConfigWatcher) run(ctx context.Context) {
	defer close(cw.doneCh)

	var (
		pending  bool
		deadline time.Time
	)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-cw.stopCh:
			return
		case ev, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != cw.path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				pending = true
				deadline = time.Now().Add(cw.debounce)
			}
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			logger.Warnf("[ConfigWatcher] watcher error: %v", err)
		case <-ticker.C:
			if pending && time.Now().After(deadline) {
				pending = false
				cw.reload()
			}
		}
	}
}

func (cw *ConfigWatcher) reload() {
	cfg, err := LoadRewardSequenceConfig(cw.path)
	if err != nil {
		// 保留旧配置
		logger.Warnf("[ConfigWatcher] reload failed, keeping previous config: %v", err)
		return
	}
	cw.current.Store(cfg)
	logger.Infof("[ConfigWatcher] reloaded %s", cw.path)
	if cw.onChange != nil {
		cw.onChange(cfg)
	}
}
