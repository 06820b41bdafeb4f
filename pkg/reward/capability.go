package reward

import (
	"time"

	"github.com/gonewx/giftbox/pkg/config"
)

// AudioPlayer 创建音轨的能力（由 game.AudioManager 实现）
type AudioPlayer interface {
	// Open 为资源引用创建一个独占的音轨
	Open(assetRef string) (AudioTrack, error)
}

// AudioTrack 单个音轨，归创建它的序列独占
type AudioTrack interface {
	SetVolume(volume float64)
	// Rewind 把播放位置重置到开头
	Rewind() error
	// Play 开始播放；返回的错误表示被环境拒绝（非致命）
	Play() error
	Pause()
	// Close 释放底层资源，之后音轨不可再用
	Close() error
}

// HapticFeedback 振动能力
type HapticFeedback interface {
	// Vibrate 按 开/关/开… 的时长序列振动，尽力而为
	Vibrate(pattern []time.Duration) error
}

// ParticleEffect 共享的粒子特效能力，序列只读取不管理其生命周期
type ParticleEffect interface {
	Available() bool
	// EnsureLoaded 触发异步加载，立即返回
	EnsureLoaded()
	Burst(cfg config.BurstConfig) error
}

// Capabilities 揭晓时使用的三种能力，任意一项可为 nil（视为不可用）
type Capabilities struct {
	Audio     AudioPlayer
	Haptics   HapticFeedback
	Particles ParticleEffect
}
