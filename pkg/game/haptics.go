package game

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/giftbox/pkg/logger"
	"github.com/gonewx/giftbox/pkg/reward"
)

// VibrateFunc 执行一次持续 d 的震动
type VibrateFunc func(d time.Duration, magnitude float64)

// ebitenVibrate 调用 ebiten 的震动接口（桌面平台为空操作）
func ebitenVibrate(d time.Duration, magnitude float64) {
	ebiten.Vibrate(&ebiten.VibrateOptions{
		Duration:  d,
		Magnitude: magnitude,
	})
}

// Haptics 震动反馈
//
// ebiten.Vibrate 只支持单段震动，"开/关/开"模式由 Update 按帧回放：
// 偶数下标为震动时长，奇数下标为停顿时长。
// 与序列一样在游戏循环 goroutine 中使用。
type Haptics struct {
	settingsManager *SettingsManager
	vibrate         VibrateFunc
	Magnitude       float64

	pattern   []time.Duration
	index     int
	remaining time.Duration
}

var _ reward.HapticFeedback = (*Haptics)(nil)

// NewHaptics 创建震动反馈，vibrate 为 nil 时使用 ebiten.Vibrate
func NewHaptics(sm *SettingsManager, vibrate VibrateFunc) *Haptics {
	if vibrate == nil {
		vibrate = ebitenVibrate
	}
	return &Haptics{
		settingsManager: sm,
		vibrate:         vibrate,
		Magnitude:       1.0,
	}
}

// Vibrate 开始回放模式，替换正在回放的模式
func (h *Haptics) Vibrate(pattern []time.Duration) error {
	if h.settingsManager != nil && !h.settingsManager.GetSettings().HapticsEnabled {
		return reward.ErrHapticsUnavailable
	}
	for i, d := range pattern {
		if d < 0 {
			return fmt.Errorf("haptic pattern[%d]: negative duration %v", i, d)
		}
	}
	if len(pattern) == 0 {
		return nil
	}

	h.pattern = append(h.pattern[:0], pattern...)
	h.index = 0
	h.remaining = pattern[0]
	h.pulse()
	logger.Debugf("[Haptics] 开始震动模式 %v", pattern)
	return nil
}

// Update 推进模式回放
func (h *Haptics) Update(dt time.Duration) {
	if !h.Active() || dt <= 0 {
		return
	}
	h.remaining -= dt
	for h.remaining <= 0 {
		h.index++
		if h.index >= len(h.pattern) {
			h.pattern = h.pattern[:0]
			return
		}
		h.remaining += h.pattern[h.index]
		if h.index%2 == 0 {
			h.pulse()
		}
	}
}

func (h *Haptics) pulse() {
	if d := h.pattern[h.index]; d > 0 {
		h.vibrate(d, h.Magnitude)
	}
}

// Stop 取消尚未播放的脉冲，已经发出的震动不受影响
func (h *Haptics) Stop() {
	if !h.Active() {
		return
	}
	h.pattern = h.pattern[:0]
	h.index = 0
	h.remaining = 0
	logger.Debugf("[Haptics] 停止震动模式")
}

// Active 是否正在回放
func (h *Haptics) Active() bool {
	return len(h.pattern) > 0
}
