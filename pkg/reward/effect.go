package reward

import (
	"errors"
	"fmt"
)

// EffectKind 揭晓瞬间触发的副作用种类
type EffectKind int

const (
	EffectSound EffectKind = iota
	EffectVibration
	EffectParticles
)

func (k EffectKind) String() string {
	switch k {
	case EffectSound:
		return "sound"
	case EffectVibration:
		return "vibration"
	case EffectParticles:
		return "particles"
	default:
		return fmt.Sprintf("effect(%d)", int(k))
	}
}

// Outcome 副作用的投递结果
type Outcome int

const (
	// Delivered 已成功发起
	Delivered Outcome = iota
	// Skipped 能力不可用，未尝试
	Skipped
	// Rejected 尝试了但被拒绝或失败（可忽略）
	Rejected
)

func (o Outcome) String() string {
	switch o {
	case Delivered:
		return "delivered"
	case Skipped:
		return "skipped"
	case Rejected:
		return "rejected"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// EffectResult 单个副作用的结果，失败不会改变序列的控制流
type EffectResult struct {
	Kind    EffectKind
	Outcome Outcome
	Err     error
}

// OK 是否成功投递
func (r EffectResult) OK() bool { return r.Outcome == Delivered }

// 非致命的失败原因
var (
	ErrNoAudioTrack       = errors.New("reward: audio track unavailable")
	ErrHapticsUnavailable = errors.New("reward: haptic feedback unavailable")
	ErrParticlesNotLoaded = errors.New("reward: particle effect not loaded")
	errEffectPanicked     = errors.New("reward: effect panicked")
)

// attempt 执行一个副作用并把错误或 panic 转为 Rejected 结果，
// 保证一个副作用的失败不会影响其余副作用
func attempt(kind EffectKind, fn func() error) (res EffectResult) {
	res = EffectResult{Kind: kind, Outcome: Delivered}
	defer func() {
		if r := recover(); r != nil {
			res = EffectResult{Kind: kind, Outcome: Rejected, Err: fmt.Errorf("%w: %v", errEffectPanicked, r)}
		}
	}()
	if err := fn(); err != nil {
		res = EffectResult{Kind: kind, Outcome: Rejected, Err: err}
	}
	return res
}

func skipped(kind EffectKind, cause error) EffectResult {
	return EffectResult{Kind: kind, Outcome: Skipped, Err: cause}
}
