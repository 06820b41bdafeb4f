// Package reward 实现金额奖励的礼盒揭晓序列
//
// Sequencer 是一个由时间驱动的有限状态机：
//
//	Idle --200ms--> Shaking --1500ms--> Opening --400ms--> [揭晓] --3500ms--> Finished
//
// 揭晓瞬间在同一 tick 内触发音效、振动和彩纸三个副作用，均为尽力而为。
// 序列在创建时自动开始，只能通过 Teardown 整体取消，不能暂停。
//
// Sequencer 不是并发安全的：Update 与 Teardown 必须在同一个 goroutine
// （通常是游戏循环）中调用。
package reward

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/gonewx/giftbox/pkg/config"
	"github.com/gonewx/giftbox/pkg/logger"
)

// Phase 序列阶段，按声明顺序单调递增
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseShaking
	PhaseOpening
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseShaking:
		return "shaking"
	case PhaseOpening:
		return "opening"
	case PhaseFinished:
		return "finished"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

var (
	ErrInvalidAmount   = errors.New("reward: amount must be non-negative")
	ErrMissingCallback = errors.New("reward: onComplete callback is required")
)

// Params 创建序列的参数
type Params struct {
	Amount     decimal.Decimal
	Text       DisplayText
	OnComplete func()

	Capabilities Capabilities

	// Config 为 nil 时使用默认配置
	Config *config.RewardSequenceConfig

	// OnReveal 可选，揭晓瞬间的副作用结果回调
	OnReveal func(results []EffectResult)
}

// step 定时器链上的一个节点：延迟 delay 之后执行 run
type step struct {
	name  string
	delay time.Duration
	run   func(s *Sequencer)
}

// Sequencer 礼盒揭晓序列
type Sequencer struct {
	runID  string
	amount decimal.Decimal
	text   DisplayText
	cfg    *config.RewardSequenceConfig
	caps   Capabilities

	onComplete func()
	onReveal   func([]EffectResult)

	phase      Phase
	phaseStart time.Duration // 当前阶段开始的时刻
	elapsed    time.Duration // 自创建以来经过的时间

	steps    []step
	next     int           // 下一个待执行的步骤
	deadline time.Duration // 唯一的待触发定时器

	revealed      bool
	revealedAt    time.Duration
	revealResults []EffectResult

	audio     AudioTrack
	completed bool
	tornDown  bool
}

// NewSequencer 创建并立即开始一个揭晓序列
//
// 创建时完成能力初始化：打开音轨并设置音量，
// 如粒子能力尚未加载则触发一次异步加载。
func NewSequencer(p Params) (*Sequencer, error) {
	if p.Amount.IsNegative() {
		return nil, ErrInvalidAmount
	}
	if p.OnComplete == nil {
		return nil, ErrMissingCallback
	}
	cfg := p.Config
	if cfg == nil {
		cfg = config.DefaultRewardSequenceConfig()
	}

	s := &Sequencer{
		runID:      uuid.NewString(),
		amount:     p.Amount,
		text:       p.Text,
		cfg:        cfg,
		caps:       p.Capabilities,
		onComplete: p.OnComplete,
		onReveal:   p.OnReveal,
		phase:      PhaseIdle,
	}

	t := cfg.Timings
	s.steps = []step{
		{name: "shake", delay: t.InitialDelay(), run: (*Sequencer).enterShaking},
		{name: "open", delay: t.Shake(), run: (*Sequencer).enterOpening},
		{name: "reveal", delay: t.RevealDelay(), run: (*Sequencer).reveal},
		{name: "finish", delay: t.Hold(), run: (*Sequencer).finish},
	}
	s.deadline = s.steps[0].delay

	s.initAudio()
	s.initParticles()

	logger.Debug("[RewardSequencer] created",
		zap.String("run", s.runID),
		zap.String("amount", FormatAmount(s.amount, s.text)),
		zap.Duration("total", t.Total()))
	return s, nil
}

func (s *Sequencer) initAudio() {
	if s.caps.Audio == nil {
		return
	}
	res := attempt(EffectSound, func() error {
		track, err := s.caps.Audio.Open(s.cfg.Sound.Asset)
		if err != nil {
			return err
		}
		track.SetVolume(s.cfg.Sound.Volume)
		s.audio = track
		return nil
	})
	if !res.OK() {
		logger.Warnf("[RewardSequencer] %s: cannot open sound %s: %v", s.runID, s.cfg.Sound.Asset, res.Err)
	}
}

func (s *Sequencer) initParticles() {
	if s.caps.Particles == nil {
		return
	}
	attempt(EffectParticles, func() error {
		if !s.caps.Particles.Available() {
			s.caps.Particles.EnsureLoaded()
		}
		return nil
	})
}

// Update 推进序列时间
// dt 可以跨越多个步骤，步骤按计划时刻依次执行，不会跳过也不会乱序。
func (s *Sequencer) Update(dt time.Duration) {
	if s.Done() || dt <= 0 {
		return
	}
	s.elapsed += dt

	for s.next < len(s.steps) && s.elapsed >= s.deadline && !s.tornDown {
		st := s.steps[s.next]
		firedAt := s.deadline
		s.next++
		if s.next < len(s.steps) {
			s.deadline += s.steps[s.next].delay
		}
		logger.Debugf("[RewardSequencer] %s: step %s at %v", s.runID, st.name, firedAt)
		st.run(s)
	}
}

func (s *Sequencer) enterPhase(p Phase) {
	if p <= s.phase {
		return
	}
	// 阶段开始时刻取计划时刻而不是实际 tick 时刻
	s.phaseStart = s.scheduledInstant()
	s.phase = p
	logger.Debugf("[RewardSequencer] %s: phase -> %s", s.runID, p)
}

// scheduledInstant 返回刚刚执行的步骤的计划时刻
func (s *Sequencer) scheduledInstant() time.Duration {
	var at time.Duration
	for i := 0; i < s.next; i++ {
		at += s.steps[i].delay
	}
	return at
}

func (s *Sequencer) enterShaking() { s.enterPhase(PhaseShaking) }

func (s *Sequencer) enterOpening() { s.enterPhase(PhaseOpening) }

// reveal 在同一 tick 内发起三个互相独立的副作用
func (s *Sequencer) reveal() {
	if s.revealed {
		return
	}
	s.revealed = true
	s.revealedAt = s.scheduledInstant()

	results := []EffectResult{
		s.playSound(),
		s.vibrate(),
		s.burst(),
	}
	s.revealResults = results

	for _, r := range results {
		switch r.Outcome {
		case Rejected:
			logger.Infof("[RewardSequencer] %s: %s rejected (ignored): %v", s.runID, r.Kind, r.Err)
		case Skipped:
			logger.Debugf("[RewardSequencer] %s: %s skipped: %v", s.runID, r.Kind, r.Err)
		}
	}

	if s.onReveal != nil {
		s.onReveal(results)
	}
}

func (s *Sequencer) playSound() EffectResult {
	if s.audio == nil {
		return skipped(EffectSound, ErrNoAudioTrack)
	}
	track := s.audio
	return attempt(EffectSound, func() error {
		if err := track.Rewind(); err != nil {
			logger.Debugf("[RewardSequencer] %s: rewind failed: %v", s.runID, err)
		}
		return track.Play()
	})
}

func (s *Sequencer) vibrate() EffectResult {
	if s.caps.Haptics == nil {
		return skipped(EffectVibration, ErrHapticsUnavailable)
	}
	pattern := s.cfg.Haptics.Pattern()
	return attempt(EffectVibration, func() error {
		return s.caps.Haptics.Vibrate(pattern)
	})
}

func (s *Sequencer) burst() EffectResult {
	pe := s.caps.Particles
	if pe == nil {
		return skipped(EffectParticles, ErrParticlesNotLoaded)
	}
	var available bool
	res := attempt(EffectParticles, func() error {
		available = pe.Available()
		if !available {
			return nil
		}
		return pe.Burst(s.cfg.Burst)
	})
	if res.OK() && !available {
		// 未加载完成：跳过，不排队也不重试
		return skipped(EffectParticles, ErrParticlesNotLoaded)
	}
	return res
}

func (s *Sequencer) finish() {
	s.enterPhase(PhaseFinished)
	s.releaseAudio()
	if s.completed {
		return
	}
	s.completed = true
	logger.Info("[RewardSequencer] finished",
		zap.String("run", s.runID),
		zap.Duration("elapsed", s.phaseStart))
	s.onComplete()
}

// Teardown 提前销毁序列：取消待触发定时器并释放音轨
//
// 可以在任意阶段（包括 Finished 之后）调用，重复调用无副作用。
// Finished 之前调用时 onComplete 永远不会被触发。
func (s *Sequencer) Teardown() {
	if s.tornDown {
		return
	}
	s.tornDown = true
	s.next = len(s.steps)
	s.releaseAudio()
	if !s.completed {
		logger.Info("[RewardSequencer] torn down early",
			zap.String("run", s.runID),
			zap.Stringer("phase", s.phase),
			zap.Duration("elapsed", s.elapsed))
	}
}

func (s *Sequencer) releaseAudio() {
	track := s.audio
	if track == nil {
		return
	}
	s.audio = nil
	res := attempt(EffectSound, func() error {
		track.Pause()
		return track.Close()
	})
	if !res.OK() {
		logger.Warnf("[RewardSequencer] %s: releasing audio failed: %v", s.runID, res.Err)
	}
}

// RunID 本次序列的唯一标识（用于日志关联）
func (s *Sequencer) RunID() string { return s.runID }

// Phase 当前阶段
func (s *Sequencer) Phase() Phase { return s.phase }

// Elapsed 自创建以来经过的时间
func (s *Sequencer) Elapsed() time.Duration { return s.elapsed }

// PhaseElapsed 当前阶段已持续的时间
func (s *Sequencer) PhaseElapsed() time.Duration { return s.elapsed - s.phaseStart }

// Revealed 揭晓副作用是否已触发
func (s *Sequencer) Revealed() bool { return s.revealed }

// SinceReveal 距揭晓瞬间的时间，未揭晓时返回 0, false
func (s *Sequencer) SinceReveal() (time.Duration, bool) {
	if !s.revealed {
		return 0, false
	}
	return s.elapsed - s.revealedAt, true
}

// RevealResults 揭晓副作用的结果，未揭晓时为 nil
func (s *Sequencer) RevealResults() []EffectResult { return s.revealResults }

// Completed onComplete 是否已触发
func (s *Sequencer) Completed() bool { return s.completed }

// TornDown 是否已被销毁
func (s *Sequencer) TornDown() bool { return s.tornDown }

// Done 序列不会再有任何状态变化
func (s *Sequencer) Done() bool { return s.tornDown || s.phase == PhaseFinished }

// HasAudio 是否仍持有音轨
func (s *Sequencer) HasAudio() bool { return s.audio != nil }

// Amount 奖励金额
func (s *Sequencer) Amount() decimal.Decimal { return s.amount }

// Text 显示文字
func (s *Sequencer) Text() DisplayText { return s.text }

// AmountText 格式化后的金额文字
func (s *Sequencer) AmountText() string { return FormatAmount(s.amount, s.text) }

// Config 本次序列使用的配置
func (s *Sequencer) Config() *config.RewardSequenceConfig { return s.cfg }
