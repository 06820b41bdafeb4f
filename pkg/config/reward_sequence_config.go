package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// 奖励揭晓序列的默认参数
// 与网页版礼盒动画保持一致（毫秒）
const (
	DefaultInitialDelayMs = 200  // 创建后到开始摇晃
	DefaultShakeMs        = 1500 // 摇晃持续时间
	DefaultRevealDelayMs  = 400  // 开盖后到金额弹出
	DefaultHoldMs         = 3500 // 金额展示时间

	DefaultSoundAsset  = "assets/audio/reward.mp3"
	DefaultSoundVolume = 0.6

	DefaultShowDelayMs = 5000  // 安装横幅延迟显示
	DefaultAutoHideMs  = 20000 // 安装横幅自动隐藏

	DefaultFallbackInstruction = "To install: Open browser menu and select 'Add to Home Screen'"
)

// RewardSequenceConfig 奖励序列的完整配置
// 对应 data/reward_sequence.yaml，缺省字段使用默认值
type RewardSequenceConfig struct {
	Timings       SequenceTimings     `yaml:"timings"`
	Sound         SoundConfig         `yaml:"sound"`
	Haptics       HapticsConfig       `yaml:"haptics"`
	Burst         BurstConfig         `yaml:"burst"`
	InstallPrompt InstallPromptConfig `yaml:"installPrompt"`
}

// SequenceTimings 各阶段持续时间（毫秒）
type SequenceTimings struct {
	InitialDelayMs int `yaml:"initialDelayMs"`
	ShakeMs        int `yaml:"shakeMs"`
	RevealDelayMs  int `yaml:"revealDelayMs"`
	HoldMs         int `yaml:"holdMs"`
}

func (t SequenceTimings) InitialDelay() time.Duration { return ms(t.InitialDelayMs) }
func (t SequenceTimings) Shake() time.Duration        { return ms(t.ShakeMs) }
func (t SequenceTimings) RevealDelay() time.Duration  { return ms(t.RevealDelayMs) }
func (t SequenceTimings) Hold() time.Duration         { return ms(t.HoldMs) }

// Total 返回从创建到 Finished 的总时长
func (t SequenceTimings) Total() time.Duration {
	return t.InitialDelay() + t.Shake() + t.RevealDelay() + t.Hold()
}

// SoundConfig 揭晓音效
type SoundConfig struct {
	Asset  string  `yaml:"asset"`
	Volume float64 `yaml:"volume"`
}

// HapticsConfig 振动模式：开、关、开……（毫秒）
type HapticsConfig struct {
	PatternMs []int `yaml:"patternMs"`
}

// Pattern 转换为 time.Duration 序列
func (h HapticsConfig) Pattern() []time.Duration {
	out := make([]time.Duration, len(h.PatternMs))
	for i, v := range h.PatternMs {
		out[i] = ms(v)
	}
	return out
}

// BurstConfig 彩纸爆发参数（语义同 canvas-confetti）
//
// Origin 为相对屏幕的比例坐标（0-1），Angle/Spread 单位为度，
// StartVelocity/Gravity 以"每 tick 像素"为单位，Ticks 为粒子寿命。
type BurstConfig struct {
	ParticleCount int      `yaml:"particleCount"`
	Angle         float64  `yaml:"angle"`
	Spread        float64  `yaml:"spread"`
	StartVelocity float64  `yaml:"startVelocity"`
	Decay         float64  `yaml:"decay"`
	Gravity       float64  `yaml:"gravity"`
	Drift         float64  `yaml:"drift"`
	Ticks         int      `yaml:"ticks"`
	OriginX       float64  `yaml:"originX"`
	OriginY       float64  `yaml:"originY"`
	Scalar        float64  `yaml:"scalar"`
	Colors        []string `yaml:"colors"`
}

// ParsedColors 解析十六进制颜色列表
func (b BurstConfig) ParsedColors() ([]color.RGBA, error) {
	out := make([]color.RGBA, 0, len(b.Colors))
	for _, hex := range b.Colors {
		c, err := colorful.Hex(hex)
		if err != nil {
			return nil, fmt.Errorf("invalid burst color %q: %w", hex, err)
		}
		r, g, bl := c.RGB255()
		out = append(out, color.RGBA{R: r, G: g, B: bl, A: 255})
	}
	return out, nil
}

// InstallPromptConfig 安装横幅参数
type InstallPromptConfig struct {
	ShowDelayMs         int    `yaml:"showDelayMs"`
	AutoHideMs          int    `yaml:"autoHideMs"`
	AppName             string `yaml:"appName"`
	FallbackInstruction string `yaml:"fallbackInstruction"`
}

func (p InstallPromptConfig) ShowDelay() time.Duration { return ms(p.ShowDelayMs) }
func (p InstallPromptConfig) AutoHide() time.Duration  { return ms(p.AutoHideMs) }

// DefaultRewardSequenceConfig 返回默认配置
func DefaultRewardSequenceConfig() *RewardSequenceConfig {
	return &RewardSequenceConfig{
		Timings: SequenceTimings{
			InitialDelayMs: DefaultInitialDelayMs,
			ShakeMs:        DefaultShakeMs,
			RevealDelayMs:  DefaultRevealDelayMs,
			HoldMs:         DefaultHoldMs,
		},
		Sound: SoundConfig{
			Asset:  DefaultSoundAsset,
			Volume: DefaultSoundVolume,
		},
		Haptics: HapticsConfig{
			PatternMs: []int{100, 50, 100}, // 双脉冲
		},
		Burst: BurstConfig{
			ParticleCount: 200,
			Angle:         90,
			Spread:        120,
			StartVelocity: 45,
			Decay:         0.9,
			Gravity:       1,
			Drift:         0,
			Ticks:         200,
			OriginX:       0.5,
			OriginY:       0.6,
			Scalar:        1.3,
			Colors:        []string{"#FFD700", "#FFA500", "#ffffff", "#7C3AED", "#EC4899"},
		},
		InstallPrompt: InstallPromptConfig{
			ShowDelayMs:         DefaultShowDelayMs,
			AutoHideMs:          DefaultAutoHideMs,
			AppName:             "Gift Box",
			FallbackInstruction: DefaultFallbackInstruction,
		},
	}
}

// LoadRewardSequenceConfig 从 YAML 文件加载配置
//
// 文件中出现的字段覆盖默认值；路径为空时直接返回默认配置。
func LoadRewardSequenceConfig(path string) (*RewardSequenceConfig, error) {
	cfg := DefaultRewardSequenceConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read reward sequence config %s: %w", path, err)
	}
	return ParseRewardSequenceConfig(data)
}

// ParseRewardSequenceConfig 解析 YAML 内容（覆盖默认值）并校验
func ParseRewardSequenceConfig(data []byte) (*RewardSequenceConfig, error) {
	cfg := DefaultRewardSequenceConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse reward sequence config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 校验配置取值
func (c *RewardSequenceConfig) Validate() error {
	var errs []error

	t := c.Timings
	if t.InitialDelayMs < 0 || t.ShakeMs < 0 || t.RevealDelayMs < 0 || t.HoldMs < 0 {
		errs = append(errs, errors.New("timings must not be negative"))
	}
	if c.Sound.Volume < 0 || c.Sound.Volume > 1 {
		errs = append(errs, fmt.Errorf("sound volume %.2f out of range [0,1]", c.Sound.Volume))
	}
	for _, v := range c.Haptics.PatternMs {
		if v < 0 {
			errs = append(errs, errors.New("haptic pattern must not contain negative durations"))
			break
		}
	}
	if c.Burst.ParticleCount <= 0 {
		errs = append(errs, errors.New("burst particleCount must be positive"))
	}
	if c.Burst.Ticks <= 0 {
		errs = append(errs, errors.New("burst ticks must be positive"))
	}
	if _, err := c.Burst.ParsedColors(); err != nil {
		errs = append(errs, err)
	}
	if c.InstallPrompt.ShowDelayMs < 0 || c.InstallPrompt.AutoHideMs < 0 {
		errs = append(errs, errors.New("install prompt delays must not be negative"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid reward sequence config: %w", errors.Join(errs...))
	}
	return nil
}

func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}
