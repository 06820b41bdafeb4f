package game

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/gonewx/giftbox/pkg/logger"
)

// Settings 用户设置
// 与奖励序列配置不同，这些是用户在设备上的偏好，持久化到 gdata
type Settings struct {
	SoundEnabled     bool    `yaml:"soundEnabled"`
	SoundVolume      float64 `yaml:"soundVolume"` // 0.0 ~ 1.0，与配置中的音量相乘
	HapticsEnabled   bool    `yaml:"hapticsEnabled"`
	ParticlesEnabled bool    `yaml:"particlesEnabled"`
	Fullscreen       bool    `yaml:"fullscreen"`
}

// DefaultSettings 返回默认设置
func DefaultSettings() *Settings {
	return &Settings{
		SoundEnabled:     true,
		SoundVolume:      1.0,
		HapticsEnabled:   true,
		ParticlesEnabled: true,
		Fullscreen:       false,
	}
}

// SettingsManager 设置管理器
// 负责设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，仅内存设置）
	settings     *Settings
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// OpenStorage 打开 gdata 存储（平台默认位置）
func OpenStorage(appName string) (*gdata.Manager, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("open storage %q: %w", appName, err)
	}
	return m, nil
}

// NewSettingsManager 创建设置管理器并尝试加载已保存的设置
// 加载失败不是致命错误，使用默认设置
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}
	if err := sm.Load(); err != nil {
		logger.Warnf("[SettingsManager] 加载设置失败: %v（使用默认值）", err)
	}
	return sm
}

// Load 从 gdata 加载设置
// gdataManager 为 nil 或数据不存在时使用默认设置
func (sm *SettingsManager) Load() error {
	sm.settings = DefaultSettings()
	if sm.gdataManager == nil {
		return nil
	}
	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// 在默认值上覆盖，旧版本缺失的字段保持默认
	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.SoundVolume = clampVolume(loaded.SoundVolume)
	sm.settings = loaded
	logger.Debugf("[SettingsManager] 设置已加载")
	return nil
}

// Save 保存设置到 gdata，降级模式下直接返回 nil
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}
	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	logger.Debugf("[SettingsManager] 设置已保存")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *Settings {
	return sm.settings
}

// 以下 Set 方法仅修改内存，需调用 Save() 持久化

func (sm *SettingsManager) SetSoundEnabled(enabled bool) { sm.settings.SoundEnabled = enabled }

func (sm *SettingsManager) SetSoundVolume(volume float64) {
	sm.settings.SoundVolume = clampVolume(volume)
}

func (sm *SettingsManager) SetHapticsEnabled(enabled bool) { sm.settings.HapticsEnabled = enabled }

func (sm *SettingsManager) SetParticlesEnabled(enabled bool) { sm.settings.ParticlesEnabled = enabled }

func (sm *SettingsManager) SetFullscreen(enabled bool) { sm.settings.Fullscreen = enabled }

// clampVolume 将音量值限制在 0.0 ~ 1.0 范围内
func clampVolume(volume float64) float64 {
	if volume < 0.0 {
		return 0.0
	}
	if volume > 1.0 {
		return 1.0
	}
	return volume
}
