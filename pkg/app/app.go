// Package app 提供应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 cmd/giftbox 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io/fs"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/shopspring/decimal"

	"github.com/gonewx/giftbox/pkg/config"
	"github.com/gonewx/giftbox/pkg/game"
	"github.com/gonewx/giftbox/pkg/install"
	"github.com/gonewx/giftbox/pkg/logger"
	"github.com/gonewx/giftbox/pkg/reward"
	"github.com/gonewx/giftbox/pkg/scenes"
	"github.com/gonewx/giftbox/pkg/systems"
	"github.com/gonewx/giftbox/pkg/utils"
)

// AppName gdata 存储名与窗口标题
const AppName = "giftbox"

// Config 应用启动配置
type Config struct {
	Amount decimal.Decimal
	Text   reward.DisplayText

	// Assets 资源文件系统（音效），可为 nil
	Assets fs.FS
	// Storage 是否使用 gdata 持久化设置；false 时仅内存设置
	Storage bool

	// ConfigProvider 返回最新的序列配置（热重载时由 ConfigWatcher 提供），nil 时使用默认配置
	ConfigProvider func() *config.RewardSequenceConfig

	// Store / Events 由平台外壳注入，用于投递安装邀请；nil 时内部创建
	Store  *install.Store
	Events *install.Events
}

// App 实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	settingsManager          *game.SettingsManager
	store                    *install.Store
	events                   *install.Events
	pendingWindowSizeReset   bool // 退出全屏后延迟设置窗口大小
	windowSizeResetCountdown int
}

// audio.NewContext 每个进程只能调用一次
var audioContext *audio.Context

func sharedAudioContext() *audio.Context {
	if audioContext == nil {
		audioContext = audio.NewContext(48000)
	}
	return audioContext
}

// NewApp 创建并初始化应用
func NewApp(cfg Config) (*App, error) {
	var settings *game.SettingsManager
	if cfg.Storage {
		storage, err := game.OpenStorage(AppName)
		if err != nil {
			logger.Warnf("[App] 无法打开存储: %v（设置不会保存）", err)
		}
		settings = game.NewSettingsManager(storage)
	} else {
		settings = game.NewSettingsManager(nil)
	}

	store := cfg.Store
	if store == nil {
		store = install.NewStore()
	}
	events := cfg.Events
	if events == nil {
		events = install.NewEvents()
	}

	scene, err := scenes.NewRewardScene(scenes.RewardSceneDeps{
		Amount:         cfg.Amount,
		Text:           cfg.Text,
		Audio:          game.NewAudioManager(sharedAudioContext(), settings, cfg.Assets),
		Haptics:        game.NewHaptics(settings, nil),
		Settings:       settings,
		Shapes:         game.NewAsyncLoader("confetti-shapes", systems.LoadConfettiShapes),
		Store:          store,
		Events:         events,
		IsStandalone:   utils.IsStandalone,
		ConfigProvider: cfg.ConfigProvider,
	})
	if err != nil {
		return nil, fmt.Errorf("create reward scene: %w", err)
	}

	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(scene)

	if settings.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	logger.Infof("[App] 初始化完成，金额 %s", reward.FormatAmount(cfg.Amount, cfg.Text))
	return &App{
		sceneManager:    sceneManager,
		settingsManager: settings,
		store:           store,
		events:          events,
	}, nil
}

// Update 每个 tick 调用一次（60 TPS）
func (a *App) Update() error {
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	// S / H / P 切换音效、震动、彩纸
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		a.settingsManager.SetSoundEnabled(!a.settingsManager.GetSettings().SoundEnabled)
		a.saveSettings()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		a.settingsManager.SetHapticsEnabled(!a.settingsManager.GetSettings().HapticsEnabled)
		a.saveSettings()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		a.settingsManager.SetParticlesEnabled(!a.settingsManager.GetSettings().ParticlesEnabled)
		a.saveSettings()
	}

	a.sceneManager.Update(1.0 / 60.0)
	return nil
}

func (a *App) toggleFullscreen() {
	if ebiten.IsFullscreen() {
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 等窗口管理器处理完再设置窗口大小
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		a.settingsManager.SetFullscreen(false)
	} else {
		ebiten.SetFullscreen(true)
		a.settingsManager.SetFullscreen(true)
	}
	a.saveSettings()
}

func (a *App) saveSettings() {
	s := a.settingsManager.GetSettings()
	logger.Infof("[App] 设置: sound=%v haptics=%v particles=%v", s.SoundEnabled, s.HapticsEnabled, s.ParticlesEnabled)
	if err := a.settingsManager.Save(); err != nil {
		logger.Warnf("[App] 保存设置失败: %v", err)
	}
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 全屏时用黑色 letterbox 并以线性滤波缩放
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸，Ebitengine 负责缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

// Shutdown 窗口关闭时调用：拆除序列并刷新日志
func (a *App) Shutdown() {
	a.sceneManager.Shutdown()
	logger.Sync()
}

// InstallStore 平台外壳捕获安装邀请时使用
func (a *App) InstallStore() *install.Store { return a.store }

// InstallEvents 平台外壳派发安装邀请时使用
func (a *App) InstallEvents() *install.Events { return a.events }
