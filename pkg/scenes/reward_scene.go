package scenes

import (
	"errors"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/image/font/basicfont"

	"github.com/gonewx/giftbox/pkg/config"
	"github.com/gonewx/giftbox/pkg/ecs"
	"github.com/gonewx/giftbox/pkg/game"
	"github.com/gonewx/giftbox/pkg/install"
	"github.com/gonewx/giftbox/pkg/logger"
	"github.com/gonewx/giftbox/pkg/reward"
	"github.com/gonewx/giftbox/pkg/systems"
	"github.com/gonewx/giftbox/pkg/utils"
)

var backgroundColor = color.RGBA{0x1E, 0x1B, 0x4B, 0xFF}

// RewardSceneDeps 奖励场景依赖
type RewardSceneDeps struct {
	Amount decimal.Decimal
	Text   reward.DisplayText

	// Audio 可为 nil（无声运行）
	Audio reward.AudioPlayer
	// Haptics 可为 nil
	Haptics  *game.Haptics
	Settings *game.SettingsManager
	// Shapes 彩纸贴图加载器，多个场景可共享
	Shapes *game.AsyncLoader[*systems.ConfettiShapes]

	Store  *install.Store
	Events *install.Events
	// IsStandalone 为 nil 时视为非独立模式
	IsStandalone func() bool

	// ConfigProvider 每次开始新序列时读取最新配置（支持热重载），nil 时使用默认配置
	ConfigProvider func() *config.RewardSequenceConfig
}

// RewardScene 礼盒揭晓场景
//
// 场景创建即开始第一个序列。序列结束后点击或按空格开始新的序列，
// ESC 提前拆除当前序列。安装横幅与序列相互独立。
type RewardScene struct {
	deps          RewardSceneDeps
	entityManager *ecs.EntityManager

	confetti     *systems.ConfettiSystem
	giftBox      *systems.GiftBoxSystem
	giftRender   *systems.GiftBoxRenderSystem
	bannerRender *systems.BannerRenderSystem
	banner       *install.Banner

	seq         *reward.Sequencer
	completions int
	face        *text.GoXFace
}

var _ game.Disposable = (*RewardScene)(nil)

// NewRewardScene 创建场景并开始第一个序列
func NewRewardScene(deps RewardSceneDeps) (*RewardScene, error) {
	if deps.Shapes == nil {
		deps.Shapes = game.NewAsyncLoader("confetti-shapes", systems.LoadConfettiShapes)
	}
	if deps.Store == nil {
		deps.Store = install.NewStore()
	}
	if deps.Events == nil {
		deps.Events = install.NewEvents()
	}

	em := ecs.NewEntityManager()
	w, h := float64(config.ScreenWidth), float64(config.ScreenHeight)
	rs := &RewardScene{
		deps:          deps,
		entityManager: em,
		confetti:      systems.NewConfettiSystem(em, deps.Shapes, deps.Settings, w, h),
		giftBox:       systems.NewGiftBoxSystem(em, w, h),
		giftRender:    systems.NewGiftBoxRenderSystem(em),
		bannerRender:  systems.NewBannerRenderSystem(em, w),
		face:          text.NewGoXFace(basicfont.Face7x13),
	}

	rs.banner = install.NewBanner(deps.Store, deps.Events, rs.currentConfig().InstallPrompt, deps.IsStandalone)
	rs.banner.Mount()

	if err := rs.Restart(); err != nil {
		rs.banner.Unmount()
		return nil, err
	}
	return rs, nil
}

func (rs *RewardScene) currentConfig() *config.RewardSequenceConfig {
	if rs.deps.ConfigProvider != nil {
		if cfg := rs.deps.ConfigProvider(); cfg != nil {
			return cfg
		}
	}
	return config.DefaultRewardSequenceConfig()
}

func (rs *RewardScene) capabilities() reward.Capabilities {
	caps := reward.Capabilities{
		Audio:     rs.deps.Audio,
		Particles: rs.confetti,
	}
	// 避免把 nil 指针包装成非 nil 接口
	if rs.deps.Haptics != nil {
		caps.Haptics = rs.deps.Haptics
	}
	return caps
}

// Restart 拆除当前序列（如果还在运行）并开始新序列
func (rs *RewardScene) Restart() error {
	rs.TeardownSequence()
	rs.confetti.Clear()

	seq, err := reward.NewSequencer(reward.Params{
		Amount:       rs.deps.Amount,
		Text:         rs.deps.Text,
		Capabilities: rs.capabilities(),
		Config:       rs.currentConfig(),
		OnComplete:   rs.onComplete,
		OnReveal:     rs.onReveal,
	})
	if err != nil {
		return err
	}
	rs.seq = seq
	logger.Info("[RewardScene] 开始新的揭晓序列", zap.String("run", seq.RunID()))
	return nil
}

func (rs *RewardScene) onComplete() {
	rs.completions++
	logger.Infof("[RewardScene] 揭晓完成（第 %d 次）", rs.completions)
}

func (rs *RewardScene) onReveal(results []reward.EffectResult) {
	for _, r := range results {
		if !r.OK() {
			logger.Debugf("[RewardScene] 副作用 %s: %s (%v)", r.Kind, r.Outcome, r.Err)
		}
	}
}

// TeardownSequence 提前拆除当前序列，并停止尚未播放完的震动模式
func (rs *RewardScene) TeardownSequence() {
	if rs.seq != nil {
		rs.seq.Teardown()
	}
	if rs.deps.Haptics != nil {
		rs.deps.Haptics.Stop()
	}
}

// HandleClick 处理点击：先交给横幅，其次在序列结束后开始新序列
func (rs *RewardScene) HandleClick(x, y float64) {
	switch rs.bannerRender.HitTest(x, y) {
	case systems.BannerHitInstall:
		res, err := rs.banner.Install()
		if errors.Is(err, install.ErrNoDeferredAction) {
			rs.bannerRender.ShowToast(res.Fallback)
		}
		return
	case systems.BannerHitClose:
		rs.banner.Dismiss()
		return
	case systems.BannerHitBody:
		return
	}

	if rs.seq == nil || rs.seq.Done() {
		if err := rs.Restart(); err != nil {
			logger.Errorf("[RewardScene] 无法开始新序列: %v", err)
		}
	}
}

func (rs *RewardScene) handleInput() {
	if clicked, x, y := utils.IsJustTouchedOrClicked(); clicked {
		rs.HandleClick(float64(x), float64(y))
	}
	if utils.IsKeyJustPressed(ebiten.KeySpace, ebiten.KeyEnter) && rs.seq.Done() {
		if err := rs.Restart(); err != nil {
			logger.Errorf("[RewardScene] 无法开始新序列: %v", err)
		}
	}
	if utils.IsKeyJustPressed(ebiten.KeyEscape) {
		rs.TeardownSequence()
	}
}

// Update 推进场景
func (rs *RewardScene) Update(deltaTime float64) {
	rs.handleInput()
	rs.step(deltaTime)
}

// step 不含输入处理的逻辑推进
func (rs *RewardScene) step(deltaTime float64) {
	dt := time.Duration(deltaTime * float64(time.Second))

	rs.seq.Update(dt)
	if rs.deps.Haptics != nil {
		rs.deps.Haptics.Update(dt)
	}
	rs.banner.Update(dt)
	rs.bannerRender.Update(rs.banner, deltaTime)

	rs.giftBox.Update(rs.seq)
	rs.confetti.Update(deltaTime)
	rs.entityManager.RemoveMarkedEntities()
}

// Draw 绘制场景
func (rs *RewardScene) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	rs.giftRender.Draw(screen)
	rs.confetti.Draw(screen)
	rs.bannerRender.Draw(screen)

	if hint := rs.hint(); hint != "" {
		op := &text.DrawOptions{}
		op.LayoutOptions.PrimaryAlign = text.AlignCenter
		op.GeoM.Scale(1.5, 1.5)
		op.GeoM.Translate(config.ScreenWidth/2, config.ScreenHeight-60)
		op.ColorScale.ScaleWithColor(color.RGBA{0xFF, 0xFF, 0xFF, 0xB0})
		text.Draw(screen, hint, rs.face, op)
	}
}

func (rs *RewardScene) hint() string {
	switch {
	case rs.seq.TornDown():
		return "Cancelled - tap to try again"
	case rs.seq.Done():
		return "Tap or press SPACE for another gift"
	}
	return ""
}

// Dispose 拆除序列并卸载横幅
func (rs *RewardScene) Dispose() {
	rs.TeardownSequence()
	rs.banner.Unmount()
}

// Sequencer 当前序列
func (rs *RewardScene) Sequencer() *reward.Sequencer { return rs.seq }

// Completions 已完成的序列数量
func (rs *RewardScene) Completions() int { return rs.completions }

// Banner 安装横幅
func (rs *RewardScene) Banner() *install.Banner { return rs.banner }
