package install

import (
	"sync/atomic"
	"time"

	"github.com/gonewx/giftbox/pkg/config"
	"github.com/gonewx/giftbox/pkg/logger"
)

// Result Install 的结果
type Result struct {
	// Prompted 是否调用了平台动作
	Prompted bool
	Choice   Choice
	// Fallback 没有可用动作时需要展示给用户的说明文字
	Fallback string
}

// countdown 单个倒计时，由 Update 推进
type countdown struct {
	remaining time.Duration
	active    bool
}

func (c *countdown) start(d time.Duration) {
	c.remaining = d
	c.active = true
}

func (c *countdown) stop() { c.active = false }

// advance 推进倒计时，到期时返回 true（只返回一次）
func (c *countdown) advance(dt time.Duration) bool {
	if !c.active {
		return false
	}
	c.remaining -= dt
	if c.remaining > 0 {
		return false
	}
	c.active = false
	return true
}

// Banner 安装横幅
//
// 状态推进全部发生在 Update 所在的 goroutine（游戏循环）。
// 事件监听可能在平台线程触发，只写入 Store 并设置 armRequested 标志。
type Banner struct {
	store        *Store
	events       *Events
	cfg          config.InstallPromptConfig
	isStandalone func() bool

	armRequested atomic.Bool
	showTimer    countdown
	hideTimer    countdown
	visible      bool
	mounted      bool
	unsubscribe  []func()
}

// NewBanner 创建横幅
// isStandalone 为 nil 时视为非独立模式（浏览器标签页）。
func NewBanner(store *Store, events *Events, cfg config.InstallPromptConfig, isStandalone func() bool) *Banner {
	if isStandalone == nil {
		isStandalone = func() bool { return false }
	}
	return &Banner{
		store:        store,
		events:       events,
		cfg:          cfg,
		isStandalone: isStandalone,
	}
}

// Mount 订阅通知并检查 Store 中已有的动作
func (b *Banner) Mount() {
	if b.mounted {
		return
	}
	b.mounted = true

	if b.events != nil {
		b.unsubscribe = append(b.unsubscribe,
			b.events.OnReady(b.onReady),
			b.events.OnOffer(b.onOffer),
		)
	}

	if _, ok := b.store.Action(); ok {
		logger.Debugf("[InstallBanner] 挂载时已有安装邀请")
		b.armRequested.Store(true)
	}
}

func (b *Banner) onReady(a DeferredAction) {
	if a == nil {
		return
	}
	b.store.Capture(a)
	b.armRequested.Store(true)
}

func (b *Banner) onOffer(ev OfferEvent) {
	ev.PreventDefault()
	a := ev.Action()
	if a == nil {
		return
	}
	logger.Debugf("[InstallBanner] 捕获原生安装邀请")
	b.store.Capture(a)
	b.armRequested.Store(true)
}

// Update 推进计时器
func (b *Banner) Update(dt time.Duration) {
	if !b.mounted {
		return
	}
	armed := false
	if b.armRequested.Swap(false) {
		armed = b.arm()
	}

	// 两个计时器都从启动后的下一帧开始计时
	if b.hideTimer.advance(dt) {
		logger.Debugf("[InstallBanner] 自动隐藏")
		b.visible = false
	}
	if !armed && b.showTimer.advance(dt) {
		b.show()
	}
}

// arm 启动展示计时器并返回是否启动；已展示过或已有计时器时忽略
func (b *Banner) arm() bool {
	if b.store.Shown() || b.showTimer.active || b.visible {
		return false
	}
	b.showTimer.start(b.cfg.ShowDelay())
	return true
}

func (b *Banner) show() {
	if b.isStandalone() {
		logger.Debugf("[InstallBanner] 独立模式运行，不展示")
		return
	}
	b.visible = true
	b.store.MarkShown()
	b.hideTimer.start(b.cfg.AutoHide())
	logger.Infof("[InstallBanner] 展示安装横幅")
}

// Install 用户点击安装按钮
//
// 有动作时调用 Prompt 并消费；没有动作时返回 Fallback 说明文字和 ErrNoDeferredAction。
// 两种情况横幅都会隐藏。
func (b *Banner) Install() (Result, error) {
	b.hide()

	a, ok := b.store.Consume()
	if !ok {
		logger.Infof("[InstallBanner] 没有安装邀请，展示手动说明")
		return Result{Fallback: b.cfg.FallbackInstruction}, ErrNoDeferredAction
	}

	choice, err := a.Prompt()
	if err != nil {
		logger.Warnf("[InstallBanner] 安装对话框失败: %v", err)
		return Result{Prompted: true}, err
	}
	if choice == ChoiceAccepted {
		logger.Infof("[InstallBanner] 用户接受安装")
	} else {
		logger.Infof("[InstallBanner] 用户拒绝安装")
	}
	return Result{Prompted: true, Choice: choice}, nil
}

// Dismiss 用户关闭横幅
func (b *Banner) Dismiss() {
	b.hide()
}

func (b *Banner) hide() {
	b.visible = false
	b.showTimer.stop()
	b.hideTimer.stop()
}

// Unmount 取消订阅并停止计时器，可重复调用
func (b *Banner) Unmount() {
	for _, unsub := range b.unsubscribe {
		unsub()
	}
	b.unsubscribe = nil
	b.showTimer.stop()
	b.hideTimer.stop()
	b.armRequested.Store(false)
	b.visible = false
	b.mounted = false
}

// Visible 横幅当前是否可见
func (b *Banner) Visible() bool { return b.visible }

// Pending 展示计时器是否在运行
func (b *Banner) Pending() bool { return b.showTimer.active }

// AppName 横幅标题
func (b *Banner) AppName() string { return b.cfg.AppName }
