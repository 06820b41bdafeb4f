package systems

import (
	"math"
	"time"

	"github.com/gonewx/giftbox/pkg/components"
	"github.com/gonewx/giftbox/pkg/config"
	"github.com/gonewx/giftbox/pkg/ecs"
	"github.com/gonewx/giftbox/pkg/reward"
	"github.com/gonewx/giftbox/pkg/utils"
)

// 摇晃幅度
const (
	shakeAmplitudeX   = 8.0               // 像素
	shakeAmplitudeRot = 10 * math.Pi / 180 // 弧度
)

// SequenceView 礼盒动画需要读取的序列状态
type SequenceView interface {
	Phase() reward.Phase
	PhaseElapsed() time.Duration
	AmountText() string
	Text() reward.DisplayText
	Config() *config.RewardSequenceConfig
}

// GiftBoxSystem 根据序列阶段计算礼盒的视觉状态
//
// 序列本身不关心画面；这里把"当前阶段 + 阶段内已用时间"映射为
// 摇晃偏移、盒盖飞出、金额弹出等纯数据，写入 GiftBoxComponent。
type GiftBoxSystem struct {
	entityManager *ecs.EntityManager
	entity        ecs.EntityID
}

// NewGiftBoxSystem 创建礼盒实体，位置为屏幕中心偏下
func NewGiftBoxSystem(em *ecs.EntityManager, screenWidth, screenHeight float64) *GiftBoxSystem {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{
		X: screenWidth / 2,
		Y: screenHeight/2 + config.GiftBoxOffsetY,
	})
	box := &components.GiftBoxComponent{Label: config.MoneyLabel}
	resetGiftBox(box)
	ecs.AddComponent(em, id, box)
	return &GiftBoxSystem{entityManager: em, entity: id}
}

// Entity 礼盒实体 ID
func (gs *GiftBoxSystem) Entity() ecs.EntityID { return gs.entity }

// Component 礼盒组件
func (gs *GiftBoxSystem) Component() *components.GiftBoxComponent {
	box, _ := ecs.GetComponent[*components.GiftBoxComponent](gs.entityManager, gs.entity)
	return box
}

// Update 从序列状态刷新礼盒组件；seq 为 nil 时恢复到初始状态
func (gs *GiftBoxSystem) Update(seq SequenceView) {
	box := gs.Component()
	if box == nil {
		return
	}
	if seq == nil {
		resetGiftBox(box)
		box.Phase = reward.PhaseIdle.String()
		box.AmountText = ""
		box.Label = config.MoneyLabel
		return
	}

	box.AmountText = seq.AmountText()
	box.Label = moneyLabel(seq.Text())
	box.Phase = seq.Phase().String()
	t := seq.PhaseElapsed().Seconds()

	switch seq.Phase() {
	case reward.PhaseIdle:
		resetGiftBox(box)
	case reward.PhaseShaking:
		resetGiftBox(box)
		applyShake(box, t, seq.Config().Timings.Shake().Seconds())
	case reward.PhaseOpening:
		applyOpening(box, t)
	case reward.PhaseFinished:
		// 停在打开后的最终画面
		applyOpening(box, math.Inf(1))
	}
}

// moneyLabel 金额下方的标签，未指定时使用默认 "REWARD"
func moneyLabel(text reward.DisplayText) string {
	if text.Label == "" {
		return config.MoneyLabel
	}
	return text.Label
}

func resetGiftBox(box *components.GiftBoxComponent) {
	box.ShakeX = 0
	box.ShakeRotation = 0
	box.LidOffsetX = 0
	box.LidOffsetY = 0
	box.LidRotation = 0
	box.LidScale = 1
	box.LidAlpha = 1
	box.MoneyOffsetY = config.MoneyPopStartOffsetY
	box.MoneyScale = 0
	box.MoneyAlpha = 0
}

// applyShake 周期为 ShakePeriodSeconds 的左右摇晃，越接近打开幅度越大
func applyShake(box *components.GiftBoxComponent, t, total float64) {
	phase := 2 * math.Pi * t / config.ShakePeriodSeconds
	gain := 1.0
	if total > 0 {
		gain = 0.6 + 0.4*utils.Clamp01(t/total)
	}
	box.ShakeX = shakeAmplitudeX * gain * math.Sin(phase)
	box.ShakeRotation = shakeAmplitudeRot * gain * math.Sin(phase+math.Pi/2)
}

// applyOpening 盒盖 ease-in 飞出并淡出，金额延迟后 ease-out-back 弹出
func applyOpening(box *components.GiftBoxComponent, t float64) {
	box.ShakeX = 0
	box.ShakeRotation = 0

	lid := utils.Progress(t, 0, config.LidFlyDurationSeconds)
	e := utils.EaseInCubic(lid)
	box.LidOffsetX = config.LidFlyOffsetX * e
	box.LidOffsetY = config.LidFlyOffsetY * e
	box.LidRotation = config.LidFlyRotationDeg * math.Pi / 180 * e
	box.LidScale = utils.Lerp(1, config.LidFlyFinalScale, e)
	box.LidAlpha = 1 - lid

	money := utils.Progress(t, config.MoneyPopDelaySeconds, config.MoneyPopDurationSeconds)
	m := utils.EaseOutBack(money)
	box.MoneyOffsetY = utils.Lerp(config.MoneyPopStartOffsetY, config.MoneyPopEndOffsetY, m)
	box.MoneyScale = utils.Lerp(0.5, 1, m)
	box.MoneyAlpha = utils.Clamp01(money * 2)
}
