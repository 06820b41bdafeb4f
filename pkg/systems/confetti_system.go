package systems

import (
	"fmt"
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/giftbox/pkg/components"
	"github.com/gonewx/giftbox/pkg/config"
	"github.com/gonewx/giftbox/pkg/ecs"
	"github.com/gonewx/giftbox/pkg/game"
	"github.com/gonewx/giftbox/pkg/logger"
	"github.com/gonewx/giftbox/pkg/reward"
)

const (
	// 彩纸物理以 60 TPS 的 tick 为单位
	confettiTickSeconds = 1.0 / 60.0
	// 彩纸贴图边长（像素），绘制时乘以 Scalar
	confettiShapeSize = 10.0
	// 重力放大系数，与 canvas-confetti 一致
	confettiGravityScale = 3.0
)

// ConfettiShapes 彩纸贴图（白色，绘制时按颜色着色）
type ConfettiShapes struct {
	Square *ebiten.Image
	Circle *ebiten.Image
}

// LoadConfettiShapes 生成彩纸贴图，供 game.AsyncLoader 在后台调用
func LoadConfettiShapes() (*ConfettiShapes, error) {
	square := ebiten.NewImage(confettiShapeSize, confettiShapeSize)
	square.Fill(color.White)

	circle := ebiten.NewImage(confettiShapeSize, confettiShapeSize)
	r := float32(confettiShapeSize / 2)
	vector.DrawFilledCircle(circle, r, r, r, color.White, true)

	return &ConfettiShapes{Square: square, Circle: circle}, nil
}

// ConfettiSystem 彩纸粒子系统，实现 reward.ParticleEffect
//
// 贴图由共享的 AsyncLoader 加载；未加载完成时 Available 返回 false，
// 序列会跳过本次爆发。
type ConfettiSystem struct {
	entityManager   *ecs.EntityManager
	loader          *game.AsyncLoader[*ConfettiShapes]
	settingsManager *game.SettingsManager // 可为 nil
	width, height   float64
	rng             *rand.Rand
}

var _ reward.ParticleEffect = (*ConfettiSystem)(nil)

// NewConfettiSystem 创建彩纸系统，width/height 用于把相对原点换算为屏幕坐标
func NewConfettiSystem(em *ecs.EntityManager, loader *game.AsyncLoader[*ConfettiShapes], sm *game.SettingsManager, width, height float64) *ConfettiSystem {
	return &ConfettiSystem{
		entityManager:   em,
		loader:          loader,
		settingsManager: sm,
		width:           width,
		height:          height,
		rng:             rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// SetSeed 固定随机种子（测试和可复现演示使用）
func (cs *ConfettiSystem) SetSeed(seed uint64) {
	cs.rng = rand.New(rand.NewPCG(seed, seed))
}

func (cs *ConfettiSystem) enabled() bool {
	return cs.settingsManager == nil || cs.settingsManager.GetSettings().ParticlesEnabled
}

// Available 贴图已加载且用户未关闭粒子效果
func (cs *ConfettiSystem) Available() bool {
	return cs.enabled() && cs.loader.Available()
}

// EnsureLoaded 后台加载贴图
func (cs *ConfettiSystem) EnsureLoaded() {
	if cs.enabled() {
		cs.loader.EnsureLoaded()
	}
}

// Burst 在原点生成一批彩纸
func (cs *ConfettiSystem) Burst(cfg config.BurstConfig) error {
	if !cs.Available() {
		return reward.ErrParticlesNotLoaded
	}
	colors, err := cfg.ParsedColors()
	if err != nil {
		return fmt.Errorf("confetti burst: %w", err)
	}
	if len(colors) == 0 {
		colors = []color.RGBA{{0xFF, 0xFF, 0xFF, 0xFF}}
	}

	originX := cfg.OriginX * cs.width
	originY := cfg.OriginY * cs.height
	radAngle := cfg.Angle * math.Pi / 180
	radSpread := cfg.Spread * math.Pi / 180

	for i := 0; i < cfg.ParticleCount; i++ {
		id := cs.entityManager.CreateEntity()
		ecs.AddComponent(cs.entityManager, id, &components.PositionComponent{X: originX, Y: originY})
		ecs.AddComponent(cs.entityManager, id, &components.ConfettiParticleComponent{
			// 屏幕坐标 y 轴向下，角度取负使 90° 朝上
			AngleRad:    -radAngle + (0.5*radSpread - cs.rng.Float64()*radSpread),
			Velocity:    cfg.StartVelocity*0.5 + cs.rng.Float64()*cfg.StartVelocity,
			Decay:       cfg.Decay,
			Gravity:     cfg.Gravity * confettiGravityScale,
			Drift:       cfg.Drift,
			Wobble:      cs.rng.Float64() * 10,
			WobbleSpeed: math.Min(0.11, cs.rng.Float64()*0.1+0.05),
			Tilt:        (cs.rng.Float64()*0.5 + 0.25) * math.Pi,
			Color:       colors[i%len(colors)],
			Scalar:      cfg.Scalar,
			TotalTicks:  cfg.Ticks,
		})
	}

	logger.Debugf("[ConfettiSystem] 爆发 %d 片彩纸 @(%.0f, %.0f)", cfg.ParticleCount, originX, originY)
	return nil
}

// Update 按固定 tick 推进所有彩纸，寿命结束的标记删除
func (cs *ConfettiSystem) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith2[*components.PositionComponent, *components.ConfettiParticleComponent](cs.entityManager) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](cs.entityManager, id)
		p, _ := ecs.GetComponent[*components.ConfettiParticleComponent](cs.entityManager, id)

		p.Accumulator += deltaTime
		for p.Accumulator >= confettiTickSeconds && p.Tick < p.TotalTicks {
			p.Accumulator -= confettiTickSeconds
			stepConfetti(pos, p)
		}
		if p.Tick >= p.TotalTicks {
			cs.entityManager.DestroyEntity(id)
		}
	}
}

// stepConfetti 单个 tick 的物理
func stepConfetti(pos *components.PositionComponent, p *components.ConfettiParticleComponent) {
	pos.X += math.Cos(p.AngleRad)*p.Velocity + p.Drift
	pos.Y += math.Sin(p.AngleRad)*p.Velocity + p.Gravity
	p.Velocity *= p.Decay

	p.Wobble += p.WobbleSpeed
	p.Tilt += 0.1
	p.TiltSin = math.Sin(p.Tilt)
	p.TiltCos = math.Cos(p.Tilt)
	p.Tick++
}

// ActiveCount 当前彩纸数量
func (cs *ConfettiSystem) ActiveCount() int {
	return len(ecs.GetEntitiesWith1[*components.ConfettiParticleComponent](cs.entityManager))
}

// Clear 删除所有彩纸
func (cs *ConfettiSystem) Clear() {
	for _, id := range ecs.GetEntitiesWith1[*components.ConfettiParticleComponent](cs.entityManager) {
		cs.entityManager.DestroyEntity(id)
	}
}

// Draw 绘制所有彩纸：随寿命淡出，翻转效果用 tilt 压缩宽度
func (cs *ConfettiSystem) Draw(screen *ebiten.Image) {
	shapes, ok := cs.loader.Value()
	if !ok || shapes == nil {
		return
	}

	for _, id := range ecs.GetEntitiesWith2[*components.PositionComponent, *components.ConfettiParticleComponent](cs.entityManager) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](cs.entityManager, id)
		p, _ := ecs.GetComponent[*components.ConfettiParticleComponent](cs.entityManager, id)
		if p.TotalTicks <= 0 {
			continue
		}

		img := shapes.Square
		if id%2 == 0 {
			img = shapes.Circle
		}

		wobbleX := pos.X + 10*p.Scalar*math.Cos(p.Wobble)
		wobbleY := pos.Y + 10*p.Scalar*math.Sin(p.Wobble)
		alpha := 1 - float64(p.Tick)/float64(p.TotalTicks)

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-confettiShapeSize/2, -confettiShapeSize/2)
		op.GeoM.Scale(p.Scalar*math.Max(0.15, math.Abs(p.TiltCos)), p.Scalar)
		op.GeoM.Rotate(math.Pi / 10 * p.Wobble)
		op.GeoM.Translate((pos.X+wobbleX)/2, (pos.Y+wobbleY)/2)
		op.ColorScale.ScaleWithColor(p.Color)
		op.ColorScale.ScaleAlpha(float32(alpha))
		screen.DrawImage(img, op)
	}
}
