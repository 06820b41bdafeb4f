package components

import "image/color"

// ConfettiParticleComponent 单片彩纸的运行时状态
//
// 由 ConfettiSystem 创建和更新，Ticks 用完后删除。
// 位置保存在同一实体的 PositionComponent 中。
// 物理量以"每 tick"为单位（60 TPS），与 canvas-confetti 的参数含义一致。
type ConfettiParticleComponent struct {
	// 速度（像素/tick），每 tick 乘以 Decay
	Velocity float64
	// 运动方向（弧度，屏幕坐标系，向上为负）
	AngleRad float64
	Decay    float64
	Gravity  float64
	Drift    float64

	// 摆动
	Wobble      float64
	WobbleSpeed float64
	Tilt        float64
	TiltSin     float64
	TiltCos     float64

	Color  color.RGBA
	Scalar float64

	// 生命周期（tick）
	Tick       int
	TotalTicks int

	// 剩余不足一个 tick 的时间（秒）
	Accumulator float64
}
