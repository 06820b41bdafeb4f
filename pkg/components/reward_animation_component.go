package components

// GiftBoxComponent 礼盒的视觉状态
//
// GiftBoxSystem 每帧根据序列阶段写入，GiftBoxRenderSystem 只读。
type GiftBoxComponent struct {
	// Phase 序列阶段名称（"idle" / "shaking" / "opening" / "finished"）
	Phase string

	// ShakeX 摇晃水平偏移（像素），ShakeRotation 摇晃角度（弧度）
	ShakeX        float64
	ShakeRotation float64

	// 盒盖相对礼盒顶部的偏移
	LidOffsetX  float64
	LidOffsetY  float64
	LidRotation float64 // 弧度
	LidScale    float64
	LidAlpha    float64

	// 奖励金额相对礼盒的偏移
	MoneyOffsetY float64
	MoneyScale   float64
	MoneyAlpha   float64

	// AmountText 已格式化的金额（如 "$50"）
	AmountText string
	Label      string
}
