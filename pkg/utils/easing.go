package utils

import "math"

// 缓动函数
//
// 接受进度 t ∈ [0, 1]。EaseOutBack 会短暂超过 1（回弹）。
// 参考：https://easings.net/

// EaseLinear 匀速
func EaseLinear(t float64) float64 {
	return t
}

// EaseInCubic 三次方缓入：开始慢，结束快（盒盖飞出）
// f(t) = t³
func EaseInCubic(t float64) float64 {
	return t * t * t
}

// EaseOutQuad 二次方缓出
// f(t) = 1 - (1-t)²
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// easeBackOvershoot 回弹幅度（约 10%）
const easeBackOvershoot = 1.70158

// EaseOutBack 缓出并略微越过终点再回来（金额弹出）
// f(t) = 1 + (c+1)(t-1)³ + c(t-1)²
func EaseOutBack(t float64) float64 {
	c1 := easeBackOvershoot
	c3 := c1 + 1
	return 1 + c3*math.Pow(t-1, 3) + c1*math.Pow(t-1, 2)
}

// Clamp01 将值限制在 [0, 1]
func Clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// Progress 从 delay 开始、持续 duration 的动画在 elapsed 时刻的进度，限制在 [0, 1]
func Progress(elapsed, delay, duration float64) float64 {
	if duration <= 0 {
		if elapsed >= delay {
			return 1
		}
		return 0
	}
	return Clamp01((elapsed - delay) / duration)
}

// Lerp 线性插值，t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
