package utils

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.001
}

func TestEasingEndpoints(t *testing.T) {
	funcs := map[string]func(float64) float64{
		"EaseLinear":  EaseLinear,
		"EaseInCubic": EaseInCubic,
		"EaseOutQuad": EaseOutQuad,
		"EaseOutBack": EaseOutBack,
	}
	for name, fn := range funcs {
		t.Run(name, func(t *testing.T) {
			if !almostEqual(fn(0), 0) {
				t.Errorf("%s(0) = %v, 期望 0", name, fn(0))
			}
			if !almostEqual(fn(1), 1) {
				t.Errorf("%s(1) = %v, 期望 1", name, fn(1))
			}
		})
	}
}

func TestEaseInCubic(t *testing.T) {
	if got := EaseInCubic(0.5); !almostEqual(got, 0.125) {
		t.Errorf("EaseInCubic(0.5) = %v, 期望 0.125", got)
	}
}

func TestEaseOutBack_Overshoots(t *testing.T) {
	// 后半段应越过 1 再回落
	peak := 0.0
	for i := 0; i <= 100; i++ {
		peak = math.Max(peak, EaseOutBack(float64(i)/100))
	}
	if peak <= 1.0 || peak > 1.2 {
		t.Errorf("EaseOutBack 峰值 = %v, 期望在 (1, 1.2]", peak)
	}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name                     string
		elapsed, delay, duration float64
		expected                 float64
	}{
		{"延迟前", 0.1, 0.3, 0.8, 0},
		{"开始", 0.3, 0.3, 0.8, 0},
		{"一半", 0.7, 0.3, 0.8, 0.5},
		{"结束后", 5, 0.3, 0.8, 1},
		{"零时长-之前", 0.1, 0.3, 0, 0},
		{"零时长-之后", 0.3, 0.3, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Progress(tt.elapsed, tt.delay, tt.duration); !almostEqual(got, tt.expected) {
				t.Errorf("Progress(%v, %v, %v) = %v, 期望 %v", tt.elapsed, tt.delay, tt.duration, got, tt.expected)
			}
		})
	}
}

func TestLerpAndClamp(t *testing.T) {
	if got := Lerp(10, 20, 0.25); !almostEqual(got, 12.5) {
		t.Errorf("Lerp = %v, 期望 12.5", got)
	}
	if Clamp01(-1) != 0 || Clamp01(2) != 1 || Clamp01(0.3) != 0.3 {
		t.Error("Clamp01 结果错误")
	}
}
