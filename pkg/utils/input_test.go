package utils

import "testing"

func TestPointInRect(t *testing.T) {
	tests := []struct {
		name   string
		px, py float64
		want   bool
	}{
		{"内部", 15, 15, true},
		{"左上角", 10, 10, true},
		{"右边界", 30, 15, false},
		{"下边界", 15, 30, false},
		{"外部", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PointInRect(tt.px, tt.py, 10, 10, 20, 20); got != tt.want {
				t.Errorf("PointInRect(%v, %v) = %v, 期望 %v", tt.px, tt.py, got, tt.want)
			}
		})
	}
}
