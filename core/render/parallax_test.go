package render

import (
	"image"
	"math"
	"testing"
)

func TestPosition(t *testing.T) {
	bitmap := image.Rect(0, 0, 2560, 1920)
	tests := []struct {
		name    string
		off     Offsets
		preview bool
		want    image.Point
	}{
		{"centred", CenteredOffsets, false, image.Pt(-740, 0)},
		{"left page", Offsets{X: 0, Y: 0.5}, false, image.Pt(0, 0)},
		{"right page", Offsets{X: 1, Y: 0.5}, false, image.Pt(-1480, 0)},
		{"quarter", Offsets{X: 0.25, Y: 0}, false, image.Pt(-370, 0)},
		{"clamped", Offsets{X: 3, Y: -1}, false, image.Pt(-1480, 0)},
		{"preview ignores offsets", Offsets{X: 0, Y: 0}, true, image.Pt(-740, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Position(1080, 1920, bitmap, tt.off, tt.preview); got != tt.want {
				t.Fatalf("Position = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPositionSmallerBitmapIsInset(t *testing.T) {
	got := Position(100, 100, image.Rect(0, 0, 50, 80), CenteredOffsets, false)
	if got != image.Pt(25, 10) {
		t.Fatalf("Position = %v, want (25,10)", got)
	}
}

func TestOffsetsClampNaN(t *testing.T) {
	nan := float32(math.NaN())
	if got := (Offsets{X: nan, Y: 2}).Clamp(); got != (Offsets{X: 0.5, Y: 1}) {
		t.Fatalf("Clamp = %v, want (0.5,1)", got)
	}
}
