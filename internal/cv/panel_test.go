//go:build withcv
// +build withcv

package cv

import (
	"testing"

	"visionlab/internal/prefs"
)

func TestStoredClampsToTrackbarRange(t *testing.T) {
	pr := prefs.Memory()
	pr.SetInt("high", 900)
	pr.SetInt("low", -4)
	pr.SetInt("ok", 12)

	v := 50
	tests := []struct {
		name string
		want int
	}{
		{"high", 255},
		{"low", 0},
		{"ok", 12},
		{"missing", 50},
	}
	for _, test := range tests {
		b := binding{name: test.name, field: &v, max: 255}
		if got := b.stored(pr); got != test.want {
			t.Errorf("stored(%q) = %d, want %d", test.name, got, test.want)
		}
	}
}
