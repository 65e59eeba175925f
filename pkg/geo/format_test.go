package geo

import "testing"

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{88, "88.0"},
		{-90, "-90.0"},
		{0, "0.0"},
		{20.5, "20.5"},
		{92.7, "92.7"},
		{23.81035, "23.81035"},
	}
	for _, tt := range tests {
		if got := formatFloat(tt.in); got != tt.want {
			t.Errorf("formatFloat(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
