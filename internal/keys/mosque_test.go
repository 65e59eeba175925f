package keys

import "testing"

func TestKeys(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"dataset", Dataset("Dhaka Mosques"), "datasets/dhaka-mosques.json"},
		{"district", District("Dhaka Mosques", "Cox's Bazar"), "datasets/dhaka-mosques/coxs-bazar.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q want %q", tt.got, tt.want)
			}
		})
	}
}

func TestIsDataset(t *testing.T) {
	cases := map[string]bool{
		"datasets/dhaka.json":        true,
		"datasets/dhaka/sylhet.json": false,
		"other/dhaka.json":           false,
		"datasets/readme.txt":        false,
	}
	for key, want := range cases {
		if got := IsDataset(key); got != want {
			t.Errorf("IsDataset(%q) = %v, want %v", key, got, want)
		}
	}
}
