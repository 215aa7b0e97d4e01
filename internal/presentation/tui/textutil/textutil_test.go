package textutil

import "testing"

func TestClip(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{name: "fits", text: "Markets rally", width: 20, want: "Markets rally"},
		{name: "flattens", text: "Markets\n  rally\tagain", width: 40, want: "Markets rally again"},
		{name: "truncates", text: "Central bank holds rates", width: 8, want: "Central…"},
		{name: "zero width", text: "anything", width: 0, want: ""},
		{name: "wide runes", text: "東京株式市場", width: 5, want: "東京…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clip(tt.text, tt.width); got != tt.want {
				t.Fatalf("Clip(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
}
