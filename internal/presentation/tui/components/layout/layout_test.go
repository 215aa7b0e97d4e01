package layout

import (
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	props := Props{
		Header:  "TICKER",
		Sidebar: "SIDEBAR",
		Main:    "MAIN",
		Footer:  "FOOTER",
	}

	got := Render(props)

	for _, want := range []string{"TICKER", "SIDEBAR", "MAIN", "FOOTER"} {
		if !strings.Contains(got, want) {
			t.Errorf("Missing %s content", strings.ToLower(want))
		}
	}
	lines := strings.Split(got, "\n")
	if !strings.Contains(lines[0], "TICKER") {
		t.Errorf("Ticker should be the first line, got %q", lines[0])
	}
	if !strings.Contains(lines[1], "SIDEBAR") || !strings.Contains(lines[1], "MAIN") {
		t.Errorf("Panes should share a row, got %q", lines[1])
	}
}
