package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/chenBenjamin97/player-tracker/pkg/tracking"
)

func TestPrintRoleTable(t *testing.T) {
	var buf bytes.Buffer
	PrintRoleTable(&buf, []tracking.TrackDistance{
		{ID: 1, PlayerOne: 608.7562, PlayerTwo: 150.5829},
		{ID: 7, PlayerOne: 84.0268, PlayerTwo: 608.7562},
		{ID: 9, PlayerOne: 300, PlayerTwo: 400},
	}, tracking.RoleMapping{7: tracking.PlayerOne, 1: tracking.PlayerTwo})

	out := buf.String()
	for _, want := range []string{"TRACK", "84.03", "150.58", "300.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	lines := strings.Split(out, "\n")
	var row7 string
	for _, l := range lines {
		if strings.Contains(l, "84.03") {
			row7 = l
		}
	}
	fields := strings.Fields(row7)
	if len(fields) == 0 {
		t.Fatalf("row of track 7 not found:\n%s", out)
	}
	labeled := false
	for _, f := range fields {
		if f == "1" {
			labeled = true
		}
	}
	if !labeled {
		t.Errorf("track 7 should be labeled player 1: %q", row7)
	}
}
