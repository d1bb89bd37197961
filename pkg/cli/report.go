package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/chenBenjamin97/player-tracker/pkg/tracking"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

//PrintRoleTable writes one row per track of the reference frame with its distance to each player's keypoints
func PrintRoleTable(w io.Writer, distances []tracking.TrackDistance, mapping tracking.RoleMapping) {
	table := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))

	table.Header("TRACK", "P1_DIST", "P2_DIST", "PLAYER")

	for _, d := range distances {
		player := "-"
		if role, ok := mapping[d.ID]; ok {
			player = role.String()
		}
		table.Append(
			strconv.Itoa(d.ID),
			fmt.Sprintf("%.2f", d.PlayerOne),
			fmt.Sprintf("%.2f", d.PlayerTwo),
			player,
		)
	}
	table.Render()
}
