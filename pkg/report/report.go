//Package report renders analysis results for terminals.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/chenBenjamin97/footscout/pkg/analysis"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

//PrintStats writes the player's record as a two column table.
//A nil record means no player was found.
func PrintStats(w io.Writer, stats *analysis.PlayerStats) {
	if stats == nil {
		fmt.Fprintln(w, "No player could be tracked in this video.")
		return
	}

	table := newTable(w)
	table.Header("STAT", "VALUE")
	table.Append("Jersey", stats.JerseyNumber)
	table.Append("Distance", stats.DistanceString())
	table.Append("Top speed", stats.TopSpeedString())
	table.Append("Passes", strconv.Itoa(stats.Passes))
	table.Append("Dribbles", strconv.Itoa(stats.Dribbles))
	table.Append("Shots", strconv.Itoa(stats.Shots))
	table.Append("Last position", fmt.Sprintf("(%.0f, %.0f)", stats.LastPosition.X, stats.LastPosition.Y))
	table.Append("Tracked", fmt.Sprintf("%.2f%% (%d/%d frames)", stats.OverallAccuracy, stats.FramesWithPlayer, stats.TotalFrames))
	table.Append("Agility", fmt.Sprintf("%.2f", stats.Ratings.Agility))
	table.Append("Stamina", fmt.Sprintf("%.2f", stats.Ratings.Stamina))
	table.Append("Intelligence", fmt.Sprintf("%.2f", stats.Ratings.Intelligence))
	table.Render()
}

//PrintValidation writes the pre-flight verdict and how it was reached
func PrintValidation(w io.Writer, res analysis.ValidationResult) {
	verdict := "REJECTED"
	if res.Valid {
		verdict = "ACCEPTED"
	}
	fmt.Fprintf(w, "\nVideo %s  |  Confidence: %.2f\n\n", verdict, res.Confidence)

	table := newTable(w)
	table.Header("SAMPLED", "ANALYZED", "PLAYER_FRAMES", "BALL_FRAMES", "PLAYER_RATIO", "BALL_RATIO")
	d := res.Details
	table.Append(
		strconv.Itoa(d.FramesSampled),
		strconv.Itoa(d.FramesAnalyzed),
		strconv.Itoa(d.PlayerFrames),
		strconv.Itoa(d.BallFrames),
		fmt.Sprintf("%.2f", d.PlayerRatio),
		fmt.Sprintf("%.2f", d.BallRatio),
	)
	table.Render()

	if d.Error != "" {
		fmt.Fprintf(w, "Reason: %s\n", d.Error)
	}
}

//PrintJSON writes v as indented JSON
func PrintJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
