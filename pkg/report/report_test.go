package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/chenBenjamin97/footscout/pkg/analysis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintStats(t *testing.T) {
	s := analysis.NewPlayerStats("10")
	s.DistanceMeters = 12.5
	s.TopSpeedKmh = 21.5
	s.Passes = 3
	analysis.Finalize(s, 50, 100)

	var buf bytes.Buffer
	PrintStats(&buf, s)
	out := buf.String()

	assert.Contains(t, out, "12.50 m")
	assert.Contains(t, out, "21.50 km/h")
	assert.Contains(t, out, "50.00% (50/100 frames)")
	assert.Contains(t, out, "1.50") //agility
}

func TestPrintStatsNoPlayer(t *testing.T) {
	var buf bytes.Buffer
	PrintStats(&buf, nil)
	assert.Contains(t, buf.String(), "No player")
}

func TestPrintValidation(t *testing.T) {
	res := analysis.ValidationResult{
		Confidence: 0,
		Details:    analysis.ValidationDetails{FramesSampled: 5, Error: "no frames analyzed"},
	}

	var buf bytes.Buffer
	PrintValidation(&buf, res)
	out := buf.String()

	assert.Contains(t, out, "REJECTED")
	assert.Contains(t, out, "Reason: no frames analyzed")
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintJSON(&buf, map[string]interface{}{"player_stats": nil}))

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Contains(t, got, "player_stats")
	assert.Nil(t, got["player_stats"])
}
