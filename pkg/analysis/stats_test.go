package analysis

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinalizeNilStaysNil(t *testing.T) {
	assert.Nil(t, Finalize(nil, 0, 100))
}

func TestFinalize(t *testing.T) {
	s := NewPlayerStats("10")
	s.Count(EventPass)
	s.Count(EventPass)
	s.Count(EventDribble)
	s.Count(EventDribble)
	s.Count(EventDribble)
	s.Count(EventShot)
	s.DistanceMeters = 500

	res := Finalize(s, 1, 3)
	require.NotNil(t, res)
	assert.Equal(t, 33.33, res.OverallAccuracy)
	assert.Equal(t, 1, res.FramesWithPlayer)
	assert.Equal(t, 3, res.TotalFrames)

	assert.InDelta(t, 2.5, res.Ratings.Agility, 1e-9)
	assert.InDelta(t, 50.0, res.Ratings.Stamina, 1e-9)
	assert.InDelta(t, 2.0, res.Ratings.Intelligence, 1e-9)
}

func TestFinalizeStaminaCapped(t *testing.T) {
	s := NewPlayerStats("7")
	s.DistanceMeters = 4200
	assert.Equal(t, 100.0, Finalize(s, 10, 10).Ratings.Stamina)
	assert.Equal(t, 100.0, s.OverallAccuracy)
}

func TestPlayerStatsJSON(t *testing.T) {
	s := NewPlayerStats("7")
	s.DistanceMeters = 12.5
	s.TopSpeedKmh = 21.5
	s.LastPosition = Point{X: 320, Y: 180}
	s.Passes = 2
	Finalize(s, 3, 4)

	raw, err := json.Marshal(s)
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &got))

	assert.Equal(t, "7", got["jersey_number"])
	assert.Equal(t, 2.0, got["pass_accuracy"])
	assert.Equal(t, 0.0, got["dribble_success"])
	assert.Equal(t, 0.0, got["shot_conversion"])
	assert.Equal(t, "12.50 m", got["distance_covered"])
	assert.Equal(t, "21.50 km/h", got["top_speed"])
	assert.Equal(t, []interface{}{320.0, 180.0}, got["last_position"])
	assert.Equal(t, 75.0, got["overall_accuracy"])
	assert.Contains(t, got, "ratings")
}
