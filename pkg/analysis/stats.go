package analysis

import (
	"encoding/json"
	"fmt"
	"math"
)

//StaminaReferenceMeters is the distance that maps to a full stamina rating
const StaminaReferenceMeters = 1000.0

//PlayerStats is the running record for the chosen player, finalized after the frame loop
type PlayerStats struct {
	JerseyNumber     string
	DistanceMeters   float64
	TopSpeedKmh      float64
	LastPosition     Point
	Passes           int
	Dribbles         int
	Shots            int
	OverallAccuracy  float64 //percentage of frames the chosen player was tracked in, set by Finalize
	FramesWithPlayer int
	TotalFrames      int
	Ratings          Ratings
}

//Ratings are coarse scores derived from the counters
type Ratings struct {
	Agility      float64 `json:"agility"`
	Stamina      float64 `json:"stamina"`
	Intelligence float64 `json:"intelligence"`
}

//NewPlayerStats creates an empty record labeled with given jersey
func NewPlayerStats(jersey string) *PlayerStats {
	return &PlayerStats{JerseyNumber: jersey}
}

//Count increments the counter of given event kind
func (s *PlayerStats) Count(kind EventKind) {
	switch kind {
	case EventPass:
		s.Passes++
	case EventDribble:
		s.Dribbles++
	case EventShot:
		s.Shots++
	}
}

//Finalize computes the tracking ratio and ratings. A nil record stays nil, meaning no subject was found.
func Finalize(stats *PlayerStats, framesWithPlayer, totalFrames int) *PlayerStats {
	if stats == nil {
		return nil
	}

	stats.FramesWithPlayer = framesWithPlayer
	stats.TotalFrames = totalFrames
	if totalFrames > 0 {
		stats.OverallAccuracy = round2(float64(framesWithPlayer) / float64(totalFrames) * 100.0)
	}
	stats.Ratings = computeRatings(stats)

	return stats
}

func computeRatings(s *PlayerStats) Ratings {
	return Ratings{
		Agility:      round2(float64(s.Dribbles+s.Passes) / 2.0),
		Stamina:      round2(math.Max(0, math.Min(s.DistanceMeters/StaminaReferenceMeters*100.0, 100.0))),
		Intelligence: round2(float64(s.Dribbles)*0.3 + float64(s.Passes)*0.4 + float64(s.Shots)*0.3),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

//DistanceString formats distance with its unit
func (s *PlayerStats) DistanceString() string {
	return fmt.Sprintf("%.2f m", s.DistanceMeters)
}

//TopSpeedString formats top speed with its unit
func (s *PlayerStats) TopSpeedString() string {
	return fmt.Sprintf("%.2f km/h", s.TopSpeedKmh)
}

//MarshalJSON keeps the field names of the record consumers already store
func (s *PlayerStats) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		JerseyNumber    string     `json:"jersey_number"`
		PassAccuracy    int        `json:"pass_accuracy"`
		DribbleSuccess  int        `json:"dribble_success"`
		ShotConversion  int        `json:"shot_conversion"`
		DistanceCovered string     `json:"distance_covered"`
		TopSpeed        string     `json:"top_speed"`
		LastPosition    [2]float64 `json:"last_position"`
		OverallAccuracy float64    `json:"overall_accuracy"`
		Ratings         Ratings    `json:"ratings"`
	}{
		JerseyNumber:    s.JerseyNumber,
		PassAccuracy:    s.Passes,
		DribbleSuccess:  s.Dribbles,
		ShotConversion:  s.Shots,
		DistanceCovered: s.DistanceString(),
		TopSpeed:        s.TopSpeedString(),
		LastPosition:    [2]float64{s.LastPosition.X, s.LastPosition.Y},
		OverallAccuracy: s.OverallAccuracy,
		Ratings:         s.Ratings,
	})
}
