package main

import (
	"fmt"

	"github.com/chenBenjamin97/footscout/pkg/analysis"
	"github.com/chenBenjamin97/footscout/pkg/config"
	"github.com/chenBenjamin97/footscout/pkg/tracking"
	"github.com/chenBenjamin97/footscout/pkg/utils"
	"github.com/chenBenjamin97/footscout/pkg/video"
)

//trackerOptions returns the player and ball tracker settings
func trackerOptions(c *config.Config) (tracking.Options, tracking.Options) {
	player := tracking.Options{
		MaxAge:     c.Tracker.MaxAge,
		NInit:      c.Tracker.NInit,
		MinIoU:     c.Tracker.MinIoU,
		HighThresh: c.Tracker.HighThreshold,
		LowThresh:  c.Tracker.LowThreshold,
	}
	ball := player
	ball.HighThresh = c.Tracker.BallHighThreshold
	ball.LowThresh = c.Tracker.BallLowThreshold
	return player, ball
}

//newService wires the YOLO detector, the trackers and the gocv capture into an analysis service.
//The returned closer releases the model.
func newService(c *config.Config) (*analysis.Service, func(), error) {
	detector, err := video.NewYOLODetector(c.Model.Path, c.Model.InputSize, c.Detection.NMSThreshold)
	if err != nil {
		return nil, nil, fmt.Errorf("newService: %w", err)
	}
	utils.Logf("newService: Loaded model '%s'", c.Model.Path)

	playerOpts, ballOpts := trackerOptions(c)
	pipeline := &analysis.Pipeline{
		Detector:         detector,
		NewPlayerTracker: func() analysis.Tracker { return tracking.NewByteTracker(playerOpts) },
		NewBallTracker:   func() analysis.Tracker { return tracking.NewByteTracker(ballOpts) },
		Config: analysis.PipelineConfig{
			PlayerConfidence: c.Detection.PlayerConfidence,
			BallConfidence:   c.Detection.BallConfidence,
			PersonClass:      c.Detection.PersonClass,
			BallClass:        c.Detection.BallClass,
			WorkingWidth:     c.Detection.WorkingWidth,
			WorkingHeight:    c.Detection.WorkingHeight,
		},
	}

	svc := &analysis.Service{
		Open:     video.Open,
		Pipeline: pipeline,
		Validation: analysis.ValidationOptions{
			MinConfidence:    c.Validation.MinConfidence,
			DetectConfidence: c.Detection.PlayerConfidence,
			PersonClass:      c.Detection.PersonClass,
			BallClass:        c.Detection.BallClass,
			WorkingWidth:     c.Detection.WorkingWidth,
			WorkingHeight:    c.Detection.WorkingHeight,
		},
	}

	return svc, func() { detector.Close() }, nil
}
