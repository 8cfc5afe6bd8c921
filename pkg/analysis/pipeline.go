package analysis

import (
	"github.com/chenBenjamin97/footscout/pkg/utils"
	"github.com/google/uuid"
)

//DefaultFPS is assumed when the source does not report a frame rate
const DefaultFPS = 30.0

//PipelineConfig holds the detection settings of a full pass
type PipelineConfig struct {
	PlayerConfidence float64
	BallConfidence   float64
	PersonClass      string
	BallClass        string
	WorkingWidth     int
	WorkingHeight    int
}

//FrameResult is what the pipeline learned from a single frame
type FrameResult struct {
	Index      int
	Frame      Frame
	Player     *Track
	SpeedKmh   float64
	Ball       *Position
	Possession bool
	Events     []EventKind
	Stats      *PlayerStats //running record, nil until the player is first seen
}

//FrameObserver is notified after every processed frame
type FrameObserver interface {
	ObserveFrame(result FrameResult)
}

//Pipeline runs the full per-frame analysis over a frame source.
//Trackers are created per run so identity spaces never leak between runs.
type Pipeline struct {
	Detector         Detector
	NewPlayerTracker func() Tracker
	NewBallTracker   func() Tracker
	Config           PipelineConfig
}

//run is the mutable state of a single analysis run
type run struct {
	id             uuid.UUID
	pixelsPerMeter float64
	fps            float64
	frameHeight    int
	jersey         string

	playerTracker Tracker
	ballTracker   Tracker
	selector      TrackSelector
	motion        *MotionAccumulator
	trajectory    *Trajectory
	possession    *PossessionEstimator
	cooldowns     map[EventKind]*Cooldown

	stats            *PlayerStats
	framesWithPlayer int
	totalFrames      int
}

func (p *Pipeline) newRun(src FrameSource, jersey string) *run {
	width, height := src.Size()
	fps := src.FPS()
	if fps <= 0 {
		fps = DefaultFPS
	}
	ppm := PixelsPerMeter(width, height)

	return &run{
		id:             uuid.New(),
		pixelsPerMeter: ppm,
		fps:            fps,
		frameHeight:    height,
		jersey:         jersey,
		playerTracker:  p.NewPlayerTracker(),
		ballTracker:    p.NewBallTracker(),
		motion:         NewMotionAccumulator(ppm, fps),
		trajectory:     NewTrajectory(MaxTrajectoryLen),
		possession:     NewPossessionEstimator(ppm),
		cooldowns: map[EventKind]*Cooldown{
			EventPass:    NewCooldown(PassCooldownFrames),
			EventShot:    NewCooldown(ShotCooldownFrames),
			EventDribble: NewCooldown(DribbleCooldownFrames),
		},
	}
}

//Run consumes src until end of stream and returns the chosen player's finalized stats.
//A nil result with nil error means no player track was ever confirmed.
func (p *Pipeline) Run(src FrameSource, jersey string, observer FrameObserver) (*PlayerStats, error) {
	r := p.newRun(src, jersey)
	utils.Logf("Pipeline.Run: Starting run %s (%.2f px/m, %.2f fps)", r.id, r.pixelsPerMeter, r.fps)

	for {
		frame, ok := src.Read()
		if !ok {
			break
		}
		r.totalFrames++

		result := p.step(r, frame)
		if observer != nil {
			observer.ObserveFrame(result)
		}
	}

	if r.totalFrames == 0 {
		return nil, ErrInput
	}

	stats := Finalize(r.stats, r.framesWithPlayer, r.totalFrames)
	if stats == nil {
		utils.Logf("Pipeline.Run: Run %s finished, no player confirmed in %d frames", r.id, r.totalFrames)
	} else {
		utils.Logf("Pipeline.Run: Run %s finished, player seen in %d/%d frames, %d possession frames", r.id, r.framesWithPlayer, r.totalFrames, r.possession.Frames())
	}

	return stats, nil
}

//detectAndTrack runs one detector/tracker pass, a failing collaborator yields no tracks for this frame
func (p *Pipeline) detectAndTrack(tracker Tracker, frame Frame, opts DetectOptions) []Track {
	detections, err := p.Detector.Detect(frame, opts)
	if err != nil {
		utils.Logf("Pipeline: Error detecting %v, got '%v'. Skipping frame.", opts.Classes, err)
		detections = nil
	}

	tracks, err := tracker.Update(detections, frame)
	if err != nil {
		utils.Logf("Pipeline: Error tracking %v, got '%v'. Skipping frame.", opts.Classes, err)
		return nil
	}

	return tracks
}

func (p *Pipeline) step(r *run, frame Frame) FrameResult {
	frameIdx := r.totalFrames
	result := FrameResult{Index: frameIdx, Frame: frame}

	playerTracks := p.detectAndTrack(r.playerTracker, frame, DetectOptions{
		MinConfidence: p.Config.PlayerConfidence,
		Classes:       []string{p.Config.PersonClass},
		WorkingWidth:  p.Config.WorkingWidth,
		WorkingHeight: p.Config.WorkingHeight,
	})

	var playerCenter Point
	player, playerSeen := r.selector.Select(playerTracks)
	if playerSeen {
		r.framesWithPlayer++
		if r.stats == nil {
			r.stats = NewPlayerStats(r.jersey)
		}

		playerCenter = player.Box.Center()
		result.SpeedKmh = r.motion.Update(playerCenter)
		r.stats.DistanceMeters = r.motion.DistanceMeters()
		r.stats.TopSpeedKmh = r.motion.TopSpeedKmh()
		r.stats.LastPosition = playerCenter
		result.Player = &player
	}

	ballTracks := p.detectAndTrack(r.ballTracker, frame, DetectOptions{
		MinConfidence: p.Config.BallConfidence,
		Classes:       []string{p.Config.BallClass},
		WorkingWidth:  p.Config.WorkingWidth,
		WorkingHeight: p.Config.WorkingHeight,
	})

	ball, ballSeen := firstConfirmed(ballTracks)
	if ballSeen {
		center := ball.Box.Center()
		pos := Position{Frame: frameIdx, X: center.X, Y: center.Y}
		if err := r.trajectory.Append(pos); err != nil {
			utils.Logf("Pipeline: Error, got '%v'", err)
		} else {
			result.Ball = &pos
		}
	}

	if playerSeen {
		if ballSeen {
			result.Possession = r.possession.Update(playerCenter, ball.Box.Center())
		}
		result.Events = p.detectEvents(r, frameIdx, playerCenter)
		for _, kind := range result.Events {
			r.stats.Count(kind)
		}
	}

	result.Stats = r.stats
	return result
}

//detectEvents runs each detector whose cooldown allows it and returns the kinds that triggered
func (p *Pipeline) detectEvents(r *run, frameIdx int, player Point) []EventKind {
	var triggered []EventKind

	fire := func(kind EventKind, detect func() bool) {
		cd := r.cooldowns[kind]
		if !cd.Ready(frameIdx) {
			return
		}
		if detect() {
			cd.Trigger(frameIdx)
			triggered = append(triggered, kind)
		}
	}

	fire(EventPass, func() bool {
		return DetectPass(r.trajectory.Window(frameIdx, PassWindow), player, r.pixelsPerMeter, r.fps)
	})
	fire(EventShot, func() bool {
		return DetectShot(r.trajectory.Window(frameIdx, ShotWindow), r.pixelsPerMeter, r.fps, r.frameHeight)
	})
	fire(EventDribble, func() bool {
		return DetectDribble(r.trajectory.Window(frameIdx, DribbleWindow), player, r.pixelsPerMeter)
	})

	return triggered
}

//firstConfirmed returns the first confirmed track, the ball stream keeps at most one per frame
func firstConfirmed(tracks []Track) (Track, bool) {
	for _, t := range tracks {
		if t.Confirmed {
			return t, true
		}
	}
	return Track{}, false
}
