package analysis

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

//EventKind identifies a detected ball event
type EventKind string

const (
	EventPass    EventKind = "pass"
	EventShot    EventKind = "shot"
	EventDribble EventKind = "dribble"
)

//Trailing windows (frames) and minimum number of trajectory points per detector
const (
	PassWindow       = 5
	PassMinPoints    = 3
	ShotWindow       = 5
	ShotMinPoints    = 3
	DribbleWindow    = 10
	DribbleMinPoints = 5
)

//Pass thresholds
const (
	PassMinSeparationPixels = 20.0 //growth of ball-to-player distance across the window
	PassMinSpeed            = 5.0  //m/s
	PassMaxSpeed            = 15.0 //m/s
)

//Shot thresholds
const (
	ShotMinPeakSpeed = 15.0 //m/s
	ShotMinAvgSpeed  = 12.0 //m/s
	ShotBandRatio    = 0.2  //top and bottom share of the frame height counted as goal zones
)

//Dribble thresholds
const (
	DribbleRadiusMeters = 2.0
	DribbleMinRatio     = 0.7
)

//Minimum gap in frames between two triggers of the same kind.
//Frame counts, not scaled by fps.
const (
	PassCooldownFrames    = 30
	ShotCooldownFrames    = 60
	DribbleCooldownFrames = 45
)

//windowSpeeds returns ball speed in m/s between every two consecutive points
func windowSpeeds(window []Position, pixelsPerMeter, fps float64) []float64 {
	if len(window) < 2 {
		return nil
	}

	speeds := make([]float64, 0, len(window)-1)
	for i := 1; i < len(window); i++ {
		frames := window[i].Frame - window[i-1].Frame
		if frames <= 0 {
			continue
		}
		pixels := window[i].Point().DistanceTo(window[i-1].Point())
		pixelsPerSecond := pixels / (float64(frames) / fps)
		speeds = append(speeds, pixelsPerSecond/pixelsPerMeter)
	}

	return speeds
}

//DetectPass reports a pass when the ball moves away from the player at a passing speed
func DetectPass(window []Position, player Point, pixelsPerMeter, fps float64) bool {
	if len(window) < PassMinPoints {
		return false
	}

	startDist := window[0].Point().DistanceTo(player)
	endDist := window[len(window)-1].Point().DistanceTo(player)
	if (endDist-startDist)/pixelsPerMeter <= PassMinSeparationPixels/pixelsPerMeter {
		return false
	}

	speeds := windowSpeeds(window, pixelsPerMeter, fps)
	if len(speeds) == 0 {
		return false
	}

	avg := stat.Mean(speeds, nil)
	return avg >= PassMinSpeed && avg <= PassMaxSpeed
}

//DetectShot reports a shot when a fast ball travels into the top or bottom band of the frame
func DetectShot(window []Position, pixelsPerMeter, fps float64, frameHeight int) bool {
	if len(window) < ShotMinPoints {
		return false
	}

	speeds := windowSpeeds(window, pixelsPerMeter, fps)
	if len(speeds) == 0 {
		return false
	}

	if floats.Max(speeds) <= ShotMinPeakSpeed || stat.Mean(speeds, nil) <= ShotMinAvgSpeed {
		return false
	}

	height := float64(frameHeight)
	topBand := ShotBandRatio * height
	bottomBand := (1 - ShotBandRatio) * height
	first, last := window[0].Y, window[len(window)-1].Y

	intoTop := first >= topBand && last < topBand && last < first
	intoBottom := first <= bottomBand && last > bottomBand && last > first

	return intoTop || intoBottom
}

//DetectDribble reports a dribble when most of the window stays close to the player
func DetectDribble(window []Position, player Point, pixelsPerMeter float64) bool {
	if len(window) < DribbleMinPoints {
		return false
	}

	radius := DribbleRadiusMeters * pixelsPerMeter
	near := 0
	for _, pos := range window {
		if pos.Point().DistanceTo(player) < radius {
			near++
		}
	}

	return float64(near)/float64(len(window)) >= DribbleMinRatio
}

//Cooldown suppresses repeated triggers of one event kind within Gap frames
type Cooldown struct {
	Gap       int
	lastFrame int
	fired     bool
}

//NewCooldown creates a cooldown that has never fired
func NewCooldown(gap int) *Cooldown {
	return &Cooldown{Gap: gap}
}

//Ready reports whether a trigger at given frame is allowed
func (c *Cooldown) Ready(frame int) bool {
	return !c.fired || frame-c.lastFrame >= c.Gap
}

//Trigger records a trigger at given frame
func (c *Cooldown) Trigger(frame int) {
	c.lastFrame = frame
	c.fired = true
}

//LastFrame returns the frame of the last trigger, false if never fired
func (c *Cooldown) LastFrame() (int, bool) {
	return c.lastFrame, c.fired
}
