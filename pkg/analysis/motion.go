package analysis

import "math"

//MaxSpeedKmh caps instantaneous player speed. Anything above is tracker jitter.
const MaxSpeedKmh = 40.0

//MotionAccumulator converts frame to frame displacement of the chosen player into distance and speed
type MotionAccumulator struct {
	pixelsPerMeter float64
	fps            float64

	last        Point
	hasLast     bool
	distanceM   float64
	topSpeedKmh float64
}

//NewMotionAccumulator creates an accumulator for given calibration and frame rate
func NewMotionAccumulator(pixelsPerMeter, fps float64) *MotionAccumulator {
	return &MotionAccumulator{pixelsPerMeter: pixelsPerMeter, fps: fps}
}

//Update records player's center for the current frame and returns the frame's speed in km/h.
//The first observation only sets the starting point.
func (m *MotionAccumulator) Update(center Point) float64 {
	if !m.hasLast {
		m.last = center
		m.hasLast = true
		return 0
	}

	pixels := center.DistanceTo(m.last)
	m.last = center
	if pixels == 0 {
		return 0
	}

	meters := pixels / m.pixelsPerMeter
	m.distanceM += meters

	speed := math.Min((meters/(1.0/m.fps))*3.6, MaxSpeedKmh)
	if speed > m.topSpeedKmh {
		m.topSpeedKmh = speed
	}

	return speed
}

//DistanceMeters returns cumulative distance
func (m *MotionAccumulator) DistanceMeters() float64 {
	return m.distanceM
}

//TopSpeedKmh returns the highest clamped speed seen so far
func (m *MotionAccumulator) TopSpeedKmh() float64 {
	return m.topSpeedKmh
}

//Last returns the last recorded center
func (m *MotionAccumulator) Last() (Point, bool) {
	return m.last, m.hasLast
}
