package analysis

//PossessionRadiusMeters is how close the ball must be to the player's center to count as possession
const PossessionRadiusMeters = 2.0

//PossessionEstimator counts frames where the ball is close to the chosen player.
//The counter is not part of the result record.
type PossessionEstimator struct {
	radiusPixels float64
	frames       int
}

//NewPossessionEstimator creates an estimator for given calibration
func NewPossessionEstimator(pixelsPerMeter float64) *PossessionEstimator {
	return &PossessionEstimator{radiusPixels: PossessionRadiusMeters * pixelsPerMeter}
}

//Update returns true if the ball is within possession radius of the player, counting the frame if so
func (p *PossessionEstimator) Update(player, ball Point) bool {
	if player.DistanceTo(ball) < p.radiusPixels {
		p.frames++
		return true
	}
	return false
}

//Frames returns the number of possession frames so far
func (p *PossessionEstimator) Frames() int {
	return p.frames
}
