package analysis

import "math"

//FieldLengthMeters and FieldWidthMeters are the assumed real world pitch dimensions
const (
	FieldLengthMeters = 105.0
	FieldWidthMeters  = 68.0
)

//PixelsPerMeter returns the scale factor used to convert pixel measurements to meters.
//The whole pitch is assumed to fit the frame, so the tighter axis wins.
func PixelsPerMeter(frameWidth, frameHeight int) float64 {
	if frameWidth <= 0 || frameHeight <= 0 {
		return 1.0
	}

	return math.Min(float64(frameWidth)/FieldLengthMeters, float64(frameHeight)/FieldWidthMeters)
}
