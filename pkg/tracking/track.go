package tracking

import (
	kalman_filter "github.com/LdDl/kalman-filter"
	"github.com/chenBenjamin97/footscout/pkg/analysis"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

//Kalman filter props shared by every track. Position is expected to drift
//frame to frame, size is not.
const (
	uCx       = 1.0
	uCy       = 1.0
	uW        = 0.0
	uH        = 0.0
	stdDevA   = 2.0
	stdDevMCx = 0.1
	stdDevMCy = 0.1
	stdDevMW  = 0.1
	stdDevMH  = 0.1
)

//track is a single identity carried across frames.
//State vector of the filter is [cx, cy, w, h, vx, vy, vw, vh].
type track struct {
	id           uuid.UUID
	box          analysis.Box //last matched detection
	predictedBox analysis.Box
	hits         int
	noMatchTimes int
	confirmed    bool
	matchedNow   bool
	filter       *kalman_filter.KalmanBBox
}

func newTrack(det analysis.Detection, dt float64, nInit int) *track {
	center := det.Box.Center()
	w, h := det.Box.Width(), det.Box.Height()
	kf := kalman_filter.NewKalmanBBox(
		dt, uCx, uCy, uW, uH,
		stdDevA, stdDevMCx, stdDevMCy, stdDevMW, stdDevMH,
		kalman_filter.WithStateBBox(center.X, center.Y, w, h),
	)

	return &track{
		id:           uuid.New(),
		box:          det.Box,
		predictedBox: det.Box,
		hits:         1,
		confirmed:    nInit <= 1,
		matchedNow:   true,
		filter:       kf,
	}
}

//predict executes Kalman filter prediction step
func (t *track) predict() {
	t.filter.Predict()
	cx, cy, w, h := t.filter.GetState()
	t.predictedBox = analysis.Box{X1: cx - w/2.0, Y1: cy - h/2.0, X2: cx + w/2.0, Y2: cy + h/2.0}
}

//update feeds the matched detection to the filter and counts the hit
func (t *track) update(det analysis.Detection, nInit int) error {
	center := det.Box.Center()
	if err := t.filter.Update(center.X, center.Y, det.Box.Width(), det.Box.Height()); err != nil {
		return errors.Wrap(err, "Can't update object tracker")
	}

	t.box = det.Box
	t.hits++
	t.noMatchTimes = 0
	t.matchedNow = true
	if t.hits >= nInit {
		t.confirmed = true
	}
	return nil
}

func (t *track) report() analysis.Track {
	return analysis.Track{ID: t.id.String(), Box: t.box, Confirmed: t.confirmed}
}
