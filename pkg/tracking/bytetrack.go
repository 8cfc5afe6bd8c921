package tracking

import (
	"github.com/chenBenjamin97/footscout/pkg/analysis"
	"github.com/pkg/errors"
)

//Options are the tracker's tunables
type Options struct {
	//Maximum number of frames a confirmed track can be missing before it is removed
	MaxAge int
	//Hits needed before a track is reported as confirmed
	NInit int
	//Minimum IoU between predicted track box and detection to be considered the same object
	MinIoU float64
	//Detections at or above this confidence are matched first and may start new tracks
	HighThresh float64
	//Detections in [LowThresh, HighThresh) only extend existing tracks, anything below is ignored
	LowThresh float64
}

//DefaultOptions returns max age 30 frames and confirmation after 3 hits
func DefaultOptions() Options {
	return Options{
		MaxAge:     30,
		NInit:      3,
		MinIoU:     0.3,
		HighThresh: 0.5,
		LowThresh:  0.1,
	}
}

//ByteTracker is a two-stage IoU tracker in the manner of ByteTrack.
//Every track carries a Kalman filter predicting its box for the next frame,
//detections are assigned to tracks with the Hungarian algorithm.
//It implements analysis.Tracker and is not safe for concurrent use.
type ByteTracker struct {
	opts Options
	dt   float64
	//Live tracks in creation order, which is also the reporting order
	tracks []*track
}

//NewByteTracker creates a tracker, zero valued options fall back to defaults
func NewByteTracker(opts Options) *ByteTracker {
	def := DefaultOptions()
	if opts.MaxAge <= 0 {
		opts.MaxAge = def.MaxAge
	}
	if opts.NInit <= 0 {
		opts.NInit = def.NInit
	}
	if opts.MinIoU <= 0 {
		opts.MinIoU = def.MinIoU
	}
	if opts.HighThresh <= 0 {
		opts.HighThresh = def.HighThresh
	}
	if opts.LowThresh <= 0 {
		opts.LowThresh = def.LowThresh
	}
	if opts.LowThresh > opts.HighThresh {
		opts.LowThresh = opts.HighThresh
	}

	return &ByteTracker{opts: opts, dt: 1.0, tracks: make([]*track, 0)}
}

//Update matches detections of the current frame with existing tracks and returns
//the tracks matched in this frame. Each returned track carries its update's detection box.
func (bt *ByteTracker) Update(detections []analysis.Detection, frame analysis.Frame) ([]analysis.Track, error) {
	//Predict next positions for all existing tracks
	for _, trk := range bt.tracks {
		trk.predict()
		trk.matchedNow = false
	}

	highIndices := make([]int, 0, len(detections))
	lowIndices := make([]int, 0)
	for i, det := range detections {
		switch {
		case det.Confidence >= bt.opts.HighThresh:
			highIndices = append(highIndices, i)
		case det.Confidence >= bt.opts.LowThresh:
			lowIndices = append(lowIndices, i)
		}
	}

	matchedDetections := make(map[int]struct{})

	//1. First stage: every track against high confidence detections
	if err := bt.associate(bt.tracks, highIndices, detections, matchedDetections); err != nil {
		return nil, errors.Wrap(err, "stage 1")
	}

	//2. Second stage: remaining tracks against low confidence detections
	remaining := make([]*track, 0)
	for _, trk := range bt.tracks {
		if !trk.matchedNow {
			remaining = append(remaining, trk)
		}
	}
	if err := bt.associate(remaining, lowIndices, detections, matchedDetections); err != nil {
		return nil, errors.Wrap(err, "stage 2")
	}

	//3. Age unmatched tracks. Tentative tracks die on their first miss.
	alive := bt.tracks[:0]
	for _, trk := range bt.tracks {
		if !trk.matchedNow {
			trk.noMatchTimes++
			if !trk.confirmed || trk.noMatchTimes > bt.opts.MaxAge {
				continue
			}
		}
		alive = append(alive, trk)
	}
	bt.tracks = alive

	//4. Unmatched high confidence detections start new tracks
	for _, detIdx := range highIndices {
		if _, found := matchedDetections[detIdx]; !found {
			bt.tracks = append(bt.tracks, newTrack(detections[detIdx], bt.dt, bt.opts.NInit))
		}
	}

	reported := make([]analysis.Track, 0, len(bt.tracks))
	for _, trk := range bt.tracks {
		if trk.matchedNow {
			reported = append(reported, trk.report())
		}
	}
	return reported, nil
}

//associate matches given tracks with given detections, updating matched tracks in place
func (bt *ByteTracker) associate(tracks []*track, detectionIndices []int, detections []analysis.Detection, matchedDetections map[int]struct{}) error {
	if len(tracks) == 0 || len(detectionIndices) == 0 {
		return nil
	}

	matrix := iouMatrix(tracks, detectionIndices, detections)
	for _, match := range solveAssignment(matrix, len(tracks), len(detectionIndices), bt.opts.MinIoU) {
		trk := tracks[match[0]]
		detIdx := detectionIndices[match[1]]
		if err := trk.update(detections[detIdx], bt.opts.NInit); err != nil {
			return errors.Wrapf(err, "track %s", trk.id)
		}
		matchedDetections[detIdx] = struct{}{}
	}
	return nil
}

//Len returns the number of live tracks, reported or coasting
func (bt *ByteTracker) Len() int {
	return len(bt.tracks)
}
