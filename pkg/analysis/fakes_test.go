package analysis

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/chenBenjamin97/footscout/pkg/utils"
)

func TestMain(m *testing.M) {
	utils.SetLogger(nil)
	os.Exit(m.Run())
}

type fakeFrame struct {
	index         int
	width, height int
}

func (f fakeFrame) Size() (int, int) { return f.width, f.height }

//fakeSource yields count frames. Frames listed in broken fail to decode.
type fakeSource struct {
	count         int
	fps           float64
	width, height int
	broken        map[int]bool
	pos           int
	closed        bool
}

func newFakeSource(count int) *fakeSource {
	return &fakeSource{count: count, fps: 30, width: 1050, height: 680}
}

func (s *fakeSource) Read() (Frame, bool) {
	if s.pos >= s.count {
		return nil, false
	}
	idx := s.pos
	s.pos++
	if s.broken[idx] {
		return nil, false
	}
	return fakeFrame{index: idx, width: s.width, height: s.height}, true
}

func (s *fakeSource) Seek(index int) error {
	if index < 0 || index >= s.count {
		return fmt.Errorf("seek %d out of range", index)
	}
	s.pos = index
	return nil
}

func (s *fakeSource) FrameCount() int { return s.count }
func (s *fakeSource) FPS() float64 { return s.fps }
func (s *fakeSource) Size() (int, int) { return s.width, s.height }
func (s *fakeSource) Close() error { s.closed = true; return nil }

//scriptedDetector returns detections per frame index, filtered by requested classes
type scriptedDetector struct {
	byFrame map[int][]Detection
	failOn  map[int]bool
	calls   int
}

func (d *scriptedDetector) Detect(frame Frame, opts DetectOptions) ([]Detection, error) {
	d.calls++
	idx := frame.(fakeFrame).index
	if d.failOn[idx] {
		return nil, errors.New("inference failed")
	}

	res := make([]Detection, 0)
	for _, det := range d.byFrame[idx] {
		if len(opts.Classes) > 0 && !utils.InSlice(det.Class, opts.Classes) {
			continue
		}
		if det.Confidence < opts.MinConfidence {
			continue
		}
		res = append(res, det)
	}
	return res, nil
}

//echoTracker confirms every detection immediately. Track IDs come from the detection's
//position in the frame's list, so scripts control identities by ordering.
type echoTracker struct {
	prefix string
}

func (t *echoTracker) Update(detections []Detection, frame Frame) ([]Track, error) {
	tracks := make([]Track, 0, len(detections))
	for i, d := range detections {
		tracks = append(tracks, Track{ID: fmt.Sprintf("%s-%d", t.prefix, i), Box: d.Box, Confirmed: true})
	}
	return tracks, nil
}

func boxAt(p Point, size float64) Box {
	return Box{X1: p.X - size/2, Y1: p.Y - size/2, X2: p.X + size/2, Y2: p.Y + size/2}
}

func person(p Point) Detection {
	return Detection{Box: boxAt(p, 40), Confidence: 0.9, Class: "person"}
}

func ball(p Point) Detection {
	return Detection{Box: boxAt(p, 6), Confidence: 0.5, Class: "sports ball"}
}

func testPipeline(det Detector) *Pipeline {
	return &Pipeline{
		Detector:         det,
		NewPlayerTracker: func() Tracker { return &echoTracker{prefix: "player"} },
		NewBallTracker:   func() Tracker { return &echoTracker{prefix: "ball"} },
		Config: PipelineConfig{
			PlayerConfidence: 0.3,
			BallConfidence:   0.1,
			PersonClass:      "person",
			BallClass:        "sports ball",
		},
	}
}
