package analysis

import "math"

//Point is a location in original-frame pixel coordinates
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

//DistanceTo returns the euclidean distance between two points
func (p Point) DistanceTo(other Point) float64 {
	return math.Hypot(p.X-other.X, p.Y-other.Y)
}

//Box is an axis aligned bounding box given by its top-left and bottom-right corners
type Box struct {
	X1 float64
	Y1 float64
	X2 float64
	Y2 float64
}

//Center returns box's center point
func (b Box) Center() Point {
	return Point{X: (b.X1 + b.X2) / 2.0, Y: (b.Y1 + b.Y2) / 2.0}
}

//Width returns box's width
func (b Box) Width() float64 {
	return b.X2 - b.X1
}

//Height returns box's height
func (b Box) Height() float64 {
	return b.Y2 - b.Y1
}

//Detection is a single detector output
type Detection struct {
	Box        Box
	Confidence float64
	Class      string
}

//Track is a detection the tracker carried across frames under a stable ID.
//Confirmed is set once the tracker's hit streak threshold is met.
type Track struct {
	ID        string
	Box       Box
	Confirmed bool
}

//Frame is a decoded video frame. Implementations own the pixel data,
//the core only needs its dimensions.
type Frame interface {
	Size() (width, height int)
}

//DetectOptions narrows a detector call
type DetectOptions struct {
	MinConfidence float64
	Classes       []string //empty means every class
	WorkingWidth  int      //frame is resized to this resolution before inference, 0 keeps original size
	WorkingHeight int
}

//Detector maps a frame to a set of detections. Boxes are always reported in original frame pixels.
type Detector interface {
	Detect(frame Frame, opts DetectOptions) ([]Detection, error)
}

//Tracker assigns stable identities to detections across frames. It is stateful,
//each stream (player, ball) gets its own instance.
type Tracker interface {
	Update(detections []Detection, frame Frame) ([]Track, error)
}

//FrameSource yields decoded frames in increasing order. Read returns false at end of stream.
type FrameSource interface {
	Read() (Frame, bool)
	Seek(index int) error
	FrameCount() int
	FPS() float64
	Size() (width, height int)
	Close() error
}

//OpenFunc opens a frame source for the video at given path
type OpenFunc func(path string) (FrameSource, error)
