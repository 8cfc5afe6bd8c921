package video

import (
	"fmt"

	"github.com/chenBenjamin97/footscout/pkg/analysis"
	"gocv.io/x/gocv"
)

//Capture reads frames from a video file. It implements analysis.FrameSource.
type Capture struct {
	cap        *gocv.VideoCapture
	mat        gocv.Mat
	frameCount int
	fps        float64
	width      int
	height     int
}

//Open opens the video at given path. Its signature matches analysis.OpenFunc.
func Open(path string) (analysis.FrameSource, error) {
	return OpenCapture(path)
}

//OpenCapture opens the video at given path and reads its properties
func OpenCapture(path string) (*Capture, error) {
	cap, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, fmt.Errorf("OpenCapture: Error opening '%s', got '%v'", path, err)
	}
	if !cap.IsOpened() {
		cap.Close()
		return nil, fmt.Errorf("OpenCapture: Could not open '%s'", path)
	}

	return &Capture{
		cap:        cap,
		mat:        gocv.NewMat(),
		frameCount: int(cap.Get(gocv.VideoCaptureFrameCount)),
		fps:        cap.Get(gocv.VideoCaptureFPS),
		width:      int(cap.Get(gocv.VideoCaptureFrameWidth)),
		height:     int(cap.Get(gocv.VideoCaptureFrameHeight)),
	}, nil
}

//Read decodes the next frame, false at end of stream or on a decode failure
func (c *Capture) Read() (analysis.Frame, bool) {
	if ok := c.cap.Read(&c.mat); !ok || c.mat.Empty() {
		return nil, false
	}
	return &Frame{Mat: &c.mat}, true
}

//Seek moves the read position to given 0-based frame index
func (c *Capture) Seek(index int) error {
	if index < 0 || (c.frameCount > 0 && index >= c.frameCount) {
		return fmt.Errorf("Seek: Frame %d out of range [0, %d)", index, c.frameCount)
	}
	c.cap.Set(gocv.VideoCapturePosFrames, float64(index))
	return nil
}

//FrameCount returns the container's reported frame count, may be 0 for streams
func (c *Capture) FrameCount() int { return c.frameCount }

//FPS returns the container's reported frame rate
func (c *Capture) FPS() float64 { return c.fps }

//Size returns frame width and height
func (c *Capture) Size() (int, int) { return c.width, c.height }

//Close releases the decoder and the frame buffer
func (c *Capture) Close() error {
	c.mat.Close()
	return c.cap.Close()
}
