package video

import "gocv.io/x/gocv"

//Frame is a decoded BGR frame. Frames read from a Capture share its buffer,
//their data is valid until the next Read.
type Frame struct {
	Mat *gocv.Mat
}

//Size returns frame's width and height in pixels
func (f *Frame) Size() (int, int) {
	if f == nil || f.Mat == nil {
		return 0, 0
	}
	return f.Mat.Cols(), f.Mat.Rows()
}
