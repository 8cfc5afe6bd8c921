package video

import (
	"errors"
	"fmt"
	"image"
	"math"
	"sync"

	"github.com/chenBenjamin97/footscout/pkg/analysis"
	"github.com/chenBenjamin97/footscout/pkg/utils"
	"gocv.io/x/gocv"
)

//DefaultInputSize is the square input resolution of exported YOLOv8 models
const DefaultInputSize = 640

//DefaultNMSThreshold is the IoU above which two same-class boxes are merged
const DefaultNMSThreshold = 0.45

//yoloBoxAttrs is the number of leading box attributes (cx, cy, w, h) in every output column
const yoloBoxAttrs = 4

//YOLODetector runs a YOLOv8 ONNX model through OpenCV's dnn module. It implements analysis.Detector.
//A dnn.Net is not safe for concurrent use, calls are serialized.
type YOLODetector struct {
	mu           sync.Mutex
	net          gocv.Net
	inputSize    int
	nmsThreshold float64
}

//NewYOLODetector loads the model at given path
func NewYOLODetector(modelPath string, inputSize int, nmsThreshold float64) (*YOLODetector, error) {
	net := gocv.ReadNet(modelPath, "")
	if net.Empty() {
		return nil, fmt.Errorf("NewYOLODetector: Could not load model '%s'", modelPath)
	}
	net.SetPreferableBackend(gocv.NetBackendDefault)
	net.SetPreferableTarget(gocv.NetTargetCPU)

	if inputSize <= 0 {
		inputSize = DefaultInputSize
	}
	if nmsThreshold <= 0 {
		nmsThreshold = DefaultNMSThreshold
	}

	return &YOLODetector{net: net, inputSize: inputSize, nmsThreshold: nmsThreshold}, nil
}

//Detect runs inference on given frame. The frame is first resized to the working resolution,
//boxes are scaled back to original frame pixels.
func (d *YOLODetector) Detect(frame analysis.Frame, opts analysis.DetectOptions) ([]analysis.Detection, error) {
	f, ok := frame.(*Frame)
	if !ok || f.Mat == nil || f.Mat.Empty() {
		return nil, errors.New("Detect: Empty or foreign frame")
	}
	origWidth, origHeight := f.Size()

	src := *f.Mat
	if opts.WorkingWidth > 0 && opts.WorkingHeight > 0 && (opts.WorkingWidth != origWidth || opts.WorkingHeight != origHeight) {
		resized := gocv.NewMat()
		defer resized.Close()
		gocv.Resize(*f.Mat, &resized, image.Pt(opts.WorkingWidth, opts.WorkingHeight), 0, 0, gocv.InterpolationLinear)
		src = resized
	}

	blob := gocv.BlobFromImage(src, 1.0/255.0, image.Pt(d.inputSize, d.inputSize), gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	d.mu.Lock()
	d.net.SetInput(blob, "")
	prob := d.net.Forward("")
	d.mu.Unlock()
	defer prob.Close()

	//model space maps linearly onto the working frame, which maps linearly onto the original
	scaleX := float64(origWidth) / float64(d.inputSize)
	scaleY := float64(origHeight) / float64(d.inputSize)

	detections, err := d.parseOutput(prob, scaleX, scaleY, origWidth, origHeight, opts)
	if err != nil {
		return nil, err
	}

	return nonMaxSuppression(detections, d.nmsThreshold), nil
}

//parseOutput reads a [1, 4+classes, anchors] output tensor
func (d *YOLODetector) parseOutput(prob gocv.Mat, scaleX, scaleY float64, width, height int, opts analysis.DetectOptions) ([]analysis.Detection, error) {
	sizes := prob.Size()
	if len(sizes) != 3 || sizes[1] <= yoloBoxAttrs {
		return nil, fmt.Errorf("parseOutput: Unexpected output shape %v", sizes)
	}
	attrs, anchors := sizes[1], sizes[2]

	reshaped := prob.Reshape(1, attrs)
	defer reshaped.Close()
	rows := gocv.NewMat()
	defer rows.Close()
	gocv.Transpose(reshaped, &rows) //anchors x attrs

	detections := make([]analysis.Detection, 0)
	for i := 0; i < anchors; i++ {
		row := rows.RowRange(i, i+1)
		scores := row.ColRange(yoloBoxAttrs, attrs)
		_, maxVal, _, maxLoc := gocv.MinMaxLoc(scores)
		scores.Close()
		row.Close()

		confidence := float64(maxVal)
		if confidence < opts.MinConfidence {
			continue
		}
		class := ClassName(maxLoc.X)
		if class == "" {
			continue
		}
		if len(opts.Classes) > 0 && !utils.InSlice(class, opts.Classes) {
			continue
		}

		cx := float64(rows.GetFloatAt(i, 0)) * scaleX
		cy := float64(rows.GetFloatAt(i, 1)) * scaleY
		w := float64(rows.GetFloatAt(i, 2)) * scaleX
		h := float64(rows.GetFloatAt(i, 3)) * scaleY

		detections = append(detections, analysis.Detection{
			Box:        clampBox(analysis.Box{X1: cx - w/2, Y1: cy - h/2, X2: cx + w/2, Y2: cy + h/2}, width, height),
			Confidence: confidence,
			Class:      class,
		})
	}

	return detections, nil
}

//clampBox keeps given box inside the frame
func clampBox(b analysis.Box, width, height int) analysis.Box {
	w, h := float64(width), float64(height)
	return analysis.Box{
		X1: math.Max(0, math.Min(b.X1, w)),
		Y1: math.Max(0, math.Min(b.Y1, h)),
		X2: math.Max(0, math.Min(b.X2, w)),
		Y2: math.Max(0, math.Min(b.Y2, h)),
	}
}

//Close releases the network
func (d *YOLODetector) Close() error {
	return d.net.Close()
}
