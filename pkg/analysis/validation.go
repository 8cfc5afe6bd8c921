package analysis

import "github.com/chenBenjamin97/footscout/pkg/utils"

//Validation defaults
const (
	DefaultMinValidationConfidence = 0.2
	ValidationSamples              = 5
	MinPlayersPerFrame             = 3
	MinBallsPerFrame               = 1
	playerFrameWeight              = 0.6
	ballFrameWeight                = 0.4
)

//ValidationOptions configures the pre-flight check
type ValidationOptions struct {
	MinConfidence    float64
	DetectConfidence float64 //confidence floor passed to the detector
	PersonClass      string
	BallClass        string
	WorkingWidth     int
	WorkingHeight    int
}

//ValidationDetails explains how a ValidationResult was reached
type ValidationDetails struct {
	FramesSampled  int     `json:"frames_sampled"`
	FramesAnalyzed int     `json:"frames_analyzed"`
	PlayerFrames   int     `json:"player_frames"`
	BallFrames     int     `json:"ball_frames"`
	PlayerRatio    float64 `json:"player_ratio"`
	BallRatio      float64 `json:"ball_ratio"`
	Error          string  `json:"error,omitempty"`
}

//ValidationResult is the verdict of the pre-flight check
type ValidationResult struct {
	Valid      bool              `json:"is_valid"`
	Confidence float64           `json:"confidence"`
	Details    ValidationDetails `json:"details"`
}

func failedValidation(reason string) ValidationResult {
	return ValidationResult{Details: ValidationDetails{Error: reason}}
}

//sampleIndices returns n frame indices evenly spread over [0, frameCount-1], first and last included.
//Short clips yield fewer, distinct, indices.
func sampleIndices(frameCount, n int) []int {
	if frameCount <= 0 || n <= 0 {
		return nil
	}
	if n == 1 || frameCount == 1 {
		return []int{0}
	}

	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		idx := i * (frameCount - 1) / (n - 1)
		if len(indices) > 0 && indices[len(indices)-1] == idx {
			continue
		}
		indices = append(indices, idx)
	}

	return indices
}

//Validate samples a handful of frames from src and decides whether they look like a football clip.
//Ball presence is weighted but never required.
func Validate(src FrameSource, detector Detector, opts ValidationOptions) ValidationResult {
	frameCount := src.FrameCount()
	if frameCount <= 0 {
		return failedValidation("video has no frames")
	}

	detectOpts := DetectOptions{
		MinConfidence: opts.DetectConfidence,
		Classes:       []string{opts.PersonClass, opts.BallClass},
		WorkingWidth:  opts.WorkingWidth,
		WorkingHeight: opts.WorkingHeight,
	}

	details := ValidationDetails{}
	for _, idx := range sampleIndices(frameCount, ValidationSamples) {
		details.FramesSampled++

		if err := src.Seek(idx); err != nil {
			utils.Logf("Validate: Could not seek to frame %d, got '%v'", idx, err)
			continue
		}
		frame, ok := src.Read()
		if !ok {
			continue
		}
		details.FramesAnalyzed++

		detections, err := detector.Detect(frame, detectOpts)
		if err != nil {
			utils.Logf("Validate: Error detecting on frame %d, got '%v'", idx, err)
			continue
		}

		persons, balls := 0, 0
		for _, d := range detections {
			switch d.Class {
			case opts.PersonClass:
				persons++
			case opts.BallClass:
				balls++
			}
		}
		if persons >= MinPlayersPerFrame {
			details.PlayerFrames++
		}
		if balls >= MinBallsPerFrame {
			details.BallFrames++
		}
	}

	if details.FramesAnalyzed == 0 {
		details.Error = "no frames analyzed"
		return ValidationResult{Details: details}
	}

	details.PlayerRatio = round2(float64(details.PlayerFrames) / float64(details.FramesAnalyzed))
	details.BallRatio = round2(float64(details.BallFrames) / float64(details.FramesAnalyzed))

	//the verdict is taken on the reported, rounded, value
	confidence := round2(playerFrameWeight*float64(details.PlayerFrames)/float64(details.FramesAnalyzed) +
		ballFrameWeight*float64(details.BallFrames)/float64(details.FramesAnalyzed))

	return ValidationResult{
		Valid:      confidence >= opts.MinConfidence && details.PlayerFrames > 0,
		Confidence: confidence,
		Details:    details,
	}
}

//ValidateFile opens the video at path and validates it. The source is always closed.
func ValidateFile(path string, open OpenFunc, detector Detector, opts ValidationOptions) ValidationResult {
	src, err := open(path)
	if err != nil {
		return failedValidation("could not open video: " + err.Error())
	}
	defer src.Close()

	return Validate(src, detector, opts)
}
