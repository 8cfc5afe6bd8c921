package analysis

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testValidationOptions() ValidationOptions {
	return ValidationOptions{
		MinConfidence:    DefaultMinValidationConfidence,
		DetectConfidence: 0.3,
		PersonClass:      "person",
		BallClass:        "sports ball",
	}
}

//everyFrame scripts the same detections for frames [0, count)
func everyFrame(count int, dets ...Detection) map[int][]Detection {
	res := make(map[int][]Detection, count)
	for i := 0; i < count; i++ {
		res[i] = dets
	}
	return res
}

func TestSampleIndices(t *testing.T) {
	assert.Equal(t, []int{0, 24, 49, 74, 99}, sampleIndices(100, 5))
	assert.Equal(t, []int{0, 1, 2}, sampleIndices(3, 5))
	assert.Equal(t, []int{0}, sampleIndices(1, 5))
	assert.Nil(t, sampleIndices(0, 5))
}

func TestValidateTwoPlayersAndBallRejected(t *testing.T) {
	det := &scriptedDetector{byFrame: everyFrame(50,
		person(Point{X: 100, Y: 100}), person(Point{X: 300, Y: 100}), ball(Point{X: 200, Y: 200}))}

	res := Validate(newFakeSource(50), det, testValidationOptions())
	assert.False(t, res.Valid)
	assert.Equal(t, 0.4, res.Confidence)
	assert.Equal(t, 0, res.Details.PlayerFrames)
	assert.Equal(t, 5, res.Details.BallFrames)
	assert.Equal(t, 5, res.Details.FramesAnalyzed)
}

func TestValidateFootballClip(t *testing.T) {
	det := &scriptedDetector{byFrame: everyFrame(50,
		person(Point{X: 100, Y: 100}), person(Point{X: 300, Y: 100}), person(Point{X: 500, Y: 100}),
		ball(Point{X: 200, Y: 200}))}

	res := Validate(newFakeSource(50), det, testValidationOptions())
	assert.True(t, res.Valid)
	assert.Equal(t, 1.0, res.Confidence)
	assert.Equal(t, 1.0, res.Details.PlayerRatio)
	assert.Equal(t, 1.0, res.Details.BallRatio)
	assert.Empty(t, res.Details.Error)
}

func TestValidateBallOptional(t *testing.T) {
	det := &scriptedDetector{byFrame: everyFrame(50,
		person(Point{X: 100, Y: 100}), person(Point{X: 300, Y: 100}), person(Point{X: 500, Y: 100}))}

	res := Validate(newFakeSource(50), det, testValidationOptions())
	assert.True(t, res.Valid)
	assert.Equal(t, 0.6, res.Confidence)
}

func TestValidateBelowThreshold(t *testing.T) {
	det := &scriptedDetector{byFrame: map[int][]Detection{
		0: {person(Point{X: 100, Y: 100}), person(Point{X: 300, Y: 100}), person(Point{X: 500, Y: 100})},
	}}

	res := Validate(newFakeSource(50), det, testValidationOptions())
	assert.False(t, res.Valid)
	assert.Equal(t, 0.12, res.Confidence)
	assert.Equal(t, 1, res.Details.PlayerFrames)
}

func TestValidateAllFramesBroken(t *testing.T) {
	src := newFakeSource(50)
	src.broken = map[int]bool{}
	for i := 0; i < 50; i++ {
		src.broken[i] = true
	}

	res := Validate(src, &scriptedDetector{}, testValidationOptions())
	assert.False(t, res.Valid)
	assert.Equal(t, 0.0, res.Confidence)
	assert.Equal(t, "no frames analyzed", res.Details.Error)
	assert.Equal(t, 5, res.Details.FramesSampled)
	assert.Equal(t, 0, res.Details.FramesAnalyzed)
}

func TestValidateDetectorFailure(t *testing.T) {
	det := &scriptedDetector{
		byFrame: everyFrame(50, person(Point{X: 100, Y: 100}), person(Point{X: 300, Y: 100}), person(Point{X: 500, Y: 100})),
		failOn:  map[int]bool{0: true},
	}

	res := Validate(newFakeSource(50), det, testValidationOptions())
	assert.True(t, res.Valid)
	assert.Equal(t, 5, res.Details.FramesAnalyzed)
	assert.Equal(t, 4, res.Details.PlayerFrames)
	assert.Equal(t, 0.48, res.Confidence)
}

func TestValidateEmptyVideo(t *testing.T) {
	res := Validate(newFakeSource(0), &scriptedDetector{}, testValidationOptions())
	assert.False(t, res.Valid)
	assert.Equal(t, "video has no frames", res.Details.Error)
}

func TestValidateFile(t *testing.T) {
	src := newFakeSource(10)
	open := func(path string) (FrameSource, error) { return src, nil }

	res := ValidateFile("clip.mp4", open, &scriptedDetector{}, testValidationOptions())
	assert.False(t, res.Valid)
	assert.True(t, src.closed)

	failing := func(path string) (FrameSource, error) { return nil, errors.New("no such file") }
	res = ValidateFile("missing.mp4", failing, &scriptedDetector{}, testValidationOptions())
	require.False(t, res.Valid)
	assert.Equal(t, "could not open video: no such file", res.Details.Error)
}

func TestValidateVerdictMatchesReportedConfidence(t *testing.T) {
	//every player/ball frame mix over 5 sampled frames, with the threshold set to the reported confidence
	for players := 0; players <= ValidationSamples; players++ {
		for balls := 0; balls <= ValidationSamples; balls++ {
			byFrame := make(map[int][]Detection, ValidationSamples)
			for i := 0; i < ValidationSamples; i++ {
				var dets []Detection
				if i < players {
					dets = append(dets, person(Point{X: 100, Y: 100}), person(Point{X: 300, Y: 100}), person(Point{X: 500, Y: 100}))
				}
				if i < balls {
					dets = append(dets, ball(Point{X: 200, Y: 200}))
				}
				byFrame[i] = dets
			}

			opts := testValidationOptions()
			opts.MinConfidence = 0
			reported := Validate(newFakeSource(ValidationSamples), &scriptedDetector{byFrame: byFrame}, opts).Confidence

			opts.MinConfidence = reported
			res := Validate(newFakeSource(ValidationSamples), &scriptedDetector{byFrame: byFrame}, opts)
			assert.Equal(t, reported, res.Confidence, "players=%d balls=%d", players, balls)
			assert.Equal(t, players > 0, res.Valid, "players=%d balls=%d", players, balls)
		}
	}
}
