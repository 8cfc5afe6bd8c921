package analysis

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOpener struct {
	count   int
	opened  []*fakeSource
	failErr error
}

func (o *fakeOpener) open(path string) (FrameSource, error) {
	if o.failErr != nil {
		return nil, o.failErr
	}
	src := newFakeSource(o.count)
	o.opened = append(o.opened, src)
	return src, nil
}

func testService(opener *fakeOpener, det Detector) *Service {
	return &Service{
		Open:       opener.open,
		Pipeline:   testPipeline(det),
		Validation: testValidationOptions(),
	}
}

func TestServiceProcessEmptyPath(t *testing.T) {
	svc := testService(&fakeOpener{count: 10}, &scriptedDetector{})
	_, err := svc.Process("", RunParams{JerseyNumber: "7"})
	assert.ErrorIs(t, err, ErrInput)
}

func TestServiceProcessRejected(t *testing.T) {
	opener := &fakeOpener{count: 30}
	det := &scriptedDetector{byFrame: everyFrame(30, person(Point{X: 100, Y: 100}), ball(Point{X: 200, Y: 200}))}

	stats, err := testService(opener, det).Process("clip.mp4", RunParams{JerseyNumber: "7", MinConfidence: 0.2})
	assert.Nil(t, stats)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.False(t, verr.Result.Valid)
	assert.Equal(t, 0.4, verr.Result.Confidence)
	assert.Contains(t, err.Error(), "video rejected")

	require.Len(t, opener.opened, 1)
	assert.True(t, opener.opened[0].closed)
}

func TestServiceProcessOpenFailure(t *testing.T) {
	opener := &fakeOpener{failErr: errors.New("permission denied")}

	stats, err := testService(opener, &scriptedDetector{}).Process("clip.mp4", RunParams{})
	assert.Nil(t, stats)
	assert.ErrorIs(t, err, ErrInput)
	assert.Contains(t, err.Error(), "permission denied")

	var verr *ValidationError
	assert.False(t, errors.As(err, &verr))
}

func TestServiceValidateOpenFailure(t *testing.T) {
	opener := &fakeOpener{failErr: errors.New("permission denied")}

	res := testService(opener, &scriptedDetector{}).Validate("clip.mp4", 0.2)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Details.Error, "permission denied")
}

func TestServiceProcess(t *testing.T) {
	opener := &fakeOpener{count: 30}
	det := &scriptedDetector{byFrame: everyFrame(30,
		person(Point{X: 100, Y: 100}), person(Point{X: 300, Y: 100}), person(Point{X: 500, Y: 100}),
		ball(Point{X: 200, Y: 200}))}
	obs := &recordingObserver{}

	stats, err := testService(opener, det).Process("clip.mp4", RunParams{JerseyNumber: "11", MinConfidence: 0.2, Observer: obs})
	require.NoError(t, err)
	require.NotNil(t, stats)

	assert.Equal(t, "11", stats.JerseyNumber)
	assert.Equal(t, 100.0, stats.OverallAccuracy)
	assert.Len(t, obs.results, 30)

	//validation and the full pass share one source
	require.Len(t, opener.opened, 1)
	assert.True(t, opener.opened[0].closed)
}
