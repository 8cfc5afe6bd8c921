package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

//straightPath builds consecutive-frame positions starting at start, moving by step pixels per frame
func straightPath(startFrame int, start Point, steps []Point) []Position {
	res := []Position{{Frame: startFrame, X: start.X, Y: start.Y}}
	cur := start
	for i, s := range steps {
		cur = Point{X: cur.X + s.X, Y: cur.Y + s.Y}
		res = append(res, Position{Frame: startFrame + i + 1, X: cur.X, Y: cur.Y})
	}
	return res
}

func TestDetectPass(t *testing.T) {
	const ppm, fps = 10.0, 10.0
	player := Point{X: 0, Y: 0}
	//8 m/s at 10 px/m and 10 fps is 8 px per frame
	away := []Point{{X: 8}, {X: 8}, {X: 8}, {X: 8}}

	tests := []struct {
		name   string
		window []Position
		want   bool
	}{
		{"moving away at 8 m/s", straightPath(1, Point{X: 50}, away), true},
		{"moving toward player", straightPath(1, Point{X: 100}, []Point{{X: -8}, {X: -8}, {X: -8}, {X: -8}}), false},
		{"too fast", straightPath(1, Point{X: 50}, []Point{{X: 20}, {X: 20}, {X: 20}, {X: 20}}), false},
		{"too slow to separate", straightPath(1, Point{X: 50}, []Point{{X: 4}, {X: 4}, {X: 4}, {X: 4}}), false},
		{"not enough points", straightPath(1, Point{X: 50}, []Point{{X: 30}}), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DetectPass(tc.window, player, ppm, fps))
		})
	}
}

func TestDetectPassUsesFrameGaps(t *testing.T) {
	//same pixels as the 8 m/s case, but spread over twice the frames: 4 m/s
	window := []Position{
		{Frame: 1, X: 50}, {Frame: 3, X: 58}, {Frame: 5, X: 66}, {Frame: 7, X: 74}, {Frame: 9, X: 82},
	}
	assert.False(t, DetectPass(window, Point{}, 10, 10))
}

func TestDetectShot(t *testing.T) {
	//10 px/m at 2 fps: one m/s is 5 px per frame
	const ppm, fps, height = 10.0, 2.0, 1000
	up := []Point{{Y: -100}, {Y: -60}, {Y: -60}, {Y: -60}} //20, 12, 12, 12 m/s
	down := []Point{{Y: 100}, {Y: 60}, {Y: 60}, {Y: 60}}

	tests := []struct {
		name   string
		window []Position
		want   bool
	}{
		{"fast into top band", straightPath(1, Point{X: 500, Y: 350}, up), true},
		{"fast into bottom band", straightPath(1, Point{X: 500, Y: 650}, down), true},
		{"fast but stays mid field", straightPath(1, Point{X: 500, Y: 350}, down), false},
		{"already inside band", straightPath(1, Point{X: 500, Y: 150}, []Point{{Y: -50}, {Y: -30}, {Y: -30}, {Y: -30}}), false},
		{"average too low", straightPath(1, Point{X: 500, Y: 350}, []Point{{Y: -80}, {Y: -50}, {Y: -50}, {Y: -50}}), false},
		{"peak too low", straightPath(1, Point{X: 500, Y: 350}, []Point{{Y: -70}, {Y: -70}, {Y: -70}, {Y: -70}}), false},
		{"not enough points", straightPath(1, Point{X: 500, Y: 350}, []Point{{Y: -200}}), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DetectShot(tc.window, ppm, fps, height))
		})
	}
}

func TestDetectDribble(t *testing.T) {
	const ppm = 10.0 //2 m radius = 20 px
	player := Point{X: 500, Y: 500}

	window := func(far int) []Position {
		res := make([]Position, 0, 10)
		for i := 0; i < 10; i++ {
			pos := Position{Frame: i + 1, X: player.X + 6, Y: player.Y - 8} //10 px = 1 m
			if i < far {
				pos.X = player.X + 50 //5 m
				pos.Y = player.Y
			}
			res = append(res, pos)
		}
		return res
	}

	assert.True(t, DetectDribble(window(0), player, ppm))
	assert.True(t, DetectDribble(window(3), player, ppm))
	assert.False(t, DetectDribble(window(4), player, ppm))
	assert.False(t, DetectDribble(window(0)[:4], player, ppm))
}

func TestCooldown(t *testing.T) {
	cd := NewCooldown(PassCooldownFrames)
	assert.True(t, cd.Ready(1))

	cd.Trigger(10)
	assert.False(t, cd.Ready(10))
	assert.False(t, cd.Ready(39))
	assert.True(t, cd.Ready(40))

	last, fired := cd.LastFrame()
	assert.True(t, fired)
	assert.Equal(t, 10, last)
}

func TestWindowSpeeds(t *testing.T) {
	window := []Position{{Frame: 1, X: 0}, {Frame: 2, X: 10}, {Frame: 4, X: 30}}
	assert.InDeltaSlice(t, []float64{10, 10}, windowSpeeds(window, 10, 10), 1e-9)
	assert.Nil(t, windowSpeeds(window[:1], 10, 10))
}
