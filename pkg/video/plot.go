package video

import (
	"fmt"
	"image"
	"image/color"

	"github.com/chenBenjamin97/footscout/pkg/analysis"
	"gocv.io/x/gocv"
)

var playerColor = color.RGBA{0, 255, 0, 0}
var ballColor = color.RGBA{0, 165, 255, 0}
var eventColor = color.RGBA{0, 0, 255, 0}
var whiteRGB = color.RGBA{255, 255, 255, 0}

func toRect(b analysis.Box) image.Rectangle {
	return image.Rect(int(b.X1), int(b.Y1), int(b.X2), int(b.Y2))
}

//plotPlayerOnFrame plots the chosen player's bounding box and writes the current speed above it
func plotPlayerOnFrame(frame *gocv.Mat, track analysis.Track, speedKmh float64, jersey string) {
	boundingBoxRect := toRect(track.Box)
	gocv.Rectangle(frame, boundingBoxRect, playerColor, 3)

	textToPutFirstLine := fmt.Sprintf("#%s", jersey)
	textToPutSecondLine := fmt.Sprintf("%.1f km/h", speedKmh)
	startPointFirstLine := image.Pt(boundingBoxRect.Min.X, boundingBoxRect.Min.Y-20)
	startPointSecondLine := image.Pt(boundingBoxRect.Min.X, boundingBoxRect.Min.Y-5)

	textBackgroundRect := image.Rect(startPointFirstLine.X, startPointFirstLine.Y-15, startPointFirstLine.X+110, startPointFirstLine.Y+20)
	gocv.Rectangle(frame, textBackgroundRect, playerColor, -1) //thickness -1 == filled rectangle
	gocv.PutText(frame, textToPutFirstLine, startPointFirstLine, gocv.FontHersheyPlain, 1, whiteRGB, 2)
	gocv.PutText(frame, textToPutSecondLine, startPointSecondLine, gocv.FontHersheyPlain, 1, whiteRGB, 2)
}

//plotBallOnFrame marks the ball's center, filled when the chosen player has it
func plotBallOnFrame(frame *gocv.Mat, pos analysis.Position, possession bool) {
	thickness := 2
	if possession {
		thickness = -1
	}
	gocv.Circle(frame, image.Pt(int(pos.X), int(pos.Y)), 6, ballColor, thickness)
}

//plotStatsOnFrame writes the running counters at the frame's top left corner, and the events fired on this frame
func plotStatsOnFrame(frame *gocv.Mat, stats *analysis.PlayerStats, events []analysis.EventKind) {
	if stats == nil {
		return
	}

	lines := []string{
		fmt.Sprintf("Distance: %s", stats.DistanceString()),
		fmt.Sprintf("Top speed: %s", stats.TopSpeedString()),
		fmt.Sprintf("Passes: %d  Dribbles: %d  Shots: %d", stats.Passes, stats.Dribbles, stats.Shots),
	}

	gocv.Rectangle(frame, image.Rect(5, 5, 330, 20+len(lines)*18), color.RGBA{0, 0, 0, 0}, -1)
	for i, line := range lines {
		gocv.PutText(frame, line, image.Pt(10, 20+i*18), gocv.FontHersheyPlain, 1, whiteRGB, 1)
	}

	for i, kind := range events {
		gocv.PutText(frame, string(kind), image.Pt(10, 30+(len(lines)+i)*22), gocv.FontHersheySimplex, 0.8, eventColor, 2)
	}
}
