package tracking

import (
	"math"

	"github.com/chenBenjamin97/footscout/pkg/analysis"
)

//IoU calculates Intersection over Union between two boxes.
//Degenerate boxes yield 0.
func IoU(a, b analysis.Box) float64 {
	xA := math.Max(a.X1, b.X1)
	yA := math.Max(a.Y1, b.Y1)
	xB := math.Min(a.X2, b.X2)
	yB := math.Min(a.Y2, b.Y2)

	interArea := math.Max(0, xB-xA) * math.Max(0, yB-yA)
	if interArea == 0 {
		return 0
	}

	areaA := a.Width() * a.Height()
	areaB := b.Width() * b.Height()
	union := areaA + areaB - interArea
	if union <= 0 {
		return 0
	}

	return interArea / union
}
