package video

import (
	"sort"

	"github.com/chenBenjamin97/footscout/pkg/analysis"
	"github.com/chenBenjamin97/footscout/pkg/tracking"
)

//nonMaxSuppression keeps the most confident detection of every overlapping group, per class.
//Output is sorted by descending confidence.
func nonMaxSuppression(detections []analysis.Detection, iouThreshold float64) []analysis.Detection {
	sorted := make([]analysis.Detection, len(detections))
	copy(sorted, detections)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Confidence > sorted[j].Confidence
	})

	kept := make([]analysis.Detection, 0, len(sorted))
	for _, candidate := range sorted {
		suppressed := false
		for _, k := range kept {
			if k.Class == candidate.Class && tracking.IoU(k.Box, candidate.Box) > iouThreshold {
				suppressed = true
				break
			}
		}
		if !suppressed {
			kept = append(kept, candidate)
		}
	}

	return kept
}
