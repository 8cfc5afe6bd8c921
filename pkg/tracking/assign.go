package tracking

import (
	"github.com/arthurkushman/go-hungarian"
	"github.com/chenBenjamin97/footscout/pkg/analysis"
)

//iouMatrix builds rows = tracks, columns = detections, using the tracks' predicted boxes
func iouMatrix(tracks []*track, detectionIndices []int, detections []analysis.Detection) [][]float64 {
	matrix := make([][]float64, len(tracks))
	for i, trk := range tracks {
		row := make([]float64, len(detectionIndices))
		for j, detIdx := range detectionIndices {
			row[j] = IoU(trk.predictedBox, detections[detIdx].Box)
		}
		matrix[i] = row
	}
	return matrix
}

//solveAssignment returns {trackIndex, detectionIndex} pairs maximizing total IoU.
//Pairs scoring below minIoU are dropped. Rectangular matrices are padded with zeros to make them square.
func solveAssignment(matrix [][]float64, numTracks, numDetections int, minIoU float64) [][2]int {
	if numTracks == 0 || numDetections == 0 {
		return nil
	}

	size := numTracks
	if numDetections > size {
		size = numDetections
	}
	padded := make([][]float64, size)
	for i := range padded {
		padded[i] = make([]float64, size)
		if i < numTracks {
			copy(padded[i], matrix[i])
		}
	}

	matches := make([][2]int, 0, numTracks)
	for trackIdx, rowMap := range hungarian.SolveMax(padded) {
		for detIdx := range rowMap {
			if trackIdx >= numTracks || detIdx >= numDetections {
				continue
			}
			if matrix[trackIdx][detIdx] < minIoU {
				continue
			}
			matches = append(matches, [2]int{trackIdx, detIdx})
		}
	}
	return matches
}
