package analysis

import (
	"errors"
	"fmt"
)

//ErrInput marks a missing, unreadable or empty video source
var ErrInput = errors.New("video source unavailable")

//ErrOutOfOrder is returned when a position would break trajectory's frame ordering
var ErrOutOfOrder = errors.New("position out of frame order")

//ValidationError is returned when the pre-flight check rejects a clip.
//It carries the computed result so callers can explain the rejection.
type ValidationError struct {
	Result ValidationResult
}

func (e *ValidationError) Error() string {
	if e.Result.Details.Error != "" {
		return fmt.Sprintf("video rejected: %s", e.Result.Details.Error)
	}
	return fmt.Sprintf("video rejected: confidence %.2f, %d/%d player frames", e.Result.Confidence, e.Result.Details.PlayerFrames, e.Result.Details.FramesAnalyzed)
}
