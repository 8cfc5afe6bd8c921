package analysis

import (
	"errors"
	"fmt"
)

//RunParams are the caller supplied parameters of one analysis request
type RunParams struct {
	JerseyNumber  string //display label only
	MinConfidence float64
	Observer      FrameObserver
}

//Service validates and analyzes video files
type Service struct {
	Open       OpenFunc
	Pipeline   *Pipeline
	Validation ValidationOptions
}

//Validate runs the pre-flight check on the video at path
func (s *Service) Validate(path string, minConfidence float64) ValidationResult {
	opts := s.Validation
	opts.MinConfidence = minConfidence
	return ValidateFile(path, s.Open, s.Pipeline.Detector, opts)
}

//Process validates the video at path and, if it passes, runs the full analysis.
//Returns a *ValidationError when the clip is rejected and (nil, nil) when no player was found.
func (s *Service) Process(path string, params RunParams) (*PlayerStats, error) {
	if path == "" {
		return nil, fmt.Errorf("Process: empty video path: %w", ErrInput)
	}

	src, err := s.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Process: could not open '%s': %v: %w", path, err, ErrInput)
	}
	defer src.Close()

	opts := s.Validation
	opts.MinConfidence = params.MinConfidence
	result := Validate(src, s.Pipeline.Detector, opts)
	if !result.Valid {
		return nil, &ValidationError{Result: result}
	}

	//validation sampling moved the read position
	if err := src.Seek(0); err != nil {
		return nil, fmt.Errorf("Process: could not rewind '%s': %v: %w", path, err, ErrInput)
	}

	stats, err := s.Pipeline.Run(src, params.JerseyNumber, params.Observer)
	if err != nil {
		if errors.Is(err, ErrInput) {
			return nil, fmt.Errorf("Process: '%s' yielded no frames: %w", path, err)
		}
		return nil, err
	}

	return stats, nil
}
