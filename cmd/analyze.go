package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chenBenjamin97/footscout/pkg/analysis"
	"github.com/chenBenjamin97/footscout/pkg/report"
	"github.com/chenBenjamin97/footscout/pkg/utils"
	"github.com/chenBenjamin97/footscout/pkg/video"
	"github.com/spf13/cobra"
)

var (
	analyzeJersey   string
	analyzeMinConf  float64
	analyzeJSON     bool
	analyzeAnnotate string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <video>",
	Short: "Analyze a clip and print the player's stats",
	Long: `Validate the clip, follow the first confirmed player through it and print
distance, top speed, event counts and ratings. With --annotate the analyzed
frames are also written to an XVID '.avi' video.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeJersey, "jersey", utils.DefaultJerseyNumber, "jersey number used as the result's label")
	analyzeCmd.Flags().Float64Var(&analyzeMinConf, "min-confidence", 0, "minimum validation confidence (default from config)")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the result as JSON")
	analyzeCmd.Flags().StringVar(&analyzeAnnotate, "annotate", "", "write an annotated '.avi' video to this path")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	videoPath := args[0]
	if _, err := os.Stat(videoPath); err != nil {
		return fmt.Errorf("analyze: '%s': %w", videoPath, analysis.ErrInput)
	}

	svc, closeModel, err := newService(cfg)
	if err != nil {
		return err
	}
	defer closeModel()

	minConf := analyzeMinConf
	if minConf <= 0 {
		minConf = cfg.Validation.MinConfidence
	}
	params := analysis.RunParams{JerseyNumber: analyzeJersey, MinConfidence: minConf}

	if analyzeAnnotate != "" {
		outPath, err := annotatedPath(analyzeAnnotate)
		if err != nil {
			return err
		}
		annotator, err := newAnnotatorFor(videoPath, outPath, analyzeJersey)
		if err != nil {
			return err
		}
		defer annotator.Close()
		params.Observer = annotator
	}

	stats, err := svc.Process(videoPath, params)
	if err != nil {
		var verr *analysis.ValidationError
		if errors.As(err, &verr) {
			report.PrintValidation(cmd.OutOrStdout(), verr.Result)
		}
		return err
	}

	if analyzeJSON {
		return report.PrintJSON(cmd.OutOrStdout(), map[string]interface{}{
			"message":      "Processing complete",
			"player_stats": stats,
		})
	}
	report.PrintStats(cmd.OutOrStdout(), stats)
	return nil
}

//annotatedPath appends the annotated video extension when missing. Other extensions are
//refused, the XVID writer only produces '.avi' containers.
func annotatedPath(path string) (string, error) {
	ext := filepath.Ext(path)
	switch {
	case ext == "":
		return path + utils.AnnotatedExt, nil
	case strings.EqualFold(ext, utils.AnnotatedExt):
		return path, nil
	default:
		return "", fmt.Errorf("analyze: --annotate '%s' must be a '%s' file: %w", path, utils.AnnotatedExt, analysis.ErrInput)
	}
}

//newAnnotatorFor creates an annotated output video matching the source's size and frame rate
func newAnnotatorFor(videoPath, outPath, jersey string) (*video.Annotator, error) {
	probe, err := video.OpenCapture(videoPath)
	if err != nil {
		return nil, fmt.Errorf("analyze: %v: %w", err, analysis.ErrInput)
	}
	fps := probe.FPS()
	width, height := probe.Size()
	probe.Close()

	return video.NewAnnotator(outPath, jersey, fps, width, height)
}
