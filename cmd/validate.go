package main

import (
	"fmt"
	"os"

	"github.com/chenBenjamin97/footscout/pkg/analysis"
	"github.com/chenBenjamin97/footscout/pkg/report"
	"github.com/spf13/cobra"
)

var (
	validateMinConf float64
	validateJSON    bool
)

var validateCmd = &cobra.Command{
	Use:   "validate <video>",
	Short: "Check whether a clip looks like football footage",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().Float64Var(&validateMinConf, "min-confidence", 0, "minimum validation confidence (default from config)")
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "print the result as JSON")
}

func runValidate(cmd *cobra.Command, args []string) error {
	videoPath := args[0]
	if _, err := os.Stat(videoPath); err != nil {
		return fmt.Errorf("validate: '%s': %w", videoPath, analysis.ErrInput)
	}

	svc, closeModel, err := newService(cfg)
	if err != nil {
		return err
	}
	defer closeModel()

	minConf := validateMinConf
	if minConf <= 0 {
		minConf = cfg.Validation.MinConfidence
	}

	result := svc.Validate(videoPath, minConf)
	if validateJSON {
		if err := report.PrintJSON(cmd.OutOrStdout(), result); err != nil {
			return err
		}
	} else {
		report.PrintValidation(cmd.OutOrStdout(), result)
	}

	if !result.Valid {
		return &analysis.ValidationError{Result: result}
	}
	return nil
}
