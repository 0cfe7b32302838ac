package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dshills/innoscore/internal/answers"
	"github.com/dshills/innoscore/internal/assessment"
	"github.com/dshills/innoscore/internal/render"
	"github.com/dshills/innoscore/internal/schema"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type assessFlags struct {
	format          string
	out             string
	chartOut        string
	requireComplete bool
	failBelow       string
}

func newAssessCmd(g *globalFlags) *cobra.Command {
	f := &assessFlags{}

	cmd := &cobra.Command{
		Use:   "assess <answers-file>",
		Short: "Score an answer sheet and classify its maturity tier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssess(args[0], g, f, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.format, "format", "json", "Output format: json or md")
	flags.StringVar(&f.out, "out", "", "Output file path (default: stdout)")
	flags.StringVar(&f.chartOut, "chart-out", "", "Write the radar chart as SVG")
	flags.BoolVar(&f.requireComplete, "require-complete", false, "Fail if any question is unanswered")
	flags.StringVar(&f.failBelow, "fail-below", "", "Exit 2 if the tier is below this level (e.g. POTENTIAL)")

	return cmd
}

func runAssess(sheetPath string, g *globalFlags, f *assessFlags, stdout io.Writer) error {
	var minLevel assessment.Level
	if f.failBelow != "" {
		l, err := assessment.ParseLevel(f.failBelow)
		if err != nil {
			return exitError(3, "invalid --fail-below: %v", err)
		}
		minLevel = l
	}

	cfg, logger, err := setup(g)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	logger.Debug("loading answers", zap.String("path", sheetPath))
	sheet, err := answers.Load(sheetPath)
	if err != nil {
		if errors.Is(err, assessment.ErrValidation) {
			return exitError(4, "invalid answers: %v", err)
		}
		return exitError(3, "failed to load answers: %v", err)
	}
	logger.Debug("loaded answers",
		zap.Int("count", len(sheet.Answers)),
		zap.String("hash", sheet.Hash))

	engine, err := cfg.NewEngine(logger)
	if err != nil {
		return exitError(3, "failed to build engine: %v", err)
	}

	progress := engine.Progress(sheet.Answers)
	if f.requireComplete && !progress.Complete() {
		missing := progress.Missing()
		return exitError(4, "%d questions left to answer: %s", len(missing), strings.Join(missing, ", "))
	}

	r, err := engine.Run(sheet.CompanyName, sheet.Answers)
	switch {
	case err == nil:
	case errors.Is(err, assessment.ErrValidation):
		return exitError(4, "invalid answers: %v", err)
	case errors.Is(err, assessment.ErrRange):
		return exitError(5, "scoring failed: %v", err)
	default:
		return fmt.Errorf("assessment failed: %w", err)
	}

	if errs := schema.Validate(r); len(errs) > 0 {
		for _, e := range errs {
			logger.Error("result failed validation", zap.String("path", e.Path), zap.String("message", e.Message))
		}
		return exitError(5, "result failed validation (%d errors)", len(errs))
	}

	var output string
	switch f.format {
	case "json":
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		if errs := schema.ValidateJSON(data); len(errs) > 0 {
			return exitError(5, "result does not match schema: %s", errs[0])
		}
		output = string(data) + "\n"
	case "md":
		output = render.Markdown(r, engine.Tiers())
	default:
		return exitError(3, "unknown format: %s", f.format)
	}

	if f.out != "" {
		logger.Debug("writing output", zap.String("path", f.out))
		if err := os.WriteFile(f.out, []byte(output), 0o644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else {
		fmt.Fprint(stdout, output)
	}

	if f.chartOut != "" {
		logger.Debug("writing chart", zap.String("path", f.chartOut))
		if err := os.WriteFile(f.chartOut, []byte(render.RadarSVG(r, engine.Layout())), 0o644); err != nil {
			return fmt.Errorf("failed to write chart: %w", err)
		}
	}

	if minLevel != "" && !r.Tier.Level.AtLeast(minLevel) {
		return exitError(2, "tier %s is below %s", r.Tier.Level, minLevel)
	}
	return nil
}
