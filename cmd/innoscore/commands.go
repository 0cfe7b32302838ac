package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/dshills/innoscore/internal/assessment"
	"github.com/dshills/innoscore/internal/questionnaire"
	"github.com/dshills/innoscore/internal/render"
	"github.com/dshills/innoscore/internal/schema"
	"github.com/dshills/innoscore/internal/server"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newQuestionsCmd(g *globalFlags) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "questions",
		Short: "List the questionnaire and answer scale",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := setup(g)
			if err != nil {
				return err
			}
			cat, err := cfg.LoadCatalog()
			if err != nil {
				return exitError(3, "failed to load catalog: %v", err)
			}
			return writeQuestions(cmd.OutOrStdout(), cat, format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text or json")
	return cmd
}

type questionsDoc struct {
	Name           string                 `json:"name"`
	Version        int                    `json:"version"`
	Modules        []questionnaire.Module `json:"modules"`
	TotalQuestions int                    `json:"total_questions"`
	Scale          map[string]string      `json:"scale"`
}

func writeQuestions(w io.Writer, cat *questionnaire.Catalog, format string) error {
	switch format {
	case "text":
		fmt.Fprint(w, render.Questionnaire(cat))
		return nil
	case "json":
		doc := questionsDoc{
			Name:           cat.Name,
			Version:        cat.Version,
			Modules:        cat.Modules(),
			TotalQuestions: cat.TotalQuestions(),
			Scale:          map[string]string{},
		}
		for s := questionnaire.MinLikert; s <= questionnaire.MaxLikert; s++ {
			doc.Scale[strconv.Itoa(s)] = questionnaire.ScaleLabel(s)
		}
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal questions: %w", err)
		}
		fmt.Fprintln(w, string(data))
		return nil
	default:
		return exitError(3, "unknown format: %s", format)
	}
}

func newTiersCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tiers",
		Short: "Print the maturity tier thresholds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := setup(g)
			if err != nil {
				return err
			}
			table, err := cfg.TierTable()
			if err != nil {
				return exitError(3, "invalid tiers: %v", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), render.Tiers(table))
			return nil
		},
	}
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <result.json>",
		Short: "Check an exported assessment against the result schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(args[0], cmd.OutOrStdout())
		},
	}
}

func runValidate(path string, w io.Writer) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return exitError(3, "failed to read result: %v", err)
	}
	errs := schema.ValidateJSON(data)
	if len(errs) == 0 {
		var r assessment.Result
		if err := json.Unmarshal(data, &r); err != nil {
			return exitError(5, "failed to decode result: %v", err)
		}
		errs = schema.Validate(&r)
	}
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "  %s\n", e)
		}
		return exitError(5, "%s: %d validation errors", path, len(errs))
	}
	fmt.Fprintf(w, "%s: valid\n", path)
	return nil
}

func newServeCmd(g *globalFlags) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the questionnaire and assessments over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup(g)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			engine, err := cfg.NewEngine(logger)
			if err != nil {
				return exitError(3, "failed to build engine: %v", err)
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}
			if !g.verbose {
				gin.SetMode(gin.ReleaseMode)
			}
			srv := server.New(engine, server.Options{
				Addr:            addr,
				RequireComplete: cfg.Server.RequireComplete,
				CORSOrigins:     cfg.Server.CORSOrigins,
			}, logger)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := srv.Run(ctx); err != nil {
				logger.Error("server stopped", zap.Error(err))
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: server.addr from config)")
	return cmd
}
