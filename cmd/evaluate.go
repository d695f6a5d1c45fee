package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/fit-ranker/internal/evaluation"
	"github.com/spigell/fit-ranker/internal/logger"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Sweep thresholds over the labelled pairs of the dataset and report metrics",
	Run: func(cmd *cobra.Command, _ []string) {
		lg, config := setup()

		if err := evaluate(cmd.OutOrStdout(), config, lg); err != nil {
			lg.Fatal("evaluating", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(evaluateCmd)
}

func evaluate(w io.Writer, config *Config, lg *zap.Logger) error {
	ds, err := loadDataset(config)
	if err != nil {
		return err
	}

	pairs, err := ds.LabelledPairs()
	if err != nil {
		return err
	}
	if len(pairs) == 0 {
		return fmt.Errorf("dataset %s has no labelled pairs", config.Dataset)
	}

	scorer, err := newScorer(config.Matching)
	if err != nil {
		return err
	}

	thresholds := config.Evaluation.Thresholds
	if len(thresholds) == 0 {
		thresholds = evaluation.DefaultThresholds()
	}

	report := evaluation.Sweep(scorer, pairs, thresholds)

	runLogger := logger.WithFields(
		logger.WithCommonFields(lg, scorerName, scorer.Measures()),
		logger.StringFields(logger.StringField{Key: logger.FieldRunID, Value: report.RunID})...,
	)
	runLogger.Info("evaluated labelled pairs",
		zap.Int("pairs", len(pairs)),
		zap.Int("thresholds", len(thresholds)),
	)

	if best, ok := report.Best(); ok {
		runLogger.Info("best threshold",
			zap.Float64("threshold", best.Threshold),
			zap.Float64("f1", best.Metrics.F1),
		)
	}

	return writeReport(w, config.Output, report)
}
