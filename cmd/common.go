package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/fit-ranker/internal/dataset"
	"github.com/spigell/fit-ranker/internal/logger"
	"github.com/spigell/fit-ranker/internal/ranking"
	"github.com/spigell/fit-ranker/internal/similarity"
)

const scorerName = "blend"

// setup builds the logger and the validated config shared by every command.
func setup() (*zap.Logger, *Config) {
	lg, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		lg.Fatal("getting a config", zap.Error(err))
	}

	return lg, config
}

func newScorer(cfg *MatchingConfig) (*similarity.Blend, error) {
	measures, err := similarity.ParseMeasures(cfg.Measures)
	if err != nil {
		return nil, err
	}

	opts := []similarity.AnalyzerOption{similarity.WithStemming(cfg.Stemming)}
	if len(cfg.Phrases) > 0 {
		opts = append(opts, similarity.WithPhrases(append(similarity.DefaultPhrases(), cfg.Phrases...)))
	}

	return similarity.NewBlend(similarity.NewAnalyzer(opts...), measures...), nil
}

func newRanker(cfg *MatchingConfig, lg *zap.Logger) (*ranking.Ranker, error) {
	scorer, err := newScorer(cfg)
	if err != nil {
		return nil, err
	}

	return ranking.New(scorer,
		ranking.WithWorkers(cfg.Workers),
		ranking.WithLogger(logger.WithCommonFields(lg, scorerName, scorer.Measures())),
	), nil
}

func loadDataset(config *Config) (*dataset.Dataset, error) {
	if config.Dataset == "" {
		return nil, fmt.Errorf("dataset is not configured (set the 'dataset' key or --dataset)")
	}

	return dataset.Load(config.Dataset)
}
