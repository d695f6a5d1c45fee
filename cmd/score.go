package cmd

import (
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/fit-ranker/internal/utils"
)

const previewLength = 60

var scoreCmd = &cobra.Command{
	Use:   "score <text> <text>",
	Short: "Score how closely two texts match",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		logger, config := setup()

		logger.Debug("scoring texts",
			zap.String("left", utils.TruncateForLog(args[0], previewLength)),
			zap.String("right", utils.TruncateForLog(args[1], previewLength)),
		)

		if err := score(cmd.OutOrStdout(), config, args[0], args[1]); err != nil {
			logger.Fatal("scoring texts", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)
}

func score(w io.Writer, config *Config, a, b string) error {
	scorer, err := newScorer(config.Matching)
	if err != nil {
		return err
	}

	total, subs := scorer.Explain(a, b)
	return writeScore(w, config.Output, total, subs)
}
