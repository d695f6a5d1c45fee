package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/fit-ranker/internal/filtering"
	"github.com/spigell/fit-ranker/internal/profile"
	"github.com/spigell/fit-ranker/internal/ranking"
)

const excludeReasonShown = "shown in recommendations"

var errNoJobAds = errors.New("dataset has no job ads")

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank applicants for a job ad or job ads for an individual",
}

var rankApplicantsCmd = &cobra.Command{
	Use:   "applicants",
	Short: "Rank the applications submitted to a job ad",
	Run: func(cmd *cobra.Command, _ []string) {
		logger, config := setup()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		jobID, _ := cmd.Flags().GetString("job")
		if err := rankApplicants(ctx, cmd.OutOrStdout(), config, logger, jobID, pickJob); err != nil {
			logger.Fatal("ranking applicants", zap.Error(err))
		}
	},
}

var rankJobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Recommend job ads for an individual based on the portfolio",
	Run: func(cmd *cobra.Command, _ []string) {
		logger, config := setup()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		userID, _ := cmd.Flags().GetString("individual")
		excludeShown, _ := cmd.Flags().GetBool("exclude-shown")

		if err := rankJobs(ctx, cmd.OutOrStdout(), config, logger, userID, excludeShown, time.Now); err != nil {
			logger.Fatal("ranking job ads", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)
	rankCmd.AddCommand(rankApplicantsCmd, rankJobsCmd)

	rankCmd.PersistentFlags().Float64P("threshold", "t", 0, "minimum score a match must exceed")
	rankCmd.PersistentFlags().IntP("top-n", "n", 0, "maximum number of matches to print")
	rankCmd.PersistentFlags().Int("workers", 0, "number of scoring goroutines (default GOMAXPROCS)")
	rankCmd.PersistentFlags().StringP("exclude-file", "e", "", "special file with job ads to exclude. Default is unset.")

	viper.BindPFlag("matching.threshold", rankCmd.PersistentFlags().Lookup("threshold"))
	viper.BindPFlag("matching.top-n", rankCmd.PersistentFlags().Lookup("top-n"))
	viper.BindPFlag("matching.workers", rankCmd.PersistentFlags().Lookup("workers"))
	viper.BindPFlag("exclude-file", rankCmd.PersistentFlags().Lookup("exclude-file"))

	rankApplicantsCmd.Flags().String("job", "", "job ad id; prompts for one when omitted")

	rankJobsCmd.Flags().StringP("individual", "u", "", "user id of the individual")
	rankJobsCmd.Flags().Bool("exclude-shown", false, "append the recommended job ads to the exclude file")
	rankJobsCmd.MarkFlagRequired("individual")
}

// jobPicker chooses a job ad id when none is given on the command line.
type jobPicker func(jobs *profile.JobAds) (string, error)

func pickJob(jobs *profile.JobAds) (string, error) {
	if jobs.Len() == 0 {
		return "", errNoJobAds
	}

	jobPrompt := promptui.Select{
		Label: "Choose a job ad and press ENTER",
		Items: jobs.Titles(),
	}

	_, selected, err := jobPrompt.Run()
	if err != nil {
		return "", err
	}

	return strings.Split(selected, " ")[0], nil
}

func rankApplicants(ctx context.Context, w io.Writer, config *Config, logger *zap.Logger, jobID string, pick jobPicker) error {
	ds, err := loadDataset(config)
	if err != nil {
		return err
	}

	if jobID == "" {
		if jobID, err = pick(ds.Jobs); err != nil {
			return fmt.Errorf("choosing a job ad: %w", err)
		}
	}

	job := ds.Jobs.FindByID(jobID)
	if job == nil {
		return fmt.Errorf("there is no such job ad id %s", jobID)
	}

	ranker, err := newRanker(config.Matching, logger)
	if err != nil {
		return err
	}

	applications := ds.ApplicationsFor(job.ID)
	logger.Info("ranking applicants",
		zap.String("job_ad_id", job.ID),
		zap.String("job_title", job.JobTitle),
		zap.Int("applications", len(applications)),
	)

	matches, err := ranker.CandidatesForJob(ctx, job, applications, ds, config.rankingOptions())
	if err != nil {
		return err
	}

	logger.Info("ranked applicants", zap.Int("matches", len(matches)))
	return writeApplicantMatches(w, config.Output, matches)
}

func rankJobs(ctx context.Context, w io.Writer, config *Config, logger *zap.Logger, userID string, excludeShown bool, now func() time.Time) error {
	ds, err := loadDataset(config)
	if err != nil {
		return err
	}

	portfolio := ds.Portfolio(userID)
	if portfolio == nil {
		logger.Warn("individual has no portfolio, nothing to match against", zap.String("user_id", userID))
	}

	jobs, err := prepareFilters(config, logger, now).RunFilters(ctx, ds.Jobs)
	if err != nil {
		return fmt.Errorf("filtering failed: %w", err)
	}

	ranker, err := newRanker(config.Matching, logger)
	if err != nil {
		return err
	}

	matches, err := ranker.JobsForCandidate(ctx, portfolio, jobs, config.rankingOptions())
	if err != nil {
		return err
	}

	logger.Info("ranked job ads",
		zap.String("user_id", userID),
		zap.String("individual", ds.Individual(userID).FullName()),
		zap.Int("matches", len(matches)),
	)

	if err := writeJobMatches(w, config.Output, matches); err != nil {
		return err
	}

	if excludeShown {
		return appendShown(config.ExcludeFile, jobs, matches, now(), logger)
	}
	return nil
}

func prepareFilters(config *Config, logger *zap.Logger, now func() time.Time) *filtering.Filtering {
	f := filtering.New([]filtering.Filter{
		filtering.NewOpenOnly(logger),
		filtering.NewDeadline(now, logger),
		filtering.NewExcludeFile(config.ExcludeFile, logger),
	}, logger)

	if !config.Filters.OpenOnly {
		f.DisableByName("open_only", "disabled in config")
	}
	if !config.Filters.Deadline {
		f.DisableByName("deadline", "disabled in config")
	}

	for _, status := range f.Describe() {
		logger.Debug("filter status",
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.String("reason", status.Reason),
			zap.Any("details", status.Details),
		)
	}

	return f
}

func appendShown(path string, jobs *profile.JobAds, matches []ranking.JobMatch, now time.Time, logger *zap.Logger) error {
	if path == "" {
		logger.Warn("exclude file is not set, shown job ads are not recorded")
		return nil
	}

	shown := &profile.JobAds{}
	for _, m := range matches {
		if job := jobs.FindByID(m.JobAdID); job != nil {
			shown.Items = append(shown.Items, job)
		}
	}

	excluded, err := profile.GetExcludedJobAdsFromFile(path)
	if err != nil {
		return err
	}

	excluded.Append(shown.ToExcluded(excludeReasonShown, now))

	if err := excluded.ToFile(path); err != nil {
		return err
	}

	logger.Info("appended to exclude file", zap.String("filename", path), zap.Int("job_ads", shown.Len()))
	return nil
}
