package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/fit-ranker/internal/evaluation"
	"github.com/spigell/fit-ranker/internal/ranking"
	"github.com/spigell/fit-ranker/internal/similarity"
)

const (
	app       = "fit-ranker"
	envPrefix = "FIT_RANKER"
)

type Config struct {
	Dataset     string            `mapstructure:"dataset"`
	ExcludeFile string            `mapstructure:"exclude-file"`
	Output      string            `mapstructure:"output"`
	Matching    *MatchingConfig   `mapstructure:"matching"`
	Filters     *FiltersConfig    `mapstructure:"filters"`
	Evaluation  *EvaluationConfig `mapstructure:"evaluation"`
}

type MatchingConfig struct {
	Threshold float64  `mapstructure:"threshold"`
	TopN      int      `mapstructure:"top-n"`
	Workers   int      `mapstructure:"workers"`
	Measures  []string `mapstructure:"measures"`
	Stemming  bool     `mapstructure:"stemming"`
	Phrases   []string `mapstructure:"phrases"`
}

type FiltersConfig struct {
	OpenOnly bool `mapstructure:"open-only"`
	Deadline bool `mapstructure:"deadline"`
}

type EvaluationConfig struct {
	Thresholds []float64 `mapstructure:"thresholds"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "fit-ranker scores job ads against applicants and ranks the best matches",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is fit-ranker.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().StringP("output", "o", outputTable, "output format: table or json")
	rootCmd.PersistentFlags().String("dataset", "", "dataset file with job ads, applications and portfolios (json or yaml)")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("dataset", rootCmd.PersistentFlags().Lookup("dataset"))

	setDefaults(viper.GetViper())
}

func setDefaults(v *viper.Viper) {
	defaults := ranking.DefaultOptions()

	v.SetDefault("output", outputTable)
	v.SetDefault("exclude-file", "")
	v.SetDefault("matching.threshold", defaults.Threshold)
	v.SetDefault("matching.top-n", defaults.TopN)
	v.SetDefault("matching.workers", 0)
	v.SetDefault("matching.measures", similarity.DefaultMeasures())
	v.SetDefault("matching.stemming", false)
	v.SetDefault("matching.phrases", []string{})
	v.SetDefault("filters.open-only", true)
	v.SetDefault("filters.deadline", true)
	v.SetDefault("evaluation.thresholds", evaluation.DefaultThresholds())
}

func initConfig() {
	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading .env: %v", err)
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// Without an explicit --config the file is optional.
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		// We can't proceed if the config file parsed with error.
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	return decodeConfig(viper.GetViper())
}

func decodeConfig(v *viper.Viper) (*Config, error) {
	var config *Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config == nil {
		config = &Config{}
	}
	if config.Matching == nil {
		config.Matching = &MatchingConfig{}
	}
	if config.Filters == nil {
		config.Filters = &FiltersConfig{}
	}
	if config.Evaluation == nil {
		config.Evaluation = &EvaluationConfig{}
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

// Validate checks the values the ranking and evaluation paths rely on.
func (c *Config) Validate() error {
	if t := c.Matching.Threshold; t < 0 || t > 1 {
		return fmt.Errorf("matching.threshold must be within [0, 1], got %v", t)
	}

	if _, err := similarity.ParseMeasures(c.Matching.Measures); err != nil {
		return fmt.Errorf("matching.measures: %w", err)
	}

	for _, t := range c.Evaluation.Thresholds {
		if t < 0 || t > 1 {
			return fmt.Errorf("evaluation.thresholds must be within [0, 1], got %v", t)
		}
	}

	switch c.Output {
	case outputTable, outputJSON, "":
	default:
		return fmt.Errorf("unknown output format %q", c.Output)
	}

	return nil
}

func (c *Config) rankingOptions() ranking.Options {
	return ranking.Options{
		Threshold: c.Matching.Threshold,
		TopN:      c.Matching.TopN,
	}
}
