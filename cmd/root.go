package cmd

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/credexa/credexa-cli/internal/analyzer"
	"github.com/credexa/credexa-cli/internal/logger"
	"github.com/credexa/credexa-cli/internal/stub"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	app = "credexa"

	failureNotice = "Analysis failed. Please try again."
)

type Config struct {
	APIURL       string      `mapstructure:"api-url"`
	UserAgent    string      `mapstructure:"user-agent"`
	StrictSchema bool        `mapstructure:"strict-schema"`
	MaxLogLength int         `mapstructure:"max-log-length"`
	Stub         *StubConfig `mapstructure:"stub"`
}

type StubConfig struct {
	Listen  string `mapstructure:"listen"`
	Fixture string `mapstructure:"fixture"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "credexa is a cli for matching a resume against a job description",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	for key, env := range map[string]string{
		"api-url":       "CREDEXA_API_URL",
		"user-agent":    "CREDEXA_USER_AGENT",
		"strict-schema": "CREDEXA_STRICT_SCHEMA",
	} {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	viper.SetEnvPrefix(app)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("api-url", analyzer.DefaultBaseURL)
	viper.SetDefault("user-agent", "")
	viper.SetDefault("strict-schema", true)
	viper.SetDefault("max-log-length", 0)
	viper.SetDefault("stub.listen", stub.DefaultListen)
	viper.SetDefault("stub.fixture", "")

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is credexa.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colours in the report")
	rootCmd.PersistentFlags().String("api-url", "", "base url of the analysis service (default "+analyzer.DefaultBaseURL+")")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("no-color", rootCmd.PersistentFlags().Lookup("no-color"))
	viper.BindPFlag("api-url", rootCmd.PersistentFlags().Lookup("api-url"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The config file is optional unless it was asked for explicitly.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}

// setup builds the logger and reads the config; commands cannot run without either.
func setup() (*zap.Logger, *Config) {
	logger, err := logger.Build(logger.Options{
		JSON:  viper.GetBool("json"),
		Debug: viper.GetBool("debug"),
		Color: colorEnabled(),
	})
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	if config == nil {
		logger.Fatal("config is required")
	}

	return logger, config
}

func newAnalyzer(ctx context.Context, config *Config, logger *zap.Logger) *analyzer.Client {
	client := analyzer.New(ctx, logger, config.APIURL)
	client.StrictSchema = config.StrictSchema

	if config.UserAgent != "" {
		client.UserAgent = config.UserAgent
	}

	if config.MaxLogLength > 0 {
		client.MaxLogLength = config.MaxLogLength
	}

	return client
}

func colorEnabled() bool {
	return !viper.GetBool("no-color")
}
