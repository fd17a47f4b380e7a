package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/credexa/credexa-cli/internal/stub"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var stubCmd = &cobra.Command{
	Use:   "stub",
	Short: "Serve a local stand-in for the analysis service",
	Run: func(_ *cobra.Command, _ []string) {
		serveStub()
	},
}

func init() {
	rootCmd.AddCommand(stubCmd)

	stubCmd.Flags().StringP("listen", "l", "", "address to listen on (default "+stub.DefaultListen+")")
	stubCmd.Flags().StringP("fixture", "f", "", "json file with the result to answer with. Default is the built-in one.")

	viper.BindPFlag("stub.listen", stubCmd.Flags().Lookup("listen"))
	viper.BindPFlag("stub.fixture", stubCmd.Flags().Lookup("fixture"))
}

func serveStub() {
	logger, config := setup()

	if config.Stub == nil {
		config.Stub = &StubConfig{}
	}

	fixture, err := stub.LoadFixture(config.Stub.Fixture)
	if err != nil {
		logger.Fatal("loading fixture", zap.Error(err))
	}

	server := stub.New(fixture, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("shutting down stub service")
		if err := server.Shutdown(); err != nil {
			logger.Error("stub shutdown", zap.Error(err))
		}
	}()

	if err := server.Listen(config.Stub.Listen); err != nil {
		logger.Fatal("stub service stopped", zap.Error(err))
	}
}
