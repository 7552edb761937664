package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/care-record-api/pkg/config"
	"github.com/noah-isme/care-record-api/pkg/logger"
)

// @title Care Record API
// @version 1.0.0
// @description Daily vital-sign records and record form sessions
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	rootCmd := &cobra.Command{
		Use:          "care-api",
		Short:        "Care record API server",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(tokenCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// bootstrap loads configuration and builds the process logger.
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logr, err := logger.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logr, nil
}
