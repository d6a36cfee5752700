package main

import (
	"fmt"

	"github.com/jonathan/trustproof/internal/config"
	"github.com/jonathan/trustproof/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort       int
	serveConfigPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for running the review verification pipeline, including a streaming variant and Prometheus metrics.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", config.DefaultPort, "Port to listen on")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	var cfg config.Config
	if serveConfigPath != "" {
		loadedCfg, err := config.LoadConfig(serveConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loadedCfg
	}
	envCfg := config.FromEnv()
	cfg = envCfg.MergeWithDefaults(cfg)
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	cfg = cfg.MergeWithDefaults(config.Config{
		APIBaseURL: config.DefaultAPIBaseURL,
		Port:       config.DefaultPort,
	})

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
