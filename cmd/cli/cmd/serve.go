package cmd

import (
	"github.com/allanboury/ao-trading-dasboard/cmd"
	"github.com/allanboury/ao-trading-dasboard/internal/config"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard HTTP API",
	RunE:  runServe,
}

var (
	servePort       int
	serveConfigPath string
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "listen port (overrides config)")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "path to a YAML config file")
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := config.Default()
	if serveConfigPath != "" {
		var err error
		cfg, err = config.LoadFromFile(serveConfigPath)
		if err != nil {
			return err
		}
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	apiHandler, err := cmd.InitializeDependencies(cfg)
	if err != nil {
		return err
	}
	return apiHandler.StartApi(cfg.Port)
}
