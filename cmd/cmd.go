package cmd

import (
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"ollamadash/config"
)

func NewCLI() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ollamadash",
		Short: "Web dashboard for a local Ollama server",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Disable usage printing on errors
			cmd.SilenceUsage = true

			envFile, _ := cmd.Flags().GetString("env-file")
			return config.LoadDotEnv(envFile)
		},
	}

	rootCmd.PersistentFlags().String("env-file", "", "Load environment variables from this file (default ./.env if present)")
	rootCmd.PersistentFlags().String("upstream", "", "Upstream API base address (overrides OLLAMA_API)")

	cobra.EnableCommandSorting = false

	rootCmd.AddCommand(
		NewServeCmd(),
		NewModelsCmd(),
	)

	return rootCmd
}

// loadConfig reads the environment and applies command line overrides.
func loadConfig(cmd *cobra.Command) config.Config {
	cfg := config.Load()

	if upstream, _ := cmd.Flags().GetString("upstream"); upstream != "" {
		cfg.UpstreamURL = upstream
	}
	if cmd.Flags().Lookup("port") != nil && cmd.Flags().Changed("port") {
		cfg.Port, _ = cmd.Flags().GetInt("port")
	}

	return cfg
}

func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if os.Getenv(gin.EnvGinMode) != "" {
		return
	}
	if debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
}
