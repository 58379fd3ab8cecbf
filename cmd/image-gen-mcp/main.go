package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ironsheep/image-gen-mcp/internal/config"
	"github.com/ironsheep/image-gen-mcp/internal/files"
	"github.com/ironsheep/image-gen-mcp/internal/generation"
	"github.com/ironsheep/image-gen-mcp/internal/logger"
	"github.com/ironsheep/image-gen-mcp/internal/preview"
	"github.com/ironsheep/image-gen-mcp/internal/provider"
	"github.com/ironsheep/image-gen-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const envHelp = `Environment variables:
  IMAGE_GEN_API_KEY          Provider bearer token (falls back to OPENROUTER_API_KEY)
  IMAGE_GEN_BASE_URL         Provider base URL (default https://openrouter.ai/api/v1)
  IMAGE_GEN_MODEL            Image model identifier
  IMAGE_GEN_PATH             Request path under the base URL (default /responses)
  IMAGE_GEN_HTTP_TIMEOUT     Per-call timeout, e.g. 90s (default none)
  IMAGE_GEN_MIN_INTERVAL     Minimum spacing between provider calls (default none)
  IMAGE_GEN_OUTPUT_DIR       Output directory (default generated-images)
  IMAGE_GEN_PREVIEW_COMMAND  Command used to open previews
  IMAGE_GEN_LOG_LEVEL        debug, info, warn, error (default info)
  IMAGE_GEN_LOG_FORMAT       console or json (default console)

Values are also read from ~/.config/image-gen-mcp/.env and ./.env.`

var rootCmd = &cobra.Command{
	Use:   "image-gen-mcp",
	Short: "MCP server for image generation",
	Long: `image-gen-mcp serves image generation tools over the MCP protocol on
stdin/stdout. Configure it in your MCP client (e.g., Claude Desktop).

` + envHelp,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServer,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprint(cmd.OutOrStdout(), versionText())
	},
}

func init() {
	rootCmd.SetVersionTemplate(versionText())
	rootCmd.AddCommand(versionCmd)
}

func versionText() string {
	return fmt.Sprintf("image-gen-mcp %s\n  Build time: %s\n  Git commit: %s\n", Version, BuildTime, GitCommit)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	config.LoadEnvFiles()
	cfg, err := config.Load()
	if err != nil && !errors.Is(err, config.ErrMissingAPIKey) {
		return err
	}
	initErr := err

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	log.Debug().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("commit", GitCommit).
		Str("model", cfg.Model).
		Str("base_url", cfg.BaseURL).
		Msg("starting image-gen-mcp")
	if initErr != nil {
		log.Warn().Err(initErr).Msg("no API key configured; tool calls will fail until one is set")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gen, err := newOrchestrator(cfg, log)
	if err != nil {
		return err
	}

	srv := server.New(gen, log,
		server.WithVersion(Version),
		server.WithInitError(initErr),
	)
	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("server stopped")
		return err
	}
	log.Debug().Msg("server stopped")
	return nil
}

func newOrchestrator(cfg *config.Config, log zerolog.Logger) (*generation.Orchestrator, error) {
	store, err := files.NewStore(cfg.OutputDir)
	if err != nil {
		return nil, err
	}
	client := provider.NewClient(provider.Options{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Referer: cfg.Referer,
		Title:   cfg.Title,
		Timeout: cfg.HTTPTimeout,
	})
	return generation.New(generation.Options{
		Model:       cfg.Model,
		Path:        cfg.Path,
		MinInterval: cfg.MinInterval,
		Poster:      client,
		Store:       store,
		Resolver:    files.NewResolver(cfg.OutputDir),
		Previewer:   preview.New(cfg.PreviewCommand, log),
	}, log), nil
}
