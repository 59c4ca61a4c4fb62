package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"biliredirect/internal/provider"
	"biliredirect/internal/resolve"
	"biliredirect/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the redirect server",
	Args:  cobra.NoArgs,
	RunE:  serveRun,
}

// serveRun is the default command. SIGINT and SIGTERM stop the server
// immediately.
func serveRun(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	upstream := provider.NewBilibili(cfg.Upstream)
	srv := server.New(cfg, log, resolve.New(upstream, log))

	log.Info().Str("address", cfg.BaseURL).Int("port", cfg.Port).Msg("redirect service started")
	log.Info().Msgf("usage: %s/?url=<bilibili video URL>", cfg.BaseURL)

	return srv.Run(ctx)
}
