package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/msto63/thing/internal/workbench/server"
	"github.com/msto63/thing/pkg/core/logging"
	"github.com/spf13/cobra"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the workbench service",
	Long: `Starts the workbench HTTP and WebSocket service.

Endpoints:
  POST /api/v1/parse     - parse tree and diagnostics
  POST /api/v1/tokenize  - token stream
  POST /api/v1/check     - diagnostics of a program
  GET  /api/v1/health    - health report
  GET  /api/v1/version   - build information
  GET  /api/v1/ws        - WebSocket (parse, tokenize, check, ping)

Examples:
  thing serve
  thing serve --port 9000`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveHost, "host", "", "listen host (default from config)")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "listen port (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := server.FromConfig(appConfig)
	if cmd.Flags().Changed("host") {
		cfg.Host = serveHost
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	cfg.Logger = logging.Wrap(appLogger, "workbench")

	srv := server.New(cfg)
	if err := srv.StartAsync(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Workbench listening on http://%s\n", srv.Address())

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), appConfig.Server.ShutdownTimeout.Duration)
	defer cancel()
	return srv.Stop(shutdownCtx)
}
