package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/fraudscan-cli/internal/report"
	"github.com/KaramelBytes/fraudscan-cli/internal/server"
)

var (
	srvAddr      string
	srvMaxUpload int64
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve an HTTP endpoint that analyzes uploaded CSV files",
	Long: `Serve starts an HTTP server with:

  POST /api/analyze   multipart field "file" or a text/csv body; ?format=json|markdown|html
  GET  /healthz`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opt := server.Options{
			Addr:           cfg.ListenAddr,
			MaxUploadBytes: cfg.MaxUploadBytes,
			ReadTimeout:    time.Duration(cfg.ReadTimeoutSec) * time.Second,
			WriteTimeout:   time.Duration(cfg.WriteTimeoutSec) * time.Second,
			Display:        report.Options{MaxRows: cfg.DisplayMaxRows, MaxCols: cfg.DisplayMaxCols},
		}
		if cmd.Flags().Changed("addr") {
			opt.Addr = srvAddr
		}
		if cmd.Flags().Changed("max-upload") {
			if srvMaxUpload <= 0 {
				return fmt.Errorf("invalid --max-upload: %d", srvMaxUpload)
			}
			opt.MaxUploadBytes = srvMaxUpload
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "✓ Listening on %s\n", opt.Addr)
		return server.New(logger, opt, nil).ListenAndServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&srvAddr, "addr", ":8080", "listen address (overrides config)")
	serveCmd.Flags().Int64Var(&srvMaxUpload, "max-upload", 10<<20, "maximum upload size in bytes (overrides config)")
}
