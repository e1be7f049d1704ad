package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/patseek/patseek/internal/search"
	"github.com/patseek/patseek/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the search API over HTTP",
	Long: `Start an HTTP server exposing the query pipeline:

  GET /v1/search?q=<query>&limit=<n>
  GET /v1/docs/{id}
  GET /healthz

The same bracket modifiers as the CLI apply to the q parameter.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.ServerAddr = addr
		}

		log := newLogger(cmd, cfg)
		defer log.Sync()

		ix, err := openIndex(cfg)
		if err != nil {
			return err
		}
		defer ix.Close()

		searcher := search.NewSearcher(ix, log, cfg.TopK)
		srv := server.New(cfg.ServerAddr, ix, searcher, log)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return srv.ListenAndServe(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default :8080)")
}
