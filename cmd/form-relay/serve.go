package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"form-relay/internal/common/config"
	"form-relay/internal/form"
	"form-relay/internal/server"

	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve every form over HTTP",
	Long: `Run a local HTTP server exposing /contact, /join-us, /healthz and /metrics.

Example:
  form-relay serve
  form-relay serve --addr :9000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		contact, err := a.handler(form.NameContact)
		if err != nil {
			return err
		}
		joinUs, err := a.handler(form.NameJoinUs)
		if err != nil {
			return err
		}

		addr := a.cfg.Server.Address
		if serveAddr != "" {
			addr = serveAddr
		}

		router := server.NewRouter([]server.Route{
			{Path: "/contact", Handler: contact},
			{Path: "/join-us", Handler: joinUs},
		}, a.log)
		return server.Run(ctx, addr, router, config.GetDuration(a.cfg.Server.ShutdownTimeout), a.log)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.address)")
}
