package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	site "github.com/goliatone/go-site"
	sitehttp "github.com/goliatone/go-site/internal/http"
	"github.com/goliatone/go-site/internal/logging"
	"github.com/goliatone/go-site/internal/subscribers"
	"github.com/goliatone/go-site/pkg/interfaces"
)

func (a *app) serveCommand() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the public JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr != "" {
				a.cfg.Server.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			module, err := site.New(ctx, a.cfg, site.WithLoggerProvider(a.provider))
			if err != nil {
				return err
			}
			defer module.Close()

			handler, err := module.Handler()
			if err != nil {
				return err
			}

			go logSubscriberChanges(ctx, module.Subscribers(), logging.SubscribersLogger(a.provider))

			logger := logging.APILogger(a.provider)
			return sitehttp.Serve(ctx, sitehttp.NewServer(a.cfg.Server, handler), logger)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address, overriding server.addr")
	return cmd
}

func logSubscriberChanges(ctx context.Context, svc *subscribers.Service, logger interfaces.Logger) {
	for event := range svc.Watch(ctx) {
		record := event.Subscriber
		logger.Info("subscribers.changed",
			"type", string(event.Type),
			"audience", string(record.Audience),
			"status", string(record.Status),
		)
	}
}
