package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rjcarver/manna/internal/scheduler"
	"github.com/rjcarver/manna/internal/webhook"
)

func newServeCmd() *cobra.Command {
	var (
		configPath  string
		noScheduler bool
		port        int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the webhook server and delivery scheduler",
		Long: `Starts the Twilio webhook server and the scheduled delivery loop in one
process. Stops cleanly on SIGINT/SIGTERM.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, configPath, port, !noScheduler)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to config file")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "override server port")
	cmd.Flags().BoolVar(&noScheduler, "no-scheduler", false, "serve webhooks only, without the delivery loop")
	return cmd
}

func runServe(cmd *cobra.Command, configPath string, port int, withScheduler bool) error {
	cfg, st, err := openStore(configPath)
	if err != nil {
		return err
	}
	if port == 0 {
		port = cfg.Server.Port
	}

	dev := buildDevotion(cfg)

	srv, err := webhook.New(webhook.Opts{Store: st, Devotion: dev})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if withScheduler {
		sender, err := buildSender(cfg)
		if err != nil {
			return err
		}
		dispatcher, err := scheduler.NewDispatcher(scheduler.DispatcherOpts{
			Store:     st,
			Scripture: buildScripture(),
			Devotion:  dev,
			Sender:    sender,
		})
		if err != nil {
			return err
		}
		loc, err := cfg.Location()
		if err != nil {
			return err
		}
		loop, err := scheduler.NewLoop(scheduler.LoopOpts{
			Dispatcher: dispatcher,
			Interval:   cfg.Scheduler.Interval.Std(),
			Location:   loc,
		})
		if err != nil {
			return err
		}
		loop.Start()
		defer loop.Stop()
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "Delivery scheduler disabled")
	}

	return srv.Start(ctx, webhook.StartOpts{Port: port, Out: cmd.OutOrStdout()})
}
