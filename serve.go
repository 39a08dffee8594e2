package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"fret-focus/debug"
	"fret-focus/game"
	"fret-focus/server"
)

func newServeCmd(f *flags) *cobra.Command {
	var addr string
	var origins []string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the trainer as a JSON API for a browser front-end",
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.debug {
				debug.EnableWriter(os.Stderr)
			}

			cfg, _, settings, err := load(cmd, f)
			if err != nil {
				return err
			}
			th, err := loadTheme(cfg)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("addr") && cfg.Server.Addr != "" {
				addr = cfg.Server.Addr
			}
			if !cmd.Flags().Changed("origin") && len(cfg.Server.Origins) > 0 {
				origins = cfg.Server.Origins
			}

			engine := game.NewEngine(newGenerator(f.seed))
			state, err := engine.Start(settings)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(cmd.OutOrStdout(), "listening on http://%s\n", addr)
			return server.New(engine, state, th).ListenAndServe(ctx, addr, origins)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "listen address")
	cmd.Flags().StringSliceVar(&origins, "origin", []string{"http://localhost:5173"}, "allowed CORS origins")
	return cmd
}
