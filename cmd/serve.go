package cmd

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/abhisek/arbor/internal/diagnosis"
	"github.com/abhisek/arbor/internal/lessons"
	"github.com/abhisek/arbor/internal/server"
	"github.com/abhisek/arbor/internal/tutor"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the tutor as a JSON HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, cfg, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}
		if origin, _ := cmd.Flags().GetString("allow-origin"); origin != "" {
			cfg.Server.AllowOrigin = origin
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		events := st.EventRepo()
		provider := buildProvider(ctx, cfg, events, func(err error) {
			logger.Warn("LLM provider not configured, serving offline replies", "err", err)
		})
		diag := diagnosis.NewService(provider)
		defer diag.Close()

		opts := []tutor.Option{
			tutor.WithConfig(tutorConfig(cfg)),
			tutor.WithLogger(logger),
			tutor.WithDiagnosis(diag),
		}
		if provider != nil {
			opts = append(opts, tutor.WithCompressor(lessons.NewCompressor(provider, lessons.DefaultCompressorConfig())))
		}
		t := tutor.New(provider, opts...)

		srv := server.New(t, cfg.Server, server.WithLogger(logger), server.WithEvents(events))
		return srv.ListenAndServe(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default from config, 127.0.0.1:8000)")
	serveCmd.Flags().String("allow-origin", "", "Access-Control-Allow-Origin value")
}
