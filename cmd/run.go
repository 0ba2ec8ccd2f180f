package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/abhisek/arbor/internal/app"
	"github.com/abhisek/arbor/internal/config"
	"github.com/abhisek/arbor/internal/diagnosis"
	"github.com/abhisek/arbor/internal/lessons"
	"github.com/abhisek/arbor/internal/llm"
	"github.com/abhisek/arbor/internal/store"
	"github.com/abhisek/arbor/internal/tutor"
	"github.com/spf13/cobra"
)

// buildProvider returns nil when no provider can be built. The reason is
// reported through warn so the caller can carry on offline.
func buildProvider(ctx context.Context, cfg config.Config, events store.EventRepo, warn func(error)) llm.Provider {
	if err := cfg.LLM.Validate(); err != nil {
		warn(err)
		return nil
	}
	var logger llm.EventLogger
	if events != nil {
		logger = events
	}
	provider, err := llm.NewProvider(ctx, cfg.LLM, logger)
	if err != nil {
		warn(err)
		return nil
	}
	return provider
}

func tutorConfig(cfg config.Config) tutor.Config {
	tc := tutor.DefaultConfig()
	tc.HistoryLimit = cfg.Practice.HistoryLimit
	if tc.HistoryKeep >= tc.HistoryLimit {
		tc.HistoryKeep = tc.HistoryLimit / 2
	}
	return tc
}

func stderrWarn(err error) {
	fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
	fmt.Fprintln(os.Stderr, "The tutor will answer offline.")
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	st, cfg, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	eventRepo := st.EventRepo()
	// The TUI logs nothing to the terminal it draws on.
	logger := slog.New(slog.DiscardHandler)
	skip, _ := cmd.Flags().GetBool("skip-welcome")
	opts := app.Options{
		Events:      eventRepo,
		Snapshots:   st.SnapshotRepo(),
		Progress:    st.ProgressRepo(),
		Config:      cfg,
		Logger:      logger,
		SkipWelcome: skip,
	}

	provider := buildProvider(ctx, cfg, eventRepo, stderrWarn)
	diagService := diagnosis.NewService(provider)
	defer diagService.Close()
	opts.Diagnosis = diagService
	opts.Lessons = lessons.NewService(provider, lessons.DefaultConfig())

	tutorOpts := []tutor.Option{tutor.WithConfig(tutorConfig(cfg)), tutor.WithLogger(logger)}
	if provider != nil {
		opts.Compressor = lessons.NewCompressor(provider, lessons.DefaultCompressorConfig())
		tutorOpts = append(tutorOpts, tutor.WithCompressor(opts.Compressor))
	}
	// Practice sessions diagnose answers themselves; the tutor only words
	// the explanation.
	opts.Tutor = tutor.New(provider, tutorOpts...)

	return app.Run(opts)
}
