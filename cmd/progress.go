package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/abhisek/arbor/internal/store"
	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show, export or clear the learner's progress record",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		all, err := st.ProgressRepo().All(cmd.Context())
		if err != nil {
			return fmt.Errorf("read progress: %w", err)
		}
		if len(all) == 0 {
			fmt.Println("No progress recorded yet.")
			return nil
		}
		for _, k := range slices.Sorted(maps.Keys(all)) {
			v := all[k]
			if k == store.KeyLearnerProfile {
				v = "(run `arbor lessons --profile`)"
			}
			fmt.Printf("%-20s  %s\n", k, v)
		}
		return nil
	},
}

// progressExport is the file written by `progress export`.
type progressExport struct {
	ExportedAt time.Time                    `json:"exported_at"`
	Progress   map[string]string            `json:"progress"`
	Accuracy   []store.ModeAccuracy         `json:"accuracy"`
	Sessions   []store.SessionSummaryRecord `json:"sessions"`
	BestGame   int                          `json:"best_game_score"`
}

var progressExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write progress, accuracy and session history to a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		events := st.EventRepo()
		exp := progressExport{ExportedAt: time.Now().UTC()}
		if exp.Progress, err = st.ProgressRepo().All(ctx); err != nil {
			return fmt.Errorf("read progress: %w", err)
		}
		if exp.Accuracy, err = events.AccuracyByMode(ctx); err != nil {
			return err
		}
		if exp.Sessions, err = events.QuerySessionSummaries(ctx, store.QueryOpts{}); err != nil {
			return err
		}
		if exp.BestGame, err = events.BestGameScore(ctx); err != nil {
			return err
		}

		data, err := json.MarshalIndent(exp, "", "  ")
		if err != nil {
			return fmt.Errorf("encode export: %w", err)
		}
		if err := atomic.WriteFile(args[0], bytes.NewReader(append(data, '\n'))); err != nil {
			return fmt.Errorf("write %s: %w", args[0], err)
		}
		fmt.Printf("Exported %d sessions to %s\n", len(exp.Sessions), args[0])
		return nil
	},
}

var progressClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the progress record but keep the event history",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.ProgressRepo().Clear(cmd.Context()); err != nil {
			return fmt.Errorf("clear progress: %w", err)
		}
		fmt.Println("Progress cleared.")
		return nil
	},
}

func init() {
	progressCmd.AddCommand(progressExportCmd)
	progressCmd.AddCommand(progressClearCmd)
}
