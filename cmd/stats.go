package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/arbor/internal/store"
	"github.com/abhisek/arbor/internal/tutor"
	"github.com/spf13/cobra"
)

const statsSessionLimit = 10

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		events := st.EventRepo()

		acc, err := events.AccuracyByMode(ctx)
		if err != nil {
			return err
		}
		sessions, err := events.QuerySessionSummaries(ctx, store.QueryOpts{Limit: statsSessionLimit})
		if err != nil {
			return err
		}
		best, err := events.BestGameScore(ctx)
		if err != nil {
			return err
		}

		if len(acc) == 0 && len(sessions) == 0 && best == 0 {
			fmt.Println("Nothing recorded yet. Run `arbor` to start practising.")
			return nil
		}

		fmt.Println("Accuracy by Boundary Mode")
		fmt.Println(strings.Repeat("─", 44))
		fmt.Printf("%-8s  %8s  %8s  %8s\n", "Mode", "Attempts", "Correct", "Rate")
		var attempts, correct int
		for _, a := range acc {
			fmt.Printf("%-8s  %8d  %8d  %7.0f%%\n", a.Mode, a.Attempts, a.Correct, a.Rate()*100)
			attempts += a.Attempts
			correct += a.Correct
		}
		fmt.Println(strings.Repeat("─", 44))
		total := store.ModeAccuracy{Attempts: attempts, Correct: correct}
		fmt.Printf("%-8s  %8d  %8d  %7.0f%%\n", "TOTAL", attempts, correct, total.Rate()*100)

		if len(sessions) > 0 {
			fmt.Println()
			fmt.Println("Recent Sessions")
			fmt.Println(strings.Repeat("─", 44))
			for _, s := range sessions {
				fmt.Printf("%-19s  %3d/%-3d  %s\n",
					s.Timestamp.Local().Format("2006-01-02 15:04:05"),
					s.CorrectAnswers, s.QuestionsServed,
					tutor.FormatDuration(time.Duration(s.DurationSecs)*time.Second))
			}
		}

		fmt.Println()
		fmt.Printf("Best planting game score: %d\n", best)
		return nil
	},
}
