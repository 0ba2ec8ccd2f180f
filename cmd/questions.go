package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/abhisek/arbor/internal/planting"
	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"
)

const maxQuestions = 100

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Generate a batch of practice questions as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		seed, _ := cmd.Flags().GetInt64("seed")
		out, _ := cmd.Flags().GetString("out")

		if count < 1 || count > maxQuestions {
			return fmt.Errorf("count must be between 1 and %d, got %d", maxQuestions, count)
		}
		if !cmd.Flags().Changed("seed") {
			seed = time.Now().UnixNano()
		}

		gen := planting.NewGenerator(planting.NewRand(uint64(seed)))
		batch := gen.GenerateBatch(count)

		data, err := json.MarshalIndent(batch, "", "  ")
		if err != nil {
			return fmt.Errorf("encode questions: %w", err)
		}
		data = append(data, '\n')

		if out == "" {
			_, err := os.Stdout.Write(data)
			return err
		}
		if err := atomic.WriteFile(out, bytes.NewReader(data)); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %d questions to %s\n", len(batch), out)
		return nil
	},
}

func init() {
	questionsCmd.Flags().IntP("count", "n", 5, "Number of questions (1-100)")
	questionsCmd.Flags().Int64("seed", 0, "Random seed (default: current time)")
	questionsCmd.Flags().StringP("out", "o", "", "Write the batch to this file instead of stdout")
}
