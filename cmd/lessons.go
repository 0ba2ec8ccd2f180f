package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/arbor/internal/lessons"
	"github.com/abhisek/arbor/internal/planting"
	"github.com/abhisek/arbor/internal/store"
	"github.com/spf13/cobra"
)

const profileErrorLimit = 200

var lessonsCmd = &cobra.Command{
	Use:   "lessons [mode]",
	Short: "Show the syllabus, a lesson for one boundary mode, or a learner profile",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, _ := cmd.Flags().GetBool("profile")
		if len(args) == 0 && !profile {
			printSyllabus()
			return nil
		}

		st, cfg, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		events := st.EventRepo()
		provider := buildProvider(ctx, cfg, events, stderrWarn)

		if profile {
			if provider == nil {
				return errors.New("a learner profile needs an LLM provider")
			}
			return printProfile(ctx, lessons.NewCompressor(provider, lessons.DefaultCompressorConfig()), events, st.ProgressRepo())
		}

		mode, err := planting.ParseBoundaryMode(args[0])
		if err != nil {
			return err
		}
		input := lessons.LessonInput{Mode: mode, Shape: planting.Segment}
		if mode == planting.Loop {
			input.Shape = planting.Circle
		}
		if acc, err := events.AccuracyByMode(ctx); err == nil {
			for _, a := range acc {
				if a.Mode == mode.String() {
					input.Accuracy = a.Rate()
				}
			}
		}

		lesson, err := lessons.NewService(provider, lessons.DefaultConfig()).Generate(ctx, input)
		if lesson == nil {
			return fmt.Errorf("generate lesson: %w", err)
		}
		if err != nil {
			fmt.Println("(offline lesson:", err.Error()+")")
		}
		printLesson(lesson)
		return nil
	},
}

func printSyllabus() {
	fmt.Println("Syllabus")
	fmt.Println(strings.Repeat("─", 60))
	for i, title := range planting.Syllabus() {
		fmt.Printf("%2d. %s\n", i+1, title)
	}
	fmt.Println()
	for _, c := range planting.Concepts() {
		fmt.Printf("%-5s %s\n", c.Mode, c.Title)
		fmt.Printf("      %s\n", c.Idea)
		fmt.Printf("      %s\n\n", c.Formula)
	}
}

func printLesson(l *lessons.Lesson) {
	sep := strings.Repeat("─", 60)
	fmt.Println(l.Title)
	fmt.Println(sep)
	fmt.Println(l.Explanation)
	fmt.Println()
	fmt.Println("Worked example")
	fmt.Println(l.WorkedExample)
	fmt.Println()
	fmt.Println("Try it")
	fmt.Println(l.Practice.Text)
	fmt.Printf("Answer: %d\n", l.Practice.Answer)
	if l.Practice.Explanation != "" {
		fmt.Println(l.Practice.Explanation)
	}
}

// printProfile builds a learner profile from the answer history and keeps
// it as the starting point for the next one.
func printProfile(ctx context.Context, c *lessons.Compressor, events store.EventRepo, progress store.ProgressRepo) error {
	acc, err := events.AccuracyByMode(ctx)
	if err != nil {
		return err
	}
	if len(acc) == 0 {
		fmt.Println("No answers recorded yet.")
		return nil
	}
	input := lessons.ProfileInput{
		ModeResults:  make(map[string]lessons.ModeResultSummary, len(acc)),
		ErrorHistory: make(map[string][]string),
	}
	for _, a := range acc {
		input.ModeResults[a.Mode] = lessons.ModeResultSummary{Attempted: a.Attempts, Correct: a.Correct}
	}

	answers, err := events.QueryAnswerEvents(ctx, store.QueryOpts{Limit: profileErrorLimit})
	if err != nil {
		return err
	}
	for _, a := range answers {
		if a.Correct {
			continue
		}
		input.ErrorHistory[a.Mode] = append(input.ErrorHistory[a.Mode],
			fmt.Sprintf("%s length %g every %g: answered %d, correct %d",
				a.Shape, a.Length, a.Interval, a.LearnerAnswer, a.CorrectAnswer))
	}

	sessions, err := events.QuerySessionSummaries(ctx, store.QueryOpts{})
	if err != nil {
		return err
	}
	input.SessionCount = len(sessions)

	if raw, ok, err := progress.Get(ctx, store.KeyLearnerProfile); err == nil && ok {
		var prev lessons.LearnerProfile
		if json.Unmarshal([]byte(raw), &prev) == nil {
			input.PreviousProfile = &prev
		}
	}

	p, err := c.GenerateProfile(ctx, input)
	if err != nil {
		return err
	}
	if data, err := json.Marshal(p); err == nil {
		if err := progress.Set(ctx, store.KeyLearnerProfile, string(data)); err != nil {
			return fmt.Errorf("save profile: %w", err)
		}
	}

	fmt.Println(p.Summary)
	printList("Strengths", p.Strengths)
	printList("Needs work", p.Weaknesses)
	printList("Patterns", p.Patterns)
	return nil
}

func printList(title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Println()
	fmt.Println(title)
	for _, it := range items {
		fmt.Println("  -", it)
	}
}

func init() {
	lessonsCmd.Flags().Bool("profile", false, "Generate a learner profile from recorded answers (needs an LLM)")
}
