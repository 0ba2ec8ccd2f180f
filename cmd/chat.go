package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/abhisek/arbor/internal/llm"
	"github.com/abhisek/arbor/internal/tutor"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const chatHelp = `Type a question and press enter.
  /new    start a new conversation
  /quit   leave (or Ctrl+D)`

// wrapWidth is the reply width on a terminal, or 0 when not attached to one.
func wrapWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w < 20 {
		return 0
	}
	return min(w-2, 100)
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the tutor about a tree-planting setup",
	RunE: func(cmd *cobra.Command, args []string) error {
		spec, err := specFromFlags(cmd)
		if err != nil {
			return err
		}
		practice, _ := cmd.Flags().GetBool("practice")

		st, cfg, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		provider := buildProvider(ctx, cfg, st.EventRepo(), stderrWarn)
		t := tutor.New(provider, tutor.WithConfig(tutorConfig(cfg)))

		send := t.Chat
		if practice {
			send = t.PracticeChat
		}
		state := tutor.State{Length: spec.Length, Interval: spec.Interval, Mode: spec.Mode, Shape: spec.Shape}

		line := liner.NewLiner()
		defer line.Close()
		line.SetCtrlCAborts(true)

		width := wrapWidth()
		reply := lipgloss.NewStyle()
		if width > 0 {
			reply = reply.Width(width)
		}

		fmt.Println(spec)
		fmt.Println(chatHelp)

		var history []llm.Message
		fresh := true
		for {
			input, err := line.Prompt("you> ")
			if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			input = strings.TrimSpace(input)
			switch input {
			case "":
				continue
			case "/quit", "/exit":
				return nil
			case "/new":
				history, fresh = nil, true
				fmt.Println("Started a new conversation.")
				continue
			}
			line.AppendHistory(input)

			resp, err := send(ctx, tutor.ChatRequest{
				Message:         input,
				State:           state,
				History:         history,
				NewConversation: fresh,
			})
			if err != nil {
				fmt.Fprintln(os.Stderr, "error:", err)
				continue
			}
			history, fresh = resp.UpdatedHistory, false
			fmt.Println()
			fmt.Println(reply.Render("tutor> " + resp.Reply))
			fmt.Println()
		}
	},
}

func init() {
	addSpecFlags(chatCmd)
	chatCmd.Flags().Bool("practice", false, "Use the practice assistant, which hints without giving the answer")
}
