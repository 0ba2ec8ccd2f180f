package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/abhisek/arbor/internal/ui/canvas"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const (
	defaultSampleWidth  = 60
	defaultSampleHeight = 20
)

// sampleSize picks the drawing size: explicit flags first, then the
// terminal, then a fixed fallback.
func sampleSize(cmd *cobra.Command) (int, int) {
	width, _ := cmd.Flags().GetInt("width")
	height, _ := cmd.Flags().GetInt("height")
	if width > 0 && height > 0 {
		return width, height
	}
	tw, th := defaultSampleWidth, defaultSampleHeight
	if fd := int(os.Stdout.Fd()); term.IsTerminal(fd) {
		if w, h, err := term.GetSize(fd); err == nil {
			tw, th = w-2, h-4
		}
	}
	if width <= 0 {
		width = tw
	}
	if height <= 0 {
		height = th
	}
	return max(width, 10), max(height, 5)
}

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Draw the planted trees in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		spec, err := specFromFlags(cmd)
		if err != nil {
			return err
		}
		ascii, _ := cmd.Flags().GetBool("ascii")
		asJSON, _ := cmd.Flags().GetBool("json")

		opts := canvas.DefaultOptions()
		if ascii || !term.IsTerminal(int(os.Stdout.Fd())) {
			opts = canvas.ASCIIOptions()
		}
		width, height := sampleSize(cmd)
		drawing, res := canvas.Draw(spec, width, height, opts)

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}

		fmt.Println(drawing)
		if res.Err != nil {
			return fmt.Errorf("no even planting: %w", res.Err)
		}
		fmt.Printf("%s: %d trees\n", spec, res.Count)
		return nil
	},
}

func init() {
	addSpecFlags(sampleCmd)
	sampleCmd.Flags().Int("width", 0, "Drawing width in columns (default: terminal width)")
	sampleCmd.Flags().Int("height", 0, "Drawing height in rows (default: terminal height)")
	sampleCmd.Flags().Bool("ascii", false, "Draw with plain ASCII glyphs")
	sampleCmd.Flags().Bool("json", false, "Print the sampled points as JSON instead of drawing")
}
