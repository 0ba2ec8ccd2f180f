package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/abhisek/arbor/internal/planting"
	"github.com/spf13/cobra"
)

type countOutput struct {
	Spec     planting.SpacingSpec `json:"spec"`
	Count    int                  `json:"count"`
	Feasible bool                 `json:"feasible"`
	Reason   string               `json:"reason,omitempty"`
	Steps    []string             `json:"steps"`
}

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Compute how many trees a spacing needs",
	Example: `  arbor count -l 100 -i 10 -m both
  arbor count -l 60 -i 5 -s square --strict`,
	RunE: func(cmd *cobra.Command, args []string) error {
		spec, err := specFromFlags(cmd)
		if err != nil {
			return err
		}
		strict, _ := cmd.Flags().GetBool("strict")
		asJSON, _ := cmd.Flags().GetBool("json")

		count, err := planting.ComputeCount(spec)
		if strict {
			count, err = planting.ComputeCountStrict(spec)
		}
		out := countOutput{Spec: spec, Steps: planting.SolvingSteps(spec)}
		if err != nil {
			out.Reason = err.Error()
		} else {
			out.Count, out.Feasible = count, true
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		}

		fmt.Println(planting.Narrate(spec))
		fmt.Println()
		for i, step := range out.Steps {
			fmt.Printf("%d. %s\n", i+1, step)
		}
		fmt.Println()
		if !out.Feasible {
			return fmt.Errorf("no even planting: %s", out.Reason)
		}
		fmt.Printf("Trees: %d\n", out.Count)
		return nil
	},
}

func init() {
	addSpecFlags(countCmd)
	countCmd.Flags().Bool("strict", false, "Require the interval to divide the length exactly on closed shapes")
	countCmd.Flags().Bool("json", false, "Print the result as JSON")
}
