package cmd

import (
	"fmt"

	"github.com/abhisek/arbor/internal/planting"
	"github.com/spf13/cobra"
)

// addSpecFlags registers the spacing parameters shared by count, sample
// and chat.
func addSpecFlags(cmd *cobra.Command) {
	cmd.Flags().Float64P("length", "l", 100, "Road length, side length or circumference")
	cmd.Flags().Float64P("interval", "i", 10, "Distance between neighbouring trees")
	cmd.Flags().StringP("mode", "m", planting.BothEnds.String(), "Boundary mode: both, none, one or loop")
	cmd.Flags().StringP("shape", "s", planting.Segment.String(), "Path shape: segment, circle, triangle or square")
}

// specFromFlags parses the spacing flags. Closed shapes are normalized to
// loop mode.
func specFromFlags(cmd *cobra.Command) (planting.SpacingSpec, error) {
	length, _ := cmd.Flags().GetFloat64("length")
	interval, _ := cmd.Flags().GetFloat64("interval")
	modeName, _ := cmd.Flags().GetString("mode")
	shapeName, _ := cmd.Flags().GetString("shape")

	mode, err := planting.ParseBoundaryMode(modeName)
	if err != nil {
		return planting.SpacingSpec{}, err
	}
	shape, err := planting.ParsePathShape(shapeName)
	if err != nil {
		return planting.SpacingSpec{}, err
	}
	spec := planting.SpacingSpec{Length: length, Interval: interval, Mode: mode, Shape: shape}.Normalize()
	if err := spec.Validate(); err != nil {
		return planting.SpacingSpec{}, fmt.Errorf("invalid parameters: %w", err)
	}
	return spec, nil
}
