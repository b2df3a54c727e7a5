package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"windisplay/internal/display"
)

var brightnessCmd = &cobra.Command{
	Use:   "brightness",
	Short: "Read or change monitor brightness",
}

var brightnessGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the brightness of a monitor",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := target()
		if err != nil {
			return err
		}
		r, err := ctrl.Brightness(cmd.Context(), name)
		if err != nil {
			return err
		}
		if verbose {
			fmt.Printf("%d (min %d, max %d)\n", r.Current, r.Min, r.Max)
			return nil
		}
		fmt.Println(r.Current)
		return nil
	},
}

var brightnessSetCmd = &cobra.Command{
	Use:   "set <percent>",
	Short: "Set the brightness of a monitor",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pct, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil || pct > 100 {
			return fmt.Errorf("brightness must be 0-100, got %q", args[0])
		}
		name, err := target()
		if err != nil {
			return err
		}
		if err := ctrl.SetBrightness(cmd.Context(), name, uint32(pct)); err != nil {
			printError(fmt.Sprintf("Failed to set brightness on %s: %v", name, err))
			return err
		}
		successColor.Printf("✓ %s brightness set to %d\n", name, pct)
		return nil
	},
}

var brightnessAdjustCmd = &cobra.Command{
	Use:   "adjust <delta>",
	Short: "Shift the brightness of every monitor",
	Long:  "Shift the brightness of every monitor by a signed delta, e.g. +10 or -- -5. Results are clamped to 0-100.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		delta, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid delta %q: %w", args[0], err)
		}
		if err := display.AdjustBrightnessAll(cmd.Context(), ctrl, delta); err != nil {
			printError(err.Error())
			return err
		}
		successColor.Printf("✓ brightness adjusted by %+d\n", delta)
		return nil
	},
}

func init() {
	addMonitorFlags(brightnessGetCmd)
	addMonitorFlags(brightnessSetCmd)
	brightnessCmd.AddCommand(brightnessGetCmd, brightnessSetCmd, brightnessAdjustCmd)
	rootCmd.AddCommand(brightnessCmd)
}
