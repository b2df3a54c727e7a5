package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var refresh uint32

var resolutionCmd = &cobra.Command{
	Use:   "resolution <width> <height>",
	Short: "Change the resolution of a monitor",
	Long:  "Change the resolution of a monitor to one of its advertised modes. Without --refresh the highest matching refresh rate is used.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := parseDim(args[0])
		if err != nil {
			return err
		}
		h, err := parseDim(args[1])
		if err != nil {
			return err
		}
		var rate *uint32
		if cmd.Flags().Changed("refresh") {
			rate = &refresh
		}

		name, err := target()
		if err != nil {
			return err
		}
		if err := ctrl.SetResolution(name, w, h, rate); err != nil {
			printError(fmt.Sprintf("Failed to set %dx%d on %s: %v", w, h, name, err))
			return err
		}
		successColor.Printf("✓ %s set to %dx%d\n", name, w, h)
		return nil
	},
}

var orientationCmd = &cobra.Command{
	Use:   "orientation <degrees>",
	Short: "Rotate a monitor to 0, 90, 180 or 270 degrees",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deg, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid orientation %q: %w", args[0], err)
		}
		name, err := target()
		if err != nil {
			return err
		}
		if err := ctrl.SetOrientation(name, uint32(deg)); err != nil {
			printError(fmt.Sprintf("Failed to rotate %s: %v", name, err))
			return err
		}
		successColor.Printf("✓ %s rotated to %d°\n", name, deg)
		return nil
	},
}

func parseDim(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil || v == 0 {
		return 0, fmt.Errorf("invalid dimension %q", s)
	}
	return uint32(v), nil
}

func init() {
	addMonitorFlags(resolutionCmd)
	resolutionCmd.Flags().Uint32Var(&refresh, "refresh", 0, "refresh rate in Hz")
	addMonitorFlags(orientationCmd)
	rootCmd.AddCommand(resolutionCmd, orientationCmd)
}
