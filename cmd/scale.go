package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var listScales bool

var scaleCmd = &cobra.Command{
	Use:   "scale [percent]",
	Short: "Show or change the DPI scale of a monitor",
	Long:  "Set the DPI scale of a monitor to one of its selectable steps, or list the steps with --list. The recommended step is marked with *.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := target()
		if err != nil {
			return err
		}

		if listScales || len(args) == 0 {
			opts, err := ctrl.ScaleOptions(name)
			if err != nil {
				return err
			}
			steps := make([]string, 0, len(opts))
			for _, o := range opts {
				s := fmt.Sprintf("%d%%", o.Percent())
				if o.Recommended {
					s += "*"
				}
				steps = append(steps, s)
			}
			fmt.Println(strings.Join(steps, " "))
			return nil
		}

		pct, err := strconv.ParseUint(strings.TrimSuffix(args[0], "%"), 10, 32)
		if err != nil {
			return fmt.Errorf("invalid scale %q: %w", args[0], err)
		}
		if err := ctrl.SetScale(name, uint32(pct)); err != nil {
			printError(fmt.Sprintf("Failed to scale %s to %d%%: %v", name, pct, err))
			return err
		}
		successColor.Printf("✓ %s scaled to %d%%\n", name, pct)
		return nil
	},
}

func init() {
	addMonitorFlags(scaleCmd)
	scaleCmd.Flags().BoolVarP(&listScales, "list", "l", false, "list selectable scale steps")
	rootCmd.AddCommand(scaleCmd)
}
