package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Get the current status of a monitor",
	Long:  "Retrieve the current status of a monitor: input source, brightness and power state.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := target()
		if err != nil {
			return err
		}
		keyColor.Println(name)

		if input, err := ctrl.InputSource(name); err != nil {
			field("Input", fmt.Sprintf("unavailable (%v)", err))
		} else {
			field("Input", input)
		}

		if r, err := ctrl.Brightness(cmd.Context(), name); err != nil {
			field("Brightness", fmt.Sprintf("unavailable (%v)", err))
		} else {
			field("Brightness", fmt.Sprintf("%d (range %d-%d)", r.Current, r.Min, r.Max))
		}

		power, err := ctrl.Power(name)
		if err != nil {
			return err
		}
		field("Power", power.String())

		displays, err := ctrl.List(cmd.Context())
		if err != nil {
			return err
		}
		for _, d := range displays {
			if d.DeviceName == name {
				field("HDR", d.HDR.String())
				field("Scale", fmt.Sprintf("%.0f%%", d.Scale*100))
			}
		}

		if verbose {
			opts, err := ctrl.ScaleOptions(name)
			if err != nil {
				field("Scale steps", fmt.Sprintf("unavailable (%v)", err))
				return nil
			}
			for _, o := range opts {
				if o.Recommended {
					field("Recommended", fmt.Sprintf("%d%%", o.Percent()))
				}
			}
		}
		return nil
	},
}

func init() {
	addMonitorFlags(statusCmd)
	rootCmd.AddCommand(statusCmd)
}
