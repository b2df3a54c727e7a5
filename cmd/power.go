package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var powerCmd = &cobra.Command{
	Use:       "power [on|off]",
	Short:     "Show or change the DDC/CI power state of a monitor",
	Long:      "Without an argument prints the power state (on, off or no-ddc). With on or off, switches the monitor through VCP 0xD6.",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := target()
		if err != nil {
			return err
		}
		if len(args) == 0 {
			status, err := ctrl.Power(name)
			if err != nil {
				return err
			}
			fmt.Println(status)
			return nil
		}

		on, err := onOff(args[0])
		if err != nil {
			return err
		}
		if err := ctrl.SetPower(name, on); err != nil {
			printError(fmt.Sprintf("Failed to power %s %s: %v", name, args[0], err))
			return err
		}
		successColor.Printf("✓ %s powered %s\n", name, args[0])
		return nil
	},
}

func init() {
	addMonitorFlags(powerCmd)
	rootCmd.AddCommand(powerCmd)
}
