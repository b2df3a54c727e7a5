package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var switchCmd = &cobra.Command{
	Use:     "switch [input]",
	Aliases: []string{"set-input"},
	Short:   "Switch monitor input",
	Long:    "Switch a monitor to a specified input (hdmi1, dp2, usb-c, a hex code such as 0x11, ...)",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := target()
		if err != nil {
			return err
		}
		if err := ctrl.SetInputSource(name, args[0]); err != nil {
			printError(fmt.Sprintf("Failed to switch %s to %s: %v", name, args[0], err))
			return err
		}
		successColor.Printf("✓ %s switched to %s\n", name, args[0])
		return nil
	},
}

var getInputCmd = &cobra.Command{
	Use:   "get-input",
	Short: "Show the active input of a monitor",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := target()
		if err != nil {
			return err
		}
		input, err := ctrl.InputSource(name)
		if err != nil {
			return err
		}
		fmt.Println(input)
		return nil
	},
}

func init() {
	addMonitorFlags(switchCmd)
	addMonitorFlags(getInputCmd)
	rootCmd.AddCommand(switchCmd, getInputCmd)
}
