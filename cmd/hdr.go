package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var hdrCmd = &cobra.Command{
	Use:       "hdr <on|off>",
	Short:     "Turn HDR (advanced color) on or off",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE: func(cmd *cobra.Command, args []string) error {
		enable, err := onOff(args[0])
		if err != nil {
			return err
		}
		name, err := target()
		if err != nil {
			return err
		}
		if err := ctrl.EnableHDR(name, enable); err != nil {
			printError(fmt.Sprintf("Failed to change HDR on %s: %v", name, err))
			return err
		}
		successColor.Printf("✓ %s HDR %s\n", name, args[0])
		return nil
	},
}

func init() {
	addMonitorFlags(hdrCmd)
	rootCmd.AddCommand(hdrCmd)
}
