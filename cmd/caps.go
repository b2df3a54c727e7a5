package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"windisplay/internal/ddc"
)

var rawCaps bool

var capsCmd = &cobra.Command{
	Use:   "caps",
	Short: "Show the DDC/CI capabilities of a monitor",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := target()
		if err != nil {
			return err
		}
		raw, err := ctrl.Capabilities(name)
		if err != nil {
			printError(fmt.Sprintf("Failed to read capabilities of %s: %v", name, err))
			return err
		}
		if rawCaps {
			fmt.Println(raw)
			return nil
		}

		caps := ddc.ParseCapabilities(raw)
		field("Model", caps.Model)
		field("Type", caps.Type)
		codes := make([]string, 0, caps.Codes.Cardinality())
		for _, c := range caps.SortedCodes() {
			codes = append(codes, fmt.Sprintf("%02X", c))
		}
		field("VCP codes", strings.Join(codes, " "))
		field("Inputs", strings.Join(caps.Inputs(), ", "))
		field("Power", fmt.Sprint(caps.Supports(ddc.VCPPowerMode)))
		return nil
	},
}

func init() {
	addMonitorFlags(capsCmd)
	capsCmd.Flags().BoolVar(&rawCaps, "raw", false, "print the raw capability string")
	rootCmd.AddCommand(capsCmd)
}
