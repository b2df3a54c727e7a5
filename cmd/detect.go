package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"windisplay/internal/ddc"
	"windisplay/internal/sysinfo"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detects the host and its monitors",
	Long:  "Reports the operating system, the active backend and, for each monitor, whether it answers DDC/CI.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		detector := sysinfo.NewDetector()
		infoColor.Println(detector.GetOSInfo())
		if verbose {
			if info, err := detector.Detect(); err == nil {
				field("Source", info.Source)
				if info.Kernel != "" {
					field("Kernel", info.Kernel)
				}
			}
		}
		field("Backend", string(activeBackend))
		if detector.GetOSType() != sysinfo.OSWindows {
			field("Note", "hardware control needs Windows; only the fake backend is available")
		}
		field("Config", cfg.Path())

		names, err := ctrl.Names()
		if err != nil {
			printError(fmt.Sprintf("Failed to enumerate displays: %v", err))
			return err
		}
		for i, name := range names {
			keyColor.Printf("Monitor %d: ", i+1)
			fmt.Print(name)
			power, err := ctrl.Power(name)
			if err != nil || power == ddc.PowerNoDDC {
				fmt.Println("  [no DDC/CI]")
				continue
			}
			successColor.Printf("  [DDC/CI, %s]\n", power)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(detectCmd)
}
