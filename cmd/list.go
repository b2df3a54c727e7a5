package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"windisplay/internal/display"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists attached displays",
	Long:  "Lists every attached display with its identity, current mode, scale and HDR state. With --verbose, every advertised mode and scale step is shown too.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		displays, err := ctrl.List(cmd.Context())
		if err != nil {
			printError(fmt.Sprintf("Failed to list displays: %v", err))
			return err
		}
		if len(displays) == 0 {
			infoColor.Println("No displays found")
			return nil
		}

		for i, d := range displays {
			brightness := "unavailable"
			if r, err := ctrl.Brightness(cmd.Context(), d.DeviceName); err == nil {
				brightness = fmt.Sprint(r.Current)
			}
			printDisplay(i, d, brightness)
		}
		return nil
	},
}

func printDisplay(i int, d display.Display, brightness string) {
	title := d.FriendlyName
	if d.Model != "" {
		title = strings.TrimSpace(d.Manufacturer + " " + d.Model)
	}
	keyColor.Printf("[%d] %s", i, d.DeviceName)
	fmt.Printf("  %s", title)
	if d.Primary {
		successColor.Print("  (primary)")
	}
	fmt.Println()

	field("Mode", fmt.Sprintf("%s at %d,%d, %d°", d.Current, d.Position.X, d.Position.Y, d.Orientation))
	field("Native", d.Native.String())
	field("Scale", fmt.Sprintf("%.0f%%", d.Scale*100))
	field("Brightness", brightness)
	field("HDR", d.HDR.String())
	if d.Connection != "" {
		conn := d.Connection
		if d.BuiltIn {
			conn += " (built-in)"
		}
		field("Connection", conn)
	}
	if d.Serial != "" {
		field("Serial", d.Serial)
	}
	if d.ManufactureYear > 0 {
		field("Manufactured", fmt.Sprintf("week %d, %d", d.ManufactureWeek, d.ManufactureYear))
	}
	power := "on"
	if !d.Enabled {
		power = "off"
	}
	field("Power", power)
	switch {
	case d.SupportsInputSwitch == nil:
		field("Input switch", "unknown")
	default:
		field("Input switch", fmt.Sprint(*d.SupportsInputSwitch))
	}

	if !verbose {
		return
	}
	if d.DeviceID != "" {
		field("Device ID", d.DeviceID)
	}
	steps := make([]string, 0, len(d.ScaleOptions))
	for _, o := range d.ScaleOptions {
		s := fmt.Sprintf("%d%%", o.Percent())
		if o.Recommended {
			s += "*"
		}
		steps = append(steps, s)
	}
	field("Scale steps", strings.Join(steps, " "))
	keyColor.Println("    Modes:")
	for _, m := range d.Modes {
		fmt.Printf("      %s\n", m)
	}
}

func field(key, value string) {
	keyColor.Printf("    %-13s", key+":")
	fmt.Println(value)
}

func init() {
	rootCmd.AddCommand(listCmd)
}
