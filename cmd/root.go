package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"windisplay/internal/config"
	"windisplay/internal/display"
)

var (
	cfgPath    string
	backend    string
	verbose    bool
	monitorIdx int
	monitor    string

	cfg           *config.Config
	ctrl          display.Controller
	activeBackend display.Backend

	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
	keyColor     = color.New(color.FgYellow)
)

var rootCmd = &cobra.Command{
	Use:   "windisplay [command]",
	Short: "A Windows display control tool",
	Long: `windisplay lists attached monitors and controls their resolution, orientation,
scaling, HDR, brightness, input source and power over GDI, DisplayConfig and DDC/CI.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default is <user config dir>/windisplay/config.toml)")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "controller backend: auto, hardware or fake (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// setup loads the config and builds the controller shared by all commands.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.InitConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if verbose {
		level = logrus.DebugLevel
	}
	logrus.SetLevel(level)

	name := cfg.Backend
	if backend != "" {
		name = backend
	}
	b, err := display.ParseBackend(name)
	if err != nil {
		return err
	}
	timeout, err := cfg.Timeout()
	if err != nil {
		return err
	}

	ctrl, err = display.New(b, display.Options{ScriptTimeout: timeout})
	if err != nil {
		return fmt.Errorf("creating %s controller: %w", b, err)
	}
	activeBackend = b
	logrus.WithField("backend", b).Debugln("controller ready")
	return nil
}

// addMonitorFlags registers the display selectors on commands that act on a
// single display.
func addMonitorFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&monitorIdx, "monitor-idx", "m", 0, "zero-based monitor index")
	cmd.Flags().StringVar(&monitor, "monitor", "", `device name, e.g. \\.\DISPLAY2 (overrides --monitor-idx)`)
}

// target resolves the selected display to its device name.
func target() (string, error) {
	if monitor != "" {
		return monitor, nil
	}
	return display.NameAt(ctrl, monitorIdx)
}

func printError(msg string) {
	errorColor.Fprintln(os.Stderr, "✗ "+msg)
}

func onOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "enable", "true", "1":
		return true, nil
	case "off", "disable", "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", s)
}
