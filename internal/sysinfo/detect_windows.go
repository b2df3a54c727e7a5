package sysinfo

import (
	"fmt"
	"os"
	"os/exec"

	"golang.org/x/sys/windows/registry"

	"windisplay/internal/fallback"
)

// Detect probes the registry first and falls back to systeminfo, wmic and
// ver in that order.
func (d *Detector) Detect() (Info, error) {
	probe := func(fn func(*Info) error) func() (Info, fallback.Outcome, error) {
		return fallback.Value(func() (Info, error) {
			info := Info{OS: OSWindows}
			if err := fn(&info); err != nil {
				return Info{}, err
			}
			if info.Architecture == "" {
				info.Architecture = windowsArchitecture()
			}
			return info, nil
		})
	}

	info, source, err := fallback.New[Info]().
		Then("registry", probe(readRegistry)).
		Then("systeminfo", probe(func(info *Info) error {
			out, err := exec.Command("systeminfo").Output()
			if err != nil {
				return fmt.Errorf("systeminfo command failed: %w", err)
			}
			return parseSystemInfo(string(out), info)
		})).
		Then("wmic", probe(func(info *Info) error {
			out, err := exec.Command("wmic", "os", "get", "Caption,Version,BuildNumber,OSArchitecture", "/format:list").Output()
			if err != nil {
				return fmt.Errorf("wmic command failed: %w", err)
			}
			return parseWMIC(string(out), info)
		})).
		Then("ver", probe(func(info *Info) error {
			out, err := exec.Command("cmd", "/c", "ver").Output()
			if err != nil {
				return fmt.Errorf("ver command failed: %w", err)
			}
			return parseVer(string(out), info)
		})).
		Run()
	if err != nil {
		return Info{}, fmt.Errorf("could not detect Windows system information: %w", err)
	}
	info.Source = source
	return info, nil
}

func readRegistry(info *Info) error {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE, `SOFTWARE\Microsoft\Windows NT\CurrentVersion`, registry.QUERY_VALUE)
	if err != nil {
		return fmt.Errorf("failed to open registry key: %w", err)
	}
	defer key.Close()

	read := func(name string, dst *string) {
		if v, _, err := key.GetStringValue(name); err == nil {
			*dst = v
		}
	}
	read("ProductName", &info.ProductName)
	read("CurrentVersion", &info.Version)
	read("CurrentBuild", &info.Build)
	// Windows 10 20H1+
	read("DisplayVersion", &info.DisplayVersion)
	read("EditionID", &info.Edition)

	// CurrentVersion is frozen at 6.3; prefer the real major.minor when present.
	major, _, errMajor := key.GetIntegerValue("CurrentMajorVersionNumber")
	minor, _, errMinor := key.GetIntegerValue("CurrentMinorVersionNumber")
	if errMajor == nil && errMinor == nil {
		info.Version = fmt.Sprintf("%d.%d", major, minor)
		if info.Build != "" {
			info.Version += "." + info.Build
		}
	}

	if info.ProductName == "" && info.Version == "" && info.Build == "" {
		return fmt.Errorf("no useful information found in registry")
	}
	return nil
}

func windowsArchitecture() string {
	if arch := os.Getenv("PROCESSOR_ARCHITECTURE"); arch != "" {
		return arch
	}
	if arch := os.Getenv("PROCESSOR_ARCHITEW6432"); arch != "" {
		return arch
	}
	return goArchitecture()
}
