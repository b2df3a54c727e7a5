package sysinfo

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"runtime"
	"strings"
)

var (
	systemInfoVersion = regexp.MustCompile(`(\d+\.\d+\.\d+).*Build (\d+)`)
	verVersion        = regexp.MustCompile(`Microsoft Windows \[Version ([^\]]+)\]`)
)

// parseKeyValues reads sep-separated key/value lines, skipping blanks and
// comments and stripping quotes from values.
func parseKeyValues(r io.Reader, sep string) (map[string]string, error) {
	values := map[string]string{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, sep, 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.Trim(strings.TrimSpace(parts[1]), `"'`)
		values[key] = value
	}
	return values, scanner.Err()
}

// parseOSRelease fills info from /etc/os-release content.
func parseOSRelease(r io.Reader, info *Info) error {
	kv, err := parseKeyValues(r, "=")
	if err != nil {
		return err
	}

	info.ProductName = kv["NAME"]
	info.Version = kv["VERSION_ID"]
	if info.Version == "" {
		info.Version = kv["VERSION"]
	}
	if pretty := kv["PRETTY_NAME"]; info.ProductName == "" {
		info.ProductName = pretty
	}

	if info.ProductName == "" && kv["ID"] == "" {
		return fmt.Errorf("no useful information found in os-release")
	}
	if info.ProductName == "" {
		info.ProductName = kv["ID"]
	}
	return nil
}

// parseLSBRelease fills info from /etc/lsb-release content.
func parseLSBRelease(r io.Reader, info *Info) error {
	kv, err := parseKeyValues(r, "=")
	if err != nil {
		return err
	}

	info.ProductName = kv["DISTRIB_ID"]
	info.Version = kv["DISTRIB_RELEASE"]
	if info.ProductName == "" {
		return fmt.Errorf("no useful information found in lsb-release")
	}
	return nil
}

// parseSWVers fills info from `sw_vers` output.
func parseSWVers(output string, info *Info) error {
	kv, err := parseKeyValues(strings.NewReader(output), ":")
	if err != nil {
		return err
	}

	info.ProductName = kv["ProductName"]
	info.Version = kv["ProductVersion"]
	info.Build = kv["BuildVersion"]
	if info.ProductName == "" && info.Version == "" {
		return fmt.Errorf("no useful information from sw_vers")
	}
	return nil
}

// parseSystemInfo fills info from `systeminfo` output.
func parseSystemInfo(output string, info *Info) error {
	kv, err := parseKeyValues(strings.NewReader(output), ":")
	if err != nil {
		return err
	}

	info.ProductName = kv["OS Name"]
	// "10.0.22000 N/A Build 22000"
	if m := systemInfoVersion.FindStringSubmatch(kv["OS Version"]); len(m) >= 3 {
		info.Version = m[1]
		info.Build = m[2]
	}
	if arch := kv["System Type"]; arch != "" {
		info.Architecture = arch
	}

	if info.ProductName == "" && info.Version == "" {
		return fmt.Errorf("no useful information from systeminfo")
	}
	return nil
}

// parseWMIC fills info from `wmic os get ... /format:list` output.
func parseWMIC(output string, info *Info) error {
	kv, err := parseKeyValues(strings.NewReader(output), "=")
	if err != nil {
		return err
	}

	info.ProductName = kv["Caption"]
	info.Version = kv["Version"]
	info.Build = kv["BuildNumber"]
	if arch := kv["OSArchitecture"]; arch != "" {
		info.Architecture = arch
	}

	if info.ProductName == "" && info.Version == "" {
		return fmt.Errorf("no useful information from WMI")
	}
	return nil
}

// parseVer fills info from `cmd /c ver` output.
func parseVer(output string, info *Info) error {
	m := verVersion.FindStringSubmatch(strings.TrimSpace(output))
	if len(m) < 2 {
		return fmt.Errorf("could not parse ver command output")
	}

	info.ProductName = "Microsoft Windows"
	info.Version = m[1]
	if parts := strings.Split(m[1], "."); len(parts) >= 3 {
		info.Build = parts[2]
	}
	return nil
}

// goArchitecture names runtime.GOARCH the way Windows does.
func goArchitecture() string {
	switch runtime.GOARCH {
	case "amd64":
		return "AMD64"
	case "386":
		return "x86"
	case "arm64":
		return "ARM64"
	case "arm":
		return "ARM"
	default:
		return runtime.GOARCH
	}
}
