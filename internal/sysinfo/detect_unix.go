//go:build linux || darwin

package sysinfo

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"golang.org/x/sys/unix"

	"windisplay/internal/fallback"
)

// Detect reports the kernel from uname and the distribution from
// os-release/lsb-release, or sw_vers on macOS.
func (d *Detector) Detect() (Info, error) {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return Info{OS: d.osType}, fmt.Errorf("uname: %w", err)
	}

	base := Info{
		OS:           d.osType,
		Kernel:       unix.ByteSliceToString(uts.Release[:]),
		Architecture: unix.ByteSliceToString(uts.Machine[:]),
	}
	probe := func(fn func(*Info) error) func() (Info, fallback.Outcome, error) {
		return fallback.Value(func() (Info, error) {
			info := base
			if err := fn(&info); err != nil {
				return Info{}, err
			}
			return info, nil
		})
	}
	releaseFile := func(path string, parse func(*os.File, *Info) error) func(*Info) error {
		return func(info *Info) error {
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()
			return parse(f, info)
		}
	}

	chain := fallback.New[Info]()
	if runtime.GOOS == "darwin" {
		chain.Then("sw_vers", probe(func(info *Info) error {
			out, err := exec.Command("sw_vers").Output()
			if err != nil {
				return fmt.Errorf("sw_vers command failed: %w", err)
			}
			return parseSWVers(string(out), info)
		}))
	} else {
		chain.
			Then("os-release", probe(releaseFile("/etc/os-release", func(f *os.File, info *Info) error {
				return parseOSRelease(f, info)
			}))).
			Then("lsb-release", probe(releaseFile("/etc/lsb-release", func(f *os.File, info *Info) error {
				return parseLSBRelease(f, info)
			})))
	}
	chain.Then("uname", fallback.Const(withKernelName(base, uts)))

	info, source, err := chain.Run()
	if err != nil {
		return base, err
	}
	info.Source = source
	return info, nil
}

func withKernelName(info Info, uts unix.Utsname) Info {
	info.ProductName = unix.ByteSliceToString(uts.Sysname[:])
	return info
}
