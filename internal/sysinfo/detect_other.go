//go:build !windows && !linux && !darwin

package sysinfo

import (
	"fmt"
	"runtime"
)

func (d *Detector) Detect() (Info, error) {
	return Info{OS: d.osType, Architecture: goArchitecture()},
		fmt.Errorf("OS detection not implemented for %s", runtime.GOOS)
}
