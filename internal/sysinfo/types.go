// Package sysinfo describes the host operating system for the detect command.
package sysinfo

import (
	"fmt"
	"runtime"
	"strings"
)

// OSType represents the operating system type
type OSType string

const (
	OSLinux   OSType = "linux"
	OSMacOS   OSType = "darwin"
	OSWindows OSType = "windows"
)

// Info is what could be learned about the host.
type Info struct {
	OS             OSType
	ProductName    string // e.g. "Windows 11 Pro", "Ubuntu"
	Version        string // e.g. "10.0.22000", "22.04"
	Build          string // e.g. "22000"
	DisplayVersion string // e.g. "23H2"
	Edition        string // e.g. "Professional"
	Kernel         string // uname release on unix hosts
	Architecture   string // e.g. "AMD64", "x86_64"
	Source         string // which probe produced the info
}

func (i Info) String() string {
	parts := []string{i.ProductName}
	if i.DisplayVersion != "" {
		parts = append(parts, i.DisplayVersion)
	}
	if i.Version != "" {
		parts = append(parts, i.Version)
	}
	if i.Build != "" && !strings.Contains(i.Version, i.Build) {
		parts = append(parts, "build "+i.Build)
	}
	s := strings.TrimSpace(strings.Join(parts, " "))
	if i.Architecture != "" {
		s += " [" + i.Architecture + "]"
	}
	return s
}

// Detector is the main OS detection struct
type Detector struct {
	osType OSType
}

// NewDetector creates a new OS detector instance
func NewDetector() *Detector {
	return &Detector{
		osType: OSType(runtime.GOOS),
	}
}

// GetOSType returns the current operating system type
func (d *Detector) GetOSType() OSType {
	return d.osType
}

// GetOSInfo returns a one-line description of the host.
func (d *Detector) GetOSInfo() string {
	info, err := d.Detect()
	if err != nil {
		return fmt.Sprintf("Operating System: %s (Error: %v)", d.osType, err)
	}
	return fmt.Sprintf("Operating System: %s (%s)", d.osType, info)
}
