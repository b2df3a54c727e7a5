//go:build !windows

package wmi

import "os/exec"

func hideWindow(cmd *exec.Cmd) {}
