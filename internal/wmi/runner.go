// Package wmi runs PowerShell scripts invisibly and decodes their JSON output.
package wmi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrNoPowerShell is returned when no candidate produced usable output.
var ErrNoPowerShell = errors.New("no PowerShell candidate produced output")

const prolog = "$ErrorActionPreference='SilentlyContinue'; " +
	"try { [Console]::OutputEncoding = New-Object System.Text.UTF8Encoding($false); " +
	"$global:OutputEncoding = [Console]::OutputEncoding } catch {}; "

// DefaultCandidates is the order in which PowerShell executables are tried.
var DefaultCandidates = []string{
	"pwsh",
	"powershell",
	`C:\Windows\Sysnative\WindowsPowerShell\v1.0\powershell.exe`,
	`C:\Windows\System32\WindowsPowerShell\v1.0\powershell.exe`,
}

const DefaultTimeout = 10 * time.Second

// ScriptRunner submits a script and returns its standard output.
type ScriptRunner interface {
	Run(ctx context.Context, script string) (string, error)
}

// Runner is the PowerShell-backed ScriptRunner.
type Runner struct {
	Candidates []string
	Timeout    time.Duration
}

func NewRunner(timeout time.Duration) *Runner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Runner{
		Candidates: DefaultCandidates,
		Timeout:    timeout,
	}
}

func args(script string) []string {
	return []string{
		"-NoProfile",
		"-NoLogo",
		"-NonInteractive",
		"-WindowStyle", "Hidden",
		"-ExecutionPolicy", "Bypass",
		"-Command", prolog + script,
	}
}

// Run tries each candidate in turn and returns the first non-empty stdout of a
// successful run.
func (r *Runner) Run(ctx context.Context, script string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	for _, exe := range r.Candidates {
		log := logrus.WithField("exe", exe)

		cmd := exec.CommandContext(ctx, exe, args(script)...)
		hideWindow(cmd)

		var stderr strings.Builder
		cmd.Stderr = &stderr
		out, err := cmd.Output()
		if err != nil {
			log.WithError(err).Debugln("powershell candidate failed")
			if ctx.Err() != nil {
				return "", fmt.Errorf("powershell: %w", ctx.Err())
			}
			continue
		}
		if stderr.Len() > 0 {
			log.WithField("stderr", stderr.String()).Warnln("powershell wrote to stderr")
		}
		if strings.TrimSpace(string(out)) == "" {
			log.Warnln("powershell returned empty output")
			continue
		}
		return string(out), nil
	}

	return "", ErrNoPowerShell
}

// DecodeRecords parses output that is empty, a single JSON object, or a JSON
// array of objects.
func DecodeRecords[T any](out string) ([]T, error) {
	trimmed := strings.TrimSpace(strings.TrimPrefix(out, "\ufeff"))
	if trimmed == "" {
		return nil, nil
	}

	if strings.HasPrefix(trimmed, "[") {
		var records []T
		if err := json.Unmarshal([]byte(trimmed), &records); err != nil {
			return nil, fmt.Errorf("decode record array: %w", err)
		}
		return records, nil
	}

	var record T
	if err := json.Unmarshal([]byte(trimmed), &record); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return []T{record}, nil
}
