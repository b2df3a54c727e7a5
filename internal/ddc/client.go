package ddc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"windisplay/internal/fallback"
)

// Client implements DDCClient over an Opener, with an optional OS-level
// brightness fallback.
type Client struct {
	opener   Opener
	fallback BrightnessFallback
}

func NewClient(opener Opener, fb BrightnessFallback) *Client {
	return &Client{
		opener:   opener,
		fallback: fb,
	}
}

// withMonitor opens the first physical monitor behind device and releases it
// when fn returns.
func (c *Client) withMonitor(device string, fn func(PhysicalMonitor) error) error {
	pm, release, err := c.opener.Open(device)
	if err != nil {
		return err
	}
	defer release()
	return fn(pm)
}

// Brightness reads DDC/CI brightness, then the OS fallback, then a fixed
// default. It never fails.
func (c *Client) Brightness(ctx context.Context, device string) BrightnessRange {
	log := logrus.WithField("display", device)

	chain := fallback.New[BrightnessRange]().
		Then("ddc", func() (BrightnessRange, fallback.Outcome, error) {
			var br BrightnessRange
			err := c.withMonitor(device, func(pm PhysicalMonitor) error {
				lo, cur, hi, err := pm.Brightness()
				if err != nil {
					return err
				}
				br = normalize(lo, cur, hi)
				return nil
			})
			if err != nil {
				return br, fallback.NotApplicable, err
			}
			return br, fallback.Applied, nil
		})

	if c.fallback != nil {
		chain.Then("wmi", fallback.Value(func() (BrightnessRange, error) {
			cur, err := c.fallback.Brightness(ctx)
			if err != nil {
				return BrightnessRange{}, err
			}
			return normalize(0, cur, 100), nil
		}))
	}

	br, source, err := chain.Then("default", func() (BrightnessRange, fallback.Outcome, error) {
		log.Warnln("brightness unavailable via DDC/CI and WMI, reporting default")
		return DefaultBrightness, fallback.Applied, nil
	}).Run()
	if err != nil {
		return DefaultBrightness
	}

	log.WithField("source", source).Debugf("brightness %d/%d..%d", br.Current, br.Min, br.Max)
	return br
}

// scaleBrightness maps a percentage onto [lo, hi] with rounding.
func scaleBrightness(lo, hi, percent uint32) uint32 {
	percent = min(percent, 100)
	span := uint64(hi - lo)
	return lo + uint32((span*uint64(percent)+50)/100)
}

// SetBrightness writes percent (clamped to 100) through DDC/CI and falls back
// to the OS path when the monitor does not answer.
func (c *Client) SetBrightness(ctx context.Context, device string, percent uint32) error {
	percent = min(percent, 100)

	chain := fallback.New[struct{}]().
		Then("ddc", func() (struct{}, fallback.Outcome, error) {
			err := c.withMonitor(device, func(pm PhysicalMonitor) error {
				lo, _, hi, err := pm.Brightness()
				if err != nil {
					return err
				}
				if hi < lo {
					return fmt.Errorf("invalid brightness range %d..%d", lo, hi)
				}
				return pm.SetBrightness(scaleBrightness(lo, hi, percent))
			})
			if err != nil {
				return struct{}{}, fallback.NotApplicable, err
			}
			return struct{}{}, fallback.Applied, nil
		})

	if c.fallback != nil {
		chain.Then("wmi", fallback.Value(func() (struct{}, error) {
			return struct{}{}, c.fallback.SetBrightness(ctx, percent)
		}))
	}

	if _, _, err := chain.Run(); err != nil {
		return fmt.Errorf("failed to set brightness via DDC/CI and WMI fallback: %w", err)
	}
	return nil
}

// InputSource reads VCP 0x60 and returns its label.
func (c *Client) InputSource(device string) (string, error) {
	var label string
	err := c.withMonitor(device, func(pm PhysicalMonitor) error {
		cur, _, err := pm.VCP(VCPInputSource)
		if err != nil {
			return err
		}
		label = InputLabel(cur)
		return nil
	})
	return label, err
}

// SetInputSource writes VCP 0x60 and verifies the monitor switched.
func (c *Client) SetInputSource(device, input string) error {
	code, err := ParseInput(input)
	if err != nil {
		return err
	}

	return c.withMonitor(device, func(pm PhysicalMonitor) error {
		if err := pm.SetVCP(VCPInputSource, code); err != nil {
			return fmt.Errorf("monitor may not support input switching via DDC/CI: %w", err)
		}

		cur, _, err := pm.VCP(VCPInputSource)
		if err != nil {
			logrus.WithError(err).WithField("display", device).Warnln("could not verify input switch, assuming success")
			return nil
		}
		if got := cur & inputCodeMask; got != code {
			return fmt.Errorf("%w (requested 0x%02X, monitor reports 0x%02X)", ErrInputIgnored, code, got)
		}
		return nil
	})
}

// Capabilities returns the raw MCCS capability string.
func (c *Client) Capabilities(device string) (string, error) {
	var caps string
	err := c.withMonitor(device, func(pm PhysicalMonitor) error {
		var err error
		caps, err = pm.Capabilities()
		return err
	})
	return caps, err
}

// SupportsInputSwitch probes VCP 0x60 and falls back to the capability
// string. An error means no physical monitor could be opened.
func (c *Client) SupportsInputSwitch(device string) (bool, error) {
	var supported bool
	err := c.withMonitor(device, func(pm PhysicalMonitor) error {
		if _, _, err := pm.VCP(VCPInputSource); err == nil {
			supported = true
			return nil
		}
		caps, err := pm.Capabilities()
		if err != nil {
			return nil
		}
		supported = capsListInput(caps)
		return nil
	})
	return supported, err
}

func capsListInput(caps string) bool {
	lower := strings.ToLower(caps)
	return strings.Contains(lower, "vcp(") &&
		(strings.Contains(lower, " 60") || strings.Contains(lower, "(60") || strings.Contains(lower, ",60"))
}

// Power reads VCP 0xD6. A display without any DDC/CI handle reports
// PowerNoDDC; a DDC/CI monitor that does not answer is assumed to be off.
func (c *Client) Power(device string) PowerStatus {
	log := logrus.WithField("display", device)

	pm, release, err := c.opener.Open(device)
	switch {
	case errors.Is(err, ErrNoMonitorHandle), errors.Is(err, ErrNoPhysicalMonitor):
		log.WithError(err).Debugln("assuming no DDC/CI support")
		return PowerNoDDC
	case err != nil:
		log.WithError(err).Debugln("physical monitor unavailable, assuming off")
		return PowerOff
	}
	defer release()

	cur, _, err := pm.VCP(VCPPowerMode)
	if err != nil {
		log.WithError(err).Debugln("power mode read failed, assuming off")
		return PowerOff
	}
	if cur&inputCodeMask == PowerModeOn {
		return PowerOn
	}
	return PowerOff
}

// SetPower writes VCP 0xD6: on, or hard power off.
func (c *Client) SetPower(device string, on bool) error {
	value := PowerModeHardOff
	if on {
		value = PowerModeOn
	}
	return c.withMonitor(device, func(pm PhysicalMonitor) error {
		if err := pm.SetVCP(VCPPowerMode, value); err != nil {
			return fmt.Errorf("monitor may not support DDC/CI power control: %w", err)
		}
		logrus.WithField("display", device).Infof("power set to 0x%02X", value)
		return nil
	})
}
