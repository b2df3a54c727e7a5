package display

import (
	"context"

	"github.com/sirupsen/logrus"

	"windisplay/internal/wmi"
)

// EdidSource lists the EDID identities the OS knows about.
type EdidSource interface {
	Entries(ctx context.Context) []EdidEntry
}

// WMIEdidSource reads WmiMonitorID and its companion classes through a
// script runner.
type WMIEdidSource struct {
	Runner wmi.ScriptRunner
}

// Entries never fails; any error yields an empty list.
func (s WMIEdidSource) Entries(ctx context.Context) []EdidEntry {
	ids, err := wmi.MonitorIDs(ctx, s.Runner)
	if err != nil {
		logrus.WithError(err).Debugln("EDID metadata unavailable")
		return nil
	}
	return edidEntries(ids)
}

func edidEntries(ids []wmi.MonitorID) []EdidEntry {
	entries := make([]EdidEntry, 0, len(ids))
	for _, id := range ids {
		e := EdidEntry{
			InstanceName:     id.InstanceName,
			Manufacturer:     id.Manufacturer,
			Model:            id.Model,
			Serial:           id.SerialNumber,
			ProductCode:      id.ProductCodeID,
			OutputTechnology: id.VideoOutputTechnology,
		}
		if id.WeekOfManufacture != nil {
			e.Week = *id.WeekOfManufacture
		}
		if id.YearOfManufacture != nil {
			e.Year = *id.YearOfManufacture
		}
		if id.Active != nil {
			e.Active = *id.Active
		}
		entries = append(entries, e)
	}
	return entries
}
