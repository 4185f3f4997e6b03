package rdisplay

import (
	"fmt"
	"image"
)

const unknownMonitorName = "Unknown"

type monitorSource struct {
	backend Backend
}

// listMonitors enumerates every display. A failed query on one display
// zeroes that field instead of aborting the enumeration.
func (m *monitorSource) listMonitors() ([]Monitor, error) {
	displays, err := m.backend.Displays()
	if err != nil {
		return nil, fmt.Errorf("enumerate displays: %w", err)
	}
	monitors := make([]Monitor, len(displays))
	for i, d := range displays {
		monitors[i] = describe(d)
	}
	return monitors, nil
}

// primary returns the display flagged as primary together with its
// descriptor. A failed flag query counts as "not primary".
func (m *monitorSource) primary() (Display, Monitor, error) {
	displays, err := m.backend.Displays()
	if err != nil {
		return nil, Monitor{}, fmt.Errorf("enumerate displays: %w", err)
	}
	for _, d := range displays {
		isPrimary, err := d.IsPrimary()
		if err != nil || !isPrimary {
			continue
		}
		return d, describe(d), nil
	}
	return nil, Monitor{}, ErrNoPrimaryMonitor
}

func describe(d Display) Monitor {
	mon := Monitor{Name: unknownMonitorName}
	if name, err := d.Name(); err == nil {
		mon.Name = name
	}
	if bounds, err := d.Bounds(); err == nil {
		mon.Width = uint32(nonNegative(bounds.Dx()))
		mon.Height = uint32(nonNegative(bounds.Dy()))
		mon.X = int32(bounds.Min.X)
		mon.Y = int32(bounds.Min.Y)
	}
	if isPrimary, err := d.IsPrimary(); err == nil {
		mon.Primary = isPrimary
	}
	return mon
}

func nonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

// size returns the monitor's extent as an image.Point
func (mon Monitor) size() image.Point {
	return image.Pt(int(mon.Width), int(mon.Height))
}
