//go:build windows

package win32

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	enumCurrentSettings  = 0xFFFFFFFF
	enumRegistrySettings = 0xFFFFFFFE

	dmDisplayOrientation = 0x00000080
	dmBitsPerPel         = 0x00040000
	dmPelsWidth          = 0x00080000
	dmPelsHeight         = 0x00100000
	dmDisplayFrequency   = 0x00400000

	cdsUpdateRegistry    = 0x00000001
	dispChangeSuccessful = 0

	DisplayDeviceAttachedToDesktop = 0x00000001
	DisplayDevicePrimaryDevice     = 0x00000004
	DisplayDeviceMirroringDriver   = 0x00000008
)

// DISPLAY_DEVICEW
type displayDevice struct {
	Cb           uint32
	DeviceName   [32]uint16
	DeviceString [128]uint16
	StateFlags   uint32
	DeviceID     [128]uint16
	DeviceKey    [128]uint16
}

// DEVMODEW, display variant of the unions.
type devMode struct {
	DeviceName         [32]uint16
	SpecVersion        uint16
	DriverVersion      uint16
	Size               uint16
	DriverExtra        uint16
	Fields             uint32
	PositionX          int32
	PositionY          int32
	DisplayOrientation uint32
	DisplayFixedOutput uint32
	Color              int16
	Duplex             int16
	YResolution        int16
	TTOption           int16
	Collate            int16
	FormName           [32]uint16
	LogPixels          uint16
	BitsPerPel         uint32
	PelsWidth          uint32
	PelsHeight         uint32
	DisplayFlags       uint32
	DisplayFrequency   uint32
	ICMMethod          uint32
	ICMIntent          uint32
	MediaType          uint32
	DitherType         uint32
	Reserved1          uint32
	Reserved2          uint32
	PanningWidth       uint32
	PanningHeight      uint32
}

// Device is one entry of EnumDisplayDevicesW.
type Device struct {
	Name       string
	String     string
	StateFlags uint32
	ID         string
	Key        string
}

// Mode is the display-relevant part of a DEVMODEW.
type Mode struct {
	Width        uint32
	Height       uint32
	BitsPerPixel uint32
	Frequency    uint32
	X            int32
	Y            int32
	Orientation  uint32
}

// DisplayDevice returns the device at index under parent ("" for adapters).
// ok is false once the index runs past the last device.
func DisplayDevice(parent string, index uint32) (Device, bool) {
	p, err := utf16Ptr(parent)
	if err != nil {
		return Device{}, false
	}

	var dd displayDevice
	dd.Cb = uint32(unsafe.Sizeof(dd))
	r, _, _ := procEnumDisplayDevicesW.Call(
		uintptr(unsafe.Pointer(p)),
		uintptr(index),
		uintptr(unsafe.Pointer(&dd)),
		0,
	)
	if r == 0 {
		return Device{}, false
	}

	return Device{
		Name:       windows.UTF16ToString(dd.DeviceName[:]),
		String:     windows.UTF16ToString(dd.DeviceString[:]),
		StateFlags: dd.StateFlags,
		ID:         windows.UTF16ToString(dd.DeviceID[:]),
		Key:        windows.UTF16ToString(dd.DeviceKey[:]),
	}, true
}

func enumSettings(device string, index uint32) (devMode, bool) {
	var dm devMode
	dm.Size = uint16(unsafe.Sizeof(dm))

	p, err := utf16Ptr(device)
	if err != nil {
		return dm, false
	}
	r, _, _ := procEnumDisplaySettingsExW.Call(
		uintptr(unsafe.Pointer(p)),
		uintptr(index),
		uintptr(unsafe.Pointer(&dm)),
		0,
	)
	return dm, r != 0
}

func modeOf(dm devMode) Mode {
	return Mode{
		Width:        dm.PelsWidth,
		Height:       dm.PelsHeight,
		BitsPerPixel: dm.BitsPerPel,
		Frequency:    dm.DisplayFrequency,
		X:            dm.PositionX,
		Y:            dm.PositionY,
		Orientation:  dm.DisplayOrientation,
	}
}

func CurrentMode(device string) (Mode, bool) {
	dm, ok := enumSettings(device, enumCurrentSettings)
	return modeOf(dm), ok
}

// RegistryMode returns the mode stored in the registry for device.
func RegistryMode(device string) (Mode, bool) {
	dm, ok := enumSettings(device, enumRegistrySettings)
	return modeOf(dm), ok
}

// ModeAt returns the advertised mode at index; ok is false past the end.
func ModeAt(device string, index uint32) (Mode, bool) {
	dm, ok := enumSettings(device, index)
	return modeOf(dm), ok
}

// SetMode applies width, height, bit depth and frequency to device and
// stores them in the registry.
func SetMode(device string, m Mode) error {
	dm, ok := enumSettings(device, enumCurrentSettings)
	if !ok {
		return fmt.Errorf("EnumDisplaySettingsExW(%s) failed", device)
	}
	dm.PelsWidth = m.Width
	dm.PelsHeight = m.Height
	dm.BitsPerPel = m.BitsPerPixel
	dm.DisplayFrequency = m.Frequency
	dm.Fields = dmPelsWidth | dmPelsHeight | dmBitsPerPel | dmDisplayFrequency
	return changeSettings(device, &dm)
}

// SetOrientation applies an orientation code together with the matching
// width and height.
func SetOrientation(device string, code, width, height uint32) error {
	dm, ok := enumSettings(device, enumCurrentSettings)
	if !ok {
		return fmt.Errorf("EnumDisplaySettingsExW(%s) failed", device)
	}
	dm.DisplayOrientation = code
	dm.PelsWidth = width
	dm.PelsHeight = height
	dm.Fields = dmDisplayOrientation | dmPelsWidth | dmPelsHeight
	return changeSettings(device, &dm)
}

func changeSettings(device string, dm *devMode) error {
	p, err := utf16Ptr(device)
	if err != nil {
		return err
	}
	r, _, _ := procChangeDisplaySettingsExW.Call(
		uintptr(unsafe.Pointer(p)),
		uintptr(unsafe.Pointer(dm)),
		0,
		cdsUpdateRegistry,
		0,
	)
	// DISP_CHANGE_* values are small signed integers.
	if code := int32(r); code != dispChangeSuccessful {
		return fmt.Errorf("ChangeDisplaySettingsExW(%s) returned %d", device, code)
	}
	return nil
}
