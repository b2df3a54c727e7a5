//go:build windows

package win32

import (
	"fmt"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	qdcOnlyActivePaths = 0x00000002

	errorSuccess            = 0
	errorInsufficientBuffer = 122

	advancedColorSupported = 0x1
	advancedColorEnabled   = 0x2
)

const (
	deviceInfoGetSourceName         int32 = 1
	deviceInfoGetTargetName         int32 = 2
	deviceInfoGetAdvancedColorInfo  int32 = 9
	deviceInfoSetAdvancedColorState int32 = 10
	deviceInfoGetDPIScale           int32 = -3 // undocumented
	deviceInfoSetDPIScale           int32 = -4 // undocumented
)

type pathSourceInfo struct {
	AdapterID   windows.LUID
	ID          uint32
	ModeInfoIdx uint32
	StatusFlags uint32
}

type rational struct {
	Numerator   uint32
	Denominator uint32
}

type pathTargetInfo struct {
	AdapterID        windows.LUID
	ID               uint32
	ModeInfoIdx      uint32
	OutputTechnology uint32
	Rotation         uint32
	Scaling          uint32
	RefreshRate      rational
	ScanLineOrdering uint32
	TargetAvailable  int32
	StatusFlags      uint32
}

// DISPLAYCONFIG_PATH_INFO, 72 bytes.
type pathInfo struct {
	Source pathSourceInfo
	Target pathTargetInfo
	Flags  uint32
}

// DISPLAYCONFIG_MODE_INFO, 64 bytes. The union is never read.
type modeInfo struct {
	InfoType  uint32
	ID        uint32
	AdapterID windows.LUID
	Info      [6]uint64
}

type deviceInfoHeader struct {
	Type      int32
	Size      uint32
	AdapterID windows.LUID
	ID        uint32
}

type sourceDeviceName struct {
	Header            deviceInfoHeader
	ViewGdiDeviceName [32]uint16
}

type targetDeviceName struct {
	Header                    deviceInfoHeader
	Flags                     uint32
	OutputTechnology          uint32
	EdidManufactureID         uint16
	EdidProductCodeID         uint16
	ConnectorInstance         uint32
	MonitorFriendlyDeviceName [64]uint16
	MonitorDevicePath         [128]uint16
}

type getDPIScale struct {
	Header      deviceInfoHeader
	MinScaleRel int32
	CurScaleRel int32
	MaxScaleRel int32
}

type setDPIScale struct {
	Header   deviceInfoHeader
	ScaleRel int32
}

type advancedColorInfo struct {
	Header              deviceInfoHeader
	Value               uint32
	ColorEncoding       uint32
	BitsPerColorChannel uint32
}

type setAdvancedColorState struct {
	Header deviceInfoHeader
	Value  uint32
}

// Path is one active source→target path with resolved names.
type Path struct {
	Adapter          windows.LUID
	SourceID         uint32
	TargetID         uint32
	GDIName          string
	DevicePath       string
	FriendlyName     string
	OutputTechnology uint32
}

func header(typ int32, size uintptr, adapter windows.LUID, id uint32) deviceInfoHeader {
	return deviceInfoHeader{Type: typ, Size: uint32(size), AdapterID: adapter, ID: id}
}

func getDeviceInfo(h *deviceInfoHeader) error {
	r, _, _ := procDisplayConfigGetDeviceInfo.Call(uintptr(unsafe.Pointer(h)))
	if int32(r) != errorSuccess {
		return fmt.Errorf("DisplayConfigGetDeviceInfo(type %d): %w", h.Type, syscall.Errno(r))
	}
	return nil
}

func setDeviceInfo(h *deviceInfoHeader) error {
	r, _, _ := procDisplayConfigSetDeviceInfo.Call(uintptr(unsafe.Pointer(h)))
	if int32(r) != errorSuccess {
		return fmt.Errorf("DisplayConfigSetDeviceInfo(type %d): %w", h.Type, syscall.Errno(r))
	}
	return nil
}

func queryActivePaths() ([]pathInfo, error) {
	for {
		var numPaths, numModes uint32
		r, _, _ := procGetDisplayConfigBufferSizes.Call(
			qdcOnlyActivePaths,
			uintptr(unsafe.Pointer(&numPaths)),
			uintptr(unsafe.Pointer(&numModes)),
		)
		if r != errorSuccess {
			return nil, fmt.Errorf("GetDisplayConfigBufferSizes: %w", syscall.Errno(r))
		}
		if numPaths == 0 {
			return nil, nil
		}

		paths := make([]pathInfo, numPaths)
		modes := make([]modeInfo, max(numModes, 1))
		r, _, _ = procQueryDisplayConfig.Call(
			qdcOnlyActivePaths,
			uintptr(unsafe.Pointer(&numPaths)),
			uintptr(unsafe.Pointer(&paths[0])),
			uintptr(unsafe.Pointer(&numModes)),
			uintptr(unsafe.Pointer(&modes[0])),
			0,
		)
		switch r {
		case errorSuccess:
			return paths[:numPaths], nil
		case errorInsufficientBuffer:
			continue
		default:
			return nil, fmt.Errorf("QueryDisplayConfig: %w", syscall.Errno(r))
		}
	}
}

// ActivePaths returns every active path with its GDI source name and target
// device path filled in where the driver reports them.
func ActivePaths() ([]Path, error) {
	raw, err := queryActivePaths()
	if err != nil {
		return nil, err
	}

	out := make([]Path, 0, len(raw))
	for _, p := range raw {
		path := Path{
			Adapter:          p.Source.AdapterID,
			SourceID:         p.Source.ID,
			TargetID:         p.Target.ID,
			OutputTechnology: p.Target.OutputTechnology,
		}

		src := sourceDeviceName{Header: header(deviceInfoGetSourceName, unsafe.Sizeof(sourceDeviceName{}), p.Source.AdapterID, p.Source.ID)}
		if getDeviceInfo(&src.Header) == nil {
			path.GDIName = windows.UTF16ToString(src.ViewGdiDeviceName[:])
		}

		tgt := targetDeviceName{Header: header(deviceInfoGetTargetName, unsafe.Sizeof(targetDeviceName{}), p.Target.AdapterID, p.Target.ID)}
		if getDeviceInfo(&tgt.Header) == nil {
			path.DevicePath = windows.UTF16ToString(tgt.MonitorDevicePath[:])
			path.FriendlyName = windows.UTF16ToString(tgt.MonitorFriendlyDeviceName[:])
		}

		out = append(out, path)
	}
	return out, nil
}

// DPIScale reads the relative DPI descriptor of a source.
func DPIScale(adapter windows.LUID, sourceID uint32) (minRel, curRel, maxRel int32, err error) {
	pkt := getDPIScale{Header: header(deviceInfoGetDPIScale, unsafe.Sizeof(getDPIScale{}), adapter, sourceID)}
	if err := getDeviceInfo(&pkt.Header); err != nil {
		return 0, 0, 0, err
	}
	return pkt.MinScaleRel, pkt.CurScaleRel, pkt.MaxScaleRel, nil
}

// SetDPIScale sets the scale of a source relative to its recommended step.
func SetDPIScale(adapter windows.LUID, sourceID uint32, rel int32) error {
	pkt := setDPIScale{
		Header:   header(deviceInfoSetDPIScale, unsafe.Sizeof(setDPIScale{}), adapter, sourceID),
		ScaleRel: rel,
	}
	return setDeviceInfo(&pkt.Header)
}

// AdvancedColor reports whether the target supports and has enabled HDR.
func AdvancedColor(adapter windows.LUID, targetID uint32) (supported, enabled bool, err error) {
	pkt := advancedColorInfo{Header: header(deviceInfoGetAdvancedColorInfo, unsafe.Sizeof(advancedColorInfo{}), adapter, targetID)}
	if err := getDeviceInfo(&pkt.Header); err != nil {
		return false, false, err
	}
	return pkt.Value&advancedColorSupported != 0, pkt.Value&advancedColorEnabled != 0, nil
}

func SetAdvancedColor(adapter windows.LUID, targetID uint32, enable bool) error {
	pkt := setAdvancedColorState{Header: header(deviceInfoSetAdvancedColorState, unsafe.Sizeof(setAdvancedColorState{}), adapter, targetID)}
	if enable {
		pkt.Value = 1
	}
	return setDeviceInfo(&pkt.Header)
}
