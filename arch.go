package postfx

import "strings"

// Architecture identifies a GPU vendor family, used by hosts to select
// vendor-specific workarounds or defaults.
type Architecture uint8

const (
	// ArchUnknown is reported when the vendor cannot be determined.
	ArchUnknown Architecture = iota

	// ArchAMD covers AMD/ATI GPUs.
	ArchAMD

	// ArchIntel covers Intel integrated and discrete GPUs.
	ArchIntel

	// ArchNVIDIA covers NVIDIA GPUs.
	ArchNVIDIA
)

// String returns the vendor name.
func (a Architecture) String() string {
	switch a {
	case ArchAMD:
		return "AMD"
	case ArchIntel:
		return "Intel"
	case ArchNVIDIA:
		return "NVIDIA"
	default:
		return "Unknown"
	}
}

// Known PCI vendor IDs.
const (
	vendorIDAMD    = 0x1002
	vendorIDIntel  = 0x8086
	vendorIDNVIDIA = 0x10DE
)

// ArchitectureFromVendorID maps a PCI vendor ID to an Architecture.
func ArchitectureFromVendorID(id uint32) Architecture {
	switch id {
	case vendorIDAMD:
		return ArchAMD
	case vendorIDIntel:
		return ArchIntel
	case vendorIDNVIDIA:
		return ArchNVIDIA
	default:
		return ArchUnknown
	}
}

// ArchitectureFromDeviceName guesses the Architecture from an adapter
// name string.
func ArchitectureFromDeviceName(name string) Architecture {
	name = strings.ToLower(name)

	if strings.Contains(name, "nvidia") {
		return ArchNVIDIA
	}
	if strings.Contains(name, "intel") {
		return ArchIntel
	}
	// Checked last: other vendor names may contain these 3 letters.
	if strings.Contains(name, "amd") {
		return ArchAMD
	}
	return ArchUnknown
}

// namedDevice is implemented by devices that expose their adapter name.
type namedDevice interface {
	DeviceName() string
}

// float16Capable is implemented by devices that can report native
// 16-bit float shader support.
type float16Capable interface {
	Float16Supported() bool
}

// DeviceArchitecture returns the Architecture of a Device, derived from
// its adapter name when available.
func DeviceArchitecture(d Device) Architecture {
	if nd, ok := d.(namedDevice); ok {
		return ArchitectureFromDeviceName(nd.DeviceName())
	}
	return ArchUnknown
}

// DeviceSupportsFP16 reports whether the device supports 16-bit float
// shader arithmetic. Devices that do not expose the capability report
// false.
func DeviceSupportsFP16(d Device) bool {
	fc, ok := d.(float16Capable)
	return ok && fc.Float16Supported()
}
